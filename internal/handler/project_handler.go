package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"projecthub/internal/model"
	"projecthub/internal/service"
	"projecthub/pkg/metrics"
)

type ProjectHandler struct {
	projects *service.ProjectService
	tasks    *service.TaskService
	logger   *zap.Logger
}

func NewProjectHandler(projects *service.ProjectService, tasks *service.TaskService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		tasks:    tasks,
		logger:   logger,
	}
}

// CreateProject handles POST /project. The creating user becomes the
// project's first member.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		UserID      int    `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, err := h.projects.Create(c.Request.Context(), req.Name, req.Description, req.UserID)
	if err != nil {
		h.logger.Warn("CreateProject failed", zap.Int("user_id", req.UserID), zap.Error(err))
		writeError(c, err)
		return
	}

	metrics.IncrementEntityMutation("project", "create")
	c.JSON(http.StatusCreated, p)
}

// GetProject handles GET /project/:id.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	p, err := h.projects.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProject handles PUT /project/:id.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Name == nil && req.Description == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no update data provided"})
		return
	}

	p, err := h.projects.Update(c.Request.Context(), id, model.ProjectPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	metrics.IncrementEntityMutation("project", "update")
	c.JSON(http.StatusOK, p)
}

// DeleteProject handles DELETE /project/:id.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	if err := h.projects.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	metrics.IncrementEntityMutation("project", "delete")
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// ListProjectTasks handles GET /project/:id/tasks.
func (h *ProjectHandler) ListProjectTasks(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	tasks, err := h.tasks.ForProject(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}
