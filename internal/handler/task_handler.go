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

type TaskHandler struct {
	tasks  *service.TaskService
	logger *zap.Logger
}

func NewTaskHandler(tasks *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, logger: logger}
}

// CreateTask handles POST /task. A task must carry at least one tag.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req struct {
		Title       string   `json:"title" binding:"required"`
		Description string   `json:"description"`
		Status      string   `json:"status" binding:"required"`
		ProjectID   int      `json:"project_id" binding:"required"`
		Tags        []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	task, tags, err := h.tasks.Create(
		c.Request.Context(),
		req.Title,
		req.Description,
		model.Status(req.Status),
		req.ProjectID,
		req.Tags,
	)
	if err != nil {
		h.logger.Warn("CreateTask failed",
			zap.Int("project_id", req.ProjectID),
			zap.Error(err),
		)
		writeError(c, err)
		return
	}

	metrics.IncrementEntityMutation("task", "create")
	c.JSON(http.StatusCreated, gin.H{
		"task": task,
		"tags": tags,
	})
}

// UpdateTask handles PUT /task/:id.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	var req struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Status      *string  `json:"status"`
		AddTags     []string `json:"add_tags"`
		RemoveTags  []string `json:"remove_tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	patch := model.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := model.Status(*req.Status)
		patch.Status = &status
	}

	task, err := h.tasks.Update(c.Request.Context(), id, patch, req.AddTags, req.RemoveTags)
	if err != nil {
		h.logger.Warn("UpdateTask failed", zap.Int("task_id", id), zap.Error(err))
		writeError(c, err)
		return
	}

	metrics.IncrementEntityMutation("task", "update")
	c.JSON(http.StatusOK, task)
}

// GetTask handles GET /task/:id.
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /task/:id.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	metrics.IncrementEntityMutation("task", "delete")
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
