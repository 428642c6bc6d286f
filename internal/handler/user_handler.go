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

type UserHandler struct {
	users    *service.UserService
	projects *service.ProjectService
	logger   *zap.Logger
}

func NewUserHandler(users *service.UserService, projects *service.ProjectService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		users:    users,
		projects: projects,
		logger:   logger,
	}
}

// GetUser handles GET /user/:id.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	u, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateUser handles PUT /user/:id. An update payload with no fields at
// all is rejected here; the domain layer itself treats it as a no-op.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Name == nil && req.Email == nil && req.Password == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no update data provided"})
		return
	}

	u, err := h.users.Update(c.Request.Context(), id, model.UserPatch{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Warn("UpdateUser failed", zap.Int("user_id", id), zap.Error(err))
		writeError(c, err)
		return
	}

	metrics.IncrementEntityMutation("user", "update")
	c.JSON(http.StatusOK, u)
}

// DeleteUser handles DELETE /user/:id.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	metrics.IncrementEntityMutation("user", "delete")
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// LinkProject handles POST /user/:id/projects/:project_id. Linking an
// already-member user answers 200 with the unchanged user.
func (h *UserHandler) LinkProject(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	projectID, err := strconv.Atoi(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	u, err := h.users.LinkProject(c.Request.Context(), userID, projectID)
	if err != nil {
		h.logger.Warn("LinkProject failed",
			zap.Int("user_id", userID),
			zap.Int("project_id", projectID),
			zap.Error(err),
		)
		writeError(c, err)
		return
	}

	metrics.IncrementEntityMutation("user", "link")
	c.JSON(http.StatusOK, u)
}

// ListUserProjects handles GET /user/:id/projects.
func (h *UserHandler) ListUserProjects(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	projects, err := h.projects.ForUser(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}
