package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"projecthub/internal/model"
	"projecthub/internal/service"
	"projecthub/internal/store"
	"projecthub/pkg/metrics"
)

type TagHandler struct {
	tags   *service.TagService
	logger *zap.Logger
}

func NewTagHandler(tags *service.TagService, logger *zap.Logger) *TagHandler {
	return &TagHandler{tags: tags, logger: logger}
}

// CreateTag handles POST /tag: attach a new tag to an existing task.
func (h *TagHandler) CreateTag(c *gin.Context) {
	var req struct {
		Title  string `json:"title" binding:"required"`
		TaskID int    `json:"task_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	t, err := h.tags.Create(c.Request.Context(), req.Title, req.TaskID)
	if err != nil {
		h.logger.Warn("CreateTag failed", zap.Int("task_id", req.TaskID), zap.Error(err))
		writeError(c, err)
		return
	}

	metrics.IncrementEntityMutation("tag", "create")
	c.JSON(http.StatusCreated, t)
}

// GetTag handles GET /tag/:id.
func (h *TagHandler) GetTag(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag id"})
		return
	}

	t, err := h.tags.Get(c.Request.Context(), store.TagFilter{ID: &id})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// ListTags handles GET /tags with optional task_id, title, skip and take
// query parameters.
func (h *TagHandler) ListTags(c *gin.Context) {
	filter := store.TagFilter{}
	if raw := c.Query("task_id"); raw != "" {
		taskID, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task_id"})
			return
		}
		filter.TaskID = &taskID
	}
	if title := c.Query("title"); title != "" {
		filter.Title = &title
	}

	page := store.Pagination{}
	if raw := c.Query("skip"); raw != "" {
		if skip, err := strconv.Atoi(raw); err == nil {
			page.Skip = skip
		}
	}
	if raw := c.Query("take"); raw != "" {
		if take, err := strconv.Atoi(raw); err == nil {
			page.Take = take
		}
	}

	tags, err := h.tags.List(c.Request.Context(), filter, page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// UpdateTag handles PUT /tag/:id.
func (h *TagHandler) UpdateTag(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag id"})
		return
	}

	var req struct {
		Title *string `json:"title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Title == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no update data provided"})
		return
	}

	t, err := h.tags.Update(c.Request.Context(), id, model.TagPatch{Title: req.Title})
	if err != nil {
		writeError(c, err)
		return
	}

	metrics.IncrementEntityMutation("tag", "update")
	c.JSON(http.StatusOK, t)
}

// DeleteTag handles DELETE /tag/:id and returns the removed tag.
func (h *TagHandler) DeleteTag(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag id"})
		return
	}

	t, err := h.tags.Delete(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	metrics.IncrementEntityMutation("tag", "delete")
	c.JSON(http.StatusOK, t)
}
