package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"projecthub/internal/service"
	"projecthub/internal/util"
	"projecthub/pkg/metrics"
)

type AuthHandler struct {
	users     *service.UserService
	jwtSecret string
	logger    *zap.Logger
}

func NewAuthHandler(users *service.UserService, jwtSecret string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:     users,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// Register handles POST /user.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u, err := h.users.Create(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.logger.Warn("Register failed", zap.String("email", req.Email), zap.Error(err))
		writeError(c, err)
		return
	}

	metrics.IncrementEntityMutation("user", "create")
	c.JSON(http.StatusCreated, u)
}

// Login handles POST /login. Unknown email and wrong password get the same
// response.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Error("Login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if u == nil {
		metrics.IncrementLoginAttempt("rejected")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := util.GenerateJWT(u.ID, h.jwtSecret)
	if err != nil {
		h.logger.Error("Token generation failed", zap.Int("user_id", u.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	metrics.IncrementLoginAttempt("success")
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  u,
	})
}
