package httpserver

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"projecthub/internal/handler"
	"projecthub/pkg/metrics"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	projectHandler *handler.ProjectHandler,
	taskHandler *handler.TaskHandler,
	tagHandler *handler.TagHandler,
	jwtSecret string,
	logger *zap.Logger,
) *Router {
	r := gin.Default()

	r.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		logger.Info("HTTP Request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
		metrics.RecordHTTPRequestDuration(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
			latency,
		)
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	r.POST("/user", authHandler.Register)
	r.POST("/login", authHandler.Login)

	// Protected
	auth := r.Group("/")
	auth.Use(AuthMiddleware(jwtSecret))
	{
		auth.GET("/user/:id", userHandler.GetUser)
		auth.PUT("/user/:id", userHandler.UpdateUser)
		auth.DELETE("/user/:id", userHandler.DeleteUser)
		auth.GET("/user/:id/projects", userHandler.ListUserProjects)
		auth.POST("/user/:id/projects/:project_id", userHandler.LinkProject)

		auth.POST("/project", projectHandler.CreateProject)
		auth.GET("/project/:id", projectHandler.GetProject)
		auth.PUT("/project/:id", projectHandler.UpdateProject)
		auth.DELETE("/project/:id", projectHandler.DeleteProject)
		auth.GET("/project/:id/tasks", projectHandler.ListProjectTasks)

		auth.POST("/task", taskHandler.CreateTask)
		auth.GET("/task/:id", taskHandler.GetTask)
		auth.PUT("/task/:id", taskHandler.UpdateTask)
		auth.DELETE("/task/:id", taskHandler.DeleteTask)

		auth.POST("/tag", tagHandler.CreateTag)
		auth.GET("/tag/:id", tagHandler.GetTag)
		auth.GET("/tags", tagHandler.ListTags)
		auth.PUT("/tag/:id", tagHandler.UpdateTag)
		auth.DELETE("/tag/:id", tagHandler.DeleteTag)
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
