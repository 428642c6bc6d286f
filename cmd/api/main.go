package main

import (
	"go.uber.org/zap"

	"projecthub/config"
	"projecthub/internal/auth"
	"projecthub/internal/db"
	"projecthub/internal/handler"
	"projecthub/internal/httpserver"
	"projecthub/internal/repository"
	"projecthub/internal/service"
)

func main() {
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	dbConn, err := db.NewConnection(cfg.DB, logger)
	if err != nil {
		logger.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	// Repositories
	userRepo := repository.NewUserRepository(dbConn)
	projectRepo := repository.NewProjectRepository(dbConn, logger)
	taskRepo := repository.NewTaskRepository(dbConn, logger)
	tagRepo := repository.NewTagRepository(dbConn)
	txManager := repository.NewTxManager(dbConn, logger)

	// Services
	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	userService := service.NewUserService(userRepo, hasher, logger)
	projectService := service.NewProjectService(projectRepo, userRepo, txManager, logger)
	taskService := service.NewTaskService(taskRepo, tagRepo, projectRepo, txManager, logger)
	tagService := service.NewTagService(tagRepo, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(userService, cfg.JWT.Secret, logger)
	userHandler := handler.NewUserHandler(userService, projectService, logger)
	projectHandler := handler.NewProjectHandler(projectService, taskService, logger)
	taskHandler := handler.NewTaskHandler(taskService, logger)
	tagHandler := handler.NewTagHandler(tagService, logger)

	// Router
	router := httpserver.NewRouter(
		authHandler,
		userHandler,
		projectHandler,
		taskHandler,
		tagHandler,
		cfg.JWT.Secret,
		logger,
	)

	if err := router.Run(cfg.Server.Port); err != nil {
		logger.Fatal("server start failed", zap.Error(err))
	}
}
