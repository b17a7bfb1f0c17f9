package router

import (
	"github.com/Getinger96/KannMind-Backend/internal/application"
	"github.com/Getinger96/KannMind-Backend/internal/container"
	"github.com/Getinger96/KannMind-Backend/internal/domain/authz"
	pginfra "github.com/Getinger96/KannMind-Backend/internal/infrastructure/postgres"
	handlers "github.com/Getinger96/KannMind-Backend/internal/interface/http"
	"github.com/Getinger96/KannMind-Backend/internal/router/modules"
)

// InitModules builds every feature module from the container singletons
// and registers it with the router registry. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	pool := container.GetPGPool()
	logger := container.GetLogger()
	engine := authz.NewEngine()

	userRepo := pginfra.NewUserRepository(pool)
	boardRepo := pginfra.NewBoardRepository(pool)
	taskRepo := pginfra.NewTaskRepository(pool)
	commentRepo := pginfra.NewCommentRepository(pool)

	authSvc := application.NewAuthService(
		userRepo,
		container.GetJWT(),
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetRedis(),
		logger,
		container.GetRabbitPub(),
	)
	boardSvc := application.NewBoardService(boardRepo, userRepo, engine, logger)
	taskSvc := application.NewTaskService(taskRepo, boardRepo, engine, logger, container.GetES(), cfg.ESTasksIndex)
	commentSvc := application.NewCommentService(commentRepo, taskRepo, boardRepo, engine, logger)

	authHandler := handlers.NewAuthHandler(authSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	userHandler := handlers.NewUserHandler(authSvc, logger)
	boardHandler := handlers.NewBoardHandler(boardSvc, logger)
	taskHandler := handlers.NewTaskHandler(taskSvc, logger)
	commentHandler := handlers.NewCommentHandler(commentSvc, logger)

	r.Add(modules.NewAuthModule(authHandler, userHandler, container.GetJWT()))
	r.Add(modules.NewBoardModule(boardHandler, container.GetJWT()))
	r.Add(modules.NewTaskModule(taskHandler, commentHandler, container.GetJWT()))
}
