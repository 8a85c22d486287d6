package main

import (
	"quizcrafter/config"
	"quizcrafter/database"
	"quizcrafter/handlers"
	"quizcrafter/logger"
	"quizcrafter/middleware"
	"quizcrafter/routes"
	"quizcrafter/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger.Init(cfg.Server.Mode, cfg.Log.Dir)
	defer logger.Log.Sync()

	// Initialize database
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Log.Fatal("failed to open database", zap.Error(err))
	}

	// The app must not run against a partially migrated schema.
	if err := database.Migrate(db); err != nil {
		logger.Log.Fatal("failed to migrate database", zap.Error(err))
	}

	// Initialize services
	quizService := services.NewQuizService(db)
	resultService := services.NewResultService(db)

	// Initialize handlers
	quizHandler := handlers.NewQuizHandler(quizService)
	resultHandler := handlers.NewResultHandler(resultService)

	// Setup Gin router
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, quizHandler, resultHandler, Version)

	// Start server; bound to localhost, this is a local desktop backend.
	addr := "127.0.0.1:" + cfg.Server.Port
	logger.Log.Info("server starting", zap.String("addr", addr), zap.String("db", cfg.Database.Path))
	if err := router.Run(addr); err != nil {
		logger.Log.Fatal("failed to start server", zap.Error(err))
	}
}
