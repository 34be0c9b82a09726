// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"smartride-portal/cmd"
	"smartride-portal/internal/cache"
	"smartride-portal/internal/data/repository"
	"smartride-portal/internal/gateway"
	"smartride-portal/internal/listview"
	"smartride-portal/internal/wire"
	"smartride-portal/pkg/database"
	"smartride-portal/pkg/utils"

	"go.uber.org/zap"
)

const sessionCleanupInterval = time.Hour

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("backend", config.Backend.BaseURL),
		zap.Bool("debug", config.App.Debug),
	)

	// Schema
	if config.Database.RunMigrations {
		if err := database.Migrate(config.Database, logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Backend client
	gw, err := gateway.NewClient(config.Backend, logger)
	if err != nil {
		logger.Fatal("Failed to create backend client", zap.Error(err))
	}

	// Profile cache: shared through Redis when configured
	var profiles cache.Cache[gateway.UserProfile] = cache.NewMemory[gateway.UserProfile]()
	if config.Redis.URL != "" {
		client, err := cache.NewRedisClient(ctx, config.Redis.URL)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer client.Close()
		profiles = cache.NewRedis[gateway.UserProfile](client, "smartride:profile:", logger)
		logger.Info("Redis profile cache enabled")
	}

	// Wire all dependencies
	app := wire.Wiring(repos, gw, profiles, config, logger)

	// Background work
	app.Service.Admin.StartSweeper(ctx)
	defer app.Service.Admin.StopSweeper()

	app.Service.Auth.CleanExpired(ctx)
	cleanup := listview.NewPoller(sessionCleanupInterval, app.Service.Auth.CleanExpired)
	cleanup.Start(ctx)
	defer cleanup.Stop()

	// Start server
	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}

	// Requests are drained; stop the pollers of every open admin dashboard.
	app.Service.Admin.TeardownAll()
	logger.Info("Server stopped")
}
