package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/salespulse/salespulse-go/internal/api"
	"github.com/salespulse/salespulse-go/internal/cache"
	"github.com/salespulse/salespulse-go/internal/config"
	"github.com/salespulse/salespulse-go/internal/database"
	"github.com/salespulse/salespulse-go/internal/middleware"
	"github.com/salespulse/salespulse-go/internal/services"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	ctx := context.Background()

	// Postgres and Redis are optional collaborators. Snapshot persistence
	// and series caching switch off when they are absent; the dashboard
	// keeps serving generated data either way.
	var db *database.PostgresDB
	if cfg.Database.Enabled {
		db, err = database.NewPostgresConnection(cfg.Database, logger)
		if err != nil {
			logger.WithError(err).Warn("Database unavailable, snapshot persistence disabled")
			db = nil
		} else {
			defer db.Close()
		}
	}

	var redis *database.RedisClient
	if cfg.Redis.Enabled {
		redis, err = database.NewRedisConnection(cfg.Redis, logger)
		if err != nil {
			logger.WithError(err).Warn("Redis unavailable, series caching disabled")
			redis = nil
		} else {
			defer redis.Close()
		}
	}

	var seriesCache *cache.RedisSeriesCache
	if redis != nil {
		seriesCache = cache.NewRedisSeriesCache(redis.Client, cfg.Cache.SeriesTTLDuration())
	}

	var snapshotRepo *database.SnapshotRepository
	if db != nil {
		snapshotRepo = database.NewSnapshotRepository(db.Pool)
		if err := snapshotRepo.EnsureSchema(ctx); err != nil {
			logger.WithError(err).Fatal("Failed to ensure snapshot schema")
		}
	}

	salesService := services.NewSalesService(cfg, seriesCache, logger)
	forecastService := services.NewForecastService(cfg, salesService, snapshotRepo, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(middleware.RequestLogger(logger))
	api.SetupRoutes(router, db, redis, salesService, forecastService)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Give outstanding requests a deadline for completion
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	logger.Info("Server exited")
}
