package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-management/internal/config"
	"hospital-management/internal/database"
	"hospital-management/internal/logger"
	"hospital-management/internal/server"
	"hospital-management/internal/session"
	"hospital-management/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()

	// 2. Setup logging
	zlog, err := logger.New(cfg.Log.Level, cfg.IsRelease())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()
	zlog.Info("configuration loaded", zap.String("db_driver", cfg.Database.Driver),
		zap.String("conflict_policy", cfg.Appointments.ConflictPolicy))

	// 3. Initialize session token signing
	utils.InitJWT(cfg.Session.Secret, cfg.Session.TTL)

	// 4. Initialize database connection and schema
	db, err := database.Connect(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zlog.Fatal("failed to migrate database", zap.Error(err))
	}

	// 5. Initialize session store
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient, err := session.NewRedisClient(ctx, cfg.Redis.URL)
	if err != nil {
		zlog.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()
	sessions := session.NewStore(redisClient, cfg.Session.TTL)

	// 6. Build the application
	gin.SetMode(cfg.Server.GinMode)
	srv := server.New(cfg, db, sessions, zlog)

	// 7. Start background worker in goroutine
	go srv.Worker.Start(ctx)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           srv.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 8. Setup graceful shutdown
	go func() {
		zlog.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down server")

	// Cancel background worker context
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
	}
	zlog.Info("server exited")
}
