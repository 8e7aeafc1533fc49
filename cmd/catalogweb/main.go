package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"course-catalog/internal/app"
	"course-catalog/internal/config"
	"course-catalog/internal/handlers"
	"course-catalog/internal/logger"
	"course-catalog/internal/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting course catalog server")

	a, err := app.New(cfg, logger.Logger)
	if err != nil {
		logger.Logger.Fatal("Invalid configuration", zap.Error(err))
	}

	// initial load; a failed load still leaves a renderable catalog
	loadCtx, loadCancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout+5*time.Second)
	status := a.Load(loadCtx)
	loadCancel()
	logger.Logger.Info("Catalog ready",
		zap.String("state", string(status.State)),
		zap.Int("courses", status.Count),
	)

	if cfg.ReloadSchedule != "" {
		stopReloads, err := a.ScheduleReloads(cfg.ReloadSchedule, cfg.HTTPTimeout+5*time.Second)
		if err != nil {
			logger.Logger.Fatal("Invalid reload schedule", zap.Error(err))
		}
		defer stopReloads()
		logger.Logger.Info("Catalog reloads scheduled", zap.String("schedule", cfg.ReloadSchedule))
	}

	catalogHandler := handlers.NewCatalogHandler(a.Store, a.Tracker, a.Embed, logger.Logger)

	r := chi.NewRouter()
	r.Use(middlewares.RequestID)
	r.Use(middlewares.Logger(logger.Logger))
	r.Use(middlewares.Recovery(logger.Logger))
	r.Use(middlewares.CORS(cfg.CORSAllowedOrigins))
	r.Use(httprate.LimitByIP(cfg.RateLimitPerMinute, time.Minute))

	catalogHandler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

