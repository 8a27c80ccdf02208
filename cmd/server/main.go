package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"jobtrack/internal/api/routes"
	"jobtrack/internal/cache"
	"jobtrack/internal/config"
	"jobtrack/internal/logging"
	"jobtrack/internal/ratelimit"
	"jobtrack/internal/store"
	"jobtrack/internal/tracker"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	if err := logging.InitializeLogging(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting Jobtrack API")

	// Snapshot cache: badger on disk by default, in-memory when configured.
	var kv cache.KV
	if cfg.Cache.InMemory {
		kv = cache.NewMemoryKV()
	} else {
		badgerKV, err := cache.OpenBadgerKV(cfg.Cache.Dir)
		if err != nil {
			logger.WithError(err).Fatal("Failed to open cache store")
		}
		kv = badgerKV
	}
	snapshots := cache.New(kv, cfg.Cache.TTL, logger)
	defer snapshots.Close()

	// Authoritative store
	st := store.NewRedisStore(cfg)
	defer st.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), cfg.Redis.Timeout)
	if err := st.Ping(pingCtx); err != nil {
		logger.WithError(err).Warn("Store unreachable at startup, continuing with cached reads")
	}
	cancelPing()

	// Orchestration service
	svc := tracker.NewService(tracker.Options{
		Store:       st,
		Cache:       snapshots,
		Limiter:     ratelimit.NewLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window),
		Logger:      logger,
		PageSize:    cfg.Pagination.PageSize,
		MaxPageSize: cfg.Pagination.MaxPageSize,
	})

	// Keep the cache warm from store mutation events.
	runCtx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()
	go func() {
		if err := svc.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.WithError(err).Warn("Snapshot subscription ended")
		}
	}()

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Setup routes
	routes.SetupRoutes(e, cfg, svc)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cancelRun()

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("Error shutting down server")
		}

		logger.Info("Server shutdown complete")
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.WithField("address", address).Info("Server starting")

	if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
