// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ogtriplek/tyre-storefront/internal/bootstrap"
	"github.com/ogtriplek/tyre-storefront/internal/config"
	"github.com/ogtriplek/tyre-storefront/internal/domain/storefront"
	"github.com/ogtriplek/tyre-storefront/internal/infrastructure/database/redis"
	"github.com/ogtriplek/tyre-storefront/internal/interfaces/http"
	"github.com/ogtriplek/tyre-storefront/internal/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logr := logger.New(cfg.Logging)
	logr.Infof("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load the catalog
	snap, resources, err := bootstrap.LoadCatalog(ctx, cfg, logr)
	if err != nil {
		logr.WithError(err).Fatal("Failed to load catalog")
	}
	defer resources.Close()

	checks := map[string]http.HealthChecker{}
	if resources.DB != nil {
		checks["database"] = resources.DB
	}

	opts := []storefront.Option{storefront.WithNoticeDuration(cfg.Cart.NoticeDuration)}
	serverOpts := http.Options{
		Catalog: snap,
		Checks:  checks,
		Logger:  logr,
	}

	// Session store
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		redisClient, err := redis.NewConnection(cfg, logr)
		if err != nil {
			logr.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer redisClient.Close()

		checks["redis"] = redisClient
		serverOpts.Redis = redisClient.GetClient()
		serverOpts.Store = redis.NewSessionStore(redisClient.GetClient(), snap, cfg.Session.TTL, logr, opts...)

	default:
		store := storefront.NewMemoryStore(snap, cfg.Session.TTL, opts...)
		defer store.Close()

		go store.Run(ctx, time.Minute)
		serverOpts.Store = store
	}

	logr.Info("✅ All systems operational!")

	// Create and start HTTP server
	server := http.NewServer(cfg, serverOpts)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// Wait for interrupt signal to gracefully shutdown
	select {
	case err := <-errCh:
		if err != nil {
			logr.WithError(err).Error("HTTP server failed")
		}
		return
	case <-ctx.Done():
	}

	logr.Info("👋 Shutting down gracefully...")

	// Give server 30 seconds to shutdown gracefully
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		logr.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	logr.Info("✅ Server shutdown completed")
}
