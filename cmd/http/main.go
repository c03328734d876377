package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iconplus/catalog/internal/adapters/config"
	"github.com/iconplus/catalog/internal/adapters/http"
	"github.com/iconplus/catalog/internal/adapters/http/controllers"
	"github.com/iconplus/catalog/internal/app"
	"github.com/iconplus/catalog/internal/core/logger"
)

// @title       Product Catalog API
// @version     1.0
// @description Read-only product catalog

// @host     localhost:8080
// @BasePath /

//go:generate swag init -d ../.. -g cmd/http/main.go -o ../../docs --parseInternal

func main() {
	// initialize config and logger
	cfg := config.NewConfig("catalog-gin")
	if err := logger.Initialize(cfg.Logger.Endpoint, cfg.Logger.ServiceName, logger.ParseLevel(cfg.Logger.Level), cfg.Logger.IsProduction); err != nil {
		// logger not available yet, fall back to stderr
		fmt.Fprintln(os.Stderr, "failed to initialize logger: "+err.Error())
		os.Exit(1)
	}
	if cfg.Logger.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// cancellable context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// store, seed, metrics, rate limiter
	application, err := app.New(ctx, cfg, "gin")
	if err != nil {
		logger.Fatal(ctx, "Failed to start catalog", err, nil)
		os.Exit(1)
	}

	// controllers and router
	router := http.NewRouter(
		controllers.NewInfoController(),
		controllers.NewHealthController(),
		controllers.NewProductController(application.Catalog),
	)
	if application.RateLimiter != nil {
		router.WithRateLimit(application.RateLimiter, cfg.RateLimit)
	}
	if application.Metrics != nil {
		router.WithMetrics(application.Metrics, cfg.Metrics.Path)
	}

	// graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info(ctx, "Received shutdown signal", map[string]any{"signal": sig.String()})
		cancel()
	}()

	logger.Info(ctx, "Starting HTTP server", map[string]any{"addr": cfg.HTTP.Addr(), "store": cfg.Store.Driver})
	serveErr := router.ListenAndServe(ctx, cfg.HTTP)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := application.Close(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "Failed to release resources", err, nil)
	}
	if serveErr != nil {
		logger.Fatal(shutdownCtx, "Failed to start HTTP server", serveErr, nil)
	}
	if err := logger.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintln(os.Stderr, "logger shutdown error: "+err.Error())
	}
	if serveErr != nil {
		os.Exit(1)
	}
}
