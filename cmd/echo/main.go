package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iconplus/catalog/internal/adapters/config"
	"github.com/iconplus/catalog/internal/adapters/echoapi"
	"github.com/iconplus/catalog/internal/app"
	"github.com/iconplus/catalog/internal/core/logger"
)

func main() {
	cfg := config.NewConfig("catalog-echo")
	// the gin deployment owns 8080
	if _, ok := os.LookupEnv("HTTP_PORT"); !ok {
		cfg.HTTP.Port = "8081"
	}
	if err := logger.Initialize(cfg.Logger.Endpoint, cfg.Logger.ServiceName, logger.ParseLevel(cfg.Logger.Level), cfg.Logger.IsProduction); err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger: "+err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, "echo")
	if err != nil {
		logger.Fatal(ctx, "Failed to start catalog", err, nil)
		os.Exit(1)
	}

	server := echoapi.NewServer(application.Catalog)
	if application.RateLimiter != nil {
		server.WithRateLimit(application.RateLimiter, cfg.RateLimit)
	}
	if application.Metrics != nil {
		server.WithMetrics(application.Metrics, cfg.Metrics.Path)
	}

	logger.Info(ctx, "Starting HTTP server", map[string]any{"addr": cfg.HTTP.Addr(), "store": cfg.Store.Driver})
	serveErr := server.ListenAndServe(ctx, cfg.HTTP)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := application.Close(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "Failed to release resources", err, nil)
	}
	if serveErr != nil {
		logger.Error(shutdownCtx, "HTTP server stopped", serveErr, nil)
	}
	if err := logger.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintln(os.Stderr, "logger shutdown error: "+err.Error())
	}
	if serveErr != nil {
		os.Exit(1)
	}
}
