// Package app assembles the catalog from configuration. Both HTTP binaries
// and the CLI seed command start from New.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/iconplus/catalog/internal/adapters/config"
	"github.com/iconplus/catalog/internal/adapters/metrics"
	"github.com/iconplus/catalog/internal/adapters/redis"
	"github.com/iconplus/catalog/internal/adapters/telemetry"
	"github.com/iconplus/catalog/internal/core/domain"
	"github.com/iconplus/catalog/internal/core/logger"
	"github.com/iconplus/catalog/internal/core/port"
	"github.com/iconplus/catalog/internal/core/service"
)

type Application struct {
	Config      *config.Config
	Store       port.CatalogStore
	Catalog     *service.CatalogService
	Metrics     *metrics.Recorder
	RateLimiter port.RateLimiterPort

	tracer  *telemetry.Tracer
	closers []func() error
}

// New opens the store, seeds it when configured to, and builds the catalog
// service with its optional metrics and rate limiter. deployment labels the
// metrics of the calling binary.
func New(ctx context.Context, cfg *config.Config, deployment string) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Application{Config: cfg}

	tracer, err := telemetry.NewTracer(ctx, cfg.Tracing, cfg.Logger.ServiceName)
	if err != nil {
		return nil, err
	}
	a.tracer = tracer

	store, closeStore, err := OpenStore(ctx, cfg)
	if err != nil {
		_ = a.Close(ctx)
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	a.Store = store
	a.closers = append(a.closers, closeStore)

	if cfg.Store.SeedOnStart {
		if _, err := a.Seed(ctx); err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
	}

	var observer service.LookupObserver
	if cfg.Metrics.Enabled {
		a.Metrics = metrics.NewRecorder(deployment)
		observer = a.Metrics
	}

	if cfg.RateLimit.Enabled {
		redisClient, err := redis.NewConnection(ctx, cfg.Redis)
		if err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
		a.closers = append(a.closers, redisClient.Close)
		a.RateLimiter = redis.NewRateLimiter(redisClient)
		logger.Info(ctx, "Connected to Redis", map[string]any{"limit": cfg.RateLimit.Limit, "window": cfg.RateLimit.Window.String()})
	}

	a.Catalog = service.NewCatalogService(a.Store, observer)
	return a, nil
}

// Seed loads the sample products into an empty store.
func (a *Application) Seed(ctx context.Context) (int, error) {
	inserted, err := service.NewSeedService(a.Store).SeedIfEmpty(ctx, domain.SampleProducts())
	if err != nil {
		return 0, fmt.Errorf("seed catalog: %w", err)
	}
	if inserted > 0 {
		logger.Info(ctx, "Seeded catalog", map[string]any{"inserted": inserted})
	}
	return inserted, nil
}

func (a *Application) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
