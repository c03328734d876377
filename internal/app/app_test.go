package app_test

import (
	"context"
	"testing"

	"github.com/iconplus/catalog/internal/adapters/config"
	"github.com/iconplus/catalog/internal/app"
	"github.com/iconplus/catalog/internal/core/service"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Store:   config.StoreConfig{Driver: config.DriverMemory, SeedOnStart: true},
		Logger:  config.LoggerConfig{ServiceName: "catalog-test"},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

func TestNew_MemorySeeded(t *testing.T) {
	ctx := context.Background()

	a, err := app.New(ctx, memoryConfig(), "gin")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer a.Close(ctx)

	result := a.Catalog.ListProducts(ctx)
	if result.Status != service.StatusOK {
		t.Fatalf("expected StatusOK, got %s", result.Status)
	}
	if *result.Envelope.Count != 5 {
		t.Fatalf("expected 5 seeded products, got %d", *result.Envelope.Count)
	}
	if a.Metrics == nil {
		t.Fatal("expected metrics recorder")
	}
	if a.RateLimiter != nil {
		t.Fatal("expected no rate limiter when disabled")
	}
}

func TestNew_SeedIsIdempotent(t *testing.T) {
	ctx := context.Background()

	a, err := app.New(ctx, memoryConfig(), "echo")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer a.Close(ctx)

	inserted, err := a.Seed(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if inserted != 0 {
		t.Fatalf("expected second seed to insert nothing, got %d", inserted)
	}
}

func TestNew_NoSeed(t *testing.T) {
	ctx := context.Background()
	cfg := memoryConfig()
	cfg.Store.SeedOnStart = false
	cfg.Metrics.Enabled = false

	a, err := app.New(ctx, cfg, "gin")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer a.Close(ctx)

	if count := *a.Catalog.ListProducts(ctx).Envelope.Count; count != 0 {
		t.Fatalf("expected empty catalog, got %d", count)
	}
	if a.Metrics != nil {
		t.Fatal("expected no metrics recorder when disabled")
	}
}

func TestNew_RejectsUnknownDriver(t *testing.T) {
	cfg := memoryConfig()
	cfg.Store.Driver = "oracle"

	if _, err := app.New(context.Background(), cfg, "gin"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
