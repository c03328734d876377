package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/iconplus/catalog/internal/adapters/config"
	"github.com/iconplus/catalog/internal/adapters/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestNewTracer_Disabled(t *testing.T) {
	otel.SetTracerProvider(noop.NewTracerProvider())

	tracer, err := telemetry.NewTracer(context.Background(), config.TracingConfig{Enabled: false}, "catalog-test")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if tracer.Enabled() {
		t.Fatal("expected tracer to be disabled")
	}
	if _, ok := otel.GetTracerProvider().(noop.TracerProvider); !ok {
		t.Fatalf("expected global provider to stay no-op, got %T", otel.GetTracerProvider())
	}
	if err := tracer.Shutdown(context.Background()); err != nil {
		t.Fatalf("expected no error on shutdown, got %v", err)
	}
}

func TestNewTracer_Enabled(t *testing.T) {
	previous := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	// The gRPC exporter dials lazily, so no collector is needed here.
	tracer, err := telemetry.NewTracer(context.Background(), config.TracingConfig{
		Enabled:      true,
		Endpoint:     "127.0.0.1:4317",
		SamplerRatio: 1,
	}, "catalog-test")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !tracer.Enabled() {
		t.Fatal("expected tracer to be enabled")
	}

	_, span := otel.Tracer("catalog-test").Start(context.Background(), "sampled")
	if !span.SpanContext().IsSampled() {
		t.Fatal("expected span to be sampled at ratio 1")
	}
	span.End()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = tracer.Shutdown(ctx)
}
