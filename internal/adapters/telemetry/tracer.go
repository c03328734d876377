package telemetry

import (
	"context"
	"fmt"

	"github.com/iconplus/catalog/internal/adapters/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

type Tracer struct {
	provider *sdktrace.TracerProvider
}

// NewTracer installs the global propagator and tracer provider. With
// tracing disabled it returns a Tracer whose Shutdown is a no-op and leaves
// the global no-op provider in place.
func NewTracer(ctx context.Context, cfg config.TracingConfig, serviceName string) (*Tracer, error) {
	// Incoming trace headers are honored even when this process exports
	// nothing, so downstream logs still carry the caller's trace id.
	otel.SetTextMapPropagator(Propagator())
	if !cfg.Enabled {
		return &Tracer{}, nil
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating trace exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SamplerRatio))),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(provider)

	return &Tracer{provider: provider}, nil
}

func (t *Tracer) Enabled() bool {
	return t.provider != nil
}

func (t *Tracer) Shutdown(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}
	if err := t.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down tracer provider: %w", err)
	}
	return nil
}
