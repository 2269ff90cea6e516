package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Tracer wraps an OpenTelemetry TracerProvider together with the propagator
// used to move span context across message headers.
type Tracer struct {
	provider   *sdktrace.TracerProvider
	propagator propagation.TextMapPropagator
}

// NewClient creates a TracerProvider for cfg and installs it as the global
// provider together with the W3C trace-context and baggage propagators.
//
// When cfg.EnableExport is set, spans are batched to an OTLP/HTTP exporter.
func NewClient(cfg Config) (*Tracer, error) {
	var options []sdktrace.TracerProviderOption

	if cfg.EnableExport {
		exporter, err := otlptrace.New(context.Background(), otlptracehttp.NewClient())
		if err != nil {
			return nil, fmt.Errorf("cannot initiate otlp exporter: %w", err)
		}
		options = append(options, sdktrace.WithBatcher(exporter))
	}

	options = append(options, sdktrace.WithResource(resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("deployment.environment", cfg.AppEnv),
		attribute.String("environment", cfg.AppEnv),
	)))

	t := NewWithProvider(sdktrace.NewTracerProvider(options...))

	otel.SetTracerProvider(t.provider)
	otel.SetTextMapPropagator(t.propagator)

	return t, nil
}

// NewWithProvider wraps an existing TracerProvider without touching the
// global otel state.
func NewWithProvider(tp *sdktrace.TracerProvider) *Tracer {
	return &Tracer{
		provider: tp,
		propagator: propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	}
}

// Shutdown flushes pending spans and stops the provider.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
