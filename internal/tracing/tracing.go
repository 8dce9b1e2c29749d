package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const instrumentation = "github.com/vietanh2810/eventdesk"

var traceProvider *sdktrace.TracerProvider

// Tracer returns the process tracer. It is a no-op until Init installs an
// exporter.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentation)
}

// Init exports spans over OTLP/HTTP when endpoint is set; otherwise tracing
// stays a no-op.
func Init(ctx context.Context, endpoint, serviceName string) error {
	if endpoint == "" {
		zap.L().Debug("tracing disabled, no endpoint configured")
		return nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return fmt.Errorf("otlptracehttp.New -> %w", err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
	)

	traceProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(traceProvider)

	zap.L().Info("tracing initialized", zap.String("endpoint", endpoint))

	return nil
}

func Shutdown(ctx context.Context) {
	if traceProvider == nil {
		return
	}
	if err := traceProvider.Shutdown(ctx); err != nil {
		zap.L().Warn("tracer shutdown failed", zap.Error(err))
	}
}
