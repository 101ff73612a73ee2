// Package otel wires OpenTelemetry trace export for tricklens commands.
package otel

import (
	"context"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Environment variables controlling trace export.
const (
	envEnabled  = "TRICKLENS_OTEL_ENABLED"
	envEndpoint = "TRICKLENS_OTEL_ENDPOINT"
)

// Setup installs a global tracer provider exporting OTLP over HTTP to
// the endpoint named by TRICKLENS_OTEL_ENDPOINT. When the endpoint is
// unset, or TRICKLENS_OTEL_ENABLED is "false", no provider is
// registered and the returned shutdown is a no-op.
//
// Callers defer the returned shutdown to flush pending spans.
func Setup(ctx context.Context, serviceName string) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	endpoint, ok := exportEndpoint()
	if !ok {
		return noop, nil
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return noop, err
	}
	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp.Shutdown, nil
}

// exportEndpoint reports the configured OTLP endpoint, if tracing is on.
func exportEndpoint() (string, bool) {
	if strings.EqualFold(os.Getenv(envEnabled), "false") {
		return "", false
	}
	endpoint := strings.TrimSpace(os.Getenv(envEndpoint))
	if endpoint == "" {
		return "", false
	}
	return endpoint, true
}
