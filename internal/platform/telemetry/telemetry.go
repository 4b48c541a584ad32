// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package telemetry configures OpenTelemetry tracing.

Tracing is opt-in: when [config.Config.OTelEndpoint] is empty or tracing is
disabled, [Setup] returns a no-op shutdown and leaves the global provider
untouched, so spans started through [Tracer] are discarded.
*/
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/taibuivan/chardex/internal/platform/config"
	"github.com/taibuivan/chardex/internal/platform/constants"
)

// ShutdownFunc flushes pending spans.
type ShutdownFunc func(context.Context) error

// Setup installs a batching OTLP/HTTP tracer provider.
//
// The returned shutdown function should be deferred by the caller.
func Setup(ctx context.Context, cfg *config.Config) (ShutdownFunc, error) {
	noop := func(context.Context) error { return nil }

	if !cfg.OTelEnabled || cfg.OTelEndpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.OTelEndpoint))
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(constants.AppName),
			semconv.ServiceVersion(constants.AppVersion),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
	)
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Tracer returns a named tracer from the global provider.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(constants.AppName + "/" + name)
}
