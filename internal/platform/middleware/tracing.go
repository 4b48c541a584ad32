// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/taibuivan/chardex/internal/platform/ctxutil"
	"github.com/taibuivan/chardex/internal/platform/telemetry"
)

// Trace starts a server span per request, continuing any incoming W3C trace
// context. Spans are dropped unless tracing was enabled at startup.
func Trace() func(http.Handler) http.Handler {
	tracer := telemetry.Tracer("http")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := otel.GetTextMapPropagator().Extract(request.Context(), propagation.HeaderCarrier(request.Header))

			ctx, span := tracer.Start(ctx, request.Method+" "+request.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", request.Method),
					attribute.String("url.path", request.URL.Path),
					attribute.String("request.id", ctxutil.GetRequestID(request.Context())),
				),
			)
			defer span.End()

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
