// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/chardex/internal/platform/constants"
	"github.com/taibuivan/chardex/internal/platform/ctxutil"
	"github.com/taibuivan/chardex/internal/platform/metrics"
	"github.com/taibuivan/chardex/internal/platform/middleware"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type stubConfig struct {
	dev     bool
	origins []string
}

func (c stubConfig) IsDevelopment() bool       { return c.dev }
func (c stubConfig) AllowedOrigins() []string { return c.origins }

/*
TestRequestID verifies generation and propagation of the correlation ID.
*/
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get(constants.HeaderXRequestID))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "client-id")
	handler.ServeHTTP(httptest.NewRecorder(), request)
	assert.Equal(t, "client-id", seen)
}

/*
TestStructuredLogger verifies the request logger injection and route metrics.
*/
func TestStructuredLogger(t *testing.T) {
	registry := prometheus.NewRegistry()

	router := chi.NewRouter()
	router.Use(middleware.StructuredLogger(discard, metrics.New(registry)))
	router.Get("/details/{id}", func(writer http.ResponseWriter, request *http.Request) {
		assert.NotSame(t, slog.Default(), ctxutil.GetLogger(request.Context()))
		writer.WriteHeader(http.StatusNotFound)
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/details/42", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	assert.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(`
# HELP chardex_http_requests_total Total number of HTTP requests served
# TYPE chardex_http_requests_total counter
chardex_http_requests_total{method="GET",route="/details/{id}",status="404"} 1
`), "chardex_http_requests_total"))
}

/*
TestRateLimit verifies that bursts beyond the bucket are rejected per client IP.
*/
func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx, 0.001, 2)(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	}))

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for range 3 {
		last = httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constants.HeaderXRealIP, "203.0.113.7")
		handler.ServeHTTP(last, request)
		codes = append(codes, last.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
	assert.Equal(t, "1000", last.Header().Get("Retry-After"))
	assert.Contains(t, last.Body.String(), "RATE_LIMITED")

	// Another client has its own bucket.
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRealIP, "203.0.113.8")
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

/*
TestPanicRecovery verifies that a panicking handler yields a 500 JSON error.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INTERNAL_ERROR")
}

/*
TestCORS verifies origin filtering outside development.
*/
func TestCORS(t *testing.T) {
	handler := middleware.CORS(stubConfig{origins: []string{"https://fans.example"}})(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantAllow  string
	}{
		{"allowed", http.MethodGet, "https://fans.example", http.StatusOK, "https://fans.example"},
		{"rejected", http.MethodGet, "https://evil.example", http.StatusOK, ""},
		{"preflight", http.MethodOptions, "https://fans.example", http.StatusNoContent, "https://fans.example"},
		{"no_origin", http.MethodGet, "", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(tt.method, "/api/v1/characters", nil)
			if tt.origin != "" {
				request.Header.Set(constants.HeaderOrigin, tt.origin)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantAllow, recorder.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "192.0.2.1:5555"
	assert.Equal(t, "192.0.2.1", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXForwardedFor, "198.51.100.3, 10.0.0.1")
	assert.Equal(t, "198.51.100.3", middleware.RealIP(request))
}

func TestTrace(t *testing.T) {
	called := false
	handler := middleware.Trace()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
}
