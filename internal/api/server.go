// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/chardex are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/chardex/internal/character"
	"github.com/taibuivan/chardex/internal/platform/config"
	"github.com/taibuivan/chardex/internal/platform/constants"
	"github.com/taibuivan/chardex/internal/platform/metrics"
	"github.com/taibuivan/chardex/internal/platform/middleware"
	"github.com/taibuivan/chardex/internal/web"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in the serve command with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. It returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when the character API answers.
	Readiness http.HandlerFunc

	// Metrics exposes Prometheus metrics.
	Metrics http.Handler

	// Pages serves the search and detail pages and the live socket.
	Pages *web.Handler

	// Characters serves the read-only JSON API.
	Characters *character.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups. Every request context derives from ctx.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, m *metrics.Metrics, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.Trace())
	r.Use(middleware.StructuredLogger(log, m))
	r.Use(middleware.RateLimit(ctx, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.PanicRecovery())
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Handle("/metrics", h.Metrics)

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.CORS(cfg))
		api.Use(chimw.Timeout(constants.GlobalRequestTimeout))
		api.Route("/characters", h.Characters.RegisterRoutes)
	})

	// # Pages
	// The live socket is long-lived and is exempt from the request timeout.
	r.Group(func(pages chi.Router) {
		pages.Use(timeoutExcept(constants.GlobalRequestTimeout, "/live"))
		h.Pages.RegisterRoutes(pages)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
			BaseContext:       func(net.Listener) context.Context { return ctx },
		},
	}
}

// timeoutExcept applies chi's Timeout middleware to every path but skip.
func timeoutExcept(timeout time.Duration, skip string) func(http.Handler) http.Handler {
	withTimeout := chimw.Timeout(timeout)
	return func(next http.Handler) http.Handler {
		limited := withTimeout(next)
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path == skip {
				next.ServeHTTP(writer, request)
				return
			}
			limited.ServeHTTP(writer, request)
		})
	}
}

// Handler returns the root handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
// Hijacked live connections are not tracked by the server; they end when
// the context passed to [NewServer] is cancelled.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
