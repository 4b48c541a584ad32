// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/taibuivan/chardex/internal/api"
	"github.com/taibuivan/chardex/internal/character"
	"github.com/taibuivan/chardex/internal/platform/constants"
	"github.com/taibuivan/chardex/internal/platform/metrics"
	"github.com/taibuivan/chardex/internal/platform/telemetry"
	"github.com/taibuivan/chardex/internal/search"
	"github.com/taibuivan/chardex/internal/web"
)

func serveCmd(opts *globalOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Long: `Run the HTTP server.

Startup sequence:

  1. Initialize structured logger.
  2. Load configuration from environment variables and flags.
  3. Initialize tracing.
  4. Register metrics.
  5. Wire the character client, search controller and pages.
  6. Start HTTP server with graceful shutdown.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			serve(opts, port)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (overrides SERVER_PORT)")

	return cmd
}

func serve(opts *globalOptions, port string) {
	// 1. Logger
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(os.Stdout, slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("[Chardex] service_initializing")

	// 2. Configuration
	cfg, err := opts.load()
	must(log, err, "load configuration")

	if port != "" {
		cfg.ServerPort = port
	}

	if cfg.Debug {
		log = newLogger(os.Stdout, slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("character_api", cfg.CharacterAPIURL),
	)

	// Root context. Cancelling it ends live sessions and background cleanup.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// 3. Tracing
	shutdownTracing, err := telemetry.Setup(rootCtx, cfg)
	must(log, err, "initialize tracing")
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()
		if terr := shutdownTracing(ctx); terr != nil {
			log.Error("tracing shutdown error", slog.Any("error", terr))
		}
	}()

	// 4. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// 5. Domain Wiring
	repo := character.NewHTTPRepository(cfg.CharacterAPIURL, cfg.UpstreamTimeout, m)
	characterService := character.NewService(repo, log)
	controller := search.NewController(characterService, log, m)

	templates, err := web.ParseTemplates()
	must(log, err, "parse templates")

	pages := web.NewHandler(characterService, controller, templates, web.Config{
		PageSize:         cfg.DefaultPageSize,
		DebounceInterval: cfg.DebounceInterval,
		EventsPerSecond:  cfg.LiveEventsPerSecond,
		EventBurst:       cfg.LiveEventBurst,
		AllowedOrigins:   cfg.AllowedOrigins(),
	}, log, m)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckCharacterAPI: characterService.Ping,
	}, log)

	// 6. HTTP Server
	server := api.NewServer(rootCtx, cfg, log, m, api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Metrics:    metrics.Handler(registry),
		Pages:      pages,
		Characters: character.NewHandler(characterService),
	})

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	err = server.Shutdown(shutdownTimeout)

	// Live sessions hold hijacked connections the server does not wait for.
	rootCancel()

	if err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}
