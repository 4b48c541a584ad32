// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/chardex/internal/platform/constants"
	"github.com/taibuivan/chardex/internal/platform/respond"
)

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
type HealthDependencies struct {
	// CheckCharacterAPI performs a minimal request against the remote character API.
	CheckCharacterAPI func(ctx context.Context) error
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health.
func (handler *healthHandler) liveness(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, map[string]string{
		constants.FieldStatus:  "ok",
		constants.FieldVersion: constants.AppVersion,
	})
}

// readiness handles GET /ready.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	results := make([]checkResult, 0, 1)
	isSystemReady := true

	if handler.dependencies.CheckCharacterAPI != nil {
		ctx, cancel := context.WithTimeout(request.Context(), constants.HealthCheckTimeout)
		defer cancel()

		result := checkResult{Name: "character_api", IsOK: true}
		if err := handler.dependencies.CheckCharacterAPI(ctx); err != nil {
			result.IsOK = false
			result.Error = err.Error()
			isSystemReady = false
			handler.logger.Error("readiness_check_failed", slog.String("dependency", result.Name), slog.Any("error", err))
		}
		results = append(results, result)
	}

	body := map[string]any{
		constants.FieldStatus: "ready",
		constants.FieldChecks: results,
	}

	if !isSystemReady {
		body[constants.FieldStatus] = "degraded"
		respond.JSON(writer, http.StatusServiceUnavailable, respond.SuccessEnvelope{Data: body})
		return
	}

	respond.OK(writer, body)
}
