// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package search implements the character search page.

It is organised in three layers:

  - [Controller] issues one upstream search and classifies the result.
  - [Reduce] is the pure state machine of the page: actions in, new state and effects out.
  - [Session] owns one page's state on a single goroutine and executes effects
    (debouncing, fetching, address-bar updates, rendering).
*/
package search

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taibuivan/chardex/internal/character"
	"github.com/taibuivan/chardex/internal/platform/apperr"
	"github.com/taibuivan/chardex/internal/platform/metrics"
)

// Messages shown on the search page.
const (
	MsgNoResults   = "No characters found."
	MsgFetchFailed = "Error fetching Disney characters. Please try again."
)

// Status is the lifecycle state of the result list.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusResults
	StatusEmpty
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusResults:
		return "results"
	case StatusEmpty:
		return "empty"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Source is the upstream port the controller searches through.
type Source interface {
	Search(ctx context.Context, q character.Query) (character.Page, error)
}

// Outcome is the classified result of one search.
type Outcome struct {
	Status     Status
	Characters []character.Character
	TotalPages int
	Message    string
	Err        error
}

// Controller performs character searches.
//
// It does not coalesce concurrent calls; ordering is the caller's concern.
type Controller struct {
	source  Source
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewController(source Source, logger *slog.Logger, m *metrics.Metrics) *Controller {
	return &Controller{source: source, logger: logger, metrics: m}
}

// Search issues exactly one request and classifies it.
//
// Failures are logged once and collapse into a single user-facing message.
func (controller *Controller) Search(ctx context.Context, term string, page, pageSize int) Outcome {
	result, err := controller.source.Search(ctx, character.Query{Name: term, Page: page, PageSize: pageSize})

	var outcome Outcome
	switch {
	case apperr.IsAppError(err):
		// Rejected before any request, e.g. a term longer than any name.
		controller.logger.DebugContext(ctx, "character_search_rejected",
			slog.String("term", term),
			slog.Any("error", err),
		)
		outcome = Outcome{Status: StatusEmpty, TotalPages: 1, Message: MsgNoResults}

	case err != nil:
		if !errors.Is(err, context.Canceled) {
			controller.logger.ErrorContext(ctx, "character_search_error",
				slog.String("term", term),
				slog.Int("page", page),
				slog.String("reason", character.Message(err)),
				slog.Any("error", err),
			)
		}
		outcome = Outcome{Status: StatusError, TotalPages: 1, Message: MsgFetchFailed, Err: err}

	case len(result.Characters) == 0:
		outcome = Outcome{Status: StatusEmpty, TotalPages: result.TotalPages, Message: MsgNoResults}

	default:
		outcome = Outcome{Status: StatusResults, Characters: result.Characters, TotalPages: result.TotalPages}
	}

	if outcome.TotalPages < 1 {
		outcome.TotalPages = 1
	}

	controller.metrics.SearchOutcome(outcome.Status.String())
	return outcome
}

// Results is the display state of the result list.
//
// Methods return a new value so the page reducer stays pure.
type Results struct {
	Status     Status
	Characters []character.Character
	Message    string
}

// Begin marks a search as in flight and clears any message.
// The previous list is kept but hidden while loading.
func (r Results) Begin() Results {
	r.Status = StatusLoading
	r.Message = ""
	return r
}

// Apply stores a terminal outcome. The list always reflects the latest outcome.
func (r Results) Apply(outcome Outcome) Results {
	return Results{
		Status:     outcome.Status,
		Characters: outcome.Characters,
		Message:    outcome.Message,
	}
}

// Reset clears the list and any message.
func (r Results) Reset() Results {
	return Results{Status: StatusIdle}
}

// Loading reports whether a search is in flight.
func (r Results) Loading() bool {
	return r.Status == StatusLoading
}
