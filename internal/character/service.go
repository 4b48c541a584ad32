// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package character

import (
	"context"
	"log/slog"
	"math"

	"github.com/taibuivan/chardex/internal/platform/validate"
)

// MaxNameLength bounds a search term.
const MaxNameLength = 200

// Service validates input and logs around the [Repository].
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Search returns one page of characters matching q.Name. A blank name is a
// validation error; the remote API would answer it with every character.
func (service *Service) Search(ctx context.Context, q Query) (Page, error) {
	validator := &validate.Validator{}

	validator.
		Required(FieldName, q.Name).
		MaxLen(FieldName, q.Name, MaxNameLength).
		Range(FieldPage, q.Page, 1, math.MaxInt32).
		Range(FieldPageSize, q.PageSize, 1, math.MaxInt32)

	if err := validator.Err(); err != nil {
		return Page{}, err
	}

	page, err := service.repo.Search(ctx, q)
	if err != nil {
		service.logger.WarnContext(ctx, "character_search_failed",
			slog.String("name", q.Name),
			slog.Int("page", q.Page),
			slog.Any("error", err),
		)
		return Page{}, err
	}

	service.logger.DebugContext(ctx, "character_search",
		slog.String("name", q.Name),
		slog.Int("page", q.Page),
		slog.Int("results", len(page.Characters)),
		slog.Int("total_pages", page.TotalPages),
	)
	return page, nil
}

// Get returns a single character. Identifiers below 1 are never requested.
func (service *Service) Get(ctx context.Context, id int) (Character, error) {
	if id < 1 {
		return Character{}, ErrNotFound
	}

	character, err := service.repo.Get(ctx, id)
	if err != nil {
		service.logger.WarnContext(ctx, "character_get_failed",
			slog.Int("character_id", id),
			slog.Any("error", err),
		)
		return Character{}, err
	}
	return character, nil
}

// Ping reports whether the remote API is reachable.
func (service *Service) Ping(ctx context.Context) error {
	return service.repo.Ping(ctx)
}
