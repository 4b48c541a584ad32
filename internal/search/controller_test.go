// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/chardex/internal/character"
	"github.com/taibuivan/chardex/internal/platform/apperr"
	"github.com/taibuivan/chardex/internal/search"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// stubSource answers searches from a function and records every query.
type stubSource struct {
	mu      sync.Mutex
	queries []character.Query
	answer  func(ctx context.Context, q character.Query) (character.Page, error)
}

func (s *stubSource) Search(ctx context.Context, q character.Query) (character.Page, error) {
	s.mu.Lock()
	s.queries = append(s.queries, q)
	s.mu.Unlock()
	return s.answer(ctx, q)
}

func (s *stubSource) Queries() []character.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]character.Query(nil), s.queries...)
}

func pageOf(totalPages int, names ...string) character.Page {
	page := character.Page{TotalPages: totalPages}
	for i, name := range names {
		page.Characters = append(page.Characters, character.Character{ID: i + 1, Name: name})
	}
	page.Count = len(names)
	return page
}

/*
TestController_Search verifies outcome classification.
*/
func TestController_Search(t *testing.T) {
	tests := []struct {
		name        string
		page        character.Page
		err         error
		wantStatus  search.Status
		wantMessage string
		wantPages   int
	}{
		{"results", pageOf(3, "Mickey Mouse"), nil, search.StatusResults, "", 3},
		{"empty", pageOf(0), nil, search.StatusEmpty, search.MsgNoResults, 1},
		{"error", character.Page{}, &character.HTTPError{StatusCode: 500}, search.StatusError, search.MsgFetchFailed, 1},
		{"network", character.Page{}, character.ErrNetwork, search.StatusError, search.MsgFetchFailed, 1},
		{"rejected_term", character.Page{}, apperr.ValidationError("Validation failed"), search.StatusEmpty, search.MsgNoResults, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &stubSource{answer: func(context.Context, character.Query) (character.Page, error) {
				return tt.page, tt.err
			}}
			controller := search.NewController(source, discard, nil)

			outcome := controller.Search(context.Background(), "mickey", 2, 50)

			assert.Equal(t, tt.wantStatus, outcome.Status)
			assert.Equal(t, tt.wantMessage, outcome.Message)
			assert.Equal(t, tt.wantPages, outcome.TotalPages)
			assert.Equal(t, []character.Query{{Name: "mickey", Page: 2, PageSize: 50}}, source.Queries())
		})
	}
}

/*
TestResults_Lifecycle verifies Begin, Apply and Reset.
*/
func TestResults_Lifecycle(t *testing.T) {
	var results search.Results
	assert.Equal(t, search.StatusIdle, results.Status)

	results = results.Apply(search.Outcome{Status: search.StatusError, Message: search.MsgFetchFailed})
	assert.Equal(t, search.MsgFetchFailed, results.Message)

	results = results.Begin()
	assert.True(t, results.Loading())
	assert.Empty(t, results.Message)

	results = results.Apply(search.Outcome{
		Status:     search.StatusResults,
		Characters: []character.Character{{ID: 1, Name: "Goofy"}},
	})
	assert.False(t, results.Loading())
	assert.Len(t, results.Characters, 1)

	results = results.Reset()
	assert.Equal(t, search.Results{Status: search.StatusIdle}, results)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "loading", search.StatusLoading.String())
	assert.Equal(t, "empty", search.StatusEmpty.String())
	assert.Equal(t, "unknown", search.Status(42).String())
}
