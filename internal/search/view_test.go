// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/chardex/internal/character"
	"github.com/taibuivan/chardex/internal/search"
	"github.com/taibuivan/chardex/pkg/pagination"
	"github.com/taibuivan/chardex/pkg/slice"
)

/*
TestView_Loading verifies that the spinner replaces list and pagination.
*/
func TestView_Loading(t *testing.T) {
	state := settled(t, "mickey", 5)
	state, _ = search.Reduce(state, search.PageSelected{Page: 2})

	view := search.View(state)

	assert.True(t, view.Loading)
	assert.False(t, view.ShowList())
	assert.Empty(t, view.Characters)
	assert.Empty(t, view.Pagination)
	assert.Equal(t, search.Headline, view.Headline)
	assert.Equal(t, search.Placeholder, view.Placeholder)
}

/*
TestView_Empty verifies that zero results show the message and no pagination.
*/
func TestView_Empty(t *testing.T) {
	state, effects := search.Reduce(fresh(), search.QuerySettled{Value: "zzzz"})
	state, _ = search.Reduce(state, search.FetchCompleted{
		Seq:     fetchOf(t, effects).Seq,
		Outcome: search.Outcome{Status: search.StatusEmpty, TotalPages: 1, Message: search.MsgNoResults},
	})

	view := search.View(state)

	assert.Equal(t, "No characters found.", view.Message)
	assert.False(t, view.ShowList())
	assert.Empty(t, view.Pagination)
}

/*
TestView_Pagination verifies that the controls equal the pagination range.
*/
func TestView_Pagination(t *testing.T) {
	state := settled(t, "mickey", 10)
	state, effects := search.Reduce(state, search.PageSelected{Page: 5})
	state, _ = search.Reduce(state, search.FetchCompleted{Seq: fetchOf(t, effects).Seq, Outcome: found(10, "Mickey Mouse")})

	view := search.View(state)

	labels := slice.Map(view.Pagination, func(b search.Button) string { return b.Label })
	want := slice.Map(pagination.Range(5, 10), pagination.Token.String)
	assert.Equal(t, want, labels)
	assert.Equal(t, []string{"1", "...", "4", "5", "6", "...", "10"}, labels)

	active := 0
	for _, button := range view.Pagination {
		if button.Active {
			active++
			assert.Equal(t, 5, button.Page)
		}
		assert.Equal(t, button.Label == pagination.Ellipsis, button.Ellipsis)
	}
	assert.Equal(t, 1, active)
}

/*
TestView_SinglePage verifies that one page of results has no pagination controls.
*/
func TestView_SinglePage(t *testing.T) {
	view := search.View(settled(t, "mickey", 1))

	assert.True(t, view.ShowList())
	assert.Empty(t, view.Pagination)
}

/*
TestView_Items verifies list item links and the fallback image.
*/
func TestView_Items(t *testing.T) {
	state, effects := search.Reduce(fresh(), search.QuerySettled{Value: "mickey"})
	state, _ = search.Reduce(state, search.FetchCompleted{
		Seq: fetchOf(t, effects).Seq,
		Outcome: search.Outcome{
			Status:     search.StatusResults,
			TotalPages: 1,
			Characters: []character.Character{
				{ID: 4703, Name: "Mickey Mouse", ImageURL: "https://static.wikia.nocookie.net/mickey.png"},
				{ID: 17, Name: "Mickey's Friend"},
			},
		},
	})

	view := search.View(state)
	require.Len(t, view.Characters, 2)

	assert.Equal(t, search.Item{
		ElementID: "character-4703",
		Href:      "/details/4703",
		Name:      "Mickey Mouse",
		Image:     "https://static.wikia.nocookie.net/mickey.png",
	}, view.Characters[0])
	assert.Equal(t, character.FallbackImage, view.Characters[1].Image)
}

/*
TestView_Error verifies the failure message.
*/
func TestView_Error(t *testing.T) {
	state, effects := search.Reduce(fresh(), search.QuerySettled{Value: "mickey"})
	state, _ = search.Reduce(state, search.FetchCompleted{
		Seq:     fetchOf(t, effects).Seq,
		Outcome: search.Outcome{Status: search.StatusError, TotalPages: 1, Message: search.MsgFetchFailed},
	})

	view := search.View(state)
	assert.Equal(t, "Error fetching Disney characters. Please try again.", view.Message)
	assert.False(t, view.Loading)
	assert.Empty(t, view.Pagination)
}
