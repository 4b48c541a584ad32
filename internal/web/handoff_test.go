// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/chardex/internal/search"
	"github.com/taibuivan/chardex/internal/urlstate"
)

/*
TestHandoff_SingleUse verifies that a stored state can be taken exactly once.
*/
func TestHandoff_SingleUse(t *testing.T) {
	store := newHandoff(time.Minute)
	state := search.NewState(urlstate.Params{Query: "mickey", Page: 1, PageSize: 50})

	token := store.put(state)
	assert.NotEmpty(t, token)

	got, ok := store.take(token)
	assert.True(t, ok)
	assert.Equal(t, state, got)

	_, ok = store.take(token)
	assert.False(t, ok)

	_, ok = store.take("")
	assert.False(t, ok)
}

/*
TestHandoff_Expiry verifies that expired states are refused and swept.
*/
func TestHandoff_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := newHandoff(time.Second)
	store.now = func() time.Time { return now }

	stale := store.put(search.State{Query: "mickey"})

	now = now.Add(2 * time.Second)
	_, ok := store.take(stale)
	assert.False(t, ok)

	store.put(search.State{Query: "old"})
	now = now.Add(2 * time.Second)
	store.put(search.State{Query: "new"})
	assert.Equal(t, 1, store.size())
}
