// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taibuivan/chardex/internal/search"
)

// handoff passes a server-rendered search state to the live session the
// same page opens next. Tokens are single use and expire after ttl.
type handoff struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]handoffEntry
}

type handoffEntry struct {
	state   search.State
	expires time.Time
}

func newHandoff(ttl time.Duration) *handoff {
	return &handoff{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]handoffEntry),
	}
}

// put stores state and returns its token.
func (h *handoff) put(state search.State) string {
	token := uuid.NewString()
	now := h.now()

	h.mu.Lock()
	defer h.mu.Unlock()

	for key, entry := range h.entries {
		if now.After(entry.expires) {
			delete(h.entries, key)
		}
	}
	h.entries[token] = handoffEntry{state: state, expires: now.Add(h.ttl)}

	return token
}

// take removes and returns the state stored under token.
func (h *handoff) take(token string) (search.State, bool) {
	if token == "" {
		return search.State{}, false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	entry, ok := h.entries[token]
	if !ok {
		return search.State{}, false
	}
	delete(h.entries, token)

	if h.now().After(entry.expires) {
		return search.State{}, false
	}
	return entry.state, true
}

// size reports the number of stored states, expired ones included.
func (h *handoff) size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
