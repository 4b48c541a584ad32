// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web_test

import (
	"net/http"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frame struct {
	Type string `json:"type"`
	HTML string `json:"html"`
	URL  string `json:"url"`
}

func dial(t *testing.T, siteURL, rawQuery string, header http.Header) *websocket.Conn {
	t.Helper()
	endpoint := "ws" + strings.TrimPrefix(siteURL, "http") + "/live"
	if rawQuery != "" {
		endpoint += "?" + rawQuery
	}

	conn, response, err := websocket.DefaultDialer.Dial(endpoint, header)
	require.NoError(t, err)
	_ = response.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// readUntil reads frames until match accepts one.
func readUntil(t *testing.T, conn *websocket.Conn, match func(frame) bool) frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		var f frame
		require.NoError(t, conn.ReadJSON(&f))
		if match(f) {
			return f
		}
	}
}

/*
TestLive_TypingSearches verifies the input, render and address round trip.
*/
func TestLive_TypingSearches(t *testing.T) {
	api := newFakeAPI(t)
	site := newSite(t, api)
	conn := dial(t, site.URL, "", nil)

	first := readUntil(t, conn, func(frame) bool { return true })
	assert.Equal(t, "render", first.Type)

	for _, value := range []string{"m", "mi", "mick", "mickey"} {
		require.NoError(t, conn.WriteJSON(map[string]string{"type": "input", "value": value}))
	}

	withURL := readUntil(t, conn, func(f frame) bool { return f.URL != "" })
	assert.Equal(t, "/?page=1&pageSize=50&q=mickey", withURL.URL)

	results := readUntil(t, conn, func(f frame) bool { return strings.Contains(f.HTML, "character-4703") })
	assert.Contains(t, results.HTML, `data-page="2"`)
	assert.Equal(t, int32(1), api.calls.Load())

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "page", "page": 3}))
	paged := readUntil(t, conn, func(f frame) bool { return f.URL != "" })
	assert.Equal(t, "/?page=3&pageSize=50&q=mickey", paged.URL)
}

/*
TestLive_SeededFromQuery verifies that a session starts from the page address.
*/
func TestLive_SeededFromQuery(t *testing.T) {
	site := newSite(t, newFakeAPI(t))
	conn := dial(t, site.URL, "q=zzz", nil)

	f := readUntil(t, conn, func(f frame) bool { return strings.Contains(f.HTML, "No characters found.") })
	assert.NotContains(t, f.HTML, "pagination")
}

/*
TestLive_IgnoresMalformedEvents verifies that bad client messages keep the session alive.
*/
func TestLive_IgnoresMalformedEvents(t *testing.T) {
	site := newSite(t, newFakeAPI(t))
	conn := dial(t, site.URL, "", nil)
	readUntil(t, conn, func(frame) bool { return true })

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "unknown"}))
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "input", "value": "broken"}))

	readUntil(t, conn, func(f frame) bool {
		return strings.Contains(f.HTML, "Error fetching Disney characters. Please try again.")
	})
}

/*
TestLive_RejectsForeignOrigin verifies the same-origin upgrade check.
*/
func TestLive_RejectsForeignOrigin(t *testing.T) {
	site := newSite(t, newFakeAPI(t))

	endpoint := "ws" + strings.TrimPrefix(site.URL, "http") + "/live"
	_, response, err := websocket.DefaultDialer.Dial(endpoint, http.Header{"Origin": {"https://evil.example"}})

	require.Error(t, err)
	require.NotNil(t, response)
	assert.Equal(t, http.StatusForbidden, response.StatusCode)
}

/*
TestLive_ResumesServerRender verifies that a live session opened from a rendered
search page reuses its results instead of searching again.
*/
func TestLive_ResumesServerRender(t *testing.T) {
	api := newFakeAPI(t)
	site := newSite(t, api)

	status, body, _ := get(t, site.URL+"/?q=mickey")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, int32(1), api.calls.Load())

	match := regexp.MustCompile(`data-seed="([^"]+)"`).FindStringSubmatch(body)
	require.Len(t, match, 2)

	conn := dial(t, site.URL, "q=mickey&seed="+match[1], nil)
	first := readUntil(t, conn, func(frame) bool { return true })

	assert.Contains(t, first.HTML, "character-4703")
	assert.NotContains(t, first.HTML, "spinner")
	assert.Equal(t, "/?page=1&pageSize=50&q=mickey", first.URL)
	assert.Equal(t, int32(1), api.calls.Load())

	// The token is spent; a reconnect searches normally.
	again := dial(t, site.URL, "q=mickey&seed="+match[1], nil)
	readUntil(t, again, func(f frame) bool { return strings.Contains(f.HTML, "character-4703") })
	assert.Equal(t, int32(2), api.calls.Load())
}
