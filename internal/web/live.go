// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/taibuivan/chardex/internal/platform/constants"
	"github.com/taibuivan/chardex/internal/platform/ctxutil"
	"github.com/taibuivan/chardex/internal/search"
)

// Live protocol message types.
const (
	eventInput  = "input"
	eventPage   = "page"
	frameRender = "render"
)

// paramSeed carries the handoff token of a server-rendered search page.
const paramSeed = "seed"

// clientEvent is a message from the browser.
type clientEvent struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
	Page  int    `json:"page,omitempty"`
}

// action maps the event onto a search page action.
func (event clientEvent) action() (search.Action, bool) {
	switch event.Type {
	case eventInput:
		return search.InputChanged{Value: event.Value}, true
	case eventPage:
		return search.PageSelected{Page: event.Page}, true
	default:
		return nil, false
	}
}

// serverFrame is a message to the browser.
type serverFrame struct {
	Type string `json:"type"`
	HTML string `json:"html"`
	URL  string `json:"url,omitempty"`
}

// live upgrades to a WebSocket and runs one search session on it.
//
// The session goroutine is the only writer. This goroutine only reads.
func (handler *Handler) live(writer http.ResponseWriter, request *http.Request) {
	conn, err := handler.upgrader.Upgrade(writer, request, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "live_upgrade_failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	conn.SetReadLimit(constants.LiveMaxMessageBytes)

	ctx, cancel := context.WithCancel(request.Context())
	defer cancel()

	sink := search.SinkFunc(func(_ context.Context, frame search.Frame) error {
		if err := conn.SetWriteDeadline(time.Now().Add(constants.LiveWriteTimeout)); err != nil {
			return err
		}
		return conn.WriteJSON(serverFrame{Type: frameRender, HTML: frame.HTML, URL: frame.URL})
	})

	values := request.URL.Query()
	token := values.Get(paramSeed)
	values.Del(paramSeed)

	var seed *search.State
	if state, ok := handler.handoff.take(token); ok {
		seed = &state
	}

	logger := ctxutil.GetLogger(ctx)
	session := search.NewSession(values,
		search.SessionConfig{
			Path:             "/",
			DebounceInterval: handler.cfg.DebounceInterval,
			EventsPerSecond:  handler.cfg.EventsPerSecond,
			EventBurst:       handler.cfg.EventBurst,
			PageSize:         handler.cfg.PageSize,
			Seed:             seed,
		},
		search.SessionDeps{
			Controller: handler.controller,
			Render:     handler.templates.RenderResults,
			Sink:       sink,
			Logger:     logger,
			Metrics:    handler.metrics,
		},
	)
	ctx = ctxutil.WithSessionID(ctx, session.ID())
	logger = logger.With(slog.String("session_id", ctxutil.GetSessionID(ctx)))

	runDone := make(chan error, 1)
	go func() {
		runDone <- session.Run(ctx)
		// Unblock the reader when the session stops on its own.
		_ = conn.Close()
	}()

	handler.readEvents(ctx, conn, session, logger)

	cancel()
	if err := <-runDone; err != nil {
		logger.WarnContext(ctx, "live_session_failed", slog.Any("error", err))
	}
}

// readEvents forwards client events to the session until the socket closes.
func (handler *Handler) readEvents(ctx context.Context, conn *websocket.Conn, session *search.Session, logger *slog.Logger) {
	for {
		if err := conn.SetReadDeadline(time.Now().Add(constants.LiveReadTimeout)); err != nil {
			return
		}

		_, payload, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil && websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.DebugContext(ctx, "live_read_failed", slog.Any("error", err))
			}
			return
		}

		var event clientEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			logger.DebugContext(ctx, "live_event_malformed", slog.Any("error", err))
			continue
		}

		action, ok := event.action()
		if !ok {
			logger.DebugContext(ctx, "live_event_ignored", slog.String("type", event.Type))
			continue
		}
		handler.metrics.LiveEvent(event.Type)

		switch err := session.Receive(ctx, action); {
		case errors.Is(err, search.ErrRateLimited):
			logger.WarnContext(ctx, "live_event_rate_limited", slog.String("type", event.Type))
		case err != nil:
			return
		}
	}
}
