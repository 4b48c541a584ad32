// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/taibuivan/chardex/internal/platform/constants"
	"github.com/taibuivan/chardex/internal/platform/metrics"
	"github.com/taibuivan/chardex/internal/urlstate"
	"github.com/taibuivan/chardex/pkg/debounce"
)

var (
	// ErrRateLimited is returned by [Session.Receive] when a client sends events too fast.
	ErrRateLimited = errors.New("search: live event rate exceeded")

	// ErrClosed is returned by [Session.Receive] once the session has stopped.
	ErrClosed = errors.New("search: session closed")

	// ErrUnsupportedAction is returned by [Session.Receive] for actions clients may not send.
	ErrUnsupportedAction = errors.New("search: unsupported client action")
)

// maxPrerenderFetches bounds the fetches of a server-side render, clamping included.
const maxPrerenderFetches = 3

// Frame is one rendered update pushed to the client.
type Frame struct {
	// HTML replaces the results region.
	HTML string `json:"html"`
	// URL is the new address, applied without a history entry. Empty when unchanged.
	URL string `json:"url,omitempty"`
}

// Sink delivers frames to the client.
type Sink interface {
	Send(ctx context.Context, frame Frame) error
}

// SinkFunc adapts a function to [Sink].
type SinkFunc func(ctx context.Context, frame Frame) error

func (f SinkFunc) Send(ctx context.Context, frame Frame) error { return f(ctx, frame) }

// Renderer turns a view into the HTML of the results region.
type Renderer func(view PageView) (string, error)

// SessionConfig tunes a live session.
type SessionConfig struct {
	Path             string
	DebounceInterval time.Duration
	EventsPerSecond  float64
	EventBurst       int
	PageSize         int

	// Seed is a state resolved by [Prerender] for the same page. It is adopted
	// when its query and page size match the address, so mounting does not
	// repeat the search.
	Seed *State
}

// SessionDeps are the collaborators of a live session.
type SessionDeps struct {
	Controller *Controller
	Render     Renderer
	Sink       Sink
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
}

// Session owns the state of one mounted search page.
//
// All state changes happen on the goroutine running [Session.Run]. Timers and
// fetches only enqueue actions, so the reducer never runs concurrently.
type Session struct {
	id   string
	cfg  SessionConfig
	deps SessionDeps

	state    State
	sync     *urlstate.Synchronizer
	limiter  *rate.Limiter
	actions  chan Action
	done     chan struct{}
	fetches  sync.WaitGroup
	location string
	lastHTML string
	mounted  bool
	seeded   bool
}

// NewSession seeds a session from the page's address-bar values.
func NewSession(values url.Values, cfg SessionConfig, deps SessionDeps) *Session {
	if cfg.Path == "" {
		cfg.Path = "/"
	}

	defaults := urlstate.DefaultParams
	if cfg.PageSize > 0 {
		defaults.PageSize = cfg.PageSize
	}

	session := &Session{
		id:      uuid.Must(uuid.NewV7()).String(),
		cfg:     cfg,
		deps:    deps,
		state:   NewState(urlstate.Read(values, defaults)),
		limiter: rate.NewLimiter(rate.Limit(cfg.EventsPerSecond), cfg.EventBurst),
		actions: make(chan Action, constants.LiveActionBuffer),
		done:    make(chan struct{}),
	}

	if seed := cfg.Seed; seed != nil && seed.Query == session.state.Query && seed.PageSize == session.state.PageSize {
		session.state = *seed
		session.seeded = true
	}

	session.sync = urlstate.NewSynchronizer(cfg.Path, values, urlstate.NavigatorFunc(func(location string, _ urlstate.Mode) {
		session.location = location
	}))

	return session
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string {
	return s.id
}

// Run mounts the page and processes actions until ctx is cancelled or the
// sink fails. When Run returns, the debouncer is stopped and every fetch
// goroutine has exited, so no further frame is sent.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)

	debouncer := debounce.New(s.cfg.DebounceInterval, func(value string) {
		s.enqueue(ctx, QuerySettled{Value: value})
	})

	s.deps.Metrics.SessionOpened()
	s.deps.Logger.InfoContext(ctx, "live_session_started",
		slog.String("session_id", s.id),
		slog.String("query", s.state.Query),
		slog.Bool("seeded", s.seeded),
	)

	defer func() {
		debouncer.Stop()
		cancel()
		s.fetches.Wait()
		close(s.done)

		s.deps.Metrics.SessionClosed()
		s.deps.Logger.InfoContext(ctx, "live_session_ended", slog.String("session_id", s.id))
	}()

	var mount Action = Init{}
	if s.seeded {
		mount = Resume{}
	}
	if err := s.apply(ctx, debouncer, mount); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case action := <-s.actions:
			if err := s.apply(ctx, debouncer, action); err != nil {
				return err
			}
		}
	}
}

// Receive queues a client event. Only [InputChanged] and [PageSelected] are accepted.
func (s *Session) Receive(ctx context.Context, action Action) error {
	switch action.(type) {
	case InputChanged, PageSelected:
	default:
		return ErrUnsupportedAction
	}

	if !s.limiter.Allow() {
		return ErrRateLimited
	}

	if !s.enqueue(ctx, action) {
		return ErrClosed
	}
	return nil
}

func (s *Session) enqueue(ctx context.Context, action Action) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.actions <- action:
		return true
	case <-ctx.Done():
		return false
	case <-s.done:
		return false
	}
}

func (s *Session) apply(ctx context.Context, debouncer *debounce.Debouncer[string], action Action) error {
	if completed, ok := action.(FetchCompleted); ok && s.state.IsStale(completed) {
		s.deps.Metrics.StaleResult()
		s.deps.Logger.DebugContext(ctx, "stale_result_discarded",
			slog.String("session_id", s.id),
			slog.Uint64("seq", completed.Seq),
			slog.Uint64("current_seq", s.state.Seq),
		)
		return nil
	}

	next, effects := Reduce(s.state, action)
	s.state = next

	for _, effect := range effects {
		switch e := effect.(type) {
		case Debounce:
			debouncer.Push(e.Value)
		case Fetch:
			s.fetches.Add(1)
			go s.fetch(ctx, e)
		case SyncURL:
			s.sync.Update(e.Params.Changes())
		}
	}

	return s.flush(ctx)
}

func (s *Session) fetch(ctx context.Context, f Fetch) {
	defer s.fetches.Done()

	outcome := s.deps.Controller.Search(ctx, f.Query, f.Page, f.PageSize)
	s.enqueue(ctx, FetchCompleted{Seq: f.Seq, Outcome: outcome})
}

// flush renders the current state and sends it on mount and whenever
// something visible changed.
func (s *Session) flush(ctx context.Context) error {
	html, err := s.deps.Render(View(s.state))
	if err != nil {
		return fmt.Errorf("search: render: %w", err)
	}

	location := s.location
	s.location = ""

	if s.mounted && html == s.lastHTML && location == "" {
		return nil
	}
	s.mounted = true
	s.lastHTML = html

	return s.deps.Sink.Send(ctx, Frame{HTML: html, URL: location})
}

// Prerender resolves the initial state of a page synchronously, as the first
// server response shows it. Address-bar effects are left to the live session.
func Prerender(ctx context.Context, controller *Controller, state State) State {
	state, effects := Reduce(state, Init{})

	for range maxPrerenderFetches {
		fetch, ok := firstFetch(effects)
		if !ok {
			break
		}
		outcome := controller.Search(ctx, fetch.Query, fetch.Page, fetch.PageSize)
		state, effects = Reduce(state, FetchCompleted{Seq: fetch.Seq, Outcome: outcome})
	}

	return state
}

func firstFetch(effects []Effect) (Fetch, bool) {
	for _, effect := range effects {
		if fetch, ok := effect.(Fetch); ok {
			return fetch, true
		}
	}
	return Fetch{}, false
}
