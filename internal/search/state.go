// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"github.com/taibuivan/chardex/internal/urlstate"
	"github.com/taibuivan/chardex/pkg/textnorm"
)

// State is everything the search page shows for one session.
type State struct {
	// Input is the raw text box content.
	Input string
	// Query is the settled, normalized search term.
	Query string

	Page       int
	PageSize   int
	TotalPages int

	Results Results

	// Seq identifies the latest issued fetch. Completions carrying any other
	// value are stale.
	Seq uint64

	// fetched is the page of the latest issued fetch.
	fetched int
}

// NewState seeds a page from its address-bar parameters.
func NewState(params urlstate.Params) State {
	query := textnorm.Query(params.Query)
	return State{
		Input:      params.Query,
		Query:      query,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: 1,
	}
}

// Params returns the address-bar projection of the state.
func (s State) Params() urlstate.Params {
	return urlstate.Params{Query: s.Query, Page: s.Page, PageSize: s.PageSize}
}

// # Actions

// Action is an event fed into [Reduce].
type Action interface{ isAction() }

// Init is dispatched once when the page mounts.
type Init struct{}

// Resume mounts a page whose state was already resolved by [Prerender].
// It only reflects the state into the address bar.
type Resume struct{}

// InputChanged is a keystroke in the search box.
type InputChanged struct{ Value string }

// QuerySettled is the debounced search box value.
type QuerySettled struct{ Value string }

// PageSelected is a click on a pagination control.
type PageSelected struct{ Page int }

// FetchCompleted carries the outcome of the fetch tagged Seq.
type FetchCompleted struct {
	Seq     uint64
	Outcome Outcome
}

func (Init) isAction()           {}
func (Resume) isAction()         {}
func (InputChanged) isAction()   {}
func (QuerySettled) isAction()   {}
func (PageSelected) isAction()   {}
func (FetchCompleted) isAction() {}

// # Effects

// Effect is work requested by [Reduce] and carried out by a [Session].
type Effect interface{ isEffect() }

// Debounce schedules a QuerySettled for Value after the quiet interval.
type Debounce struct{ Value string }

// Fetch requests one search whose completion must be tagged Seq.
type Fetch struct {
	Seq      uint64
	Query    string
	Page     int
	PageSize int
}

// SyncURL reflects Params into the address bar.
type SyncURL struct{ Params urlstate.Params }

func (Debounce) isEffect() {}
func (Fetch) isEffect()    {}
func (SyncURL) isEffect()  {}

// # Reducer

// Reduce applies action to state. It never blocks and performs no I/O.
func Reduce(state State, action Action) (State, []Effect) {
	switch a := action.(type) {
	case Init:
		if state.Query == "" {
			return state.clear()
		}
		return state.fetch()

	case Resume:
		if state.Query == "" || state.Results.Loading() {
			return Reduce(state, Init{})
		}
		return state, []Effect{SyncURL{Params: state.Params()}}

	case InputChanged:
		state.Input = a.Value
		state.Page = 1
		return state, []Effect{Debounce{Value: a.Value}}

	case QuerySettled:
		return state.settle(textnorm.Query(a.Value))

	case PageSelected:
		if state.Query == "" || a.Page == state.Page || a.Page < 1 || a.Page > state.TotalPages {
			return state, nil
		}
		state.Page = a.Page
		return state.fetch()

	case FetchCompleted:
		return state.complete(a)

	default:
		return state, nil
	}
}

func (s State) settle(query string) (State, []Effect) {
	if query == "" {
		return s.clear()
	}

	if query == s.Query && s.Page == s.fetched && s.Results.Status != StatusIdle {
		return s, nil
	}

	s.Query = query
	return s.fetch()
}

// clear empties the page and removes every search parameter from the address.
func (s State) clear() (State, []Effect) {
	// Invalidate any in-flight fetch so its result cannot repopulate the list.
	s.Seq++
	s.Query = ""
	s.Page = 1
	s.TotalPages = 1
	s.Results = s.Results.Reset()
	return s, []Effect{SyncURL{Params: s.Params()}}
}

func (s State) fetch() (State, []Effect) {
	s.Seq++
	s.fetched = s.Page
	s.Results = s.Results.Begin()

	return s, []Effect{
		Fetch{Seq: s.Seq, Query: s.Query, Page: s.Page, PageSize: s.PageSize},
		SyncURL{Params: s.Params()},
	}
}

func (s State) complete(a FetchCompleted) (State, []Effect) {
	if a.Seq != s.Seq {
		return s, nil
	}

	s.Results = s.Results.Apply(a.Outcome)
	s.TotalPages = max(1, a.Outcome.TotalPages)

	if a.Outcome.Status != StatusError && s.Page > s.TotalPages {
		s.Page = s.TotalPages
		return s.fetch()
	}

	return s, nil
}

// IsStale reports whether a completion belongs to a superseded fetch.
func (s State) IsStale(a FetchCompleted) bool {
	return a.Seq != s.Seq
}
