// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package urlstate keeps the search page state and the address bar in sync.

The address bar carries three parameters: q (search text), page (1-based) and
pageSize. [Read] turns a query string into [Params] when a page mounts, and a
[Synchronizer] applies later state changes back to the address using replace
semantics, so typing never floods the browser history.

Update rules:

  - An empty value deletes the parameter.
  - A non-empty value replaces the parameter only when it differs.
  - Parameters not mentioned in an update are never touched.
*/
package urlstate

import (
	"maps"
	"net/url"
	"slices"
	"strconv"

	"github.com/taibuivan/chardex/pkg/convert"
	"github.com/taibuivan/chardex/pkg/pagination"
)

// Query string keys.
const (
	KeyQuery    = "q"
	KeyPage     = "page"
	KeyPageSize = "pageSize"
)

// # Params

// Params is the search state mirrored into the address bar.
type Params struct {
	Query    string
	Page     int
	PageSize int
}

// DefaultParams are used for missing or unparseable parameters.
var DefaultParams = Params{Page: 1, PageSize: 50}

// Read extracts the search parameters from a query string.
// Numeric fields fall back to fallback's values when missing, non-numeric or below 1.
// The page size is capped at [pagination.MaxPageSize].
func Read(values url.Values, fallback Params) Params {
	params := Params{
		Query:    values.Get(KeyQuery),
		Page:     convert.ToIntD(values.Get(KeyPage), fallback.Page),
		PageSize: convert.ToIntD(values.Get(KeyPageSize), fallback.PageSize),
	}
	if params.Page < 1 {
		params.Page = fallback.Page
	}
	if params.PageSize < 1 {
		params.PageSize = fallback.PageSize
	}
	if params.PageSize > pagination.MaxPageSize {
		params.PageSize = pagination.MaxPageSize
	}
	return params
}

// Changes renders params as an update for [Synchronizer.Update].
// An empty query clears all three parameters.
func (p Params) Changes() map[string]string {
	if p.Query == "" {
		return map[string]string{KeyQuery: "", KeyPage: "", KeyPageSize: ""}
	}
	return map[string]string{
		KeyQuery:    p.Query,
		KeyPage:     strconv.Itoa(p.Page),
		KeyPageSize: strconv.Itoa(p.PageSize),
	}
}

// # Navigation

// Mode determines how an address change is recorded in the browser history.
type Mode int

const (
	// ModePush adds a new history entry.
	ModePush Mode = iota

	// ModeReplace replaces the current history entry (no back button spam).
	ModeReplace
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m == ModeReplace {
		return "replace"
	}
	return "push"
}

// Navigator receives address changes, typically to forward them to the browser.
type Navigator interface {
	Navigate(location string, mode Mode)
}

// NavigatorFunc adapts a function to [Navigator].
type NavigatorFunc func(location string, mode Mode)

// Navigate implements [Navigator].
func (f NavigatorFunc) Navigate(location string, mode Mode) { f(location, mode) }

// # Synchronizer

// Synchronizer owns the current query values of one page.
//
// It is not safe for concurrent use; a live session drives it from its own
// event loop.
type Synchronizer struct {
	path      string
	values    url.Values
	navigator Navigator
}

// NewSynchronizer starts from the address the page was mounted with.
// A nil navigator is allowed; changes are then only tracked.
func NewSynchronizer(path string, initial url.Values, navigator Navigator) *Synchronizer {
	values := url.Values{}
	for key, vals := range initial {
		values[key] = slices.Clone(vals)
	}
	return &Synchronizer{path: path, values: values, navigator: navigator}
}

// Update applies changes and reports whether the address changed.
// The navigator is invoked once, in replace mode, only on change.
func (s *Synchronizer) Update(changes map[string]string) bool {
	changed := false

	for _, key := range slices.Sorted(maps.Keys(changes)) {
		value := changes[key]

		// 1. Empty string removes the parameter
		if value == "" {
			if s.values.Has(key) {
				s.values.Del(key)
				changed = true
			}
			continue
		}

		// 2. Otherwise replace only when different
		if s.values.Get(key) != value || len(s.values[key]) != 1 {
			s.values.Set(key, value)
			changed = true
		}
	}

	if changed && s.navigator != nil {
		s.navigator.Navigate(s.Location(), ModeReplace)
	}
	return changed
}

// Location returns the current relative address, without "?" when no parameters remain.
func (s *Synchronizer) Location() string {
	encoded := s.values.Encode()
	if encoded == "" {
		return s.path
	}
	return s.path + "?" + encoded
}

// Values returns a copy of the current query values.
func (s *Synchronizer) Values() url.Values {
	values := url.Values{}
	for key, vals := range s.values {
		values[key] = slices.Clone(vals)
	}
	return values
}
