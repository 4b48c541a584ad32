// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package character

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNetwork is returned when the remote API could not be reached at all.
	ErrNetwork = errors.New("character: network error")

	// ErrNotFound is returned when a single character does not exist.
	ErrNotFound = errors.New("character: not found")

	// ErrMalformed is returned when a detail response fails shape validation.
	// It wraps [ErrNotFound] so callers treat it as a missing character.
	ErrMalformed = fmt.Errorf("%w: malformed response", ErrNotFound)
)

// HTTPError is a non-2xx response from the remote API.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// User-facing messages.
const (
	MsgNetwork  = "Network error. Please check your internet connection and try again."
	MsgServer   = "Server error. Please try again later."
	MsgRequest  = "Error fetching characters. Please try again."
	MsgNotFound = "Character not found."
)

// IsServerError reports whether err is an upstream 5xx response.
func IsServerError(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode >= http.StatusInternalServerError
}

// Message maps err to the message shown to users. It returns "" for nil.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return MsgNotFound
	case errors.Is(err, ErrNetwork):
		return MsgNetwork
	case IsServerError(err):
		return MsgServer
	default:
		return MsgRequest
	}
}

// outcome labels an upstream call for metrics.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrNetwork):
		return "network"
	case IsServerError(err):
		return "server_error"
	default:
		return "request_error"
	}
}
