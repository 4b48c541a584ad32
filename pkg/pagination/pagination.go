// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for paged character listings.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters,
// how the resulting metadata is delivered in the API response envelope, and
// which page controls a paged view renders (see [Range]).
package pagination

import (
	"net/http"

	"github.com/taibuivan/chardex/pkg/convert"
)

const (
	// DefaultPageSize is the number of characters per page if not specified.
	DefaultPageSize = 50
	// MaxPageSize is the upper bound for characters per page.
	MaxPageSize = 200
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page and page size from a request's query string.
type Params struct {
	Page     int
	PageSize int
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// FromRequest parses "page" and "pageSize" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid, negative, or excessive values are automatically clamped to
// [DefaultPage], [DefaultPageSize], or [MaxPageSize].
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()
	page := convert.ToIntD(query.Get("page"), DefaultPage)
	pageSize := convert.ToIntD(query.Get("pageSize"), DefaultPageSize)

	if page < 1 {
		page = DefaultPage
	}

	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return Params{Page: page, PageSize: pageSize}
}

// NewMeta builds list metadata. A non-positive totalPages is reported as 1.
func NewMeta(page, pageSize, total, totalPages int) Meta {
	if totalPages < 1 {
		totalPages = 1
	}
	return Meta{Page: page, PageSize: pageSize, Total: total, TotalPages: totalPages}
}
