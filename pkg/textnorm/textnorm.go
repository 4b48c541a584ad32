// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package textnorm canonicalizes user-typed search text.
//
// # Usage
//
// Search terms travel into the address bar and the upstream query string.
// Two inputs that look identical on screen (composed vs. decomposed accents,
// full-width vs. ASCII letters, runs of spaces) must produce the same query,
// otherwise the URL and the fetch would flap between equivalent values.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Query normalizes a search term.
//
// # Transformation Pipeline
//
// 1. Folds full-width and half-width forms to their canonical width.
// 2. Normalizes to NFC (é stays a single code point).
// 3. Replaces control characters with spaces.
// 4. Collapses whitespace runs and trims both ends.
//
// Letter case is preserved; the upstream API matches case-insensitively.
func Query(s string) string {
	t := transform.Chain(width.Fold, norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}

	result = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, result)

	return strings.Join(strings.Fields(result), " ")
}
