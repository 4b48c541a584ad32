// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination

import "strconv"

// Ellipsis is the label rendered for a collapsed gap.
const Ellipsis = "..."

// siblings is how many pages on each side of the current page are always shown.
const siblings = 1

// Token is one page control: either a page number or a collapsed gap.
type Token struct {
	// Page is the 1-based page number; zero for an ellipsis.
	Page int
}

// Gap is the ellipsis token.
var Gap = Token{}

// IsEllipsis reports whether the token stands for a collapsed gap.
func (t Token) IsEllipsis() bool { return t.Page == 0 }

// String renders the token label.
func (t Token) String() string {
	if t.IsEllipsis() {
		return Ellipsis
	}
	return strconv.Itoa(t.Page)
}

// Range computes the page controls for a paged view.
//
// The first and last pages are always present, the current page is shown with
// its immediate neighbours, and any gap of two or more pages collapses into a
// single ellipsis. A gap of exactly one page is filled with that page instead.
// A current page outside [1, total] is clamped. Range is pure.
func Range(current, total int) []Token {
	if total <= 0 {
		return nil
	}
	if total == 1 {
		return []Token{{Page: 1}}
	}

	current = min(max(current, 1), total)

	left := max(current-siblings, 2)
	right := min(current+siblings, total-1)

	tokens := make([]Token, 0, 2*siblings+5)
	tokens = append(tokens, Token{Page: 1})

	switch {
	case left == 3:
		tokens = append(tokens, Token{Page: 2})
	case left > 3:
		tokens = append(tokens, Gap)
	}

	for page := left; page <= right; page++ {
		tokens = append(tokens, Token{Page: page})
	}

	switch {
	case right == total-2:
		tokens = append(tokens, Token{Page: total - 1})
	case right < total-2:
		tokens = append(tokens, Gap)
	}

	return append(tokens, Token{Page: total})
}
