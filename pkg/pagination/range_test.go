// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/chardex/pkg/pagination"
)

// labels joins the rendered tokens for compact assertions.
func labels(tokens []pagination.Token) string {
	parts := make([]string, len(tokens))
	for i, token := range tokens {
		parts[i] = token.String()
	}
	return strings.Join(parts, " ")
}

/*
TestRange_Table pins the rendered controls for representative positions.
*/
func TestRange_Table(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    string
	}{
		{"no_pages", 1, 0, ""},
		{"single_page", 1, 1, "1"},
		{"two_pages", 2, 2, "1 2"},
		{"four_pages_fills_single_gap", 1, 4, "1 2 3 4"},
		{"start", 1, 10, "1 2 ... 10"},
		{"near_start", 4, 10, "1 2 3 4 5 ... 10"},
		{"middle", 5, 10, "1 ... 4 5 6 ... 10"},
		{"near_end", 8, 10, "1 ... 7 8 9 10"},
		{"end", 10, 10, "1 ... 9 10"},
		{"clamped_high", 42, 10, "1 ... 9 10"},
		{"clamped_low", -3, 10, "1 2 ... 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, labels(pagination.Range(tt.current, tt.total)))
		})
	}
}

/*
TestRange_Properties checks the structural guarantees for every valid position.
*/
func TestRange_Properties(t *testing.T) {
	for total := -1; total <= 1; total++ {
		assert.LessOrEqual(t, len(pagination.Range(1, total)), 1, "total=%d", total)
	}

	for total := 2; total <= 30; total++ {
		for current := 1; current <= total; current++ {
			tokens := pagination.Range(current, total)

			// First and last pages are always present.
			assert.Equal(t, 1, tokens[0].Page, "current=%d total=%d", current, total)
			assert.Equal(t, total, tokens[len(tokens)-1].Page, "current=%d total=%d", current, total)

			seen := map[int]bool{}
			previous := 0
			for i, token := range tokens {
				if token.IsEllipsis() {
					// Never two gaps in a row, never a gap at the edges.
					assert.NotZero(t, i)
					assert.False(t, tokens[i-1].IsEllipsis())
					// A gap always hides at least two pages.
					assert.GreaterOrEqual(t, tokens[i+1].Page-tokens[i-1].Page, 3)
					continue
				}
				// Page numbers ascend strictly.
				assert.Greater(t, token.Page, previous)
				if i > 0 && !tokens[i-1].IsEllipsis() {
					assert.Equal(t, previous+1, token.Page, "contiguous run broken")
				}
				previous = token.Page
				seen[token.Page] = true
			}

			// The neighbourhood of the current page is contiguous.
			for page := max(current-1, 1); page <= min(current+1, total); page++ {
				assert.True(t, seen[page], "page %d missing for current=%d total=%d", page, current, total)
			}
		}
	}
}

/*
TestRange_Deterministic ensures identical inputs render identical controls.
*/
func TestRange_Deterministic(t *testing.T) {
	assert.Equal(t, pagination.Range(7, 20), pagination.Range(7, 20))
	assert.Equal(t, pagination.Ellipsis, pagination.Gap.String())
}
