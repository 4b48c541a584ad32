// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides quick type-conversion utilities.

It wraps standards like [strconv] to provide fault-tolerant conversions
(e.g., returning a default instead of an error when parsing fails). This is
useful when reading page numbers from query strings and CLI input.

Do not use this package if distinguishing between malformed data and zero values
is important in your domain logic; use explicit standard libraries instead.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToIntD converts a string to an int, returning the provided default if parsing fails or string is empty.
func ToIntD(str string, def int) int {

	// If the string is empty, return the default value
	if str == "" {
		return def
	}

	// Try to parse the string as an integer
	if v, err := strconv.Atoi(strings.TrimSpace(str)); err == nil {
		return v
	}

	// If parsing fails, return the default value
	return def
}

// ToPositiveInt parses a strictly positive integer identifier.
// The boolean result is false for empty, malformed, zero or negative input.
func ToPositiveInt(str string) (int, bool) {
	v, err := strconv.Atoi(str)
	if err != nil || v < 1 {
		return 0, false
	}
	return v, true
}
