// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package character

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// info is the paging block shared by list and detail responses.
type info struct {
	Count      int  `json:"count"`
	TotalPages *int `json:"totalPages"`
}

type envelope struct {
	Info *info          `json:"info"`
	Data json.RawMessage `json:"data"`
}

// decodeList parses a search response.
//
// The API answers with a single object when exactly one character matches,
// an array otherwise, and null or nothing when none match. All three are
// normalized into [Page.Characters]. A missing totalPages defaults to 1.
func decodeList(body []byte) (Page, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Page{}, fmt.Errorf("character: decode list: %w", err)
	}

	characters, err := decodeData(env.Data)
	if err != nil {
		return Page{}, fmt.Errorf("character: decode list data: %w", err)
	}

	page := Page{Characters: characters, TotalPages: 1, Count: len(characters)}
	if env.Info != nil {
		if env.Info.TotalPages != nil && *env.Info.TotalPages > 1 {
			page.TotalPages = *env.Info.TotalPages
		}
		if env.Info.Count > 0 {
			page.Count = env.Info.Count
		}
	}

	return page, nil
}

// decodeDetail parses a single-character response.
//
// A record is accepted only when data is non-null and info.count is positive.
// Anything else is reported as [ErrMalformed].
func decodeDetail(body []byte) (Character, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Character{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if env.Info == nil || env.Info.Count <= 0 {
		return Character{}, ErrMalformed
	}

	characters, err := decodeData(env.Data)
	if err != nil {
		return Character{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(characters) == 0 {
		return Character{}, ErrMalformed
	}

	return characters[0], nil
}

// decodeData accepts an object, an array of objects, null or nothing.
func decodeData(raw json.RawMessage) ([]Character, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []Character{}, nil
	}

	switch trimmed[0] {
	case '[':
		var characters []Character
		if err := json.Unmarshal(trimmed, &characters); err != nil {
			return nil, err
		}
		if characters == nil {
			characters = []Character{}
		}
		return characters, nil

	case '{':
		var single Character
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, err
		}
		return []Character{single}, nil

	default:
		return nil, fmt.Errorf("unexpected data token %q", trimmed[0])
	}
}
