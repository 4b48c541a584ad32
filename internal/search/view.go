// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"strconv"

	"github.com/taibuivan/chardex/internal/character"
	"github.com/taibuivan/chardex/pkg/pagination"
	"github.com/taibuivan/chardex/pkg/slice"
)

// Static copy of the search page.
const (
	Headline    = "Search Disney Characters"
	Placeholder = "Type a character name"
)

// PageView is the render model of the search page.
type PageView struct {
	Headline    string
	Placeholder string
	Input       string

	Loading bool
	Message string

	Characters []Item
	Pagination []Button
}

// Item is one entry of the result list.
type Item struct {
	ElementID string
	Href      string
	Name      string
	Image     string
}

// Button is one pagination control.
type Button struct {
	Label    string
	Page     int
	Active   bool
	Ellipsis bool
}

// ShowList reports whether the result list is rendered.
func (v PageView) ShowList() bool {
	return !v.Loading && len(v.Characters) > 0
}

// View projects state onto the page.
//
// The spinner and the list are mutually exclusive. Pagination appears only
// with more than one page of settled, non-empty results.
func View(state State) PageView {
	view := PageView{
		Headline:    Headline,
		Placeholder: Placeholder,
		Input:       state.Input,
		Loading:     state.Results.Loading(),
		Message:     state.Results.Message,
	}

	if view.Loading {
		return view
	}

	view.Characters = slice.Map(state.Results.Characters, item)

	if state.TotalPages > 1 && len(view.Characters) > 0 {
		view.Pagination = slice.Map(pagination.Range(state.Page, state.TotalPages), func(token pagination.Token) Button {
			return Button{
				Label:    token.String(),
				Page:     token.Page,
				Active:   token.Page == state.Page,
				Ellipsis: token.IsEllipsis(),
			}
		})
	}

	return view
}

func item(c character.Character) Item {
	id := strconv.Itoa(c.ID)
	return Item{
		ElementID: "character-" + id,
		Href:      "/details/" + id,
		Name:      c.Name,
		Image:     c.Image(),
	}
}
