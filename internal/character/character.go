// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package character is the client-side domain for Disney characters.

It owns the Character model, the [Repository] port onto the remote character
API, the HTTP implementation of that port, the error taxonomy that maps
upstream failures to user-facing messages, and the read-only JSON API.
*/
package character

// FallbackImage is shown when a character has no image of its own.
const FallbackImage = "/images/character.png"

// Character is a single Disney character as returned by the remote API.
//
// Values are immutable once fetched.
type Character struct {
	ID              int      `json:"_id"`
	Name            string   `json:"name"`
	ImageURL        string   `json:"imageUrl,omitempty"`
	Films           []string `json:"films,omitempty"`
	TVShows         []string `json:"tvShows,omitempty"`
	VideoGames      []string `json:"videoGames,omitempty"`
	ParkAttractions []string `json:"parkAttractions,omitempty"`
	SourceURL       string   `json:"sourceUrl,omitempty"`
}

// Image returns the character's image or [FallbackImage] when it has none.
func (c Character) Image() string {
	if c.ImageURL == "" {
		return FallbackImage
	}
	return c.ImageURL
}

// Section is one titled appearance list on the detail page.
type Section struct {
	Title       string
	Items       []string
	Placeholder string
}

// Empty reports whether the section should show its placeholder.
func (s Section) Empty() bool {
	return len(s.Items) == 0
}

// Sections returns the four fixed appearance sections in display order.
func (c Character) Sections() []Section {
	return []Section{
		{Title: "Films", Items: c.Films, Placeholder: "No films available."},
		{Title: "TV Shows", Items: c.TVShows, Placeholder: "No TV shows available."},
		{Title: "Video Games", Items: c.VideoGames, Placeholder: "No video games available."},
		{Title: "Park Attractions", Items: c.ParkAttractions, Placeholder: "No park attractions available."},
	}
}

// Page is one page of a character name search.
type Page struct {
	Characters []Character
	// TotalPages is always at least 1.
	TotalPages int
	// Count is the record count reported by the API.
	Count int
}

// Query holds the parameters for a paged name search.
type Query struct {
	Name     string
	Page     int
	PageSize int
}

// Global field names for validation
const (
	FieldName     = "name"
	FieldPage     = "page"
	FieldPageSize = "pageSize"
	FieldID       = "id"
)
