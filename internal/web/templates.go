// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/taibuivan/chardex/internal/character"
	"github.com/taibuivan/chardex/internal/search"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names.
const (
	pageSearch  = "search"
	pageDetail  = "detail"
	pageMessage = "message"
)

// Templates holds one parsed set per page. Every set shares the layout and
// the results fragment.
type Templates struct {
	pages   map[string]*template.Template
	results *template.Template
}

// searchData feeds the search page.
type searchData struct {
	Title   string
	Live    bool
	Seed    string
	Search  search.PageView
	Results template.HTML
}

// detailData feeds the detail page.
type detailData struct {
	Title     string
	Live      bool
	Character character.Character
}

// messageData feeds the standalone message page.
type messageData struct {
	Title   string
	Live    bool
	Message string
}

// ParseTemplates parses the embedded page templates.
func ParseTemplates() (*Templates, error) {
	shared := []string{"templates/layout.html", "templates/results.html"}

	templates := &Templates{pages: make(map[string]*template.Template)}
	for _, page := range []string{pageSearch, pageDetail, pageMessage} {
		files := append(append([]string{}, shared...), "templates/"+page+".html")

		parsed, err := template.ParseFS(templateFS, files...)
		if err != nil {
			return nil, fmt.Errorf("web: parse %s template: %w", page, err)
		}
		templates.pages[page] = parsed
	}

	results, err := template.ParseFS(templateFS, "templates/results.html")
	if err != nil {
		return nil, fmt.Errorf("web: parse results template: %w", err)
	}
	templates.results = results

	return templates, nil
}

// RenderResults renders the live results region. It satisfies [search.Renderer].
func (t *Templates) RenderResults(view search.PageView) (string, error) {
	var buffer bytes.Buffer
	if err := t.results.ExecuteTemplate(&buffer, "results", view); err != nil {
		return "", fmt.Errorf("web: render results: %w", err)
	}
	return buffer.String(), nil
}

// render executes a full page into memory so a template failure never
// leaves a half-written response.
func (t *Templates) render(page string, data any) (*bytes.Buffer, error) {
	set, ok := t.pages[page]
	if !ok {
		return nil, fmt.Errorf("web: unknown page %q", page)
	}

	var buffer bytes.Buffer
	if err := set.ExecuteTemplate(&buffer, "layout", data); err != nil {
		return nil, fmt.Errorf("web: render %s: %w", page, err)
	}
	return &buffer, nil
}
