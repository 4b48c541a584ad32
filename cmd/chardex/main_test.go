// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	upstream := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		switch request.URL.Path {
		case "/character":
			query := request.URL.Query()
			switch query.Get("name") {
			case "mickey mouse":
				assert.Equal(t, "2", query.Get("page"))
				assert.Equal(t, "10", query.Get("pageSize"))
				_, _ = io.WriteString(writer, `{"info":{"count":2,"totalPages":3},"data":[`+
					`{"_id":4703,"name":"Mickey Mouse"},{"_id":4704,"name":"Mickey Mouse Jr."}]}`)
			case "broken":
				writer.WriteHeader(http.StatusServiceUnavailable)
			default:
				_, _ = io.WriteString(writer, `{"info":{"count":0,"totalPages":0},"data":[]}`)
			}
		case "/character/12":
			_, _ = io.WriteString(writer, `{"info":{"count":1},"data":{"_id":12,"name":"Ariel",`+
				`"films":["The Little Mermaid"],"sourceUrl":"https://disney.fandom.com/wiki/Ariel"}}`)
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(upstream.Close)
	return upstream
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

/*
TestSearchCommand verifies paging flags reach the API and results are tabulated.
*/
func TestSearchCommand(t *testing.T) {
	upstream := newUpstream(t)

	out, err := execute(t, "search", "  mickey", "mouse ", "--page", "2", "--page-size", "10",
		"--api-url", upstream.URL+"/character")
	require.NoError(t, err)

	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "4703  Mickey Mouse")
	assert.Contains(t, out, "Mickey Mouse Jr.")
	assert.Contains(t, out, "Page 2 of 3")
}

/*
TestSearchCommand_Outcomes verifies empty and failed searches.
*/
func TestSearchCommand_Outcomes(t *testing.T) {
	upstream := newUpstream(t)
	apiURL := upstream.URL + "/character"

	out, err := execute(t, "search", "zzz", "--api-url", apiURL)
	require.NoError(t, err)
	assert.Equal(t, "No characters found.\n", out)

	_, err = execute(t, "search", "broken", "--api-url", apiURL)
	require.Error(t, err)
	assert.Equal(t, "Error fetching Disney characters. Please try again.", err.Error())

	_, err = execute(t, "search", "   ", "--api-url", apiURL)
	assert.Error(t, err)

	_, err = execute(t, "search", "mickey", "--page", "0", "--api-url", apiURL)
	assert.Error(t, err)
}

/*
TestDetailCommand verifies sections, placeholders and the source link.
*/
func TestDetailCommand(t *testing.T) {
	upstream := newUpstream(t)

	out, err := execute(t, "detail", "12", "--api-url", upstream.URL+"/character")
	require.NoError(t, err)

	assert.Contains(t, out, "Ariel (#12)")
	assert.Contains(t, out, "Image: /images/character.png")
	assert.Contains(t, out, "Films\n  - The Little Mermaid")
	assert.Contains(t, out, "TV Shows\n  No TV shows available.")
	assert.Contains(t, out, "Learn More: https://disney.fandom.com/wiki/Ariel")
}

/*
TestDetailCommand_Failures verifies bad ids and missing characters.
*/
func TestDetailCommand_Failures(t *testing.T) {
	upstream := newUpstream(t)
	apiURL := upstream.URL + "/character"

	_, err := execute(t, "detail", "abc", "--api-url", apiURL)
	assert.EqualError(t, err, `invalid character id "abc"`)

	_, err = execute(t, "detail", "99", "--api-url", apiURL)
	assert.EqualError(t, err, "Character not found.")
}

/*
TestVersionCommand verifies the short version output.
*/
func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)
}
