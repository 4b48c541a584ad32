// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/chardex/internal/platform/apperr"
	requestutil "github.com/taibuivan/chardex/internal/platform/request"
)

func withParam(name, value string) *http.Request {
	routeContext := chi.NewRouteContext()
	routeContext.URLParams.Add(name, value)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	return request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, routeContext))
}

/*
TestID verifies numeric identifier extraction.
*/
func TestID(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
		ok    bool
	}{
		{"numeric", "4703", 4703, true},
		{"zero", "0", 0, false},
		{"negative", "-3", 0, false},
		{"alpha", "mickey", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := requestutil.ID(withParam("id", tt.value), "id")
			assert.Equal(t, tt.want, id)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

/*
TestRequiredID verifies that malformed identifiers become validation errors.
*/
func TestRequiredID(t *testing.T) {
	_, err := requestutil.RequiredID(withParam("id", "abc"), "id")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
	assert.Equal(t, "id", ae.Details[0].Field)

	id, err := requestutil.RequiredID(withParam("id", "12"), "id")
	require.NoError(t, err)
	assert.Equal(t, 12, id)
}

func TestParam(t *testing.T) {
	assert.Equal(t, "abc", requestutil.Param(withParam("slug", "abc"), "slug"))
}
