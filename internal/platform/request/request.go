// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction so handlers
do not import chi directly.
*/
package requestutil

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/chardex/internal/platform/validate"
	"github.com/taibuivan/chardex/pkg/convert"
)

/*
ID retrieves a named URL parameter holding a numeric identifier.

Returns:
  - int: the parsed identifier
  - bool: false when the parameter is missing or is not a positive integer
*/
func ID(request *http.Request, name string) (int, bool) {
	return convert.ToPositiveInt(chi.URLParam(request, name))
}

/*
RequiredID is like [ID] but reports a malformed identifier as a validation error.
*/
func RequiredID(request *http.Request, name string) (int, error) {
	id, ok := ID(request, name)

	validator := &validate.Validator{}
	if err := validator.Custom(name, !ok, "Must be a positive integer").Err(); err != nil {
		return 0, err
	}

	return id, nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}
