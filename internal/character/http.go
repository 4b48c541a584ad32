// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package character

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/chardex/internal/platform/apperr"
	requestutil "github.com/taibuivan/chardex/internal/platform/request"
	"github.com/taibuivan/chardex/internal/platform/respond"
	"github.com/taibuivan/chardex/pkg/pagination"
)

// Handler serves the read-only character JSON API.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listCharacters)
	router.Get("/{id}", handler.getCharacter)
}

func (handler *Handler) listCharacters(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	query := Query{
		Name:     request.URL.Query().Get(FieldName),
		Page:     paginationParams.Page,
		PageSize: paginationParams.PageSize,
	}

	page, err := handler.service.Search(request.Context(), query)
	if err != nil {
		respond.Error(writer, request, apiError(err))
		return
	}

	respond.Paginated(writer, page.Characters,
		pagination.NewMeta(query.Page, query.PageSize, page.Count, page.TotalPages))
}

func (handler *Handler) getCharacter(writer http.ResponseWriter, request *http.Request) {
	characterID, err := requestutil.RequiredID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	character, err := handler.service.Get(request.Context(), characterID)
	if err != nil {
		respond.Error(writer, request, apiError(err))
		return
	}
	respond.OK(writer, character)
}

// apiError maps repository failures onto the API error envelope.
func apiError(err error) error {
	if apperr.IsAppError(err) {
		return err
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return apperr.NotFound("Character")
	case errors.Is(err, ErrNetwork):
		return apperr.ServiceUnavailable(MsgNetwork, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return apperr.Internal(err)
	default:
		return apperr.BadGateway(Message(err), err)
	}
}
