// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package web serves the browser-facing pages of chardex.

Routes:

  - GET /                     search page, server-rendered with any ?q= results
  - GET /details/{id}         character detail page
  - GET /live                 WebSocket live search session
  - GET /static/*             embedded assets
  - GET /images/character.png fallback character image
*/
package web

import (
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/taibuivan/chardex/internal/character"
	"github.com/taibuivan/chardex/internal/platform/constants"
	"github.com/taibuivan/chardex/internal/platform/ctxutil"
	"github.com/taibuivan/chardex/internal/platform/metrics"
	requestutil "github.com/taibuivan/chardex/internal/platform/request"
	"github.com/taibuivan/chardex/internal/search"
	"github.com/taibuivan/chardex/internal/urlstate"
)

//go:embed static
var staticFS embed.FS

// MsgDetailFailed is shown when a character could not be loaded for any reason
// other than not existing.
const MsgDetailFailed = "Error fetching character details. Please try again later."

// pageTitle is the document title of the search page.
const pageTitle = "Disney Characters"

// Config tunes the pages and live sessions.
type Config struct {
	PageSize         int
	DebounceInterval time.Duration
	EventsPerSecond  float64
	EventBurst       int
	// AllowedOrigins are accepted for /live in addition to the page's own host.
	AllowedOrigins []string
}

// Handler serves the HTML pages and the live search socket.
type Handler struct {
	characters *character.Service
	controller *search.Controller
	templates  *Templates
	assets     fs.FS
	cfg        Config
	logger     *slog.Logger
	metrics    *metrics.Metrics
	upgrader   websocket.Upgrader
	handoff    *handoff
}

func NewHandler(characters *character.Service, controller *search.Controller, templates *Templates, cfg Config, logger *slog.Logger, m *metrics.Metrics) *Handler {
	assets, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}

	handler := &Handler{
		characters: characters,
		controller: controller,
		templates:  templates,
		assets:     assets,
		cfg:        cfg,
		logger:     logger,
		metrics:    m,
		handoff:    newHandoff(constants.LiveHandoffTTL),
	}

	handler.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     handler.checkOrigin,
	}

	return handler
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.searchPage)
	router.Get("/details/{id}", handler.detailPage)
	router.Get("/live", handler.live)
	router.Get("/images/character.png", handler.fallbackImage)
	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(handler.assets)))
}

// defaults returns the address-bar fallbacks for this server.
func (handler *Handler) defaults() urlstate.Params {
	params := urlstate.DefaultParams
	if handler.cfg.PageSize > 0 {
		params.PageSize = handler.cfg.PageSize
	}
	return params
}

func (handler *Handler) searchPage(writer http.ResponseWriter, request *http.Request) {
	params := urlstate.Read(request.URL.Query(), handler.defaults())
	state := search.Prerender(request.Context(), handler.controller, search.NewState(params))
	view := search.View(state)

	results, err := handler.templates.RenderResults(view)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	var seed string
	if state.Query != "" && !state.Results.Loading() {
		seed = handler.handoff.put(state)
	}

	handler.page(writer, request, http.StatusOK, pageSearch, searchData{
		Title:   pageTitle,
		Live:    true,
		Seed:    seed,
		Search:  view,
		Results: template.HTML(results),
	})
}

func (handler *Handler) detailPage(writer http.ResponseWriter, request *http.Request) {
	characterID, ok := requestutil.ID(request, character.FieldID)
	if !ok {
		handler.message(writer, request, http.StatusNotFound, character.MsgNotFound)
		return
	}

	found, err := handler.characters.Get(request.Context(), characterID)
	switch {
	case errors.Is(err, character.ErrNotFound):
		handler.message(writer, request, http.StatusNotFound, character.MsgNotFound)
		return
	case err != nil:
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "character_detail_error",
			slog.Int("character_id", characterID),
			slog.Any("error", err),
		)
		handler.message(writer, request, http.StatusBadGateway, MsgDetailFailed)
		return
	}

	handler.page(writer, request, http.StatusOK, pageDetail, detailData{
		Title:     found.Name,
		Character: found,
	})
}

func (handler *Handler) fallbackImage(writer http.ResponseWriter, request *http.Request) {
	writer.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFileFS(writer, request, handler.assets, "images/character.png")
}

// # Rendering helpers

func (handler *Handler) message(writer http.ResponseWriter, request *http.Request, status int, text string) {
	handler.page(writer, request, status, pageMessage, messageData{Title: text, Message: text})
}

func (handler *Handler) page(writer http.ResponseWriter, request *http.Request, status int, name string, data any) {
	body, err := handler.templates.render(name, data)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(status)
	_, _ = body.WriteTo(writer)
}

func (handler *Handler) fail(writer http.ResponseWriter, request *http.Request, err error) {
	ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "page_failed",
		slog.String("path", request.URL.Path),
		slog.Any("error", err),
	)
	http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// checkOrigin accepts same-origin upgrades and configured extra origins.
func (handler *Handler) checkOrigin(request *http.Request) bool {
	origin := request.Header.Get(constants.HeaderOrigin)
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if originURL.Host == request.Host {
		return true
	}
	return slices.Contains(handler.cfg.AllowedOrigins, origin)
}
