// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package character

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/taibuivan/chardex/internal/platform/constants"
	"github.com/taibuivan/chardex/internal/platform/metrics"
	"github.com/taibuivan/chardex/internal/platform/telemetry"
)

// maxBodyBytes caps a single upstream response.
const maxBodyBytes = 10 << 20

// Endpoint labels used for spans and metrics.
const (
	endpointSearch = "search"
	endpointDetail = "detail"
	endpointPing   = "ping"
)

// HTTPRepository implements [Repository] against the Disney character API.
//
// Each call issues exactly one request. There are no retries.
type HTTPRepository struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
	metrics    *metrics.Metrics
}

// NewHTTPRepository creates a repository rooted at baseURL
// (e.g. "https://api.disneyapi.dev/character"). A zero timeout disables the
// client deadline; callers still bound requests through their context.
func NewHTTPRepository(baseURL string, timeout time.Duration, m *metrics.Metrics) *HTTPRepository {
	return &HTTPRepository{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tracer:     telemetry.Tracer("character"),
		metrics:    m,
	}
}

// Search implements [Repository].
func (repo *HTTPRepository) Search(ctx context.Context, q Query) (Page, error) {
	params := url.Values{}
	params.Set("name", q.Name)
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("pageSize", strconv.Itoa(q.PageSize))

	body, err := repo.get(ctx, endpointSearch, repo.baseURL+"?"+params.Encode(),
		attribute.String("character.name", q.Name),
		attribute.Int("character.page", q.Page),
		attribute.Int("character.page_size", q.PageSize),
	)
	if err != nil {
		return Page{}, err
	}

	return decodeList(body)
}

// Get implements [Repository].
func (repo *HTTPRepository) Get(ctx context.Context, id int) (Character, error) {
	body, err := repo.get(ctx, endpointDetail, repo.baseURL+"/"+strconv.Itoa(id),
		attribute.Int("character.id", id),
	)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			return Character{}, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return Character{}, err
	}

	return decodeDetail(body)
}

// Ping implements [Repository] with the smallest possible list request.
func (repo *HTTPRepository) Ping(ctx context.Context) error {
	_, err := repo.get(ctx, endpointPing, repo.baseURL+"?page=1&pageSize=1")
	return err
}

// get performs one GET and returns the body of a 2xx response.
func (repo *HTTPRepository) get(ctx context.Context, endpoint, target string, attrs ...attribute.KeyValue) (body []byte, err error) {
	ctx, span := repo.tracer.Start(ctx, "character."+endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
	started := time.Now()

	defer func() {
		repo.metrics.ObserveUpstream(endpoint, outcome(err), time.Since(started))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("character: create request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", constants.AppName+"/"+constants.AppVersion)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(request.Header))

	response, err := repo.httpClient.Do(request)
	if err != nil {
		// A cancelled caller is not a network failure.
		if ctx.Err() != nil && errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("character: request: %w", ctx.Err())
		}
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer response.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", response.StatusCode))

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, &HTTPError{
			StatusCode: response.StatusCode,
			Message:    fmt.Sprintf("unexpected status code: %d", response.StatusCode),
		}
	}

	body, err = io.ReadAll(io.LimitReader(response.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrNetwork, err)
	}

	return body, nil
}
