// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics exposes Prometheus instrumentation for chardex.

Metrics collected:

  - chardex_http_requests_total: served requests by method, route and status
  - chardex_http_request_duration_seconds: served request latency by method and route
  - chardex_upstream_requests_total: upstream API calls by endpoint and outcome
  - chardex_upstream_request_duration_seconds: upstream latency by endpoint
  - chardex_search_outcomes_total: controller outcomes by status
  - chardex_live_sessions: currently connected live search sessions
  - chardex_live_events_total: inbound live events by type
  - chardex_stale_results_total: fetch results discarded because a newer fetch superseded them

All recording methods are nil-safe so that tests and the CLI can run without a registry.
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "chardex"

// Metrics holds the registered collectors.
type Metrics struct {
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	searchOutcomes   *prometheus.CounterVec
	liveSessions     prometheus.Gauge
	liveEvents       *prometheus.CounterVec
	staleResults     prometheus.Counter
}

// New registers the collectors with registry.
func New(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests served",
		}, []string{"method", "route", "status"}),

		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		upstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "upstream_requests_total",
			Help:      "Total number of character API requests",
		}, []string{"endpoint", "outcome"}),

		upstreamDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Character API request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),

		searchOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "search_outcomes_total",
			Help:      "Character searches by resulting status",
		}, []string{"status"}),

		liveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "live_sessions",
			Help:      "Number of connected live search sessions",
		}),

		liveEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "live_events_total",
			Help:      "Inbound live search events by type",
		}, []string{"type"}),

		staleResults: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "stale_results_total",
			Help:      "Search results discarded because a newer search superseded them",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// # Recording

// ObserveHTTP records one served request. route is the matched pattern, not the raw path.
func (m *Metrics) ObserveHTTP(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveUpstream records one upstream API call.
func (m *Metrics) ObserveUpstream(endpoint, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
	m.upstreamDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// SearchOutcome records the terminal status of one search.
func (m *Metrics) SearchOutcome(status string) {
	if m == nil {
		return
	}
	m.searchOutcomes.WithLabelValues(status).Inc()
}

// SessionOpened records a new live session.
func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.liveSessions.Inc()
}

// SessionClosed records a finished live session.
func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.liveSessions.Dec()
}

// LiveEvent records one inbound live event.
func (m *Metrics) LiveEvent(kind string) {
	if m == nil {
		return
	}
	m.liveEvents.WithLabelValues(kind).Inc()
}

// StaleResult records a discarded out-of-order result.
func (m *Metrics) StaleResult() {
	if m == nil {
		return
	}
	m.staleResults.Inc()
}
