// Package metrics provides Prometheus metrics for the user search service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "learnr"

// Search outcome labels.
const (
	OutcomeSuccess           = "success"
	OutcomeMissingQuery      = "missing_query"
	OutcomeInvalidSearchType = "invalid_search_type"
	OutcomeDataSourceFailure = "data_source_failure"
	OutcomeError             = "error"
)

// Manager owns a private registry and every collector the service exports.
// A nil *Manager is valid and records nothing.
type Manager struct {
	registry *prometheus.Registry

	searches          *prometheus.CounterVec
	searchDuration    *prometheus.HistogramVec
	candidatesFetched *prometheus.HistogramVec
	suggestions       prometheus.Histogram
	tieDuplicates     prometheus.Counter

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Option configures a Manager.
type Option func(*options)

type options struct {
	namespace        string
	histogramBuckets []float64
	processCollector bool
}

// WithNamespace overrides the metric namespace.
func WithNamespace(ns string) Option {
	return func(o *options) { o.namespace = ns }
}

// WithHistogramBuckets overrides the latency histogram buckets (seconds).
func WithHistogramBuckets(buckets []float64) Option {
	return func(o *options) { o.histogramBuckets = buckets }
}

// WithProcessCollectors registers the Go runtime and process collectors.
func WithProcessCollectors() Option {
	return func(o *options) { o.processCollector = true }
}

// NewManager creates a Manager with its own registry.
func NewManager(opts ...Option) *Manager {
	o := options{
		namespace:        defaultNamespace,
		histogramBuckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	}
	for _, opt := range opts {
		opt(&o)
	}

	reg := prometheus.NewRegistry()
	if o.processCollector {
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	factory := promauto.With(reg)

	return &Manager{
		registry: reg,
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "search",
			Name:      "requests_total",
			Help:      "Searches handled, by search type and outcome.",
		}, []string{"type", "outcome"}),
		searchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Subsystem: "search",
			Name:      "duration_seconds",
			Help:      "Time spent fetching, scoring, merging and ranking one search.",
			Buckets:   o.histogramBuckets,
		}, []string{"type"}),
		candidatesFetched: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Subsystem: "search",
			Name:      "candidates_fetched",
			Help:      "Candidates returned by the data source per fetch.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"field"}),
		suggestions: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Subsystem: "search",
			Name:      "suggestions_returned",
			Help:      "Suggestions returned per successful search.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}),
		tieDuplicates: factory.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "search",
			Name:      "merge_tie_duplicates_total",
			Help:      "Same-identity records kept twice because both copies had equal scores.",
		}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by endpoint, method and status code.",
		}, []string{"endpoint", "method", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by endpoint, method and status code.",
			Buckets:   o.histogramBuckets,
		}, []string{"endpoint", "method", "status"}),
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordSearch counts one search and observes its duration.
func (m *Manager) RecordSearch(searchType, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(searchType, outcome).Inc()
	if outcome == OutcomeSuccess {
		m.searchDuration.WithLabelValues(searchType).Observe(took.Seconds())
	}
}

// RecordCandidates observes how many candidates one fetch returned.
func (m *Manager) RecordCandidates(field string, count int) {
	if m == nil {
		return
	}
	m.candidatesFetched.WithLabelValues(field).Observe(float64(count))
}

// RecordSuggestions observes the size of a returned suggestion list.
func (m *Manager) RecordSuggestions(count int) {
	if m == nil {
		return
	}
	m.suggestions.Observe(float64(count))
}

// AddTieDuplicates counts identities a merge kept twice.
func (m *Manager) AddTieDuplicates(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.tieDuplicates.Add(float64(count))
}

// RecordHTTPRequest counts one HTTP request and observes its latency.
func (m *Manager) RecordHTTPRequest(endpoint, method, status string, took time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(took.Seconds())
}
