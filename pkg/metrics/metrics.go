// Package metrics defines the Prometheus metric collectors used by the
// matching service and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	MatchRequestsTotal   *prometheus.CounterVec
	MatchLatency         *prometheus.HistogramVec
	MatchResultsCount    prometheus.Histogram
	CandidatesScored     prometheus.Counter
	PhoneticGatePassed   prometheus.Counter
	PhoneticGateRejected prometheus.Counter
	CatalogSize          prometheus.Gauge
	DictionarySize       prometheus.Gauge
	DictionaryRefreshes  *prometheus.CounterVec
	CircuitBreakerState  *prometheus.GaugeVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed.",
			},
		),
		MatchRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "match_requests_total",
				Help: "Total match requests by method and outcome (ok, invalid, error).",
			},
			[]string{"match_method", "outcome"},
		),
		MatchLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "match_latency_seconds",
				Help:    "Match execution latency in seconds by method.",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"match_method"},
		),
		MatchResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "match_results_count",
				Help:    "Number of results returned per match request.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
			},
		),
		CandidatesScored: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "candidates_scored_total",
				Help: "Total candidate rows scored across all match requests.",
			},
		),
		PhoneticGatePassed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "phonetic_gate_passed_total",
				Help: "Candidates that passed the hybrid phonetic gate.",
			},
		),
		PhoneticGateRejected: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "phonetic_gate_rejected_total",
				Help: "Candidates excluded by the hybrid phonetic gate.",
			},
		),
		CatalogSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "catalog_candidates",
				Help: "Number of candidate rows in the in-memory catalog.",
			},
		),
		DictionarySize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "acronym_dictionary_entries",
				Help: "Number of entries in the active acronym dictionary.",
			},
		),
		DictionaryRefreshes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "acronym_dictionary_refreshes_total",
				Help: "Dictionary refresh attempts by status (ok, error, skipped).",
			},
			[]string{"status"},
		),
		CircuitBreakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "Circuit breaker state (0=closed, 1=open, 2=half-open).",
			},
			[]string{"name"},
		),
	}

	prometheus.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.MatchRequestsTotal,
		m.MatchLatency,
		m.MatchResultsCount,
		m.CandidatesScored,
		m.PhoneticGatePassed,
		m.PhoneticGateRejected,
		m.CatalogSize,
		m.DictionarySize,
		m.DictionaryRefreshes,
		m.CircuitBreakerState,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
