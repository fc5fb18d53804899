// Package telemetry exposes Prometheus metrics for ranking fetches and
// refresh requests.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusMetrics implements ranking.Metrics and state.RefreshMetrics.
type PrometheusMetrics struct {
	fetches         *prometheus.CounterVec
	fetchDuration   *prometheus.HistogramVec
	toolsReturned   prometheus.Gauge
	sourcesReturned prometheus.Gauge
	malformed       prometheus.Counter
	refreshes       *prometheus.CounterVec
}

// NewPrometheusMetrics registers the collectors with registerer, or with the
// default registerer when nil.
func NewPrometheusMetrics(registerer prometheus.Registerer) *PrometheusMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &PrometheusMetrics{
		fetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cineai_ranking_fetches_total",
				Help: "Total number of ranking fetches by outcome",
			},
			[]string{"outcome"},
		),
		fetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cineai_ranking_fetch_duration_seconds",
				Help:    "Duration of ranking fetches in seconds",
				Buckets: []float64{.25, .5, 1, 2.5, 5, 10, 20, 30, 60},
			},
			[]string{"outcome"},
		),
		toolsReturned: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cineai_ranking_tools",
			Help: "Number of tools in the last successful fetch",
		}),
		sourcesReturned: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cineai_ranking_sources",
			Help: "Number of citation sources in the last successful fetch",
		}),
		malformed: factory.NewCounter(prometheus.CounterOpts{
			Name: "cineai_ranking_malformed_payloads_total",
			Help: "Total number of model answers that were not a JSON object",
		}),
		refreshes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cineai_refresh_requests_total",
				Help: "Total number of refresh requests by result",
			},
			[]string{"result"},
		),
	}
}

// ObserveFetch records one completed fetch.
func (m *PrometheusMetrics) ObserveFetch(outcome string, seconds float64) {
	m.fetches.WithLabelValues(outcome).Inc()
	m.fetchDuration.WithLabelValues(outcome).Observe(seconds)
}

// ObservePayload records the size of a successful fetch.
func (m *PrometheusMetrics) ObservePayload(tools, sources int, malformed bool) {
	m.toolsReturned.Set(float64(tools))
	m.sourcesReturned.Set(float64(sources))
	if malformed {
		m.malformed.Inc()
	}
}

// ObserveRefresh records a refresh request; rejected ones hit a fetch already
// in flight.
func (m *PrometheusMetrics) ObserveRefresh(accepted bool) {
	result := "accepted"
	if !accepted {
		result = "rejected"
	}
	m.refreshes.WithLabelValues(result).Inc()
}

// Handler serves the metrics gathered by gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
