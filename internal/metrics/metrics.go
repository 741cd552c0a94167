package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors exported on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	RefreshTotal    *prometheus.CounterVec
	RefreshDuration prometheus.Histogram
	RatesSavedTotal prometheus.Counter

	ConversionsTotal *prometheus.CounterVec
}

// NewMetrics registers every collector on a private registry, so several instances can coexist in tests.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		RefreshTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fx_refresh_total",
				Help: "Total number of rate refresh runs by outcome",
			},
			[]string{"status"},
		),

		RefreshDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "fx_refresh_duration_seconds",
				Help:    "Duration of rate refresh runs in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),

		RatesSavedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fx_rates_saved_total",
				Help: "Total number of rate rows persisted by refresh runs",
			},
		),

		ConversionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fx_conversions_total",
				Help: "Total number of currency conversions by outcome",
			},
			[]string{"status"},
		),
	}
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRefresh records one refresh run. Safe to call on a nil receiver.
func (m *Metrics) ObserveRefresh(status string, saved int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RefreshTotal.WithLabelValues(status).Inc()
	m.RefreshDuration.Observe(elapsed.Seconds())
	m.RatesSavedTotal.Add(float64(saved))
}

// ObserveConversion records one conversion. Safe to call on a nil receiver.
func (m *Metrics) ObserveConversion(status string) {
	if m == nil {
		return
	}
	m.ConversionsTotal.WithLabelValues(status).Inc()
}
