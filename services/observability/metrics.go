// Package observability provides Prometheus metrics for the inference
// server and a handler that serves them on the hand-rolled router
// without pulling in net/http's promhttp helpers.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inferd"

// Metrics holds the counters and histogram tracking request volume,
// outcome, and latency per request path, plus a gauge for the
// configured worker count.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ActiveWorkers   prometheus.Gauge
}

// New registers and returns a fresh set of metrics against reg. Tests
// should pass a private prometheus.NewRegistry() to avoid colliding
// with other tests' default-registry registrations.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total requests handled, by route and status.",
			},
			[]string{"route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Request handling latency in seconds, by route.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		ActiveWorkers: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_workers",
				Help:      "Configured worker pool size.",
			},
		),
	}
}

// RecordRequest records one completed request's outcome and latency.
func (m *Metrics) RecordRequest(route string, status int, seconds float64) {
	m.RequestsTotal.WithLabelValues(route, statusClass(status)).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(seconds)
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 200:
		return "2xx"
	default:
		return "unknown"
	}
}
