// Package metrics holds Prometheus instruments used across the gateway.
// All collectors are registered with the global registry, so importing this
// package is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_http_requests_total",
			Help: "Cumulative number of gateway HTTP requests.",
		},
		[]string{"method", "path", "status"})

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_http_request_duration_seconds",
			Help:    "Gateway HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"})

	RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gateway_http_requests_in_flight",
			Help: "Number of gateway HTTP requests currently being served.",
		})

	BackendFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_backend_failures_total",
			Help: "Cumulative number of failed Backend calls by kind.",
		},
		[]string{"kind"})
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		RequestsInFlight,
		BackendFailuresTotal,
	)
}
