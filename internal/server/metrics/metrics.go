// Package metrics exposes Prometheus instrumentation for the authentication
// endpoints.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Transport label values.
const (
	TransportGRPC = "grpc"
	TransportHTTP = "http"
)

// Operation label values.
const (
	OperationRegister = "register"
	OperationLogin    = "login"
)

// Metrics holds the collectors of one server instance on a private registry,
// so tests and multiple servers in one process do not collide.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates the collectors and registers them, together with the Go runtime
// and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auxillary_auth_requests_total",
				Help: "Total number of authentication requests by outcome",
			},
			[]string{"operation", "transport", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "auxillary_auth_request_duration_seconds",
				Help:    "Authentication request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "transport"},
		),
	}

	m.registry.MustRegister(
		m.requests,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe records one finished request. outcome is one of the values
// returned by services.Outcome.
func (m *Metrics) Observe(operation, transport, outcome string, d time.Duration) {
	m.requests.WithLabelValues(operation, transport, outcome).Inc()
	m.duration.WithLabelValues(operation, transport).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests and for callers that add their own collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
