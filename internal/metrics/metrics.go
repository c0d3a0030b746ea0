// Package metrics provides Prometheus instrumentation for the API endpoints and the documents they render.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects per-endpoint request metrics. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	buckets  []float64
	registry prometheus.Registerer

	documents *prometheus.CounterVec
}

// New creates a Metrics instance registering its collectors in registry.
func New(registry prometheus.Registerer) *Metrics {
	return &Metrics{
		// Document rendering is in-memory; anything above a second is suspicious. Max of 10.24.
		buckets:  prometheus.ExponentialBuckets(0.005, 2, 12),
		registry: registry,
		documents: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "documents_rendered_total",
				Help: "Tracks the number of documents rendered, by kind.",
			}, []string{"kind"},
		),
	}
}

// Wrap instruments handler under handlerName. Each name may be wrapped once
// per registry.
func (m *Metrics) Wrap(handlerName string, handler http.Handler) http.Handler {
	if m == nil {
		return handler
	}
	reg := prometheus.WrapRegistererWith(prometheus.Labels{"handler": handlerName}, m.registry)
	labels := []string{"method", "code"}

	requestsTotal := promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_endpoint_requests_total",
			Help: "Tracks the number of HTTP requests to the endpoint.",
		}, labels,
	)
	requestDuration := promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_endpoint_request_duration_seconds",
			Help:    "Tracks the latencies for HTTP requests to the endpoint.",
			Buckets: m.buckets,
		},
		labels,
	)
	requestSize := promauto.With(reg).NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "http_endpoint_request_size_bytes",
			Help: "Tracks the size of HTTP requests to the endpoint.",
		},
		labels,
	)

	return promhttp.InstrumentHandlerCounter(
		requestsTotal,
		promhttp.InstrumentHandlerDuration(
			requestDuration,
			promhttp.InstrumentHandlerRequestSize(requestSize, handler),
		),
	)
}

// DocumentRendered counts one successfully rendered document of kind.
func (m *Metrics) DocumentRendered(kind string) {
	if m == nil {
		return
	}
	m.documents.WithLabelValues(kind).Inc()
}

// Handler exposes the collectors gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
