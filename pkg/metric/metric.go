package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yumyai/panres/pkg/db"
)

const namespace = "panres"

// Metrics holds the server's collectors.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RateLimited     *prometheus.CounterVec
	StoreNodes      *prometheus.GaugeVec

	registry *prometheus.Registry
}

// New creates the collectors on a private registry, together with Go
// runtime and process metrics.
func New() *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"route", "method", "code"},
		),

		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),

		RateLimited: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "rate_limited_total",
				Help:      "Requests rejected by the rate limiter",
			},
			[]string{"route"},
		),

		StoreNodes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "nodes",
				Help:      "Number of ontology nodes in the store by kind",
			},
			[]string{"kind"},
		),

		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.RateLimited,
		m.StoreNodes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// SetStoreStats publishes the store counts.
func (m *Metrics) SetStoreStats(s db.Stats) {
	m.StoreNodes.WithLabelValues("class").Set(float64(s.Classes))
	m.StoreNodes.WithLabelValues("individual").Set(float64(s.Individuals))
	m.StoreNodes.WithLabelValues("property").Set(float64(s.Properties))
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
