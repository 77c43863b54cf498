package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the service. Instruments are
// registered against an explicit registry so tests can build isolated
// instances.
type Metrics struct {
	Registry *prometheus.Registry

	RequestCounter     *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	RequestsInFlight   prometheus.Gauge
	GenerationCounter  *prometheus.CounterVec
	GenerationDuration prometheus.Histogram
}

// New creates a metrics instance backed by a fresh registry.
func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		RequestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "trivia",
				Subsystem: serviceName,
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "trivia",
				Subsystem: serviceName,
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "trivia",
				Subsystem: serviceName,
				Name:      "requests_in_flight",
				Help:      "Number of HTTP requests currently being processed",
			},
		),
		GenerationCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "trivia",
				Subsystem: serviceName,
				Name:      "generations_total",
				Help:      "Total number of question generation attempts",
			},
			[]string{"outcome"},
		),
		GenerationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "trivia",
				Subsystem: serviceName,
				Name:      "generation_duration_seconds",
				Help:      "Question generation duration in seconds",
				Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
			},
		),
	}
}

// ObserveGeneration records one generation attempt.
func (m *Metrics) ObserveGeneration(outcome string, elapsed time.Duration) {
	m.GenerationCounter.WithLabelValues(outcome).Inc()
	m.GenerationDuration.Observe(elapsed.Seconds())
}
