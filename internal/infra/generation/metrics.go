package generation

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRecorder records per-call generation metrics.
// Abstracting the recorder keeps provider adapters testable without a live
// Prometheus registry.
type MetricsRecorder interface {
	// RecordCall records one provider call with its outcome and duration.
	// Outcome is one of: success, timeout, error, circuit_open.
	RecordCall(provider, outcome string, duration time.Duration)

	// RecordOutputLength records the cleaned output length in runes.
	RecordOutputLength(provider string, length int)
}

// PrometheusMetrics is the production MetricsRecorder.
type PrometheusMetrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	length   *prometheus.HistogramVec
}

var (
	promMetricsInstance *PrometheusMetrics
	promMetricsOnce     sync.Once
)

// NewPrometheusMetrics returns the process-wide recorder. Provider adapters
// share one instance so collectors register once.
func NewPrometheusMetrics() *PrometheusMetrics {
	promMetricsOnce.Do(func() {
		promMetricsInstance = &PrometheusMetrics{
			calls: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "generation_calls_total",
				Help: "Total generation provider calls by outcome",
			}, []string{"provider", "outcome"}),
			duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "generation_call_duration_seconds",
				Help:    "Generation provider call duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
			}, []string{"provider"}),
			length: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "generation_output_length_runes",
				Help:    "Cleaned generation output length in runes",
				Buckets: prometheus.ExponentialBuckets(100, 2, 10),
			}, []string{"provider"}),
		}
	})
	return promMetricsInstance
}

// RecordCall implements MetricsRecorder.
func (m *PrometheusMetrics) RecordCall(provider, outcome string, duration time.Duration) {
	m.calls.WithLabelValues(provider, outcome).Inc()
	m.duration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordOutputLength implements MetricsRecorder.
func (m *PrometheusMetrics) RecordOutputLength(provider string, length int) {
	m.length.WithLabelValues(provider).Observe(float64(length))
}
