package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks sweep job execution. Per-article sweep outcomes live in the
// shared observability registry; these cover the job as a whole.
type Metrics struct {
	// SweepRunsTotal counts sweep runs by status (success/failure).
	SweepRunsTotal *prometheus.CounterVec

	// SweepDurationSeconds measures how long a full sweep takes.
	SweepDurationSeconds prometheus.Histogram

	// SweepArticlesResolvedTotal counts articles moved out of the review
	// queue by the sweeper.
	SweepArticlesResolvedTotal prometheus.Counter

	// SweepLastSuccessTimestamp is the Unix time of the last successful run.
	SweepLastSuccessTimestamp prometheus.Gauge
}

// NewMetrics creates and registers the sweep job metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		SweepRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_sweep_runs_total",
			Help: "Total number of SLA sweep runs by status (success/failure)",
		}, []string{"status"}),

		SweepDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_sweep_duration_seconds",
			Help:    "Duration of SLA sweep runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 30, 60, 300},
		}),

		SweepArticlesResolvedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_sweep_articles_resolved_total",
			Help: "Total number of articles auto-approved or flagged by the sweeper",
		}),

		SweepLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_sweep_last_success_timestamp",
			Help: "Unix timestamp of the last successful sweep run",
		}),
	}
}

// RecordRun records one sweep run outcome.
func (m *Metrics) RecordRun(success bool, seconds float64, resolved int) {
	status := "success"
	if !success {
		status = "failure"
	}
	m.SweepRunsTotal.WithLabelValues(status).Inc()
	m.SweepDurationSeconds.Observe(seconds)
	if success {
		m.SweepArticlesResolvedTotal.Add(float64(resolved))
		m.SweepLastSuccessTimestamp.SetToCurrentTime()
	}
}
