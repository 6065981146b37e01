// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track API request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Pipeline metrics track article generation operations
var (
	// GenerationsTotal counts article generation attempts by outcome.
	// Outcomes: success, invalid_output, timeout, provider_error
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_generations_total",
			Help: "Total number of article generation attempts by outcome",
		},
		[]string{"outcome", "content_type"},
	)

	// GenerationDuration measures end-to-end generation pipeline duration
	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "article_generation_duration_seconds",
			Help:    "End-to-end article generation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		},
	)

	// HumanizeFallbacksTotal counts generations that kept the raw draft
	// because the humanize pass failed or degraded the content
	HumanizeFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "article_humanize_fallbacks_total",
			Help: "Generations that fell back to the un-humanized draft",
		},
	)
)

// Quality gate metrics
var (
	// QualityScore observes quality gate scores (0-100)
	QualityScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quality_gate_score",
			Help:    "Quality gate score distribution",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	// QualityVerdictsTotal counts gate evaluations by publish eligibility
	QualityVerdictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quality_gate_verdicts_total",
			Help: "Quality gate evaluations by publish eligibility",
		},
		[]string{"can_publish"},
	)
)

// Lifecycle and review metrics
var (
	// StatusTransitionsTotal counts lifecycle transitions by edge
	StatusTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_status_transitions_total",
			Help: "Total number of article status transitions",
		},
		[]string{"from", "to"},
	)

	// SweepOutcomesTotal counts SLA sweep outcomes.
	// Outcomes: auto_approved, needs_attention, error
	SweepOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sla_sweep_outcomes_total",
			Help: "Outcomes of SLA expiry sweeps over pending articles",
		},
		[]string{"outcome"},
	)

	// PendingArticles tracks the current size of the review queue
	PendingArticles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "articles_pending_review",
			Help: "Number of articles currently awaiting review",
		},
	)

	// PublishAttemptsTotal counts publishing target calls by outcome
	PublishAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "publish_attempts_total",
			Help: "Total number of publishing target calls by outcome",
		},
		[]string{"outcome"},
	)
)
