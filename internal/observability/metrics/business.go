package metrics

import (
	"strconv"
	"time"
)

// RecordGeneration records the outcome of one article generation attempt.
// Outcome should be one of: success, invalid_output, timeout, provider_error.
func RecordGeneration(outcome, contentType string, duration time.Duration) {
	GenerationsTotal.WithLabelValues(outcome, contentType).Inc()
	GenerationDuration.Observe(duration.Seconds())
}

// RecordHumanizeFallback records a generation that kept the un-humanized draft.
func RecordHumanizeFallback() {
	HumanizeFallbacksTotal.Inc()
}

// RecordQualityVerdict records a quality gate evaluation result.
func RecordQualityVerdict(score int, canPublish bool) {
	QualityScore.Observe(float64(score))
	QualityVerdictsTotal.WithLabelValues(strconv.FormatBool(canPublish)).Inc()
}

// RecordTransition records a lifecycle status transition.
func RecordTransition(from, to string) {
	StatusTransitionsTotal.WithLabelValues(from, to).Inc()
}

// RecordSweepOutcome records the outcome of one article in an SLA sweep.
// Outcome should be one of: auto_approved, needs_attention, error.
func RecordSweepOutcome(outcome string) {
	SweepOutcomesTotal.WithLabelValues(outcome).Inc()
}

// UpdatePendingArticles updates the review queue size gauge.
func UpdatePendingArticles(count int) {
	PendingArticles.Set(float64(count))
}

// RecordPublishAttempt records a publishing target call.
// Outcome should be "success" or "failure".
func RecordPublishAttempt(success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	PublishAttemptsTotal.WithLabelValues(outcome).Inc()
}
