// Package notifier provides webhook delivery for editorial review events.
// Implementations are thin transports; routing, concurrency and circuit
// breaking live in the notify use case.
package notifier

import (
	"context"

	"copydesk/internal/domain/entity"
)

// EventKind identifies what happened to an article in the review workflow.
type EventKind string

const (
	// EventEnteredReview fires when a freshly generated article lands in the
	// review queue.
	EventEnteredReview EventKind = "entered_review"

	// EventSLAEscalated fires when the review clock crosses into the
	// critical band.
	EventSLAEscalated EventKind = "sla_escalated"

	// EventAutoApproved fires when the sweeper approves an expired article
	// that passed the quality gate.
	EventAutoApproved EventKind = "auto_approved"

	// EventNeedsAttention fires when the sweeper flags an expired article
	// that still fails critical checks.
	EventNeedsAttention EventKind = "needs_attention"
)

// Event is a review workflow notification.
type Event struct {
	Kind    EventKind
	Article *entity.Article
	// Detail carries extra human-readable context, e.g. hours overdue.
	Detail string
}

// Notifier delivers a single event to one destination.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}
