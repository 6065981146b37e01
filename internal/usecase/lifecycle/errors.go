// Package lifecycle enforces the article status state machine and the
// review-deadline clock. It is the only component allowed to write Status;
// screens and services request transitions, they never assign statuses.
package lifecycle

import "errors"

// Sentinel errors for lifecycle operations.
var (
	// ErrInvalidTransition indicates an attempt to move an article along an
	// edge the state machine does not define. This is a usage error and is
	// never silently clamped to a nearby valid state.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrQualityGateFailed indicates an approval was requested for an article
	// whose fresh quality evaluation reported it unpublishable, without an
	// explicit override.
	ErrQualityGateFailed = errors.New("quality gate failed")

	// ErrMissingRejectionReason indicates a rejection without a reason.
	ErrMissingRejectionReason = errors.New("rejection requires a reason")

	// ErrMissingQualityReport indicates a guarded transition was requested
	// without a fresh quality evaluation attached.
	ErrMissingQualityReport = errors.New("transition requires a quality report")
)
