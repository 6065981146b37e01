package lifecycle

import (
	"fmt"
	"time"

	"copydesk/internal/domain/entity"
	"copydesk/internal/observability/metrics"
	"copydesk/internal/usecase/quality"
)

// Context carries the evidence for a requested transition: who or what allows
// it, and the quality verdict it is based on.
type Context struct {
	// Override marks an explicit, auditable human decision to approve an
	// article despite a failing quality gate.
	Override bool

	// Reason is required when transitioning to rejected.
	Reason string

	// Report is the fresh quality evaluation backing a transition into
	// approved or needs_attention. Stale reports must not be reused; callers
	// re-evaluate at transition time.
	Report *quality.Report

	// Now is the transition timestamp. Zero means time.Now().
	Now time.Time
}

// edges defines every legal transition. Anything absent is illegal.
var edges = map[entity.Status]map[entity.Status]bool{
	entity.StatusDraft: {
		entity.StatusPendingReview: true,
	},
	entity.StatusPendingReview: {
		entity.StatusApproved:       true,
		entity.StatusRejected:       true,
		entity.StatusNeedsAttention: true,
	},
	entity.StatusApproved: {
		entity.StatusScheduled: true,
		entity.StatusPublished: true,
	},
	entity.StatusScheduled: {
		entity.StatusPublished: true,
	},
}

// Allowed reports whether an edge exists from one status to another.
func Allowed(from, to entity.Status) bool {
	return edges[from][to]
}

// Transition moves the article to the target status, enforcing edge guards
// and maintaining the PendingSince and RejectionReason fields. The article is
// mutated in place only when the transition succeeds; persistence is the
// caller's responsibility.
func Transition(article *entity.Article, target entity.Status, tc Context) error {
	from := article.Status
	if !Allowed(from, target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, target)
	}

	now := tc.Now
	if now.IsZero() {
		now = time.Now()
	}

	switch target {
	case entity.StatusApproved:
		if !tc.Override {
			if tc.Report == nil {
				return fmt.Errorf("approve %s: %w", article.ID, ErrMissingQualityReport)
			}
			if !tc.Report.CanPublish {
				return fmt.Errorf("approve %s: %w", article.ID, ErrQualityGateFailed)
			}
		}
	case entity.StatusRejected:
		if tc.Reason == "" {
			return fmt.Errorf("reject %s: %w", article.ID, ErrMissingRejectionReason)
		}
	case entity.StatusNeedsAttention:
		// Reserved for SLA expiry on an article that still fails critical
		// checks. A passing article auto-approves instead.
		if tc.Report == nil {
			return fmt.Errorf("flag %s: %w", article.ID, ErrMissingQualityReport)
		}
		if tc.Report.CanPublish {
			return fmt.Errorf("%w: %s -> %s (article passes quality gate)", ErrInvalidTransition, from, target)
		}
	}

	article.Status = target
	article.UpdatedAt = now

	if target == entity.StatusPendingReview {
		stamp := now
		article.PendingSince = &stamp
	} else if from == entity.StatusPendingReview {
		article.PendingSince = nil
	}
	if target == entity.StatusRejected {
		article.RejectionReason = tc.Reason
	}

	metrics.RecordTransition(string(from), string(target))
	return nil
}
