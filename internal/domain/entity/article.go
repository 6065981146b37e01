// Package entity defines the core domain entities and validation logic for the application.
// It contains the Article entity, its lifecycle status values, content type
// classification, and domain-specific errors.
package entity

import (
	"fmt"
	"time"
)

// ContentType classifies an article by its editorial format.
// Each type carries its own structural requirements (see domain/blueprint).
type ContentType string

const (
	ContentTypeRanking     ContentType = "ranking"
	ContentTypeCareerGuide ContentType = "career_guide"
	ContentTypeListicle    ContentType = "listicle"
	ContentTypeGuide       ContentType = "guide"
	ContentTypeFAQ         ContentType = "faq"
)

// ContentTypes lists all valid content types in a stable order.
var ContentTypes = []ContentType{
	ContentTypeRanking,
	ContentTypeCareerGuide,
	ContentTypeListicle,
	ContentTypeGuide,
	ContentTypeFAQ,
}

// ParseContentType converts a raw string into a ContentType.
// Returns a ValidationError for unknown values.
func ParseContentType(s string) (ContentType, error) {
	ct := ContentType(s)
	for _, known := range ContentTypes {
		if ct == known {
			return ct, nil
		}
	}
	return "", &ValidationError{Field: "contentType", Message: fmt.Sprintf("unknown content type %q", s)}
}

// Valid reports whether the content type is one of the known values.
func (c ContentType) Valid() bool {
	_, err := ParseContentType(string(c))
	return err == nil
}

// Status is the single authoritative lifecycle state of an article.
// All status writes go through the lifecycle package; no other component
// may assign an arbitrary status.
type Status string

const (
	StatusDraft         Status = "draft"
	StatusPendingReview Status = "pending_review"
	StatusApproved      Status = "approved"
	StatusScheduled     Status = "scheduled"
	StatusPublished     Status = "published"
	StatusRejected      Status = "rejected"

	// StatusNeedsAttention marks an article whose review SLA expired while it
	// still failed critical quality checks. It is terminal until a human
	// intervenes; it is never published automatically.
	StatusNeedsAttention Status = "needs_attention"
)

// Statuses lists all valid statuses in a stable order.
var Statuses = []Status{
	StatusDraft,
	StatusPendingReview,
	StatusApproved,
	StatusScheduled,
	StatusPublished,
	StatusRejected,
	StatusNeedsAttention,
}

// ParseStatus converts a raw string into a Status.
// Returns a ValidationError for unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	for _, known := range Statuses {
		if st == known {
			return st, nil
		}
	}
	return "", &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", s)}
}

// Valid reports whether the status is one of the known values.
func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// Terminal reports whether the status ends the article lifecycle.
func (s Status) Terminal() bool {
	return s == StatusPublished || s == StatusRejected || s == StatusNeedsAttention
}

// FAQ is a question/answer pair attached to an article.
// FAQs are both rendered content and a quality signal.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Article represents a generated SEO article moving through the
// generation and approval pipeline.
//
// WordCount, InternalLinkCount and ExternalLinkCount are a cache computed at
// generation time. They are never an independent source of truth: the quality
// gate recomputes them from Content on every evaluation.
type Article struct {
	ID              string
	Title           string
	Excerpt         string
	Content         string // HTML body
	ContentType     ContentType
	TargetKeywords  []string
	FAQs            []FAQ
	WordCount       int
	InternalLinks   int
	ExternalLinks   int
	Status          Status
	PendingSince    *time.Time // non-nil iff Status == StatusPendingReview
	RejectionReason string     // set only on transition to rejected
	// PublishedURL is the public URL assigned by the publishing target. Set
	// once the post exists; published articles with a URL feed the link
	// inventory for future generations.
	PublishedURL string
	// LinksRelaxed records that no internal-link candidates existed at
	// generation time, so the internal-link minimum was lowered to zero.
	// The quality gate must not penalize such an article.
	LinksRelaxed bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CheckPendingInvariant verifies that PendingSince is set exactly when the
// article is in pending_review. Returns a ValidationError on violation.
func (a *Article) CheckPendingInvariant() error {
	inReview := a.Status == StatusPendingReview
	hasStamp := a.PendingSince != nil
	if inReview != hasStamp {
		return &ValidationError{
			Field:   "pendingSince",
			Message: fmt.Sprintf("must be set iff status is pending_review (status=%s, set=%t)", a.Status, hasStamp),
		}
	}
	return nil
}
