// Package quality implements the publish-eligibility gate for generated
// articles. Evaluation is a pure function over an article snapshot: the same
// content always produces the same verdict, whether the caller is the
// generation pipeline, the review screen or the SLA sweeper.
package quality

import (
	"math"

	"copydesk/internal/domain/blueprint"
	"copydesk/internal/domain/entity"
)

// Rule identifiers, stable across API responses and metrics.
const (
	RuleWordCount     = "word_count"
	RuleInternalLinks = "internal_links"
	RuleExternalLinks = "external_links"
	RuleStructure     = "structure"
	RuleFAQCoverage   = "faq_coverage"
)

// Check is the outcome of a single rule.
type Check struct {
	Pass     bool
	Current  int
	Target   int
	Critical bool
}

// Report is the result of a full gate evaluation.
type Report struct {
	Checks map[string]Check

	// Score is round(100 * passed / total) over all rules.
	Score int

	// CanPublish is the conjunction of all critical checks. Advisory rules
	// lower the score but never block publishing.
	CanPublish bool
}

// Gate evaluates articles against the blueprint table for a given site.
type Gate struct {
	Blueprints *blueprint.Set
	SiteHost   string
}

// NewGate creates a gate bound to a blueprint table and the site's own host.
func NewGate(set *blueprint.Set, siteHost string) *Gate {
	return &Gate{Blueprints: set, SiteHost: siteHost}
}

// Evaluate measures the article body and judges it against the blueprint for
// its content type. Cached counts on the entity are ignored; everything is
// recomputed from Content and FAQs. The evaluation has no side effects.
//
// An article generated with an empty link inventory carries LinksRelaxed, in
// which case the internal-link target drops to zero so the article is not
// penalized for links it never had candidates for.
func (g *Gate) Evaluate(article *entity.Article) Report {
	bp := g.Blueprints.For(article.ContentType)
	stats := Analyze(article.Content, g.SiteHost)

	internalTarget := bp.MinInternalLinks
	if article.LinksRelaxed {
		internalTarget = 0
	}

	checks := map[string]Check{
		RuleWordCount: {
			Pass:     stats.Words >= bp.MinWords,
			Current:  stats.Words,
			Target:   bp.MinWords,
			Critical: true,
		},
		RuleInternalLinks: {
			Pass:     stats.InternalLinks >= internalTarget,
			Current:  stats.InternalLinks,
			Target:   internalTarget,
			Critical: true,
		},
		RuleExternalLinks: {
			Pass:     stats.ExternalLinks >= bp.MinExternalLinks,
			Current:  stats.ExternalLinks,
			Target:   bp.MinExternalLinks,
			Critical: true,
		},
		RuleStructure: {
			Pass:     stats.H2Count >= 1,
			Current:  stats.H2Count,
			Target:   1,
			Critical: true,
		},
		RuleFAQCoverage: {
			Pass:     len(article.FAQs) >= bp.MinFAQs,
			Current:  len(article.FAQs),
			Target:   bp.MinFAQs,
			Critical: false,
		},
	}

	passed := 0
	canPublish := true
	for _, check := range checks {
		if check.Pass {
			passed++
		} else if check.Critical {
			canPublish = false
		}
	}

	return Report{
		Checks:     checks,
		Score:      int(math.Round(100 * float64(passed) / float64(len(checks)))),
		CanPublish: canPublish,
	}
}
