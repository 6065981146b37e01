// Package pipeline orchestrates article generation: prompt construction,
// model calls, output validation, the humanize pass, quality evaluation and
// handoff into the review queue.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"copydesk/internal/domain/blueprint"
	"copydesk/internal/domain/entity"
	"copydesk/internal/infra/generation"
	"copydesk/internal/infra/notifier"
	"copydesk/internal/observability/metrics"
	"copydesk/internal/repository"
	"copydesk/internal/usecase/lifecycle"
	"copydesk/internal/usecase/notify"
	"copydesk/internal/usecase/quality"
)

// Request describes one article to generate.
type Request struct {
	// Title is the operator-chosen title. May be empty when the title
	// strategy generates one.
	Title string

	ContentType    entity.ContentType
	TargetKeywords []string

	// TargetAudience steers tone and depth, e.g. "mid-career engineers".
	// Optional; the prompt omits the audience line when empty.
	TargetAudience string

	// AdditionalContext is free-form operator guidance embedded verbatim in
	// the draft prompt. Optional.
	AdditionalContext string
}

// InventoryProvider supplies published articles as internal-link candidates.
// The article repository satisfies this interface.
type InventoryProvider interface {
	ListPublished(ctx context.Context, limit int) ([]repository.LinkTarget, error)
}

// Service runs the generation pipeline end to end. One call produces at most
// one article: a draft record plus a single status update into pending_review.
// Failed generations persist nothing and are never retried automatically.
type Service struct {
	Repo          repository.ArticleRepository
	Gen           generation.Client
	Inventory     InventoryProvider
	Blueprints    *blueprint.Set
	Titles        TitleStrategy
	Notifications *notify.Service
	Logger        *slog.Logger

	gate *quality.Gate
}

// NewService creates a pipeline service.
func NewService(
	logger *slog.Logger,
	repo repository.ArticleRepository,
	gen generation.Client,
	inventory InventoryProvider,
	blueprints *blueprint.Set,
	titles TitleStrategy,
	notifications *notify.Service,
	siteHost string,
) *Service {
	return &Service{
		Repo:          repo,
		Gen:           gen,
		Inventory:     inventory,
		Blueprints:    blueprints,
		Titles:        titles,
		Notifications: notifications,
		Logger:        logger,
		gate:          quality.NewGate(blueprints, siteHost),
	}
}

// GenerateArticle generates a draft, runs the humanize pass, evaluates the
// quality gate and moves the article into the review queue. On success the
// returned article is in pending_review with a fresh PendingSince stamp.
func (s *Service) GenerateArticle(ctx context.Context, req Request) (*entity.Article, error) {
	start := time.Now()
	contentType := string(req.ContentType)

	if !req.ContentType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownContentType, req.ContentType)
	}
	bp := s.Blueprints.For(req.ContentType)

	title, err := s.Titles.Pick(ctx, s.Gen, req)
	if err != nil {
		metrics.RecordGeneration(outcomeFor(err), contentType, time.Since(start))
		return nil, fmt.Errorf("pick title: %w", err)
	}

	// A failed inventory fetch degrades to relaxed links rather than blocking
	// generation; the relaxation is recorded on the article either way.
	inventory, err := s.Inventory.ListPublished(ctx, inventoryLimit)
	if err != nil {
		s.Logger.Warn("link inventory unavailable, relaxing internal links",
			slog.String("error", err.Error()),
		)
		inventory = nil
	}
	inventory = validTargets(inventory)
	linksRelaxed := len(inventory) == 0

	raw, err := s.Gen.Complete(ctx, BuildDraftPrompt(title, req, bp, inventory), generation.Options{})
	if err != nil {
		metrics.RecordGeneration(outcomeFor(err), contentType, time.Since(start))
		return nil, fmt.Errorf("generate draft: %w", err)
	}

	d, err := parseDraft(raw)
	if err != nil {
		metrics.RecordGeneration("invalid_output", contentType, time.Since(start))
		return nil, err
	}

	content := s.humanize(ctx, d.Content)

	now := time.Now()
	stats := quality.Analyze(content, s.gate.SiteHost)
	article := &entity.Article{
		ID:             uuid.NewString(),
		Title:          d.Title,
		Excerpt:        d.Excerpt,
		Content:        content,
		ContentType:    req.ContentType,
		TargetKeywords: req.TargetKeywords,
		FAQs:           d.FAQs,
		WordCount:      stats.Words,
		InternalLinks:  stats.InternalLinks,
		ExternalLinks:  stats.ExternalLinks,
		Status:         entity.StatusDraft,
		LinksRelaxed:   linksRelaxed,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.Repo.Create(ctx, article); err != nil {
		metrics.RecordGeneration("store_error", contentType, time.Since(start))
		return nil, fmt.Errorf("store draft: %w", err)
	}

	report := s.gate.Evaluate(article)
	metrics.RecordQualityVerdict(report.Score, report.CanPublish)

	if err := lifecycle.Transition(article, entity.StatusPendingReview, lifecycle.Context{Now: now}); err != nil {
		return nil, fmt.Errorf("queue for review: %w", err)
	}
	if err := s.Repo.Update(ctx, article); err != nil {
		metrics.RecordGeneration("store_error", contentType, time.Since(start))
		return nil, fmt.Errorf("store review status: %w", err)
	}

	s.Logger.Info("article generated",
		slog.String("article_id", article.ID),
		slog.String("content_type", contentType),
		slog.Int("quality_score", report.Score),
		slog.Bool("can_publish", report.CanPublish),
		slog.Bool("links_relaxed", linksRelaxed),
	)

	if s.Notifications != nil {
		s.Notifications.Publish(notifier.Event{
			Kind:    notifier.EventEnteredReview,
			Article: article,
			Detail:  fmt.Sprintf("Quality score %d, publishable: %t", report.Score, report.CanPublish),
		})
	}

	metrics.RecordGeneration("success", contentType, time.Since(start))
	return article, nil
}

// Quality reports the current gate verdict for a stored article.
func (s *Service) Quality(ctx context.Context, id string) (*quality.Report, error) {
	article, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load article %s: %w", id, err)
	}
	if article == nil {
		return nil, fmt.Errorf("article %s: %w", id, entity.ErrNotFound)
	}
	report := s.gate.Evaluate(article)
	return &report, nil
}

// humanize runs the stylistic rewrite pass. It never fails the pipeline: on
// any error, or when the rewrite altered headings or links, the original
// draft body is kept and a fallback is recorded.
func (s *Service) humanize(ctx context.Context, content string) string {
	rewritten, err := s.Gen.Complete(ctx, BuildHumanizePrompt(content), generation.Options{})
	if err != nil {
		s.Logger.Warn("humanize pass failed, keeping draft body",
			slog.String("error", err.Error()),
		)
		metrics.RecordHumanizeFallback()
		return content
	}

	before := quality.Analyze(content, s.gate.SiteHost)
	after := quality.Analyze(rewritten, s.gate.SiteHost)
	if after.H2Count != before.H2Count ||
		after.InternalLinks != before.InternalLinks ||
		after.ExternalLinks != before.ExternalLinks {
		s.Logger.Warn("humanize pass altered structure, keeping draft body",
			slog.Int("h2_before", before.H2Count),
			slog.Int("h2_after", after.H2Count),
		)
		metrics.RecordHumanizeFallback()
		return content
	}

	return rewritten
}

// validTargets drops inventory rows whose stored URL would not survive as a
// link. The model is never offered a candidate it must not emit.
func validTargets(targets []repository.LinkTarget) []repository.LinkTarget {
	valid := make([]repository.LinkTarget, 0, len(targets))
	for _, target := range targets {
		if entity.ValidateURL(target.URL) == nil {
			valid = append(valid, target)
		}
	}
	return valid
}

// outcomeFor maps a generation error to a metrics label.
func outcomeFor(err error) string {
	switch {
	case errors.Is(err, generation.ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrMissingTitle), errors.Is(err, ErrUnknownContentType):
		return "invalid_input"
	default:
		return "provider_error"
	}
}
