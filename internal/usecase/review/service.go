// Package review implements the human side of the pipeline: approvals,
// rejections, bulk actions, the SLA sweep and the publish handoff.
package review

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"copydesk/internal/domain/blueprint"
	"copydesk/internal/domain/entity"
	"copydesk/internal/infra/notifier"
	"copydesk/internal/infra/publisher"
	"copydesk/internal/observability/metrics"
	"copydesk/internal/repository"
	"copydesk/internal/usecase/lifecycle"
	"copydesk/internal/usecase/notify"
	"copydesk/internal/usecase/quality"
)

// bulkConcurrency bounds parallel item processing in bulk operations.
const bulkConcurrency = 8

// Service executes review decisions against the article store.
// Every guarded transition re-evaluates the quality gate at decision time;
// verdicts computed earlier are never trusted.
type Service struct {
	Repo          repository.ArticleRepository
	Pub           publisher.Publisher
	Notifications *notify.Service
	Logger        *slog.Logger

	// SLAHours is the review window. Zero means lifecycle.DefaultSLAHours.
	SLAHours float64

	gate *quality.Gate
}

// NewService creates a review service.
func NewService(
	logger *slog.Logger,
	repo repository.ArticleRepository,
	pub publisher.Publisher,
	notifications *notify.Service,
	blueprints *blueprint.Set,
	siteHost string,
	slaHours float64,
) *Service {
	return &Service{
		Repo:          repo,
		Pub:           pub,
		Notifications: notifications,
		Logger:        logger,
		SLAHours:      slaHours,
		gate:          quality.NewGate(blueprints, siteHost),
	}
}

func (s *Service) load(ctx context.Context, id string) (*entity.Article, error) {
	article, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load article %s: %w", id, err)
	}
	if article == nil {
		return nil, fmt.Errorf("article %s: %w", id, entity.ErrNotFound)
	}
	return article, nil
}

// Approve moves a pending article to approved. The quality gate is evaluated
// fresh; a failing article is approved only with an explicit override, which
// is logged as an auditable decision.
func (s *Service) Approve(ctx context.Context, id string, override bool) (*entity.Article, error) {
	article, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	report := s.gate.Evaluate(article)
	if err := lifecycle.Transition(article, entity.StatusApproved, lifecycle.Context{
		Override: override,
		Report:   &report,
	}); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, article); err != nil {
		return nil, fmt.Errorf("store approval %s: %w", id, err)
	}

	if override && !report.CanPublish {
		s.Logger.Warn("approval override applied",
			slog.String("article_id", id),
			slog.Int("quality_score", report.Score),
		)
	}
	return article, nil
}

// Reject moves a pending article to rejected with the given reason.
func (s *Service) Reject(ctx context.Context, id, reason string) (*entity.Article, error) {
	article, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := lifecycle.Transition(article, entity.StatusRejected, lifecycle.Context{Reason: reason}); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, article); err != nil {
		return nil, fmt.Errorf("store rejection %s: %w", id, err)
	}
	return article, nil
}

// BulkResult reports the outcome for one article in a bulk operation.
type BulkResult struct {
	ID  string
	Err error
}

// BulkApprove applies Approve to each ID independently. One article failing
// its gate or being in the wrong state does not stop the others; the caller
// gets a per-item report in input order.
func (s *Service) BulkApprove(ctx context.Context, ids []string, override bool) []BulkResult {
	return s.bulk(ctx, ids, func(ctx context.Context, id string) error {
		_, err := s.Approve(ctx, id, override)
		return err
	})
}

// BulkReject applies Reject with a shared reason to each ID independently.
func (s *Service) BulkReject(ctx context.Context, ids []string, reason string) []BulkResult {
	return s.bulk(ctx, ids, func(ctx context.Context, id string) error {
		_, err := s.Reject(ctx, id, reason)
		return err
	})
}

func (s *Service) bulk(ctx context.Context, ids []string, apply func(context.Context, string) error) []BulkResult {
	results := make([]BulkResult, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			// Per-item errors land in the report, not in the group: a failed
			// item must not cancel its siblings.
			results[i] = BulkResult{ID: id, Err: apply(ctx, id)}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Clock reports the review clock for a pending article.
func (s *Service) Clock(ctx context.Context, id string, now time.Time) (*lifecycle.ClockReport, error) {
	article, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.PendingSince == nil {
		return nil, fmt.Errorf("article %s is not awaiting review: %w", id, lifecycle.ErrInvalidTransition)
	}
	report := lifecycle.ClockStatus(*article.PendingSince, now, s.SLAHours)
	return &report, nil
}

// SweepSummary aggregates one SLA sweep over the review queue.
type SweepSummary struct {
	Checked      int
	AutoApproved int
	Flagged      int
	Escalated    int
	Errors       int
}

// SweepExpired walks the review queue and resolves every article whose review
// window has expired: a passing article is approved automatically, a failing
// one is flagged needs_attention for a human. Articles in the critical band
// but not yet expired trigger an escalation notification.
func (s *Service) SweepExpired(ctx context.Context, now time.Time) (SweepSummary, error) {
	pending, err := s.Repo.ListByStatus(ctx, entity.StatusPendingReview)
	if err != nil {
		return SweepSummary{}, fmt.Errorf("list review queue: %w", err)
	}
	metrics.UpdatePendingArticles(len(pending))

	var summary SweepSummary
	for _, article := range pending {
		summary.Checked++
		if article.PendingSince == nil {
			// Invariant violation in stored data. Flag it rather than guess.
			s.Logger.Error("pending article without pending_since stamp",
				slog.String("article_id", article.ID),
			)
			summary.Errors++
			continue
		}

		clock := lifecycle.ClockStatus(*article.PendingSince, now, s.SLAHours)
		if !clock.Expired {
			if clock.Urgency == lifecycle.UrgencyCritical {
				summary.Escalated++
				s.notifyEvent(notifier.EventSLAEscalated, article,
					fmt.Sprintf("%.1f hours left in the review window", clock.HoursRemaining))
			}
			continue
		}

		if err := s.resolveExpired(ctx, article, now, clock); err != nil {
			s.Logger.Error("sweep failed to resolve article",
				slog.String("article_id", article.ID),
				slog.String("error", err.Error()),
			)
			metrics.RecordSweepOutcome("error")
			summary.Errors++
			continue
		}
		if article.Status == entity.StatusApproved {
			summary.AutoApproved++
		} else {
			summary.Flagged++
		}
	}

	s.Logger.Info("review queue sweep finished",
		slog.Int("checked", summary.Checked),
		slog.Int("auto_approved", summary.AutoApproved),
		slog.Int("flagged", summary.Flagged),
		slog.Int("escalated", summary.Escalated),
		slog.Int("errors", summary.Errors),
	)
	return summary, nil
}

func (s *Service) resolveExpired(ctx context.Context, article *entity.Article, now time.Time, clock lifecycle.ClockReport) error {
	report := s.gate.Evaluate(article)

	target := entity.StatusApproved
	if !report.CanPublish {
		target = entity.StatusNeedsAttention
	}

	if err := lifecycle.Transition(article, target, lifecycle.Context{Report: &report, Now: now}); err != nil {
		return err
	}
	if err := s.Repo.Update(ctx, article); err != nil {
		return fmt.Errorf("store sweep result: %w", err)
	}

	detail := fmt.Sprintf("Review window expired %.1f hours ago", -clock.HoursRemaining)
	if target == entity.StatusApproved {
		metrics.RecordSweepOutcome("auto_approved")
		s.notifyEvent(notifier.EventAutoApproved, article, detail)
	} else {
		metrics.RecordSweepOutcome("needs_attention")
		s.notifyEvent(notifier.EventNeedsAttention, article, detail)
	}
	return nil
}

// Publish pushes an approved article to the publishing target. With schedule
// set the article lands in scheduled instead of published. The transition is
// committed before the target call; a target failure is surfaced to the
// operator and does not roll the status back.
func (s *Service) Publish(ctx context.Context, id string, schedule bool) (*entity.Article, error) {
	article, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	target := entity.StatusPublished
	if schedule {
		target = entity.StatusScheduled
	}
	if err := lifecycle.Transition(article, target, lifecycle.Context{}); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, article); err != nil {
		return nil, fmt.Errorf("store publish status %s: %w", id, err)
	}

	ref, err := s.Pub.CreatePost(ctx, publisher.FromArticle(article, schedule))
	if err != nil {
		return article, fmt.Errorf("publish %s: %w", id, err)
	}
	if ref.URL != "" {
		article.PublishedURL = ref.URL
		if err := s.Repo.Update(ctx, article); err != nil {
			return article, fmt.Errorf("store published url %s: %w", id, err)
		}
	}

	s.Logger.Info("article published",
		slog.String("article_id", article.ID),
		slog.Int64("post_id", ref.ID),
		slog.Bool("scheduled", schedule),
	)
	return article, nil
}

func (s *Service) notifyEvent(kind notifier.EventKind, article *entity.Article, detail string) {
	if s.Notifications == nil {
		return
	}
	s.Notifications.Publish(notifier.Event{Kind: kind, Article: article, Detail: detail})
}
