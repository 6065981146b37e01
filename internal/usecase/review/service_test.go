package review

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copydesk/internal/domain/blueprint"
	"copydesk/internal/domain/entity"
	"copydesk/internal/infra/publisher"
	"copydesk/internal/repository"
	"copydesk/internal/usecase/lifecycle"
)

const testSiteHost = "example.com"

type memoryRepo struct {
	mu       sync.Mutex
	articles map[string]*entity.Article
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{articles: map[string]*entity.Article{}}
}

func (r *memoryRepo) Create(_ context.Context, article *entity.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *article
	r.articles[article.ID] = &clone
	return nil
}

func (r *memoryRepo) Update(_ context.Context, article *entity.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *article
	r.articles[article.ID] = &clone
	return nil
}

func (r *memoryRepo) Get(_ context.Context, id string) (*entity.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	article, ok := r.articles[id]
	if !ok {
		return nil, nil
	}
	clone := *article
	return &clone, nil
}

func (r *memoryRepo) ListByStatus(_ context.Context, status entity.Status) ([]*entity.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Article
	for _, article := range r.articles {
		if article.Status == status {
			clone := *article
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memoryRepo) CountByStatus(ctx context.Context, status entity.Status) (int64, error) {
	list, err := r.ListByStatus(ctx, status)
	return int64(len(list)), err
}

func (r *memoryRepo) ListPublished(context.Context, int) ([]repository.LinkTarget, error) {
	return nil, nil
}

func passingBody() string {
	return "<h2>Overview</h2>" +
		"<p>" + strings.TrimSpace(strings.Repeat("insight ", 900)) + "</p>" +
		`<p><a href="https://example.com/a">a</a> <a href="/b">b</a> ` +
		`<a href="https://stats.gov/report">report</a></p>`
}

func failingBody() string {
	return "<p>far too short</p>"
}

func fourFAQs() []entity.FAQ {
	return []entity.FAQ{
		{Question: "Q1?", Answer: "A1."},
		{Question: "Q2?", Answer: "A2."},
		{Question: "Q3?", Answer: "A3."},
		{Question: "Q4?", Answer: "A4."},
	}
}

func seedArticle(t *testing.T, repo *memoryRepo, status entity.Status, body string, pendingSince *time.Time) *entity.Article {
	t.Helper()
	article := &entity.Article{
		ID:           uuid.NewString(),
		Title:        "Seeded",
		Content:      body,
		ContentType:  entity.ContentTypeGuide,
		FAQs:         fourFAQs(),
		Status:       status,
		PendingSince: pendingSince,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), article))
	return article
}

func pendingSince(hoursAgo float64) *time.Time {
	ts := time.Now().Add(-time.Duration(hoursAgo * float64(time.Hour)))
	return &ts
}

func newTestService(repo *memoryRepo, pub publisher.Publisher) *Service {
	return NewService(
		slog.New(slog.DiscardHandler),
		repo,
		pub,
		nil,
		blueprint.DefaultSet(),
		testSiteHost,
		0,
	)
}

func TestApprove_PassingArticle(t *testing.T) {
	repo := newMemoryRepo()
	article := seedArticle(t, repo, entity.StatusPendingReview, passingBody(), pendingSince(1))
	svc := newTestService(repo, publisher.NewNoOp())

	approved, err := svc.Approve(context.Background(), article.ID, false)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusApproved, approved.Status)
	assert.Nil(t, approved.PendingSince)

	stored, err := repo.Get(context.Background(), article.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, stored.Status)
}

func TestApprove_FailingArticleBlockedWithoutOverride(t *testing.T) {
	repo := newMemoryRepo()
	article := seedArticle(t, repo, entity.StatusPendingReview, failingBody(), pendingSince(1))
	svc := newTestService(repo, publisher.NewNoOp())

	_, err := svc.Approve(context.Background(), article.ID, false)
	assert.ErrorIs(t, err, lifecycle.ErrQualityGateFailed)

	stored, _ := repo.Get(context.Background(), article.ID)
	assert.Equal(t, entity.StatusPendingReview, stored.Status)
}

func TestApprove_OverrideBypassesGate(t *testing.T) {
	repo := newMemoryRepo()
	article := seedArticle(t, repo, entity.StatusPendingReview, failingBody(), pendingSince(1))
	svc := newTestService(repo, publisher.NewNoOp())

	approved, err := svc.Approve(context.Background(), article.ID, true)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, approved.Status)
}

func TestApprove_NotFound(t *testing.T) {
	svc := newTestService(newMemoryRepo(), publisher.NewNoOp())

	_, err := svc.Approve(context.Background(), "missing", false)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestReject_RequiresReason(t *testing.T) {
	repo := newMemoryRepo()
	article := seedArticle(t, repo, entity.StatusPendingReview, passingBody(), pendingSince(1))
	svc := newTestService(repo, publisher.NewNoOp())

	_, err := svc.Reject(context.Background(), article.ID, "")
	assert.ErrorIs(t, err, lifecycle.ErrMissingRejectionReason)

	rejected, err := svc.Reject(context.Background(), article.ID, "off-topic")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRejected, rejected.Status)
	assert.Equal(t, "off-topic", rejected.RejectionReason)
	assert.Nil(t, rejected.PendingSince)
}

func TestBulkApprove_PartialSuccess(t *testing.T) {
	repo := newMemoryRepo()
	good := seedArticle(t, repo, entity.StatusPendingReview, passingBody(), pendingSince(1))
	bad := seedArticle(t, repo, entity.StatusPendingReview, failingBody(), pendingSince(1))
	draft := seedArticle(t, repo, entity.StatusDraft, passingBody(), nil)
	svc := newTestService(repo, publisher.NewNoOp())

	ids := []string{good.ID, bad.ID, draft.ID, "missing"}
	results := svc.BulkApprove(context.Background(), ids, false)

	require.Len(t, results, 4)
	for i, id := range ids {
		assert.Equal(t, id, results[i].ID)
	}
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, lifecycle.ErrQualityGateFailed)
	assert.ErrorIs(t, results[2].Err, lifecycle.ErrInvalidTransition)
	assert.ErrorIs(t, results[3].Err, entity.ErrNotFound)

	stored, _ := repo.Get(context.Background(), good.ID)
	assert.Equal(t, entity.StatusApproved, stored.Status)
}

func TestBulkReject_SharedReason(t *testing.T) {
	repo := newMemoryRepo()
	first := seedArticle(t, repo, entity.StatusPendingReview, passingBody(), pendingSince(1))
	second := seedArticle(t, repo, entity.StatusPendingReview, failingBody(), pendingSince(2))
	svc := newTestService(repo, publisher.NewNoOp())

	results := svc.BulkReject(context.Background(), []string{first.ID, second.ID}, "campaign cancelled")

	for _, result := range results {
		assert.NoError(t, result.Err)
	}
	stored, _ := repo.Get(context.Background(), second.ID)
	assert.Equal(t, entity.StatusRejected, stored.Status)
	assert.Equal(t, "campaign cancelled", stored.RejectionReason)
}

func TestSweepExpired_ResolvesQueue(t *testing.T) {
	repo := newMemoryRepo()
	expiredPassing := seedArticle(t, repo, entity.StatusPendingReview, passingBody(), pendingSince(130))
	expiredFailing := seedArticle(t, repo, entity.StatusPendingReview, failingBody(), pendingSince(125))
	critical := seedArticle(t, repo, entity.StatusPendingReview, passingBody(), pendingSince(100))
	fresh := seedArticle(t, repo, entity.StatusPendingReview, passingBody(), pendingSince(2))
	svc := newTestService(repo, publisher.NewNoOp())

	summary, err := svc.SweepExpired(context.Background(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Checked)
	assert.Equal(t, 1, summary.AutoApproved)
	assert.Equal(t, 1, summary.Flagged)
	assert.Equal(t, 1, summary.Escalated)
	assert.Equal(t, 0, summary.Errors)

	stored, _ := repo.Get(context.Background(), expiredPassing.ID)
	assert.Equal(t, entity.StatusApproved, stored.Status)

	stored, _ = repo.Get(context.Background(), expiredFailing.ID)
	assert.Equal(t, entity.StatusNeedsAttention, stored.Status)
	assert.Nil(t, stored.PendingSince)

	stored, _ = repo.Get(context.Background(), critical.ID)
	assert.Equal(t, entity.StatusPendingReview, stored.Status)

	stored, _ = repo.Get(context.Background(), fresh.ID)
	assert.Equal(t, entity.StatusPendingReview, stored.Status)
}

func TestSweepExpired_Idempotent(t *testing.T) {
	repo := newMemoryRepo()
	seedArticle(t, repo, entity.StatusPendingReview, passingBody(), pendingSince(130))
	svc := newTestService(repo, publisher.NewNoOp())

	first, err := svc.SweepExpired(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, first.AutoApproved)

	// The queue is empty now; a second sweep finds nothing to do.
	second, err := svc.SweepExpired(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Checked)
}

func TestPublish_Immediate(t *testing.T) {
	repo := newMemoryRepo()
	article := seedArticle(t, repo, entity.StatusApproved, passingBody(), nil)
	pub := publisher.NewNoOp()
	svc := newTestService(repo, pub)

	published, err := svc.Publish(context.Background(), article.ID, false)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusPublished, published.Status)
	posts := pub.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, "publish", posts[0].Status)
	assert.Equal(t, article.Title, posts[0].Title)
}

func TestPublish_Scheduled(t *testing.T) {
	repo := newMemoryRepo()
	article := seedArticle(t, repo, entity.StatusApproved, passingBody(), nil)
	pub := publisher.NewNoOp()
	svc := newTestService(repo, pub)

	scheduled, err := svc.Publish(context.Background(), article.ID, true)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusScheduled, scheduled.Status)
	posts := pub.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, "future", posts[0].Status)
}

func TestPublish_TargetFailureKeepsCommittedStatus(t *testing.T) {
	repo := newMemoryRepo()
	article := seedArticle(t, repo, entity.StatusApproved, passingBody(), nil)
	pub := publisher.NewNoOp()
	pub.Fail(errors.New("cms unreachable"))
	svc := newTestService(repo, pub)

	_, err := svc.Publish(context.Background(), article.ID, false)
	assert.Error(t, err)

	stored, _ := repo.Get(context.Background(), article.ID)
	assert.Equal(t, entity.StatusPublished, stored.Status)
}

func TestPublish_PendingArticleRejected(t *testing.T) {
	repo := newMemoryRepo()
	article := seedArticle(t, repo, entity.StatusPendingReview, passingBody(), pendingSince(1))
	svc := newTestService(repo, publisher.NewNoOp())

	_, err := svc.Publish(context.Background(), article.ID, false)
	assert.ErrorIs(t, err, lifecycle.ErrInvalidTransition)
}

func TestClock_PendingArticle(t *testing.T) {
	repo := newMemoryRepo()
	article := seedArticle(t, repo, entity.StatusPendingReview, passingBody(), pendingSince(100))
	svc := newTestService(repo, publisher.NewNoOp())

	report, err := svc.Clock(context.Background(), article.ID, time.Now())
	require.NoError(t, err)

	assert.InDelta(t, 100, report.HoursElapsed, 0.1)
	assert.Equal(t, lifecycle.UrgencyCritical, report.Urgency)
	assert.False(t, report.Expired)
}

func TestClock_NotPending(t *testing.T) {
	repo := newMemoryRepo()
	article := seedArticle(t, repo, entity.StatusApproved, passingBody(), nil)
	svc := newTestService(repo, publisher.NewNoOp())

	_, err := svc.Clock(context.Background(), article.ID, time.Now())
	assert.Error(t, err)
}
