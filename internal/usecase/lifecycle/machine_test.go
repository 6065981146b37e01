package lifecycle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copydesk/internal/domain/entity"
	"copydesk/internal/usecase/lifecycle"
	"copydesk/internal/usecase/quality"
)

func passingReport() *quality.Report {
	return &quality.Report{Score: 100, CanPublish: true}
}

func failingReport() *quality.Report {
	return &quality.Report{Score: 60, CanPublish: false}
}

func pendingArticle(t *testing.T) *entity.Article {
	t.Helper()
	a := &entity.Article{ID: "a1", Status: entity.StatusDraft}
	require.NoError(t, lifecycle.Transition(a, entity.StatusPendingReview, lifecycle.Context{}))
	return a
}

func TestDraftToPendingSetsPendingSince(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	a := &entity.Article{ID: "a1", Status: entity.StatusDraft}

	require.NoError(t, lifecycle.Transition(a, entity.StatusPendingReview, lifecycle.Context{Now: now}))

	assert.Equal(t, entity.StatusPendingReview, a.Status)
	require.NotNil(t, a.PendingSince)
	assert.Equal(t, now, *a.PendingSince)
	assert.NoError(t, a.CheckPendingInvariant())
}

func TestApproveRequiresPassingReport(t *testing.T) {
	a := pendingArticle(t)

	err := lifecycle.Transition(a, entity.StatusApproved, lifecycle.Context{Report: failingReport()})
	require.ErrorIs(t, err, lifecycle.ErrQualityGateFailed)
	assert.Equal(t, entity.StatusPendingReview, a.Status, "failed transition must not mutate the article")
	assert.NotNil(t, a.PendingSince)

	require.NoError(t, lifecycle.Transition(a, entity.StatusApproved, lifecycle.Context{Report: passingReport()}))
	assert.Equal(t, entity.StatusApproved, a.Status)
	assert.Nil(t, a.PendingSince)
	assert.NoError(t, a.CheckPendingInvariant())
}

func TestApproveWithoutReportRequiresOverride(t *testing.T) {
	a := pendingArticle(t)
	err := lifecycle.Transition(a, entity.StatusApproved, lifecycle.Context{})
	assert.ErrorIs(t, err, lifecycle.ErrMissingQualityReport)
}

func TestOverrideBypassesFailingGate(t *testing.T) {
	a := pendingArticle(t)
	require.NoError(t, lifecycle.Transition(a, entity.StatusApproved, lifecycle.Context{
		Report:   failingReport(),
		Override: true,
	}))
	assert.Equal(t, entity.StatusApproved, a.Status)
}

func TestRejectRequiresReason(t *testing.T) {
	a := pendingArticle(t)

	err := lifecycle.Transition(a, entity.StatusRejected, lifecycle.Context{})
	require.ErrorIs(t, err, lifecycle.ErrMissingRejectionReason)

	require.NoError(t, lifecycle.Transition(a, entity.StatusRejected, lifecycle.Context{Reason: "off brand"}))
	assert.Equal(t, entity.StatusRejected, a.Status)
	assert.Equal(t, "off brand", a.RejectionReason)
	assert.Nil(t, a.PendingSince)
}

func TestNeedsAttentionOnlyForFailingArticles(t *testing.T) {
	a := pendingArticle(t)

	err := lifecycle.Transition(a, entity.StatusNeedsAttention, lifecycle.Context{Report: passingReport()})
	require.ErrorIs(t, err, lifecycle.ErrInvalidTransition)

	require.NoError(t, lifecycle.Transition(a, entity.StatusNeedsAttention, lifecycle.Context{Report: failingReport()}))
	assert.Equal(t, entity.StatusNeedsAttention, a.Status)
	assert.Nil(t, a.PendingSince)
}

func TestApprovedEdgesAreUnconditional(t *testing.T) {
	a := pendingArticle(t)
	require.NoError(t, lifecycle.Transition(a, entity.StatusApproved, lifecycle.Context{Report: passingReport()}))

	require.NoError(t, lifecycle.Transition(a, entity.StatusScheduled, lifecycle.Context{}))
	assert.Equal(t, entity.StatusScheduled, a.Status)

	require.NoError(t, lifecycle.Transition(a, entity.StatusPublished, lifecycle.Context{}))
	assert.Equal(t, entity.StatusPublished, a.Status)
}

// Every (state, target) pair not explicitly defined must fail with
// ErrInvalidTransition, and the failure must not change the article.
func TestLifecycleClosure(t *testing.T) {
	legal := map[[2]entity.Status]bool{
		{entity.StatusDraft, entity.StatusPendingReview}:          true,
		{entity.StatusPendingReview, entity.StatusApproved}:       true,
		{entity.StatusPendingReview, entity.StatusRejected}:       true,
		{entity.StatusPendingReview, entity.StatusNeedsAttention}: true,
		{entity.StatusApproved, entity.StatusScheduled}:           true,
		{entity.StatusApproved, entity.StatusPublished}:           true,
		{entity.StatusScheduled, entity.StatusPublished}:          true,
	}

	for _, from := range entity.Statuses {
		for _, to := range entity.Statuses {
			if legal[[2]entity.Status{from, to}] {
				assert.True(t, lifecycle.Allowed(from, to), "%s -> %s should be legal", from, to)
				continue
			}
			assert.False(t, lifecycle.Allowed(from, to), "%s -> %s should be illegal", from, to)

			var since *time.Time
			if from == entity.StatusPendingReview {
				s := time.Now()
				since = &s
			}
			a := &entity.Article{ID: "x", Status: from, PendingSince: since}
			err := lifecycle.Transition(a, to, lifecycle.Context{
				Override: true,
				Reason:   "any",
				Report:   passingReport(),
			})
			require.ErrorIs(t, err, lifecycle.ErrInvalidTransition, "%s -> %s", from, to)
			assert.Equal(t, from, a.Status)
		}
	}
}
