// Package repository defines persistence interfaces for domain entities.
// Implementations live under internal/infra/adapter/persistence.
package repository

import (
	"context"

	"copydesk/internal/domain/entity"
)

// LinkTarget is a published article exposed as an internal-link candidate.
// The prompt builder embeds these so generated drafts can only link to pages
// that actually exist.
type LinkTarget struct {
	Title   string
	URL     string
	Excerpt string
}

// ArticleRepository provides access to the article store.
// The store guarantees last-write-wins semantics per record; the pipeline
// never relies on cross-record transactions.
type ArticleRepository interface {
	// Create inserts a new article. Create is not idempotent: every call
	// inserts a new record, duplicate-submit suppression is the caller's job.
	Create(ctx context.Context, article *entity.Article) error

	// Update overwrites the stored article with the given snapshot.
	Update(ctx context.Context, article *entity.Article) error

	// Get retrieves an article by ID. Returns (nil, nil) if not found.
	Get(ctx context.Context, id string) (*entity.Article, error)

	// ListByStatus retrieves all articles in the given status, newest first.
	ListByStatus(ctx context.Context, status entity.Status) ([]*entity.Article, error)

	// CountByStatus returns the number of articles in the given status.
	CountByStatus(ctx context.Context, status entity.Status) (int64, error)

	// ListPublished returns up to limit published articles as link targets,
	// newest first. Used to build the link inventory for generation prompts.
	ListPublished(ctx context.Context, limit int) ([]LinkTarget, error)
}
