// Package postgres implements the article repository on PostgreSQL through
// database/sql and the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"copydesk/internal/domain/entity"
	"copydesk/internal/repository"
)

type ArticleRepo struct {
	db *sql.DB
}

func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

const articleColumns = `id, title, excerpt, content, content_type, target_keywords, faqs,
       word_count, internal_links, external_links, status, pending_since,
       rejection_reason, published_url, links_relaxed, created_at, updated_at`

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	keywords, faqs, err := encodeJSONFields(article)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}

	const query = `
INSERT INTO articles
       (id, title, excerpt, content, content_type, target_keywords, faqs,
        word_count, internal_links, external_links, status, pending_since,
        rejection_reason, published_url, links_relaxed, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err = repo.db.ExecContext(ctx, query,
		article.ID, article.Title, article.Excerpt, article.Content,
		string(article.ContentType), keywords, faqs,
		article.WordCount, article.InternalLinks, article.ExternalLinks,
		string(article.Status), article.PendingSince,
		article.RejectionReason, article.PublishedURL, article.LinksRelaxed,
		article.CreatedAt, article.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) Update(ctx context.Context, article *entity.Article) error {
	keywords, faqs, err := encodeJSONFields(article)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}

	const query = `
UPDATE articles SET
       title            = $1,
       excerpt          = $2,
       content          = $3,
       content_type     = $4,
       target_keywords  = $5,
       faqs             = $6,
       word_count       = $7,
       internal_links   = $8,
       external_links   = $9,
       status           = $10,
       pending_since    = $11,
       rejection_reason = $12,
       published_url    = $13,
       links_relaxed    = $14,
       updated_at       = $15
WHERE id = $16`
	res, err := repo.db.ExecContext(ctx, query,
		article.Title, article.Excerpt, article.Content,
		string(article.ContentType), keywords, faqs,
		article.WordCount, article.InternalLinks, article.ExternalLinks,
		string(article.Status), article.PendingSince,
		article.RejectionReason, article.PublishedURL, article.LinksRelaxed,
		article.UpdatedAt, article.ID,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: no rows affected")
	}
	return nil
}

func (repo *ArticleRepo) Get(ctx context.Context, id string) (*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE id = $1
LIMIT 1`
	article, err := scanArticle(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return article, nil
}

func (repo *ArticleRepo) ListByStatus(ctx context.Context, status entity.Status) ([]*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE status = $1
ORDER BY updated_at DESC`
	rows, err := repo.db.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("ListByStatus: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, 50)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByStatus: Scan: %w", err)
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

func (repo *ArticleRepo) CountByStatus(ctx context.Context, status entity.Status) (int64, error) {
	const query = `SELECT COUNT(*) FROM articles WHERE status = $1`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query, string(status)).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountByStatus: %w", err)
	}
	return count, nil
}

func (repo *ArticleRepo) ListPublished(ctx context.Context, limit int) ([]repository.LinkTarget, error) {
	// Only articles with a live URL qualify as link candidates.
	const query = `
SELECT title, published_url, excerpt
FROM articles
WHERE status = 'published' AND published_url <> ''
ORDER BY updated_at DESC
LIMIT $1`
	rows, err := repo.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ListPublished: %w", err)
	}
	defer func() { _ = rows.Close() }()

	targets := make([]repository.LinkTarget, 0, limit)
	for rows.Next() {
		var target repository.LinkTarget
		if err := rows.Scan(&target.Title, &target.URL, &target.Excerpt); err != nil {
			return nil, fmt.Errorf("ListPublished: Scan: %w", err)
		}
		targets = append(targets, target)
	}
	return targets, rows.Err()
}

func encodeJSONFields(article *entity.Article) (keywords, faqs []byte, err error) {
	keywords, err = json.Marshal(emptyIfNil(article.TargetKeywords))
	if err != nil {
		return nil, nil, fmt.Errorf("marshal target keywords: %w", err)
	}
	faqList := article.FAQs
	if faqList == nil {
		faqList = []entity.FAQ{}
	}
	faqs, err = json.Marshal(faqList)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal faqs: %w", err)
	}
	return keywords, faqs, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*entity.Article, error) {
	var (
		article     entity.Article
		contentType string
		status      string
		keywords    []byte
		faqs        []byte
		pending     sql.NullTime
	)
	if err := row.Scan(
		&article.ID, &article.Title, &article.Excerpt, &article.Content,
		&contentType, &keywords, &faqs,
		&article.WordCount, &article.InternalLinks, &article.ExternalLinks,
		&status, &pending,
		&article.RejectionReason, &article.PublishedURL, &article.LinksRelaxed,
		&article.CreatedAt, &article.UpdatedAt,
	); err != nil {
		return nil, err
	}

	article.ContentType = entity.ContentType(contentType)
	article.Status = entity.Status(status)
	if pending.Valid {
		ts := pending.Time
		article.PendingSince = &ts
	}
	if len(keywords) > 0 {
		if err := json.Unmarshal(keywords, &article.TargetKeywords); err != nil {
			return nil, fmt.Errorf("unmarshal target keywords: %w", err)
		}
	}
	if len(faqs) > 0 {
		if err := json.Unmarshal(faqs, &article.FAQs); err != nil {
			return nil, fmt.Errorf("unmarshal faqs: %w", err)
		}
	}
	return &article, nil
}
