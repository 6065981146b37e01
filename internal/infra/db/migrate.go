package db

import "database/sql"

// MigrateUp creates the articles table and its indexes.
// Statements are idempotent so the migration can run on every boot.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS articles (
    id               TEXT PRIMARY KEY,
    title            TEXT NOT NULL,
    excerpt          TEXT NOT NULL DEFAULT '',
    content          TEXT NOT NULL,
    content_type     VARCHAR(20) NOT NULL,
    target_keywords  JSONB NOT NULL DEFAULT '[]',
    faqs             JSONB NOT NULL DEFAULT '[]',
    word_count       INTEGER NOT NULL DEFAULT 0,
    internal_links   INTEGER NOT NULL DEFAULT 0,
    external_links   INTEGER NOT NULL DEFAULT 0,
    status           VARCHAR(20) NOT NULL,
    pending_since    TIMESTAMPTZ,
    rejection_reason TEXT NOT NULL DEFAULT '',
    published_url    TEXT NOT NULL DEFAULT '',
    links_relaxed    BOOLEAN NOT NULL DEFAULT FALSE,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	indexes := []string{
		// Review queue listing and counts filter on status.
		`CREATE INDEX IF NOT EXISTS idx_articles_status ON articles(status)`,
		// The SLA sweeper orders the queue by how long articles have waited.
		`CREATE INDEX IF NOT EXISTS idx_articles_pending_since ON articles(pending_since) WHERE pending_since IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_articles_updated_at ON articles(updated_at DESC)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	return nil
}

// MigrateDown drops the articles table and its indexes.
// Use with caution: this deletes all article data.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP INDEX IF EXISTS idx_articles_updated_at`,
		`DROP INDEX IF EXISTS idx_articles_pending_since`,
		`DROP INDEX IF EXISTS idx_articles_status`,
		`DROP TABLE IF EXISTS articles`,
	}
	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
