// Package publisher pushes approved articles to the publishing target.
package publisher

import (
	"context"

	"copydesk/internal/domain/entity"
)

// Post is the payload sent to the publishing target.
type Post struct {
	Title   string
	Excerpt string
	Content string
	// Status is the target-side status: "publish" for immediate publication,
	// "future" for scheduled posts.
	Status string
}

// PostRef identifies a post created on the publishing target.
type PostRef struct {
	ID  int64
	URL string
}

// Publisher creates posts on an external publishing target.
// CreatePost is not idempotent; the caller transitions the article first and
// treats a publish failure as an operational alert, not a state rollback.
type Publisher interface {
	CreatePost(ctx context.Context, post Post) (PostRef, error)
}

// FromArticle maps an article to a post payload.
func FromArticle(article *entity.Article, scheduled bool) Post {
	status := "publish"
	if scheduled {
		status = "future"
	}
	return Post{
		Title:   article.Title,
		Excerpt: article.Excerpt,
		Content: article.Content,
		Status:  status,
	}
}
