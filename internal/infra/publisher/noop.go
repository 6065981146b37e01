package publisher

import (
	"context"
	"sync"
)

// NoOp records posts without sending them anywhere.
// Used in tests and in deployments with no publishing target configured.
type NoOp struct {
	mu    sync.Mutex
	posts []Post
	err   error
}

// NewNoOp creates a NoOp publisher.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Fail makes subsequent CreatePost calls return err.
func (n *NoOp) Fail(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.err = err
}

// CreatePost implements Publisher.
func (n *NoOp) CreatePost(_ context.Context, post Post) (PostRef, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return PostRef{}, n.err
	}
	n.posts = append(n.posts, post)
	return PostRef{ID: int64(len(n.posts)), URL: ""}, nil
}

// Posts returns the posts received so far.
func (n *NoOp) Posts() []Post {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Post, len(n.posts))
	copy(out, n.posts)
	return out
}
