package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"copydesk/internal/domain/entity"
	"copydesk/internal/infra/notifier"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []notifier.Event
	err    error
}

func (r *recordingNotifier) Notify(_ context.Context, event notifier.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestService_Publish_DeliversToAllDestinations(t *testing.T) {
	first := &recordingNotifier{}
	second := &recordingNotifier{}
	svc := NewService(testLogger(), []notifier.Notifier{first, second})

	svc.Publish(notifier.Event{
		Kind:    notifier.EventEnteredReview,
		Article: &entity.Article{ID: "a1", Title: "Test"},
	})
	svc.Wait()

	assert.Equal(t, 1, first.count())
	assert.Equal(t, 1, second.count())
	assert.Equal(t, notifier.EventEnteredReview, first.events[0].Kind)
}

func TestService_Publish_FailureDoesNotAffectOtherDestinations(t *testing.T) {
	failing := &recordingNotifier{err: errors.New("webhook down")}
	healthy := &recordingNotifier{}
	svc := NewService(testLogger(), []notifier.Notifier{failing, healthy})

	svc.Publish(notifier.Event{Kind: notifier.EventSLAEscalated})
	svc.Wait()

	assert.Equal(t, 1, failing.count())
	assert.Equal(t, 1, healthy.count())
}

func TestService_Publish_NoDestinations(t *testing.T) {
	svc := NewService(testLogger(), nil)

	assert.NotPanics(t, func() {
		svc.Publish(notifier.Event{Kind: notifier.EventNeedsAttention})
		svc.Wait()
	})
}

func TestService_Publish_BoundedConcurrency(t *testing.T) {
	dest := &recordingNotifier{}
	svc := NewService(testLogger(), []notifier.Notifier{dest}, WithMaxConcurrent(2))

	for range 20 {
		svc.Publish(notifier.Event{Kind: notifier.EventEnteredReview})
	}
	svc.Wait()

	assert.Equal(t, 20, dest.count())
}
