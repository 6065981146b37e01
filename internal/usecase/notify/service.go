// Package notify fans review events out to configured destinations.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"copydesk/internal/infra/notifier"
)

// Service dispatches events to all configured notifiers asynchronously.
// Delivery failures are logged and never surface to the caller; a broken
// webhook must not block article generation or review.
type Service struct {
	notifiers []notifier.Notifier
	logger    *slog.Logger
	timeout   time.Duration

	// sem bounds concurrent deliveries so a slow webhook cannot pile up
	// goroutines during bulk operations.
	sem chan struct{}
	wg  sync.WaitGroup
}

// Option configures a Service.
type Option func(*Service)

// WithTimeout overrides the per-delivery timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// WithMaxConcurrent overrides the delivery concurrency limit.
func WithMaxConcurrent(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.sem = make(chan struct{}, n)
		}
	}
}

// NewService creates a notification service over the given destinations.
func NewService(logger *slog.Logger, notifiers []notifier.Notifier, opts ...Option) *Service {
	s := &Service{
		notifiers: notifiers,
		logger:    logger,
		timeout:   30 * time.Second,
		sem:       make(chan struct{}, 4),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Publish delivers the event to every destination in the background.
// It returns immediately.
func (s *Service) Publish(event notifier.Event) {
	for _, n := range s.notifiers {
		s.wg.Add(1)
		go func(n notifier.Notifier) {
			defer s.wg.Done()

			s.sem <- struct{}{}
			defer func() { <-s.sem }()

			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()

			if err := n.Notify(ctx, event); err != nil {
				s.logger.Warn("notification delivery failed",
					slog.String("kind", string(event.Kind)),
					slog.String("error", err.Error()),
				)
			}
		}(n)
	}
}

// Wait blocks until all in-flight deliveries finish. Called on shutdown.
func (s *Service) Wait() {
	s.wg.Wait()
}
