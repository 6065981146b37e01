package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"copydesk/internal/resilience/retry"
	"copydesk/pkg/config"
)

// SlackConfig contains configuration for Slack webhook notifications.
type SlackConfig struct {
	// Enabled indicates whether Slack notifications are enabled
	Enabled bool

	// WebhookURL is the Slack Incoming Webhook URL
	WebhookURL string

	// Timeout is the HTTP request timeout for Slack API calls
	Timeout time.Duration
}

// LoadSlackConfig reads Slack settings from the environment.
// The channel is enabled only when SLACK_WEBHOOK_URL is set.
func LoadSlackConfig() SlackConfig {
	url := config.GetEnvString("SLACK_WEBHOOK_URL", "")
	return SlackConfig{
		Enabled:    url != "",
		WebhookURL: url,
		Timeout:    config.GetEnvDuration("SLACK_TIMEOUT", 10*time.Second),
	}
}

// Slack delivers review events to a Slack incoming webhook.
// Deliveries are rate limited to one message per second and retried with
// backoff on transient failures.
type Slack struct {
	config      SlackConfig
	httpClient  *http.Client
	rateLimiter *RateLimiter
	retryConfig retry.Config
}

// NewSlack creates a Slack notifier with the specified configuration.
func NewSlack(cfg SlackConfig) *Slack {
	return &Slack{
		config:      cfg,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		rateLimiter: NewRateLimiter(1.0, 1),
		retryConfig: retry.WebhookConfig(),
	}
}

type slackPayload struct {
	Text string `json:"text"`
}

// headline maps an event to the message shown in the channel.
func headline(event Event) string {
	title := "(unknown article)"
	if event.Article != nil {
		title = event.Article.Title
	}

	var msg string
	switch event.Kind {
	case EventEnteredReview:
		msg = fmt.Sprintf(":inbox_tray: New article awaiting review: *%s*", title)
	case EventSLAEscalated:
		msg = fmt.Sprintf(":warning: Review deadline approaching for *%s*", title)
	case EventAutoApproved:
		msg = fmt.Sprintf(":white_check_mark: Auto-approved after review window expired: *%s*", title)
	case EventNeedsAttention:
		msg = fmt.Sprintf(":rotating_light: Review window expired but quality checks fail: *%s*", title)
	default:
		msg = fmt.Sprintf("Review event %s for *%s*", event.Kind, title)
	}
	if event.Detail != "" {
		msg += "\n" + event.Detail
	}
	return msg
}

// Notify implements Notifier.
func (s *Slack) Notify(ctx context.Context, event Event) error {
	if err := s.rateLimiter.Allow(ctx); err != nil {
		return fmt.Errorf("slack rate limit: %w", err)
	}

	body, err := json.Marshal(slackPayload{Text: headline(event)})
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	return retry.WithBackoff(ctx, s.retryConfig, func() error {
		return s.post(ctx, body)
	})
}

func (s *Slack) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send slack request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &retry.HTTPError{StatusCode: resp.StatusCode, Message: string(detail)}
	}
	return nil
}
