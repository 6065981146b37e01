package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"copydesk/internal/domain/entity"
	"copydesk/internal/observability/metrics"
	"copydesk/internal/resilience/circuitbreaker"
	"copydesk/pkg/config"
)

// WordPressConfig contains configuration for the WordPress REST client.
type WordPressConfig struct {
	// BaseURL is the site root, e.g. https://blog.example.com
	BaseURL string

	// Username is the WordPress account owning the application password.
	Username string

	// AppPassword is a WordPress application password.
	AppPassword string

	// Timeout bounds a single REST call.
	Timeout time.Duration
}

// Validate checks the configuration for usable values.
func (c *WordPressConfig) Validate() error {
	if err := entity.ValidateURL(c.BaseURL); err != nil {
		return fmt.Errorf("base URL: %w", err)
	}
	if c.Username == "" || c.AppPassword == "" {
		return fmt.Errorf("username and application password are required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}

// LoadWordPressConfig loads WordPress settings from the environment.
//
// Environment variables:
//   - WORDPRESS_BASE_URL: site root URL
//   - WORDPRESS_USERNAME: account owning the application password
//   - WORDPRESS_APP_PASSWORD: application password
//   - WORDPRESS_TIMEOUT: per-call deadline (default: 30s)
func LoadWordPressConfig() WordPressConfig {
	return WordPressConfig{
		BaseURL:     config.GetEnvString("WORDPRESS_BASE_URL", ""),
		Username:    config.GetEnvString("WORDPRESS_USERNAME", ""),
		AppPassword: config.GetEnvString("WORDPRESS_APP_PASSWORD", ""),
		Timeout:     config.GetEnvDuration("WORDPRESS_TIMEOUT", 30*time.Second),
	}
}

// WordPress publishes posts through the WordPress REST API using application
// password authentication. Calls run behind a circuit breaker so a dead site
// fails fast during bulk publishing.
type WordPress struct {
	config     WordPressConfig
	httpClient *http.Client
	breaker    *circuitbreaker.CircuitBreaker
}

// NewWordPress creates a WordPress publisher.
func NewWordPress(cfg WordPressConfig) (*WordPress, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("wordpress config: %w", err)
	}
	return &WordPress{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    circuitbreaker.New(circuitbreaker.PublishAPIConfig()),
	}, nil
}

type wpPostRequest struct {
	Title   string `json:"title"`
	Excerpt string `json:"excerpt,omitempty"`
	Content string `json:"content"`
	Status  string `json:"status"`
}

type wpPostResponse struct {
	ID   int64  `json:"id"`
	Link string `json:"link"`
}

// CreatePost implements Publisher.
func (w *WordPress) CreatePost(ctx context.Context, post Post) (PostRef, error) {
	result, err := w.breaker.Execute(func() (any, error) {
		return w.createPost(ctx, post)
	})
	metrics.RecordPublishAttempt(err == nil)
	if err != nil {
		return PostRef{}, err
	}
	return result.(PostRef), nil
}

func (w *WordPress) createPost(ctx context.Context, post Post) (PostRef, error) {
	body, err := json.Marshal(wpPostRequest{
		Title:   post.Title,
		Excerpt: post.Excerpt,
		Content: post.Content,
		Status:  post.Status,
	})
	if err != nil {
		return PostRef{}, fmt.Errorf("marshal post: %w", err)
	}

	endpoint := strings.TrimRight(w.config.BaseURL, "/") + "/wp-json/wp/v2/posts"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return PostRef{}, fmt.Errorf("build publish request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(w.config.Username, w.config.AppPassword)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return PostRef{}, fmt.Errorf("send publish request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return PostRef{}, fmt.Errorf("publish rejected: status %d: %s", resp.StatusCode, string(detail))
	}

	var created wpPostResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return PostRef{}, fmt.Errorf("decode publish response: %w", err)
	}
	return PostRef{ID: created.ID, URL: created.Link}, nil
}
