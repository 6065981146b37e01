package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"copydesk/internal/resilience/circuitbreaker"
	"copydesk/internal/utils/text"
)

// Claude implements Client using Anthropic's Claude API.
// Calls run through a circuit breaker; there is no retry layer, a failed
// generation is the operator's decision to repeat.
type Claude struct {
	client          anthropic.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	config          Config
	metricsRecorder MetricsRecorder
}

// NewClaude creates a Claude generation client with the given API key.
func NewClaude(apiKey string) *Claude {
	cfg := LoadConfig(string(anthropic.ModelClaudeSonnet4_5_20250929))

	slog.Info("initialized claude generation client",
		slog.String("model", cfg.Model),
		slog.Int("max_tokens", cfg.MaxTokens),
		slog.Duration("timeout", cfg.Timeout))

	return &Claude{
		client:          anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.GenerationAPIConfig("claude")),
		config:          cfg,
		metricsRecorder: NewPrometheusMetrics(),
	}
}

// Complete implements Client. Output is cleaned before returning.
func (c *Claude) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	start := time.Now()
	cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return c.doComplete(ctx, prompt, opts)
	})
	duration := time.Since(start)

	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState):
			c.metricsRecorder.RecordCall("claude", "circuit_open", duration)
			slog.Warn("claude circuit breaker open, request rejected",
				slog.String("state", c.circuitBreaker.State().String()))
			return "", &ProviderError{Provider: "claude", Err: err}
		case errors.Is(err, context.DeadlineExceeded):
			c.metricsRecorder.RecordCall("claude", "timeout", duration)
			return "", fmt.Errorf("claude call after %s: %w", duration.Round(time.Millisecond), ErrTimeout)
		default:
			c.metricsRecorder.RecordCall("claude", "error", duration)
			return "", &ProviderError{Provider: "claude", Err: err}
		}
	}

	output := cbResult.(string)
	c.metricsRecorder.RecordCall("claude", "success", duration)
	c.metricsRecorder.RecordOutputLength("claude", text.CountRunes(output))
	return output, nil
}

// doComplete performs the raw API call without breaker handling.
func (c *Claude) doComplete(ctx context.Context, prompt string, opts Options) (string, error) {
	requestID := uuid.New().String()

	maxTokens := c.config.MaxTokens
	if opts.MaxTokens > 0 {
		maxTokens = opts.MaxTokens
	}
	temperature := c.config.Temperature
	if opts.Temperature > 0 {
		temperature = opts.Temperature
	}

	slog.InfoContext(ctx, "starting generation call",
		slog.String("request_id", requestID),
		slog.String("provider", "claude"),
		slog.Int("prompt_length", text.CountRunes(prompt)),
		slog.Int("max_tokens", maxTokens))

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.config.Model),
		MaxTokens:   int64(maxTokens),
		Temperature: anthropic.Float(temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt),
			),
		},
	})
	if err != nil {
		// Distinguish our deadline from provider-side failures so the caller
		// sees ErrTimeout only for true timeouts.
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		return "", fmt.Errorf("claude api returned empty response")
	}
	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", fmt.Errorf("claude api returned unexpected response type")
	}

	output := Clean(textBlock.Text)
	slog.InfoContext(ctx, "generation call completed",
		slog.String("request_id", requestID),
		slog.String("provider", "claude"),
		slog.Int("output_length", text.CountRunes(output)))
	return output, nil
}
