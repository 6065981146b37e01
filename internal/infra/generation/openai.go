package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"copydesk/internal/resilience/circuitbreaker"
	"copydesk/internal/utils/text"
)

// OpenAI implements Client using the OpenAI chat completion API.
type OpenAI struct {
	client          *openai.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	config          Config
	metricsRecorder MetricsRecorder
}

// NewOpenAI creates an OpenAI generation client with the given API key.
func NewOpenAI(apiKey string) *OpenAI {
	cfg := LoadConfig(openai.GPT4o)

	slog.Info("initialized openai generation client",
		slog.String("model", cfg.Model),
		slog.Int("max_tokens", cfg.MaxTokens),
		slog.Duration("timeout", cfg.Timeout))

	return &OpenAI{
		client:          openai.NewClient(apiKey),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.GenerationAPIConfig("openai")),
		config:          cfg,
		metricsRecorder: NewPrometheusMetrics(),
	}
}

// Complete implements Client. Output is cleaned before returning.
func (o *OpenAI) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	start := time.Now()
	cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
		return o.doComplete(ctx, prompt, opts)
	})
	duration := time.Since(start)

	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState):
			o.metricsRecorder.RecordCall("openai", "circuit_open", duration)
			slog.Warn("openai circuit breaker open, request rejected",
				slog.String("state", o.circuitBreaker.State().String()))
			return "", &ProviderError{Provider: "openai", Err: err}
		case errors.Is(err, context.DeadlineExceeded):
			o.metricsRecorder.RecordCall("openai", "timeout", duration)
			return "", fmt.Errorf("openai call after %s: %w", duration.Round(time.Millisecond), ErrTimeout)
		default:
			o.metricsRecorder.RecordCall("openai", "error", duration)
			return "", &ProviderError{Provider: "openai", Err: err}
		}
	}

	output := cbResult.(string)
	o.metricsRecorder.RecordCall("openai", "success", duration)
	o.metricsRecorder.RecordOutputLength("openai", text.CountRunes(output))
	return output, nil
}

// doComplete performs the raw API call without breaker handling.
func (o *OpenAI) doComplete(ctx context.Context, prompt string, opts Options) (string, error) {
	maxTokens := o.config.MaxTokens
	if opts.MaxTokens > 0 {
		maxTokens = opts.MaxTokens
	}
	temperature := o.config.Temperature
	if opts.Temperature > 0 {
		temperature = opts.Temperature
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.config.Model,
		MaxTokens:   maxTokens,
		Temperature: float32(temperature),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai api returned no choices")
	}
	return Clean(resp.Choices[0].Message.Content), nil
}
