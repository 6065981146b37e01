// Package generation wraps external text-generation providers behind a single
// Client interface. It includes adapters for Claude (Anthropic) and OpenAI
// with circuit breaking, bounded timeouts, output cleaning and Prometheus
// metrics.
//
// The client never retries: a failed or timed-out generation is surfaced to
// the operator, who decides whether to run it again. Retrying an expensive
// generation automatically would double cost without the operator knowing.
package generation

import (
	"context"
	"errors"
	"fmt"
)

// ErrTimeout indicates the provider did not answer within the configured
// deadline. The underlying call is abandoned; a result arriving later is
// discarded, never acted on.
var ErrTimeout = errors.New("generation timed out")

// ProviderError wraps whatever the upstream provider reported: rate limits,
// auth failures, malformed requests, empty responses.
type ProviderError struct {
	Provider string
	Err      error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider error: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying provider error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Options tune a single generation call.
type Options struct {
	// Temperature controls sampling randomness. Zero means provider default.
	Temperature float64

	// MaxTokens bounds the response size. Zero means the configured default.
	MaxTokens int
}

// Client is a single-call text generation interface.
// Complete returns cleaned output (see Clean) or one of ErrTimeout /
// *ProviderError.
type Client interface {
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
}
