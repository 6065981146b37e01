package generation

import (
	"context"
	"sync"
)

// Scripted is a Client that replays queued responses in order.
// Used in tests and local development where no provider key is available.
type Scripted struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	calls     int
	prompts   []string
}

// NewScripted creates a scripted client. Responses and errors are consumed
// pairwise per call; a nil error with response i means call i succeeds.
func NewScripted(responses []string, errs []error) *Scripted {
	return &Scripted{responses: responses, errs: errs}
}

// Complete implements Client by replaying the next scripted response.
// When the script is exhausted, the last response repeats.
func (s *Scripted) Complete(_ context.Context, prompt string, _ Options) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.calls
	s.calls++
	s.prompts = append(s.prompts, prompt)

	if idx < len(s.errs) && s.errs[idx] != nil {
		return "", s.errs[idx]
	}
	if len(s.responses) == 0 {
		return "", nil
	}
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	return Clean(s.responses[idx]), nil
}

// Calls returns how many times Complete was invoked.
func (s *Scripted) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Prompts returns the prompts received so far, in call order.
func (s *Scripted) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.prompts))
	copy(out, s.prompts)
	return out
}
