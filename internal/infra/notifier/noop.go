package notifier

import "context"

// NoOp is a notifier that discards every event.
// Used when no webhook is configured.
type NoOp struct{}

// NewNoOp creates a NoOp notifier.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Notify implements Notifier.
func (*NoOp) Notify(context.Context, Event) error {
	return nil
}
