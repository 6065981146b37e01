package pipeline

import "errors"

var (
	// ErrInvalidOutput indicates the model response did not satisfy the draft
	// contract (malformed JSON, empty title, or a body below the size floor).
	// Nothing is persisted and the call is not retried.
	ErrInvalidOutput = errors.New("model output does not satisfy the draft contract")

	// ErrMissingTitle indicates a human-chosen title was required but absent.
	ErrMissingTitle = errors.New("title is required")

	// ErrUnknownContentType indicates the request named a content type with no
	// blueprint.
	ErrUnknownContentType = errors.New("unknown content type")
)
