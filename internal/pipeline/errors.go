package pipeline

import "errors"

// ErrSuperseded is returned by Generate when a newer Generate call was
// issued while this one's content phase was in flight. The superseded
// result is discarded without committing.
var ErrSuperseded = errors.New("pipeline: generation superseded")

// ValidationError blocks a generation before any external call is
// made. It is user-correctable.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return "provide a topic or a description"
}

// GenerationError is fatal to one generation attempt: the content call
// failed or returned an unusable structure. The document stays empty
// and a single user-visible message is surfaced.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return "Failed to generate presentation content. Please try again."
}

func (e *GenerationError) Unwrap() error { return e.Err }
