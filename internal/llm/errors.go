package llm

import "fmt"

// GenerationUnavailableError indicates the external generation boundary was
// unreachable or returned an error. There is no retry at this layer; callers
// decide whether to retry or surface the failure.
type GenerationUnavailableError struct {
	Message string
	Cause   error
}

func (e *GenerationUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation unavailable: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("generation unavailable: %s", e.Message)
}

func (e *GenerationUnavailableError) Unwrap() error {
	return e.Cause
}
