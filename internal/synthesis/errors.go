package synthesis

import "fmt"

// MalformedProfileError indicates the external synthesis output failed the
// four-card schema contract. The attempt is fatal: nothing is written, and
// the caller decides whether to retry or alert a human.
type MalformedProfileError struct {
	Message string
	Cause   error
}

func (e *MalformedProfileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed profile: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed profile: %s", e.Message)
}

func (e *MalformedProfileError) Unwrap() error {
	return e.Cause
}
