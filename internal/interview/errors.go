package interview

import "fmt"

// UnknownQuestionKeyError indicates a stored answer references a key that is
// not in the current question bank (schema drift). The engine ignores such
// answers for completeness purposes; this error exists for callers that want
// to log the drift. It is never fatal.
type UnknownQuestionKeyError struct {
	Key string
}

func (e *UnknownQuestionKeyError) Error() string {
	return fmt.Sprintf("unknown question key: %s", e.Key)
}
