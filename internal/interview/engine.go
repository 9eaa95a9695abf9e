package interview

import (
	"github.com/mkuiper/voiceloop/internal/types"
)

// Engine determines the next unanswered foundation question for a scope.
// It is stateless and side-effect free: the answered set is derived from the
// answers passed in, so concurrent calls need no coordination.
type Engine struct {
	bank []Question
}

// NewEngine creates an engine over the canonical question bank.
func NewEngine() *Engine {
	return &Engine{bank: questionBank}
}

// NextQuestion returns the earliest question in canonical bank order that
// has no answer yet. The second return value is false once every key in the
// bank is answered (the Stop signal). Answers for keys not in the bank are
// ignored, not deleted.
func (e *Engine) NextQuestion(answers []types.FoundationAnswer) (*Question, bool) {
	answered := answeredSet(answers)
	for i := range e.bank {
		if !answered[e.bank[i].Key] {
			q := e.bank[i]
			return &q, true
		}
	}
	return nil, false
}

// Complete reports whether every key in the bank has an answer.
func (e *Engine) Complete(answers []types.FoundationAnswer) bool {
	_, more := e.NextQuestion(answers)
	return !more
}

// UnknownKeys returns the answer keys that are not in the current bank, in
// the order they appear in answers. Callers log these; the engine never
// fails on them.
func (e *Engine) UnknownKeys(answers []types.FoundationAnswer) []string {
	known := make(map[string]bool, len(e.bank))
	for _, q := range e.bank {
		known[q.Key] = true
	}

	var unknown []string
	seen := make(map[string]bool)
	for _, a := range answers {
		if !known[a.QuestionKey] && !seen[a.QuestionKey] {
			unknown = append(unknown, a.QuestionKey)
			seen[a.QuestionKey] = true
		}
	}
	return unknown
}

// answeredSet collects the question keys that have an answer, skipping keys
// the bank does not know.
func answeredSet(answers []types.FoundationAnswer) map[string]bool {
	answered := make(map[string]bool, len(answers))
	for _, a := range answers {
		if _, ok := Lookup(a.QuestionKey); ok {
			answered[a.QuestionKey] = true
		}
	}
	return answered
}
