package types

import "encoding/json"

// FoundationAnswer is one answer to a foundation question. Answers are
// scope-unique per question key; a later answer for the same key overwrites
// the earlier one.
type FoundationAnswer struct {
	Scope       Scope           `json:"scope"`
	QuestionKey string          `json:"question_key"`
	AnswerText  string          `json:"answer_text"`
	AnswerJSON  json.RawMessage `json:"answer_json,omitempty"`
}

// ExampleKind classifies an example record as a positive or negative sample.
type ExampleKind string

// Example kinds
const (
	ExampleGood ExampleKind = "good"
	ExampleBad  ExampleKind = "bad"
)

// ExampleRecord is a piece of example content supplied by the owner as
// synthesis input. The core never mutates example records.
type ExampleRecord struct {
	Kind    ExampleKind `json:"kind"`
	Content string      `json:"content"`
	Notes   string      `json:"notes,omitempty"`
}
