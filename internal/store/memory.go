package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mkuiper/voiceloop/internal/types"
)

// Memory is an in-memory Store used by the CLI and by tests. One mutex
// guards all maps; the version check-and-swap in SaveProfile therefore runs
// atomically.
type Memory struct {
	mu       sync.Mutex
	answers  map[string]map[string]types.FoundationAnswer // scope key -> question key -> answer
	examples map[string][]types.ExampleRecord
	profiles map[string][]types.Profile // ordered by version
	drafts   map[uuid.UUID]types.GeneratedDraft
	feedback map[uuid.UUID][]types.Feedback
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		answers:  make(map[string]map[string]types.FoundationAnswer),
		examples: make(map[string][]types.ExampleRecord),
		profiles: make(map[string][]types.Profile),
		drafts:   make(map[uuid.UUID]types.GeneratedDraft),
		feedback: make(map[uuid.UUID][]types.Feedback),
	}
}

// UpsertAnswer stores an answer, overwriting any earlier answer for the key.
func (m *Memory) UpsertAnswer(_ context.Context, answer types.FoundationAnswer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := answer.Scope.Key()
	if m.answers[key] == nil {
		m.answers[key] = make(map[string]types.FoundationAnswer)
	}
	m.answers[key][answer.QuestionKey] = answer
	return nil
}

// ListAnswers returns all answers for a scope.
func (m *Memory) ListAnswers(_ context.Context, scope types.Scope) ([]types.FoundationAnswer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	byKey := m.answers[scope.Key()]
	out := make([]types.FoundationAnswer, 0, len(byKey))
	for _, a := range byKey {
		out = append(out, a)
	}
	return out, nil
}

// AddExample appends an example record for a scope.
func (m *Memory) AddExample(_ context.Context, scope types.Scope, example types.ExampleRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := scope.Key()
	m.examples[key] = append(m.examples[key], example)
	return nil
}

// ListExamples returns all examples for a scope in insertion order.
func (m *Memory) ListExamples(_ context.Context, scope types.Scope) ([]types.ExampleRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	src := m.examples[scope.Key()]
	out := make([]types.ExampleRecord, len(src))
	copy(out, src)
	return out, nil
}

// LatestProfile returns the highest-version profile for a scope, or nil.
func (m *Memory) LatestProfile(_ context.Context, scope types.Scope) (*types.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	versions := m.profiles[scope.Key()]
	if len(versions) == 0 {
		return nil, nil
	}
	latest := versions[len(versions)-1]
	return &latest, nil
}

// SaveProfile stores a profile if its version is exactly latest+1.
func (m *Memory) SaveProfile(_ context.Context, scope types.Scope, profile types.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := scope.Key()
	versions := m.profiles[key]

	latest := 0
	if len(versions) > 0 {
		latest = versions[len(versions)-1].Version
	}
	if profile.Version != latest+1 {
		return &VersionConflictError{Scope: scope, Attempted: profile.Version, Latest: latest}
	}

	m.profiles[key] = append(versions, profile)
	return nil
}

// SaveDraft stores a generated draft.
func (m *Memory) SaveDraft(_ context.Context, draft types.GeneratedDraft) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.drafts[draft.ID] = draft
	return nil
}

// GetDraft returns a draft by ID, or nil if not found.
func (m *Memory) GetDraft(_ context.Context, id uuid.UUID) (*types.GeneratedDraft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	draft, ok := m.drafts[id]
	if !ok {
		return nil, nil
	}
	return &draft, nil
}

// AppendFeedback appends a feedback record.
func (m *Memory) AppendFeedback(_ context.Context, feedback types.Feedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.feedback[feedback.DraftID] = append(m.feedback[feedback.DraftID], feedback)
	return nil
}

// ListFeedback returns all feedback for a draft in insertion order.
func (m *Memory) ListFeedback(_ context.Context, draftID uuid.UUID) ([]types.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	src := m.feedback[draftID]
	out := make([]types.Feedback, len(src))
	copy(out, src)
	return out, nil
}
