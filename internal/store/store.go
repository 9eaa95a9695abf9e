// Package store provides keyed persistence for answers, examples, profiles,
// drafts and feedback. The core treats storage as a collaborator: it hands
// plain records to a Store and never issues queries of its own.
package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkuiper/voiceloop/internal/types"
)

// Store is the persistence boundary. Profile writes are all-or-nothing and
// version-checked: SaveProfile must reject any version that is not exactly
// one past the latest stored version for the scope, so concurrent writers
// can never collide or skip.
type Store interface {
	// UpsertAnswer stores an answer, overwriting any earlier answer for the
	// same (scope, question key).
	UpsertAnswer(ctx context.Context, answer types.FoundationAnswer) error
	// ListAnswers returns all answers for a scope.
	ListAnswers(ctx context.Context, scope types.Scope) ([]types.FoundationAnswer, error)

	// AddExample appends an example record for a scope.
	AddExample(ctx context.Context, scope types.Scope, example types.ExampleRecord) error
	// ListExamples returns all examples for a scope in insertion order.
	ListExamples(ctx context.Context, scope types.Scope) ([]types.ExampleRecord, error)

	// LatestProfile returns the highest-version profile for a scope, or nil
	// if none exists.
	LatestProfile(ctx context.Context, scope types.Scope) (*types.Profile, error)
	// SaveProfile stores a complete profile under its version. It fails with
	// *VersionConflictError unless profile.Version == latest+1 (or 1 when no
	// profile exists yet).
	SaveProfile(ctx context.Context, scope types.Scope, profile types.Profile) error

	// SaveDraft stores a generated draft. Drafts are immutable.
	SaveDraft(ctx context.Context, draft types.GeneratedDraft) error
	// GetDraft returns a draft by ID, or nil if not found.
	GetDraft(ctx context.Context, id uuid.UUID) (*types.GeneratedDraft, error)

	// AppendFeedback appends a feedback record. Existing feedback is never
	// overwritten.
	AppendFeedback(ctx context.Context, feedback types.Feedback) error
	// ListFeedback returns all feedback for a draft in insertion order.
	ListFeedback(ctx context.Context, draftID uuid.UUID) ([]types.Feedback, error)
}

// VersionConflictError indicates a profile write that would collide with or
// skip past the stored version sequence.
type VersionConflictError struct {
	Scope     types.Scope
	Attempted int
	Latest    int
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("profile version conflict for scope %s: attempted %d, latest is %d", e.Scope.Key(), e.Attempted, e.Latest)
}

// NotFoundError indicates a record that does not exist.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}
