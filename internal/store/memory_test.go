package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkuiper/voiceloop/internal/types"
)

func TestMemory_UpsertAnswerOverwrites(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	scope := types.Scope{WorkspaceID: "ws-1"}

	first := types.FoundationAnswer{Scope: scope, QuestionKey: "foundations.core_offer", AnswerText: "old"}
	require.NoError(t, m.UpsertAnswer(ctx, first))

	second := first
	second.AnswerText = "new"
	require.NoError(t, m.UpsertAnswer(ctx, second))

	answers, err := m.ListAnswers(ctx, scope)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, "new", answers[0].AnswerText)
}

func TestMemory_AnswersAreScopeIsolated(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	a := types.FoundationAnswer{
		Scope:       types.Scope{WorkspaceID: "ws-1"},
		QuestionKey: "foundations.core_offer",
		AnswerText:  "x",
	}
	require.NoError(t, m.UpsertAnswer(ctx, a))

	other, err := m.ListAnswers(ctx, types.Scope{WorkspaceID: "ws-1", ProjectID: "p-1"})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestMemory_SaveProfileVersionSequence(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	scope := types.Scope{WorkspaceID: "ws-1"}

	latest, err := m.LatestProfile(ctx, scope)
	require.NoError(t, err)
	assert.Nil(t, latest)

	require.NoError(t, m.SaveProfile(ctx, scope, types.Profile{Version: 1}))
	require.NoError(t, m.SaveProfile(ctx, scope, types.Profile{Version: 2}))

	latest, err = m.LatestProfile(ctx, scope)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 2, latest.Version)
}

func TestMemory_SaveProfileRejectsCollisionAndSkip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	scope := types.Scope{WorkspaceID: "ws-1"}

	require.NoError(t, m.SaveProfile(ctx, scope, types.Profile{Version: 1}))

	var conflict *VersionConflictError

	err := m.SaveProfile(ctx, scope, types.Profile{Version: 1})
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 1, conflict.Latest)

	err = m.SaveProfile(ctx, scope, types.Profile{Version: 3})
	assert.ErrorAs(t, err, &conflict)

	// First version must be exactly 1.
	err = m.SaveProfile(ctx, types.Scope{WorkspaceID: "ws-2"}, types.Profile{Version: 2})
	assert.ErrorAs(t, err, &conflict)
}

func TestMemory_ExamplesKeepInsertionOrder(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	scope := types.Scope{WorkspaceID: "ws-1"}

	require.NoError(t, m.AddExample(ctx, scope, types.ExampleRecord{Kind: types.ExampleGood, Content: "a"}))
	require.NoError(t, m.AddExample(ctx, scope, types.ExampleRecord{Kind: types.ExampleBad, Content: "b"}))

	examples, err := m.ListExamples(ctx, scope)
	require.NoError(t, err)
	require.Len(t, examples, 2)
	assert.Equal(t, "a", examples[0].Content)
	assert.Equal(t, "b", examples[1].Content)
}

func TestMemory_DraftRoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	draft := types.GeneratedDraft{
		ID:                 uuid.New(),
		Scope:              types.Scope{WorkspaceID: "ws-1"},
		Text:               "some draft",
		ContentType:        types.ContentLinkedIn,
		LengthMode:         types.LengthShort,
		ProfileVersionUsed: 1,
		CreatedAt:          time.Now().UTC(),
	}
	require.NoError(t, m.SaveDraft(ctx, draft))

	got, err := m.GetDraft(ctx, draft.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, draft, *got)

	missing, err := m.GetDraft(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemory_FeedbackIsAppendOnly(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	draftID := uuid.New()

	first := types.Feedback{ID: uuid.New(), DraftID: draftID, Rating: 2, Notes: "too salesy"}
	second := types.Feedback{ID: uuid.New(), DraftID: draftID, Rating: 4, Notes: "better"}

	require.NoError(t, m.AppendFeedback(ctx, first))
	require.NoError(t, m.AppendFeedback(ctx, second))

	items, err := m.ListFeedback(ctx, draftID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "too salesy", items[0].Notes)
	assert.Equal(t, "better", items[1].Notes)
}
