package synthesis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkuiper/voiceloop/internal/llm"
	"github.com/mkuiper/voiceloop/internal/store"
	"github.com/mkuiper/voiceloop/internal/types"
)

func staticGenerator(output string) llm.GeneratorFunc {
	return func(_ context.Context, _, _ string) (string, error) {
		return output, nil
	}
}

func failingGenerator(err error) llm.GeneratorFunc {
	return func(_ context.Context, _, _ string) (string, error) {
		return "", err
	}
}

func seedScope(t *testing.T, st *store.Memory, scope types.Scope) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, st.UpsertAnswer(ctx, types.FoundationAnswer{
		Scope:       scope,
		QuestionKey: "foundations.business_description",
		AnswerText:  "I help agencies sharpen their positioning.",
	}))
	require.NoError(t, st.AddExample(ctx, scope, types.ExampleRecord{
		Kind:    types.ExampleGood,
		Content: "A post about niching down.",
	}))
}

func TestSynthesize_FirstVersionIsOne(t *testing.T) {
	st := store.NewMemory()
	scope := types.Scope{WorkspaceID: "ws-1"}
	seedScope(t, st, scope)

	synth := New(staticGenerator(validProfileJSON), st)

	profile, err := synth.Synthesize(context.Background(), scope)
	require.NoError(t, err)
	assert.Equal(t, 1, profile.Version)

	stored, err := st.LatestProfile(context.Background(), scope)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 1, stored.Version)
}

func TestSynthesize_SequentialVersionsNeverSkip(t *testing.T) {
	st := store.NewMemory()
	scope := types.Scope{WorkspaceID: "ws-1"}
	seedScope(t, st, scope)

	synth := New(staticGenerator(validProfileJSON), st)
	ctx := context.Background()

	first, err := synth.Synthesize(ctx, scope)
	require.NoError(t, err)
	second, err := synth.Synthesize(ctx, scope)
	require.NoError(t, err)
	third, err := synth.Synthesize(ctx, scope)
	require.NoError(t, err)

	assert.Equal(t, 1, first.Version)
	assert.Equal(t, 2, second.Version)
	assert.Equal(t, 3, third.Version)
}

func TestSynthesize_ScopesAreIndependent(t *testing.T) {
	st := store.NewMemory()
	scopeA := types.Scope{WorkspaceID: "ws-1"}
	scopeB := types.Scope{WorkspaceID: "ws-1", ProjectID: "p-1"}
	seedScope(t, st, scopeA)
	seedScope(t, st, scopeB)

	synth := New(staticGenerator(validProfileJSON), st)
	ctx := context.Background()

	_, err := synth.Synthesize(ctx, scopeA)
	require.NoError(t, err)
	b, err := synth.Synthesize(ctx, scopeB)
	require.NoError(t, err)

	assert.Equal(t, 1, b.Version)
}

func TestSynthesize_MalformedOutputWritesNothing(t *testing.T) {
	st := store.NewMemory()
	scope := types.Scope{WorkspaceID: "ws-1"}
	seedScope(t, st, scope)
	ctx := context.Background()

	good := New(staticGenerator(validProfileJSON), st)
	_, err := good.Synthesize(ctx, scope)
	require.NoError(t, err)

	bad := New(staticGenerator(`{"voiceCard": {}}`), st)
	_, err = bad.Synthesize(ctx, scope)

	var malformed *MalformedProfileError
	require.ErrorAs(t, err, &malformed)

	// The stored profile is untouched.
	stored, err := st.LatestProfile(ctx, scope)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 1, stored.Version)
}

func TestSynthesize_GenerationFailurePropagates(t *testing.T) {
	st := store.NewMemory()
	scope := types.Scope{WorkspaceID: "ws-1"}
	seedScope(t, st, scope)

	genErr := &llm.GenerationUnavailableError{Message: "boundary down"}
	synth := New(failingGenerator(genErr), st)

	_, err := synth.Synthesize(context.Background(), scope)

	var unavailable *llm.GenerationUnavailableError
	require.ErrorAs(t, err, &unavailable)

	stored, storeErr := st.LatestProfile(context.Background(), scope)
	require.NoError(t, storeErr)
	assert.Nil(t, stored)
}

func TestSynthesize_RequiresScope(t *testing.T) {
	synth := New(staticGenerator(validProfileJSON), store.NewMemory())
	_, err := synth.Synthesize(context.Background(), types.Scope{})
	assert.Error(t, err)
}

func TestBuildPrompt_CarriesInputs(t *testing.T) {
	answers := []types.FoundationAnswer{
		{QuestionKey: "foundations.core_offer", AnswerText: "positioning sprints"},
		{QuestionKey: "foundations.business_description", AnswerText: "I help agencies"},
	}
	examples := []types.ExampleRecord{
		{Kind: types.ExampleBad, Content: "Hard-sell post", Notes: "too pushy"},
	}
	previous := &types.Profile{Version: 2, Voice: types.VoiceCard{Tone: "direct"}}

	system, user := BuildPrompt(answers, examples, previous)

	assert.NotEmpty(t, system)
	assert.Contains(t, user, "positioning sprints")
	assert.Contains(t, user, "I help agencies")
	assert.Contains(t, user, "Hard-sell post")
	assert.Contains(t, user, "too pushy")
	assert.Contains(t, user, `"tone": "direct"`)

	// Answers render in canonical bank order regardless of input order.
	descIdx := strings.Index(user, "I help agencies")
	offerIdx := strings.Index(user, "positioning sprints")
	assert.Less(t, descIdx, offerIdx)
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	answers := []types.FoundationAnswer{
		{QuestionKey: "foundations.core_offer", AnswerText: "sprints"},
	}

	sys1, user1 := BuildPrompt(answers, nil, nil)
	sys2, user2 := BuildPrompt(answers, nil, nil)

	assert.Equal(t, sys1, sys2)
	assert.Equal(t, user1, user2)
}

func TestBuildPrompt_ErrorsSurfaceUnwrapped(t *testing.T) {
	genErr := errors.New("plain failure")
	synth := New(failingGenerator(genErr), store.NewMemory())

	_, err := synth.Run(context.Background(), nil, nil, nil)
	assert.ErrorIs(t, err, genErr)
}
