// Package synthesis turns foundation answers and example content into a new
// versioned four-card profile via one external generation call with a strict
// output contract.
package synthesis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mkuiper/voiceloop/internal/interview"
	"github.com/mkuiper/voiceloop/internal/llm"
	"github.com/mkuiper/voiceloop/internal/prompts"
	"github.com/mkuiper/voiceloop/internal/store"
	"github.com/mkuiper/voiceloop/internal/types"
)

// Synthesizer performs the read-modify-write profile cycle for a scope.
// Calls for the same scope are serialized through a per-scope lock so that
// version numbers never collide or skip; the store's version check-and-swap
// backs that up at the persistence layer.
type Synthesizer struct {
	generator llm.Generator
	store     store.Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a Synthesizer.
func New(generator llm.Generator, st store.Store) *Synthesizer {
	return &Synthesizer{
		generator: generator,
		store:     st,
		locks:     make(map[string]*sync.Mutex),
	}
}

// Synthesize reads the scope's answers, examples and previous profile,
// delegates semantic synthesis to the generator, validates the output
// against the four-card contract and stores the result as version
// previous+1 (or 1 if none). The write is all-or-nothing: a malformed
// output leaves the stored profile untouched.
func (s *Synthesizer) Synthesize(ctx context.Context, scope types.Scope) (*types.Profile, error) {
	if scope.IsZero() {
		return nil, fmt.Errorf("scope is required")
	}

	lock := s.scopeLock(scope)
	lock.Lock()
	defer lock.Unlock()

	answers, err := s.store.ListAnswers(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers: %w", err)
	}
	examples, err := s.store.ListExamples(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to load examples: %w", err)
	}
	previous, err := s.store.LatestProfile(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to load previous profile: %w", err)
	}

	profile, err := s.Run(ctx, answers, examples, previous)
	if err != nil {
		return nil, err
	}

	if err := s.store.SaveProfile(ctx, scope, *profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Run executes one synthesis attempt without touching storage: build the
// prompt, call the generator, validate, assign the next version. Useful for
// callers that manage persistence themselves.
func (s *Synthesizer) Run(ctx context.Context, answers []types.FoundationAnswer, examples []types.ExampleRecord, previous *types.Profile) (*types.Profile, error) {
	system, user := BuildPrompt(answers, examples, previous)

	raw, err := s.generator.Generate(ctx, system, user)
	if err != nil {
		// No retry here; the caller owns retry/backoff policy.
		return nil, err
	}

	profile, err := ParseProfile(raw)
	if err != nil {
		return nil, err
	}

	if previous != nil {
		profile.Version = previous.Version + 1
	} else {
		profile.Version = 1
	}
	return profile, nil
}

// scopeLock returns the mutex for a scope, creating it on first use.
func (s *Synthesizer) scopeLock(scope types.Scope) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := scope.Key()
	if s.locks[key] == nil {
		s.locks[key] = &sync.Mutex{}
	}
	return s.locks[key]
}

// BuildPrompt assembles the system and user instructions for one synthesis
// call. Answers are rendered in canonical question-bank order so the prompt
// is deterministic for identical input.
func BuildPrompt(answers []types.FoundationAnswer, examples []types.ExampleRecord, previous *types.Profile) (system, user string) {
	system = prompts.MustGet("synthesis.json", "synthesize-system")

	template := prompts.MustGet("synthesis.json", "synthesize-profile")
	user = prompts.Format(template, map[string]string{
		"Answers":         renderAnswers(answers),
		"Examples":        renderExamples(examples),
		"PreviousProfile": renderPrevious(previous),
	})
	return system, user
}

func renderAnswers(answers []types.FoundationAnswer) string {
	if len(answers) == 0 {
		return "(no answers yet)"
	}

	ordered := make([]types.FoundationAnswer, len(answers))
	copy(ordered, answers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return bankPosition(ordered[i].QuestionKey) < bankPosition(ordered[j].QuestionKey)
	})

	var sb strings.Builder
	for _, a := range ordered {
		label := a.QuestionKey
		if q, ok := interview.Lookup(a.QuestionKey); ok {
			label = q.Text
		}
		sb.WriteString("Q: " + label + "\n")
		sb.WriteString("A: " + a.AnswerText + "\n\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// bankPosition returns the canonical index of a question key, pushing
// unknown keys to the end while keeping their relative order.
func bankPosition(key string) int {
	for i, q := range interview.Bank() {
		if q.Key == key {
			return i
		}
	}
	return len(interview.Bank())
}

func renderExamples(examples []types.ExampleRecord) string {
	if len(examples) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(prompts.MustGet("synthesis.json", "examples-header"))
	for _, ex := range examples {
		sb.WriteString(fmt.Sprintf("[%s]\n%s\n", ex.Kind, ex.Content))
		if ex.Notes != "" {
			sb.WriteString("(note: " + ex.Notes + ")\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderPrevious(previous *types.Profile) string {
	if previous == nil {
		return ""
	}

	data, err := json.MarshalIndent(previous, "", "  ")
	if err != nil {
		return ""
	}
	return prompts.MustGet("synthesis.json", "previous-profile-header") + string(data) + "\n\n"
}
