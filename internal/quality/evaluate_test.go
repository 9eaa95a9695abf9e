package quality

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkuiper/voiceloop/internal/compose"
	"github.com/mkuiper/voiceloop/internal/types"
)

func shortSpec(t *testing.T) compose.ContentSpec {
	t.Helper()
	spec, err := compose.SpecFor(types.ContentLinkedIn, types.LengthShort)
	require.NoError(t, err)
	return spec
}

// wordsOfCount builds neutral filler text with exactly n words.
func wordsOfCount(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = "woord"
	}
	return strings.Join(words, " ")
}

func TestEvaluate_CleanLongEnoughTextScoresPerfect(t *testing.T) {
	result := Evaluate(wordsOfCount(400), shortSpec(t), types.Constraints{})

	assert.Equal(t, 1.0, result.Score)
	assert.Empty(t, result.Issues)
	assert.Empty(t, result.Suggestions)
	assert.Empty(t, result.ViolatedConstraints)
}

func TestEvaluate_Deterministic(t *testing.T) {
	constraints := types.Constraints{
		BannedPhrases: []string{"revolutionair"},
		BannedTopics:  []string{"politiek"},
	}
	text := "Dit is een revolutionair verhaal over politiek. Buy now!"

	first := Evaluate(text, shortSpec(t), constraints)
	second := Evaluate(text, shortSpec(t), constraints)

	assert.Equal(t, first, second)
}

func TestEvaluate_BannedPhraseScenario(t *testing.T) {
	constraints := types.Constraints{BannedPhrases: []string{"revolutionair"}}

	result := Evaluate("Dit is een revolutionair aanbod.", shortSpec(t), constraints)

	assert.Contains(t, result.ViolatedConstraints, "bannedPhrase:revolutionair")
	assert.LessOrEqual(t, result.Score, 0.4)
}

func TestEvaluate_ViolationPenaltyIsFlat(t *testing.T) {
	constraints := types.Constraints{BannedPhrases: []string{"synergy"}}

	clean := Evaluate(wordsOfCount(400), shortSpec(t), constraints)
	once := Evaluate(wordsOfCount(400)+" synergy", shortSpec(t), constraints)
	twice := Evaluate(wordsOfCount(400)+" synergy synergy", shortSpec(t), constraints)

	assert.Equal(t, 1.0, clean.Score)
	// One violation plus its accompanying issue: 1.0 - 0.6 - 0.1
	assert.InDelta(t, 0.3, once.Score, 1e-9)
	// Repeating the same phrase does not deepen the penalty
	assert.Equal(t, once.Score, twice.Score)
	assert.Equal(t, once.ViolatedConstraints, twice.ViolatedConstraints)
}

func TestEvaluate_MultipleDistinctViolationsStillFlat(t *testing.T) {
	constraints := types.Constraints{BannedPhrases: []string{"ninja", "rockstar"}}

	result := Evaluate(wordsOfCount(400)+" ninja rockstar", shortSpec(t), constraints)

	require.Len(t, result.ViolatedConstraints, 2)
	// Flat 0.6 for the breach, 0.1 per issue: 1.0 - 0.6 - 0.2
	assert.InDelta(t, 0.2, result.Score, 1e-9)
}

func TestEvaluate_BannedTopic(t *testing.T) {
	constraints := types.Constraints{BannedTopics: []string{"politics"}}

	result := Evaluate(wordsOfCount(400)+" and then politics happened", shortSpec(t), constraints)

	assert.Contains(t, result.ViolatedConstraints, "bannedTopic:politics")
}

func TestEvaluate_HypeIsSoftIssue(t *testing.T) {
	result := Evaluate(wordsOfCount(399)+" groundbreaking", shortSpec(t), types.Constraints{})

	assert.Empty(t, result.ViolatedConstraints)
	require.Len(t, result.Issues, 1)
	require.Len(t, result.Suggestions, 1)
	assert.Contains(t, result.Issues[0], "groundbreaking")
	assert.InDelta(t, 0.9, result.Score, 1e-9)
}

func TestEvaluate_HypeFirstMatchOnly(t *testing.T) {
	result := Evaluate(wordsOfCount(400)+" groundbreaking and mind-blowing", shortSpec(t), types.Constraints{})

	require.Len(t, result.Issues, 1)
	require.Len(t, result.Suggestions, 1)
}

func TestEvaluate_SalesyCTADefaultVocabulary(t *testing.T) {
	result := Evaluate(wordsOfCount(400)+" buy now", shortSpec(t), types.Constraints{})

	assert.Contains(t, result.ViolatedConstraints, "salesyCta:buy now")
	require.Len(t, result.Issues, 1)
	require.Len(t, result.Suggestions, 1)
}

func TestEvaluate_SalesyCTACustomPatternsReplaceDefaults(t *testing.T) {
	constraints := types.Constraints{
		CTAStyle: types.CTAStyle{BannedCTAPatterns: []string{"plan een call"}},
	}

	// "buy now" is only in the default vocabulary, which custom patterns replace.
	result := Evaluate(wordsOfCount(400)+" buy now", shortSpec(t), constraints)
	assert.Empty(t, result.ViolatedConstraints)

	result = Evaluate(wordsOfCount(400)+" plan een call", shortSpec(t), constraints)
	assert.Contains(t, result.ViolatedConstraints, "salesyCta:plan een call")
}

func TestEvaluate_SalesyCTAStopsAtFirstMatch(t *testing.T) {
	result := Evaluate(wordsOfCount(400)+" buy now and act now", shortSpec(t), types.Constraints{})

	require.Len(t, result.ViolatedConstraints, 1)
}

func TestEvaluate_LengthBoundary(t *testing.T) {
	spec := shortSpec(t)

	atThreshold := Evaluate(wordsOfCount(400), spec, types.Constraints{})
	assert.Empty(t, atThreshold.Issues)

	oneBelow := Evaluate(wordsOfCount(399), spec, types.Constraints{})
	require.Len(t, oneBelow.Issues, 1)
	assert.Contains(t, oneBelow.Issues[0], "399 words")
}

func TestEvaluate_ShortModeLengthScenario(t *testing.T) {
	result := Evaluate(wordsOfCount(350), shortSpec(t), types.Constraints{})

	assert.Empty(t, result.ViolatedConstraints)
	assert.InDelta(t, 0.9, result.Score, 1e-9)
}

func TestEvaluate_WordCountIgnoresExtraWhitespace(t *testing.T) {
	text := "  " + strings.ReplaceAll(wordsOfCount(400), " ", "  \n ") + "\t"
	result := Evaluate(text, shortSpec(t), types.Constraints{})

	assert.Empty(t, result.Issues)
}

func TestEvaluate_ScoreFloorsAtZero(t *testing.T) {
	constraints := types.Constraints{BannedPhrases: []string{"ninja", "rockstar", "guru"}}
	text := "ninja rockstar guru groundbreaking buy now"

	result := Evaluate(text, shortSpec(t), constraints)

	// 3 violations (flat 0.6) plus 5+ issues capped at 0.4 -> floor.
	assert.InDelta(t, 0.0, result.Score, 1e-9)
	assert.GreaterOrEqual(t, result.Score, 0.0)
}

func TestEvaluate_CaseInsensitiveMatching(t *testing.T) {
	constraints := types.Constraints{BannedPhrases: []string{"Revolutionair"}}

	result := Evaluate("DIT IS REVOLUTIONAIR", shortSpec(t), constraints)

	assert.Contains(t, result.ViolatedConstraints, "bannedPhrase:revolutionair")
}

func TestEvaluate_EmptyAndBlankRulesIgnored(t *testing.T) {
	constraints := types.Constraints{
		BannedPhrases: []string{"", "   "},
		BannedTopics:  []string{""},
		CTAStyle:      types.CTAStyle{BannedCTAPatterns: []string{"  "}},
	}

	result := Evaluate(wordsOfCount(400), shortSpec(t), constraints)

	assert.Empty(t, result.ViolatedConstraints)
	assert.Equal(t, 1.0, result.Score)
}

func TestHypeVocabularyAndDefaultsAreCopies(t *testing.T) {
	vocab := HypeVocabulary()
	vocab[0] = "mutated"
	assert.NotEqual(t, "mutated", HypeVocabulary()[0])

	ctas := DefaultSalesyCTAs()
	ctas[0] = "mutated"
	assert.NotEqual(t, "mutated", DefaultSalesyCTAs()[0])
}
