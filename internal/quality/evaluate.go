package quality

import (
	"fmt"
	"strings"

	"github.com/mkuiper/voiceloop/internal/compose"
	"github.com/mkuiper/voiceloop/internal/types"
)

// Evaluate scores generated text against a content spec and the profile's
// constraints card. It is a pure function: identical inputs always yield an
// identical result, and malformed or empty constraints never cause an error;
// missing fields simply behave as empty collections.
func Evaluate(text string, spec compose.ContentSpec, constraints types.Constraints) types.QualityResult {
	result := types.QualityResult{
		Score:               1.0,
		Issues:              []string{},
		Suggestions:         []string{},
		ViolatedConstraints: []string{},
	}

	normalized := strings.ToLower(text)

	checkBannedPhrases(&result, normalized, constraints.BannedPhrases)
	checkBannedTopics(&result, normalized, constraints.BannedTopics)
	checkHype(&result, normalized)
	checkSalesyCTA(&result, normalized, constraints.CTAStyle.BannedCTAPatterns)
	checkLength(&result, text, spec)

	result.Score = computeScore(result)
	return result
}

// checkBannedPhrases records a violation for every banned phrase found.
func checkBannedPhrases(result *types.QualityResult, normalized string, phrases []string) {
	for _, phrase := range phrases {
		p := normalizePattern(phrase)
		if p == "" {
			continue
		}
		if strings.Contains(normalized, p) {
			result.ViolatedConstraints = append(result.ViolatedConstraints, "bannedPhrase:"+p)
			result.Issues = append(result.Issues, fmt.Sprintf("text contains banned phrase %q", p))
		}
	}
}

// checkBannedTopics records a violation for every banned topic mentioned.
func checkBannedTopics(result *types.QualityResult, normalized string, topics []string) {
	for _, topic := range topics {
		p := normalizePattern(topic)
		if p == "" {
			continue
		}
		if strings.Contains(normalized, p) {
			result.ViolatedConstraints = append(result.ViolatedConstraints, "bannedTopic:"+p)
			result.Issues = append(result.Issues, fmt.Sprintf("text touches banned topic %q", p))
		}
	}
}

// checkHype flags the first hype term found. Hype is a soft issue, not a
// hard violation.
func checkHype(result *types.QualityResult, normalized string) {
	for _, term := range hypeVocabulary {
		if strings.Contains(normalized, term) {
			result.Issues = append(result.Issues, fmt.Sprintf("hype language: %q", term))
			result.Suggestions = append(result.Suggestions, fmt.Sprintf("replace %q with a concrete, verifiable claim", term))
			return
		}
	}
}

// checkSalesyCTA flags the first banned CTA pattern found. The check stops
// at the first match: multiple distinct pattern hits do not compound.
func checkSalesyCTA(result *types.QualityResult, normalized string, patterns []string) {
	if len(patterns) == 0 {
		patterns = defaultSalesyCTAs
	}

	for _, pattern := range patterns {
		p := normalizePattern(pattern)
		if p == "" {
			continue
		}
		if strings.Contains(normalized, p) {
			result.ViolatedConstraints = append(result.ViolatedConstraints, "salesyCta:"+p)
			result.Issues = append(result.Issues, fmt.Sprintf("salesy call-to-action: %q", p))
			result.Suggestions = append(result.Suggestions, "soften the call-to-action to an invitation instead of a push")
			return
		}
	}
}

// checkLength compares the whitespace-split word count against the spec's
// minimum. A shortfall is a soft issue, never a hard violation.
func checkLength(result *types.QualityResult, text string, spec compose.ContentSpec) {
	words := len(strings.Fields(text))
	minWords := spec.MinWords
	if minWords <= 0 {
		minWords = compose.MinWords(spec.LengthMode)
	}

	if words < minWords {
		result.Issues = append(result.Issues, fmt.Sprintf("text has %d words, below the %d-word minimum for %s", words, minWords, spec.LengthMode))
		result.Suggestions = append(result.Suggestions, "expand the story or add a concrete example to reach the length target")
	}
}

// computeScore applies the two-tier scoring model: a flat penalty when any
// hard constraint was breached, plus a capped per-issue penalty, floored at
// zero.
func computeScore(result types.QualityResult) float64 {
	score := 1.0

	if len(result.ViolatedConstraints) > 0 {
		score -= violationPenalty
	}

	issueDeduction := issuePenalty * float64(len(result.Issues))
	if issueDeduction > maxIssuePenalty {
		issueDeduction = maxIssuePenalty
	}
	score -= issueDeduction

	if score < 0 {
		score = 0
	}
	return score
}

// normalizePattern lowercases and trims a rule entry the same way the text
// is normalized, so matching is case-insensitive on both sides.
func normalizePattern(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
