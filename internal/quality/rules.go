// Package quality provides the deterministic rule evaluator that scores
// generated text against a profile's constraints.
package quality

// Scoring constants. A hard constraint breach costs a flat 0.6 regardless of
// how many constraints were hit: detection, not counting, is what matters to
// the reviewer. Soft issues erode the remainder at 0.1 each, capped at 0.4.
const (
	violationPenalty = 0.6
	issuePenalty     = 0.1
	maxIssuePenalty  = 0.4
)

// hypeVocabulary is the fixed set of hype/hyperbole terms. First match adds
// one issue and one suggestion; hype is not a hard violation.
var hypeVocabulary = []string{
	"game changer",
	"game-changer",
	"guaranteed success",
	"once in a lifetime",
	"once-in-a-lifetime",
	"groundbreaking",
	"mind-blowing",
	"unparalleled",
	"skyrocket",
	"explode your",
	"crushing it",
	"10x your",
	"secret formula",
	"instant results",
}

// defaultSalesyCTAs is the built-in banned-CTA vocabulary used when the
// profile's ctaStyle does not define its own patterns.
var defaultSalesyCTAs = []string{
	"buy now",
	"sign up today",
	"act now",
	"limited time",
	"limited spots",
	"don't miss out",
	"last chance",
	"click the link below",
	"link in bio",
	"dm me now",
	"book a call now",
}

// HypeVocabulary returns the built-in hype term list.
func HypeVocabulary() []string {
	out := make([]string, len(hypeVocabulary))
	copy(out, hypeVocabulary)
	return out
}

// DefaultSalesyCTAs returns the built-in banned-CTA vocabulary.
func DefaultSalesyCTAs() []string {
	out := make([]string, len(defaultSalesyCTAs))
	copy(out, defaultSalesyCTAs)
	return out
}
