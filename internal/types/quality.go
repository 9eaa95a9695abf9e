package types

// QualityResult is the outcome of evaluating generated text against a
// profile's constraints. It is a pure function of (text, spec, constraints):
// identical inputs always produce an identical result.
type QualityResult struct {
	Score               float64  `json:"score"`
	Issues              []string `json:"issues"`
	Suggestions         []string `json:"suggestions"`
	ViolatedConstraints []string `json:"violated_constraints"`
}

// HasViolations reports whether any hard constraint was breached.
func (q QualityResult) HasViolations() bool {
	return len(q.ViolatedConstraints) > 0
}
