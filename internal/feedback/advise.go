package feedback

import "github.com/mkuiper/voiceloop/internal/types"

// Resynthesis advice thresholds: enough signal has to accumulate, and the
// average has to be clearly below neutral, before a new profile version is
// worth the owner's attention.
const (
	adviseMinSignals    = 3
	adviseMaxMeanRating = 2.5
)

// AdviseResynthesis reports whether the accumulated feedback warrants a new
// profile synthesis. This is a pure read-side helper: it only advises, the
// decision and the trigger stay with the surrounding system.
func AdviseResynthesis(history []types.Feedback) bool {
	if len(history) < adviseMinSignals {
		return false
	}

	total := 0
	for _, fb := range history {
		total += fb.Rating
	}
	mean := float64(total) / float64(len(history))
	return mean <= adviseMaxMeanRating
}
