// Package feedback records human judgment on generated drafts and supplies
// the signal a later, externally-triggered synthesis run consumes. It never
// starts a synthesis itself.
package feedback

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkuiper/voiceloop/internal/store"
	"github.com/mkuiper/voiceloop/internal/types"
)

// Rating bounds for recorded feedback.
const (
	MinRating = 1
	MaxRating = 5
)

// Recorder appends feedback records to the store.
type Recorder struct {
	store store.Store
}

// NewRecorder creates a Recorder.
func NewRecorder(st store.Store) *Recorder {
	return &Recorder{store: st}
}

// Record appends one feedback record for a draft. The write is append-only:
// prior feedback for the same draft is never touched. ID and timestamp are
// assigned here when the caller left them zero.
func (r *Recorder) Record(ctx context.Context, fb types.Feedback) (types.Feedback, error) {
	if fb.DraftID == uuid.Nil {
		return types.Feedback{}, fmt.Errorf("draft reference is required")
	}
	if fb.Rating < MinRating || fb.Rating > MaxRating {
		return types.Feedback{}, fmt.Errorf("rating must be between %d and %d, got %d", MinRating, MaxRating, fb.Rating)
	}

	if fb.ID == uuid.Nil {
		fb.ID = uuid.New()
	}
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now().UTC()
	}

	if err := r.store.AppendFeedback(ctx, fb); err != nil {
		return types.Feedback{}, err
	}
	return fb, nil
}

// List returns all feedback recorded for a draft.
func (r *Recorder) List(ctx context.Context, draftID uuid.UUID) ([]types.Feedback, error) {
	return r.store.ListFeedback(ctx, draftID)
}

// AsExample converts a feedback record plus its draft into the example
// record an operator may feed into the next synthesis round: low ratings
// become bad examples, high ratings good ones. Mid-scale ratings carry no
// clear signal and convert to nothing.
func AsExample(draft types.GeneratedDraft, fb types.Feedback) (types.ExampleRecord, bool) {
	switch {
	case fb.Rating <= 2:
		return types.ExampleRecord{Kind: types.ExampleBad, Content: draft.Text, Notes: fb.Notes}, true
	case fb.Rating >= 4:
		return types.ExampleRecord{Kind: types.ExampleGood, Content: draft.Text, Notes: fb.Notes}, true
	default:
		return types.ExampleRecord{}, false
	}
}
