package types

import (
	"time"

	"github.com/google/uuid"
)

// PostedMetrics holds engagement numbers for a piece that was actually
// published.
type PostedMetrics struct {
	Impressions int `json:"impressions"`
	Clicks      int `json:"clicks"`
	Reactions   int `json:"reactions"`
	Comments    int `json:"comments"`
}

// Feedback records one human judgment on a generated or posted draft.
// Feedback is append-only: recording new feedback never overwrites prior
// feedback for the same draft.
type Feedback struct {
	ID            uuid.UUID      `json:"id"`
	DraftID       uuid.UUID      `json:"draft_id"`
	Rating        int            `json:"rating"`
	Notes         string         `json:"notes,omitempty"`
	PostedMetrics *PostedMetrics `json:"posted_metrics,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}
