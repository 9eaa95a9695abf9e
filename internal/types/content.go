package types

import (
	"time"

	"github.com/google/uuid"
)

// ContentType selects the structural spec used for generation.
type ContentType string

// Supported content types
const (
	ContentLinkedIn ContentType = "linkedin"
	ContentBlog     ContentType = "blog"
)

// LengthMode selects the minimum-length target for generated text.
type LengthMode string

// Supported length modes
const (
	LengthShort  LengthMode = "short"
	LengthMedium LengthMode = "medium"
	LengthLong   LengthMode = "long"
)

// ContentRequest is the owner's raw idea plus the parameters that drive
// prompt composition.
type ContentRequest struct {
	Thought        string      `json:"thought"`
	ContentType    ContentType `json:"content_type"`
	LengthMode     LengthMode  `json:"length_mode"`
	ProfileVersion int         `json:"profile_version"`
}

// GeneratedDraft is one generated piece of content, immutable once created.
// Edits produce a new draft; the profile version used at generation time is
// recorded for audit traceability.
type GeneratedDraft struct {
	ID                 uuid.UUID   `json:"id"`
	Scope              Scope       `json:"scope"`
	Text               string      `json:"text"`
	ContentType        ContentType `json:"content_type"`
	LengthMode         LengthMode  `json:"length_mode"`
	ProfileVersionUsed int         `json:"profile_version_used"`
	CreatedAt          time.Time   `json:"created_at"`
}
