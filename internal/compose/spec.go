// Package compose builds content-type-specific generation instructions from
// a profile and a raw idea. Everything in this package is pure string
// building; there is no I/O and no hidden state.
package compose

import (
	"fmt"

	"github.com/mkuiper/voiceloop/internal/types"
)

// ContentSpec is the fixed structural contract for one content type at one
// length mode. The quality gate consumes the same spec, so composer and gate
// can never disagree about the length target.
type ContentSpec struct {
	ContentType types.ContentType
	LengthMode  types.LengthMode
	Sections    []string
	MinWords    int
}

// minWordsByMode is the fixed minimum-length table keyed by length mode.
var minWordsByMode = map[types.LengthMode]int{
	types.LengthShort:  400,
	types.LengthMedium: 800,
	types.LengthLong:   1200,
}

// sectionsByType is the fixed structural spec per content type.
var sectionsByType = map[types.ContentType][]string{
	types.ContentLinkedIn: {
		"hook: one or two lines that stop the scroll",
		"story: a concrete situation or observation from practice",
		"insight: the lesson or point of view the story earns",
		"soft call-to-action: an invitation, never a sales pitch",
	},
	types.ContentBlog: {
		"introduction: name the reader's situation and what this article gives them",
		"context: why this topic matters now for this audience",
		"2-4 main points, each with a concrete example or consequence",
		"reflective close: what the reader should take away or reconsider",
	},
}

// SpecFor returns the content spec for a type and length mode.
func SpecFor(contentType types.ContentType, lengthMode types.LengthMode) (ContentSpec, error) {
	sections, ok := sectionsByType[contentType]
	if !ok {
		return ContentSpec{}, fmt.Errorf("unsupported content type: %s", contentType)
	}

	minWords, ok := minWordsByMode[lengthMode]
	if !ok {
		return ContentSpec{}, fmt.Errorf("unsupported length mode: %s", lengthMode)
	}

	return ContentSpec{
		ContentType: contentType,
		LengthMode:  lengthMode,
		Sections:    sections,
		MinWords:    minWords,
	}, nil
}

// MinWords returns the minimum word count for a length mode, defaulting to
// the short threshold for unknown modes so evaluation always completes.
func MinWords(lengthMode types.LengthMode) int {
	if n, ok := minWordsByMode[lengthMode]; ok {
		return n
	}
	return minWordsByMode[types.LengthShort]
}
