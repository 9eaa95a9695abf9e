package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkuiper/voiceloop/internal/types"
)

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	profile := &types.Profile{
		Version: 3,
		Voice: types.VoiceCard{
			Tone:       "direct",
			Language:   "nl",
			StyleRules: []string{"short sentences", "no jargon"},
		},
		Audience: types.AudienceCard{
			Segments: []string{"agency owners"},
		},
		Offer: types.OfferCard{
			CoreOffer: "positioning sprint",
		},
		Constraints: types.Constraints{
			BannedPhrases: []string{"revolutionair"},
		},
	}

	p.PrintProfile(profile)
	output := buf.String()

	assert.Contains(t, output, "PERSONA PROFILE")
	assert.Contains(t, output, "v3")
	assert.Contains(t, output, "direct")
	assert.Contains(t, output, "short sentences")
	assert.Contains(t, output, "agency owners")
	assert.Contains(t, output, "revolutionair")
}

func TestPrintProfile_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfile(nil)

	assert.Empty(t, buf.String())
}

func TestPrintDraft(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	draft := &types.GeneratedDraft{
		Text:               "A short post about niching down.",
		ContentType:        types.ContentLinkedIn,
		LengthMode:         types.LengthShort,
		ProfileVersionUsed: 2,
	}

	p.PrintDraft(draft)
	output := buf.String()

	assert.Contains(t, output, "GENERATED DRAFT")
	assert.Contains(t, output, "linkedin / short")
	assert.Contains(t, output, "v2")
	assert.Contains(t, output, "niching down")
}

func TestPrintQualityResult_Clean(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &types.QualityResult{
		Score:               1.0,
		Issues:              []string{},
		Suggestions:         []string{},
		ViolatedConstraints: []string{},
	}

	p.PrintQualityResult(result)

	assert.Contains(t, buf.String(), "CLEAN DRAFT")
	assert.Contains(t, buf.String(), "1.00")
}

func TestPrintQualityResult_WithFindings(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &types.QualityResult{
		Score:               0.3,
		Issues:              []string{"hype wording: game changer"},
		Suggestions:         []string{"replace hype with a concrete outcome"},
		ViolatedConstraints: []string{"bannedPhrase:revolutionair"},
	}

	p.PrintQualityResult(result)
	output := buf.String()

	assert.Contains(t, output, "QUALITY CHECK")
	assert.Contains(t, output, "0.30")
	assert.Contains(t, output, "bannedPhrase:revolutionair")
	assert.Contains(t, output, "game changer")
	assert.Contains(t, output, "concrete outcome")
}

func TestPrintFeedbackSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	history := []types.Feedback{
		{Rating: 4, Notes: "good tone"},
		{Rating: 2, PostedMetrics: &types.PostedMetrics{Impressions: 500, Reactions: 12}},
	}

	p.PrintFeedbackSummary(history)
	output := buf.String()

	assert.Contains(t, output, "FEEDBACK")
	assert.Contains(t, output, "rating 4/5")
	assert.Contains(t, output, "good tone")
	assert.Contains(t, output, "impressions 500")
}

func TestPrintFeedbackSummary_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFeedbackSummary(nil)

	assert.Empty(t, buf.String())
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 200))
	output := buf.String()

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, output, "...")
}
