package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProfile() Profile {
	return Profile{
		Version: 3,
		Voice: VoiceCard{
			Tone:       "direct",
			Formality:  "informal",
			Energy:     "high",
			Persona:    "experienced operator",
			StyleRules: []string{"short sentences", "no jargon"},
			Language:   "nl",
			Dos:        []string{"use concrete numbers"},
			Donts:      []string{"no exclamation marks"},
		},
		Audience: AudienceCard{
			Segments:    []string{"founders", "agency owners"},
			PrimaryRole: "owner",
			Situation:   "stuck at the same revenue for two years",
			Goals:       []string{"predictable leads"},
		},
		Offer: OfferCard{
			CoreOffer: "positioning sprint",
			Promise:   "a sharper message in four weeks",
			Outcomes:  []string{"clear niche", "repeatable content"},
		},
		Constraints: Constraints{
			BannedPhrases: []string{"revolutionair", "game changer"},
			BannedTopics:  []string{"politics"},
			CTAStyle: CTAStyle{
				Level:             "soft",
				ExampleCTAs:       []string{"curious how this works?"},
				BannedCTAPatterns: []string{"buy now"},
			},
			ToneHardLimits: []string{"never sarcastic"},
		},
	}
}

func TestProfileRoundTrip(t *testing.T) {
	original := sampleProfile()

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var parsed Profile
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.Equal(t, original, parsed)
}

func TestProfileWireKeys(t *testing.T) {
	data, err := json.Marshal(sampleProfile())
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Contains(t, raw, "voiceCard")
	assert.Contains(t, raw, "audienceCard")
	assert.Contains(t, raw, "offerCard")
	assert.Contains(t, raw, "constraints")
	assert.Contains(t, raw, "version")
	assert.Len(t, raw, 5)
}

func TestScopeKey(t *testing.T) {
	assert.Equal(t, "ws-1", Scope{WorkspaceID: "ws-1"}.Key())
	assert.Equal(t, "ws-1/p-2", Scope{WorkspaceID: "ws-1", ProjectID: "p-2"}.Key())
	assert.True(t, Scope{}.IsZero())
	assert.False(t, Scope{WorkspaceID: "ws-1"}.IsZero())
}
