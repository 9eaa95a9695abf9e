package synthesis

import (
	_ "embed"
	"encoding/json"

	"github.com/mkuiper/voiceloop/internal/llm"
	"github.com/mkuiper/voiceloop/internal/schemas"
	"github.com/mkuiper/voiceloop/internal/types"
)

//go:embed profile_schema.json
var profileSchema string

// requiredCardKeys are the exact top-level keys the generator must produce.
var requiredCardKeys = []string{"voiceCard", "audienceCard", "offerCard", "constraints"}

// ParseProfile validates and decodes raw generator output into a Profile.
// The contract is strict: exactly the four card keys, no others. Absent
// optional nested fields decode to empty values; nothing is invented beyond
// that. Any deviation fails with *MalformedProfileError and nothing is
// written anywhere.
func ParseProfile(raw string) (*types.Profile, error) {
	cleaned := llm.CleanJSONBlock(raw)

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &top); err != nil {
		return nil, &MalformedProfileError{
			Message: "output is not a JSON object",
			Cause:   err,
		}
	}

	for _, key := range requiredCardKeys {
		if _, ok := top[key]; !ok {
			return nil, &MalformedProfileError{Message: "missing required card: " + key}
		}
	}
	for key := range top {
		if !isAllowedKey(key) {
			return nil, &MalformedProfileError{Message: "unexpected top-level key: " + key}
		}
	}

	if err := schemas.ValidateJSONString(profileSchema, cleaned); err != nil {
		return nil, &MalformedProfileError{
			Message: "output violates the profile schema",
			Cause:   err,
		}
	}

	var profile types.Profile
	if err := json.Unmarshal([]byte(cleaned), &profile); err != nil {
		return nil, &MalformedProfileError{
			Message: "failed to decode cards",
			Cause:   err,
		}
	}

	normalizeConstraints(&profile.Constraints)
	return &profile, nil
}

func isAllowedKey(key string) bool {
	if key == "version" {
		return true
	}
	for _, k := range requiredCardKeys {
		if k == key {
			return true
		}
	}
	return false
}

// normalizeConstraints replaces nil rule lists with empty slices so the
// quality gate and serialization behave identically whether the generator
// emitted empty arrays or left the fields out.
func normalizeConstraints(c *types.Constraints) {
	if c.BannedPhrases == nil {
		c.BannedPhrases = []string{}
	}
	if c.BannedTopics == nil {
		c.BannedTopics = []string{}
	}
	if c.CTAStyle.ExampleCTAs == nil {
		c.CTAStyle.ExampleCTAs = []string{}
	}
	if c.CTAStyle.BannedCTAPatterns == nil {
		c.CTAStyle.BannedCTAPatterns = []string{}
	}
	if c.ToneHardLimits == nil {
		c.ToneHardLimits = []string{}
	}
}
