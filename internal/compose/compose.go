package compose

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mkuiper/voiceloop/internal/types"
)

// Composed holds the two prompt halves handed to the external generator:
// Instructions becomes the system side, Context the user side.
type Composed struct {
	Instructions string `json:"instructions"`
	Context      string `json:"context"`
}

// Compose builds generation instructions for a content request against a
// profile. The constraints card is injected verbatim so the generator can
// self-censor, and the instructions demand plain prose output: the quality
// gate downstream assumes unstructured text with no labels or headings.
func Compose(req types.ContentRequest, profile types.Profile, examples []types.ExampleRecord) (Composed, error) {
	spec, err := SpecFor(req.ContentType, req.LengthMode)
	if err != nil {
		return Composed{}, err
	}

	return Composed{
		Instructions: buildInstructions(spec, profile),
		Context:      buildContext(req, profile, examples),
	}, nil
}

func buildInstructions(spec ContentSpec, profile types.Profile) string {
	var sb strings.Builder

	sb.WriteString("You write ")
	sb.WriteString(string(spec.ContentType))
	sb.WriteString(" content as the business owner described below. Stay in their voice at all times.\n\n")

	writeVoiceSection(&sb, profile.Voice)

	sb.WriteString("Structure (in this order):\n")
	for i, section := range spec.Sections {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, section))
	}
	sb.WriteString(fmt.Sprintf("\nWrite at least %d words.\n\n", spec.MinWords))

	// The constraints card goes in verbatim; it is the same authority the
	// quality gate checks against afterwards.
	sb.WriteString("Hard constraints (never violate any of these):\n")
	sb.WriteString(marshalConstraints(profile.Constraints))
	sb.WriteString("\n\n")

	sb.WriteString("Output contract: return ONLY the final text. ")
	sb.WriteString("No labels, no headings, no markdown, no JSON, no metadata, no commentary before or after.")

	return sb.String()
}

func writeVoiceSection(sb *strings.Builder, voice types.VoiceCard) {
	sb.WriteString("Voice:\n")
	if voice.Tone != "" {
		sb.WriteString("- tone: " + voice.Tone + "\n")
	}
	if voice.Formality != "" {
		sb.WriteString("- formality: " + voice.Formality + "\n")
	}
	if voice.Energy != "" {
		sb.WriteString("- energy: " + voice.Energy + "\n")
	}
	if voice.Persona != "" {
		sb.WriteString("- persona: " + voice.Persona + "\n")
	}
	if voice.Language != "" {
		sb.WriteString("- language: " + voice.Language + "\n")
	}
	for _, rule := range voice.StyleRules {
		sb.WriteString("- style rule: " + rule + "\n")
	}
	for _, do := range voice.Dos {
		sb.WriteString("- do: " + do + "\n")
	}
	for _, dont := range voice.Donts {
		sb.WriteString("- don't: " + dont + "\n")
	}
	if len(voice.ExampleFragments) > 0 {
		sb.WriteString("Fragments in the owner's own words:\n")
		for _, frag := range voice.ExampleFragments {
			sb.WriteString("  \"" + frag + "\"\n")
		}
	}
	sb.WriteString("\n")
}

func buildContext(req types.ContentRequest, profile types.Profile, examples []types.ExampleRecord) string {
	var sb strings.Builder

	sb.WriteString("The idea to work from:\n")
	sb.WriteString(req.Thought)
	sb.WriteString("\n\n")

	sb.WriteString("Audience:\n")
	writeCardJSON(&sb, profile.Audience)
	sb.WriteString("Offer:\n")
	writeCardJSON(&sb, profile.Offer)

	good, bad := splitExamples(examples)
	if len(good) > 0 {
		sb.WriteString("Examples of content the owner likes:\n")
		for _, ex := range good {
			writeExample(&sb, ex)
		}
	}
	if len(bad) > 0 {
		sb.WriteString("Examples of content the owner rejects (avoid this style):\n")
		for _, ex := range bad {
			writeExample(&sb, ex)
		}
	}

	return sb.String()
}

func writeExample(sb *strings.Builder, ex types.ExampleRecord) {
	sb.WriteString("---\n")
	sb.WriteString(ex.Content)
	sb.WriteString("\n")
	if ex.Notes != "" {
		sb.WriteString("(note: " + ex.Notes + ")\n")
	}
}

func writeCardJSON(sb *strings.Builder, card any) {
	data, err := json.MarshalIndent(card, "", "  ")
	if err != nil {
		// Cards are plain structs; marshalling cannot realistically fail.
		sb.WriteString("{}\n\n")
		return
	}
	sb.Write(data)
	sb.WriteString("\n\n")
}

// marshalConstraints serializes the constraints card for verbatim injection.
// encoding/json emits struct fields in declaration order, so the output is
// deterministic for identical input.
func marshalConstraints(c types.Constraints) string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

func splitExamples(examples []types.ExampleRecord) (good, bad []types.ExampleRecord) {
	for _, ex := range examples {
		switch ex.Kind {
		case types.ExampleBad:
			bad = append(bad, ex)
		default:
			good = append(good, ex)
		}
	}
	return good, bad
}
