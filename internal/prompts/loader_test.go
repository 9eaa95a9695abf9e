package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	prompt, err := Get("synthesis.json", "synthesize-profile")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Answers}}")
	assert.Contains(t, prompt, "voiceCard")
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("synthesis.json", "nonexistent")
	assert.Error(t, err)
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "synthesize-profile")
	assert.Error(t, err)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("synthesis.json", "nonexistent")
	})
}

func TestFormat(t *testing.T) {
	template := "Answers:\n{{.Answers}}\nDone."
	result := Format(template, map[string]string{"Answers": "a: b"})

	assert.Equal(t, "Answers:\na: b\nDone.", result)
	assert.False(t, strings.Contains(result, "{{"))
}

func TestFormat_MissingKeyLeftIntact(t *testing.T) {
	template := "{{.Known}} and {{.Unknown}}"
	result := Format(template, map[string]string{"Known": "x"})
	assert.Equal(t, "x and {{.Unknown}}", result)
}
