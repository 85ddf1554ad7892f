package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("classify.json", "classify-inventory")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "{{.Inventory}}")
}

func TestGet_ResolvePrompts(t *testing.T) {
	ClearCache()

	prompt, err := Get("resolve.json", "resolve-driver")
	require.NoError(t, err)
	assert.Contains(t, prompt, "No specific drivers found")

	prompt, err = Get("resolve.json", "generate-guidance")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Finding}}")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("classify.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestFormat(t *testing.T) {
	template := "Component type: {{.ComponentType}}, terms: {{.SearchTerms}}"
	data := map[string]string{
		"ComponentType": "Wi-Fi",
		"SearchTerms":   "BCM4339 Broadcom",
	}

	result := Format(template, data)
	assert.Equal(t, "Component type: Wi-Fi, terms: BCM4339 Broadcom", result)
}

func TestFormat_UnknownPlaceholderRemains(t *testing.T) {
	template := "Hello {{.Name}}"
	result := Format(template, map[string]string{})
	assert.Equal(t, template, result)
}
