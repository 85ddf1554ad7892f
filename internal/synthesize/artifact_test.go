package synthesize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidm/driver-scout/internal/types"
)

func TestArtifactID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Wi-Fi Module", "driver_wi-fi_module"},
		{"CPU", "driver_cpu"},
		{"Audio  Codec", "driver_audio_codec"},
		{"  GPU ", "driver_gpu"},
		{"nfc\tcontroller", "driver_nfc_controller"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ArtifactID(tt.in), "input %q", tt.in)
	}
}

func TestArtifactID_Idempotent(t *testing.T) {
	first := ArtifactID("Wi-Fi Module")
	second := ArtifactID("Wi-Fi Module")
	assert.Equal(t, first, second)
}

func TestSynthesize_WritesStubFile(t *testing.T) {
	dir := t.TempDir()
	s := NewSynthesizer(dir)

	res := types.Resolution{
		Component: types.Component{
			Type:    "Wi-Fi",
			Details: map[string]string{"chipset": "BCM4339"},
		},
		Finding:  "No specific drivers found for this chipset.",
		Guidance: "Implement an SDIO function driver.",
	}

	art, err := s.Synthesize(res)
	require.NoError(t, err)
	assert.Equal(t, "driver_wi-fi", art.ID)
	assert.Equal(t, filepath.Join(dir, "driver_wi-fi.c"), art.Path)

	content, err := os.ReadFile(art.Path)
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, "Driver placeholder for: Wi-Fi")
	assert.Contains(t, text, `"chipset": "BCM4339"`)
	assert.Contains(t, text, "No specific drivers found for this chipset.")
	assert.Contains(t, text, "Implement an SDIO function driver.")
	assert.Contains(t, text, "/* TODO: implement driver logic */")
}

func TestSynthesize_SameComponentTwiceIsIdempotent(t *testing.T) {
	s := NewSynthesizer(t.TempDir())
	res := types.Resolution{Component: types.Component{Type: "CPU"}, Finding: "found"}

	first, err := s.Synthesize(res)
	require.NoError(t, err)

	second, err := s.Synthesize(res)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestSynthesize_IDCollisionFailsOnlyThatComponent(t *testing.T) {
	s := NewSynthesizer(t.TempDir())

	_, err := s.Synthesize(types.Resolution{
		Component: types.Component{Type: "Wi-Fi Module"}, Finding: "found",
	})
	require.NoError(t, err)

	// Different type, same normalized id.
	_, err = s.Synthesize(types.Resolution{
		Component: types.Component{Type: "wi-fi module"}, Finding: "found",
	})
	require.Error(t, err)

	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "wi-fi module", serr.ComponentType)

	// A third, unrelated component still synthesizes fine.
	_, err = s.Synthesize(types.Resolution{
		Component: types.Component{Type: "GPU"}, Finding: "found",
	})
	assert.NoError(t, err)
}

func TestSynthesize_WriteFailure(t *testing.T) {
	// Output "directory" is a regular file, so MkdirAll fails.
	dir := t.TempDir()
	blocked := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	s := NewSynthesizer(blocked)
	_, err := s.Synthesize(types.Resolution{
		Component: types.Component{Type: "GPU"}, Finding: "found",
	})

	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "GPU", serr.ComponentType)
}

func TestRender_GuidanceSectionOmittedWhenEmpty(t *testing.T) {
	out := Render(types.Resolution{
		Component: types.Component{Type: "GPU", Details: map[string]string{}},
		Finding:   "Found driver at kernel.org",
	}, "driver_gpu")

	assert.NotContains(t, out, "Development guidance")
	assert.Contains(t, out, "Found driver at kernel.org")
}

func TestRender_CommentTerminatorEscaped(t *testing.T) {
	out := Render(types.Resolution{
		Component: types.Component{Type: "GPU"},
		Finding:   "odd text with */ inside",
	}, "driver_gpu")

	// The body must not close the block comment early.
	assert.NotContains(t, out, "with */ inside")
	assert.Contains(t, out, "* /")
}
