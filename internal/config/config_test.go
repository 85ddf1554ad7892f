package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"serial": "emulator-5554",
		"out_dir": "out",
		"concurrency": 8,
		"timeout_seconds": 120,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "emulator-5554", cfg.Serial)
	assert.Equal(t, "out", cfg.OutDir)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, 120, cfg.TimeoutSeconds)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, `{not json`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestValidate(t *testing.T) {
	valid := &Config{Concurrency: 4, TimeoutSeconds: 60}
	assert.NoError(t, valid.Validate())

	tooManyWorkers := &Config{Concurrency: 500}
	err := tooManyWorkers.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Concurrency")

	negativeTimeout := &Config{TimeoutSeconds: -1}
	assert.Error(t, negativeTimeout.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{OutDir: "drivers", Concurrency: 4, TimeoutSeconds: 90}

	merged := Config{}.MergeWithDefaults(defaults)
	assert.Equal(t, "drivers", merged.OutDir)
	assert.Equal(t, 4, merged.Concurrency)
	assert.Equal(t, 90, merged.TimeoutSeconds)

	// Explicit values survive the merge.
	explicit := Config{OutDir: "custom", Concurrency: 2}.MergeWithDefaults(defaults)
	assert.Equal(t, "custom", explicit.OutDir)
	assert.Equal(t, 2, explicit.Concurrency)
	assert.Equal(t, 90, explicit.TimeoutSeconds)
}
