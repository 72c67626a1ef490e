package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "zeroplus-logic-cube", cfg.Capture.Driver)
	assert.Equal(t, "1m", cfg.Capture.SampleRate)
	assert.Equal(t, 500, cfg.Summary.MaxItems)
	assert.Equal(t, 1000, cfg.Summary.WindowSize)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SIGSUM_DRIVER", "fx2lafw")
	t.Setenv("SIGSUM_MAX_ITEMS", "50")

	cfg := Load()
	assert.Equal(t, "fx2lafw", cfg.Capture.Driver)
	assert.Equal(t, 50, cfg.Summary.MaxItems)
}

func TestLoadEnvInvalidIntFallsBack(t *testing.T) {
	t.Setenv("SIGSUM_MAX_ITEMS", "lots")
	cfg := Load()
	assert.Equal(t, 500, cfg.Summary.MaxItems)
}

func TestLoadFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sigsum.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
driver = "fx2lafw"
max_items = 100
log_level = "debug"
`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "fx2lafw", cfg.Capture.Driver)
	assert.Equal(t, 100, cfg.Summary.MaxItems)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, "1m", cfg.Capture.SampleRate)
	assert.Equal(t, 1000, cfg.Summary.WindowSize)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
