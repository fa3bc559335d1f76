package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beetlebugorg/hexmap/internal/logging"
	"github.com/beetlebugorg/hexmap/pkg/hexmap"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 1000, cfg.MaxCells)
	assert.Equal(t, 0.2, cfg.Padding)
	assert.Equal(t, 200*time.Millisecond, cfg.Debounce)
	assert.Equal(t, "assets/data.json", cfg.DataPath)
	assert.Equal(t, 3, cfg.FetchRetries)
	assert.Equal(t, int64(4194304), cfg.BoundaryCacheBytes)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HEXMAP_BATCH_SIZE", "10")
	t.Setenv("HEXMAP_MAX_CELLS", "25")
	t.Setenv("HEXMAP_PADDING", "0.5")
	t.Setenv("HEXMAP_DEBOUNCE", "1s")
	t.Setenv("HEXMAP_DATA_URL", "https://example.com/data.json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.BatchSize)
	assert.Equal(t, 25, cfg.MaxCells)
	assert.Equal(t, 0.5, cfg.Padding)
	assert.Equal(t, time.Second, cfg.Debounce)

	opts := cfg.Options()
	assert.Equal(t, 10, opts.BatchSize)
	assert.Equal(t, 25, opts.MaxCells)
	assert.Equal(t, 0.5, opts.Padding)
	assert.Equal(t, time.Second, opts.Debounce)
	assert.Equal(t, hexmap.DefaultStyle(), opts.Style)

	src, ok := cfg.Source().(*hexmap.HTTPSource)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/data.json", src.URL)
	assert.Equal(t, 3, src.MaxRetries)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"zero batch", "HEXMAP_BATCH_SIZE", "0"},
		{"negative cap", "HEXMAP_MAX_CELLS", "-1"},
		{"negative padding", "HEXMAP_PADDING", "-0.1"},
		{"unparsable", "HEXMAP_DEBOUNCE", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestSourceDefaultsToFile(t *testing.T) {
	cfg := &Config{DataPath: "data/world.json"}
	assert.Equal(t, hexmap.FileSource{Path: "data/world.json"}, cfg.Source())
}

func TestLoadEnvOverlaysDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HEXMAP_MAX_CELLS=42\n"), 0o644))

	t.Chdir(dir)
	t.Setenv("HEXMAP_MAX_CELLS", "")
	LoadEnv(logging.Discard())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.MaxCells)
}

func TestOptionsZeroPaddingAndDebounce(t *testing.T) {
	t.Setenv("HEXMAP_PADDING", "0")
	t.Setenv("HEXMAP_DEBOUNCE", "0s")

	cfg, err := Load()
	require.NoError(t, err)

	opts := cfg.Options()
	assert.Equal(t, hexmap.NoPadding, opts.Padding)
	assert.Equal(t, hexmap.NoDebounce, opts.Debounce)
}
