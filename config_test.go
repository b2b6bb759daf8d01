package vgcore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 96.0, cfg.DPI)
	assert.Equal(t, 3.0, cfg.SnapTolMM)
	assert.Equal(t, "black", cfg.LineColor)
	assert.Equal(t, "en", cfg.Language)
	assert.False(t, cfg.Grid)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("VGCORE_DPI", "144")
	t.Setenv("VGCORE_GRID", "true")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 144.0, cfg.DPI)
	assert.True(t, cfg.Grid)

	t.Setenv("VGCORE_DPI", "0")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("VGCORE_SNAP_TOL_MM", "4")
	path := filepath.Join(t.TempDir(), "vgcore.toml")
	require.NoError(t, os.WriteFile(path, []byte("dpi = 72.0\nlanguage = \"zh-Hans\"\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 72.0, cfg.DPI)
	assert.Equal(t, "zh-Hans", cfg.Language)
	assert.Equal(t, 4.0, cfg.SnapTolMM)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestSetLogger(t *testing.T) {
	assert.NotNil(t, Logger())
	SetLogger(nil)
	assert.False(t, Logger().Enabled(t.Context(), 0))
}
