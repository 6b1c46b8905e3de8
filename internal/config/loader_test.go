package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoader() *Loader {
	// Isolated viper instance so tests don't leak global state.
	return &Loader{v: viper.New()}
}

func TestLoaderDefaults(t *testing.T) {
	l := newTestLoader()
	cfg, err := l.Load()
	require.NoError(t, err)

	defaults := DefaultConfig()
	assert.Equal(t, defaults.LogLevel, cfg.LogLevel)
	assert.Equal(t, defaults.Warp.Mode, cfg.Warp.Mode)
	assert.Equal(t, defaults.Warp.Subresolution, cfg.Warp.Subresolution)
	assert.Equal(t, defaults.Output.File, cfg.Output.File)
}

func TestLoaderWithFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mlswarp.yaml")
	doc := `
log_level: debug
warp:
  mode: affine
  subresolution: 4
  workers: 2
output:
  file: out.png
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg, err := newTestLoader().LoadWithFile(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "affine", cfg.Warp.Mode)
	assert.Equal(t, 4, cfg.Warp.Subresolution)
	assert.Equal(t, 2, cfg.Warp.Workers)
	assert.Equal(t, "out.png", cfg.Output.File)
}

func TestLoaderWithFileValidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mlswarp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("warp:\n  subresolution: 0\n"), 0o600))

	_, err := newTestLoader().LoadWithFile(path)
	assert.Error(t, err)
}

func TestLoaderMissingFile(t *testing.T) {
	_, err := newTestLoader().LoadWithFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoaderEnvironmentOverride(t *testing.T) {
	t.Setenv("MLSWARP_WARP_MODE", "similarity")

	cfg, err := newTestLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, "similarity", cfg.Warp.Mode)
}

func TestGetConfigSearchPaths(t *testing.T) {
	paths := GetConfigSearchPaths()
	assert.Contains(t, paths, ".")
	assert.Contains(t, paths, "/etc/mlswarp")
}
