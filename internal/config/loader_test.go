package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches to dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvDepth, EnvWorkers, EnvMode, EnvFormat, EnvNormalizeNFC, EnvDebounce} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoaderDefaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := NewLoader(nil).Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoaderProjectFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectConfigFile), []byte("reasoning:\n  depth: 7\n"), 0644))

	cfg, err := NewLoader(nil).Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Reasoning.Depth)
}

func TestLoaderExplicitFileAndEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reasoning:\n  depth: 3\n  workers: 2\n"), 0644))
	t.Setenv(EnvDepth, "9")

	cfg, err := NewLoader(nil).Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Reasoning.Depth, "environment overrides the file")
	assert.Equal(t, 2, cfg.Reasoning.Workers)
}

func TestLoaderDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvMode+"="+ModeBucketed+"\n"), 0644))
	t.Cleanup(func() { _ = os.Unsetenv(EnvMode) })

	cfg, err := NewLoader(nil).Load("")
	require.NoError(t, err)
	assert.Equal(t, ModeBucketed, cfg.Reasoning.Mode)
}

func TestLoaderErrors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)

	_, err := NewLoader(nil).Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	t.Setenv(EnvMode, "magic")
	_, err = NewLoader(nil).Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reasoning.mode")
}

func TestLoaderMalformedProjectFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectConfigFile), []byte("reasoning: [unclosed"), 0644))

	_, err := NewLoader(nil).Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}
