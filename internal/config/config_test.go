package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFolderPathHonoursXDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdgtest")
	assert.Equal(t, "/tmp/xdgtest/footwm", configFolderPath())
}

func TestLoadWritesDefaultConfigOnFirstRun(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg := Load()

	assert.Empty(t, cfg.Desktops)
	_, err := os.Stat(filepath.Join(dir, "footwm", "footwm.toml"))
	require.NoError(t, err)
}

func TestLoadDoesNotOverwriteExistingConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "footwm"), 0700))
	custom := "desktops = [\"work\"]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "footwm", "footwm.toml"), []byte(custom), 0644))

	cfg := Load()

	assert.Equal(t, []string{"work"}, cfg.Desktops)
}
