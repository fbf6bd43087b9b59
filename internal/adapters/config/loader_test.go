package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vestigehq/vestige/internal/adapters/config"
	"github.com/vestigehq/vestige/internal/core/domain"
)

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, config.DefaultMaxEntries, cfg.MaxEntriesPerCache)
	assert.Equal(t, config.DefaultTTL, cfg.TTL)
	assert.Equal(t, config.DefaultDebounceWindow, cfg.DebounceWindow)
	assert.Equal(t, config.DefaultVolatilityBin, cfg.VolatilityBinary)
	assert.False(t, cfg.LogJSON)
}

func TestLoad_FullFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	content := `
cache:
  max_entries: 50
  ttl: 30m
  debounce_window: 250ms
volatility:
  binary: /opt/volatility3/vol.py
  extra_args: ["-q"]
log:
  json: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(content), 0o644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.MaxEntriesPerCache)
	assert.Equal(t, 30*time.Minute, cfg.TTL)
	assert.Equal(t, 250*time.Millisecond, cfg.DebounceWindow)
	assert.Equal(t, "/opt/volatility3/vol.py", cfg.VolatilityBinary)
	assert.Equal(t, []string{"-q"}, cfg.VolatilityArgs)
	assert.True(t, cfg.LogJSON)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	content := "cache:\n  max_entries: 5\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(content), 0o644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.MaxEntriesPerCache)
	assert.Equal(t, config.DefaultTTL, cfg.TTL)
	assert.Equal(t, config.DefaultDebounceWindow, cfg.DebounceWindow)
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("cache: ["), 0o644))

	_, err := config.Load(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigParseFailed)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	content := "cache:\n  ttl: soon\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(content), 0o644))

	_, err := config.Load(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigParseFailed)
}

func TestLoad_HomeFallback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	content := "cache:\n  max_entries: 7\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, config.FileName), []byte(content), 0o644))

	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxEntriesPerCache)
}
