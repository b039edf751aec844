package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "ws://localhost:9090/server", cfg.Server.URL)
	assert.Equal(t, 60, cfg.Server.TickRate)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9100", cfg.Metrics.Address)
	assert.True(t, cfg.Replay.Enabled)
	assert.Equal(t, "replays", cfg.Replay.Directory)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
server:
  url: ws://play.example.com/server
  user_id: 42
  tick_rate: 30
logging:
  level: debug
  format: json
metrics:
  enabled: true
  address: ":9200"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ws://play.example.com/server", cfg.Server.URL)
	assert.Equal(t, 42, cfg.Server.UserID)
	assert.Equal(t, 30, cfg.Server.TickRate)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9200", cfg.Metrics.Address)
	// Untouched sections keep their defaults.
	assert.Equal(t, "replays", cfg.Replay.Directory)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoadRejectsBadTickRate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  tick_rate: 0\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "tick_rate")
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("BANG_SERVER_URL", "ws://env.example.com/server")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "ws://env.example.com/server", cfg.Server.URL)
}
