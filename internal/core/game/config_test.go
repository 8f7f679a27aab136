package game

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, float64(60), cfg.TickRate)
	require.False(t, cfg.Inspector.Enabled)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tick_rate: 30
log_level: debug
inspector:
  enabled: true
  host: 0.0.0.0
  port: 9000
  interval: 250ms
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, float64(30), cfg.TickRate)
	require.Equal(t, "debug", cfg.LogLevel)
	require.True(t, cfg.Inspector.Enabled)
	require.Equal(t, "0.0.0.0", cfg.Inspector.Host)
	require.Equal(t, 9000, cfg.Inspector.Port)
	require.Equal(t, 250*time.Millisecond, cfg.Inspector.Interval.Std())
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbis.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tick_rate: 120\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, float64(120), cfg.TickRate)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, DefaultConfig().Inspector, cfg.Inspector)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TickRate = 0
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Inspector.Enabled = true
	cfg.Inspector.Port = -1
	require.Error(t, cfg.Validate())
}

func TestTickInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TickRate = 50
	require.Equal(t, 20*time.Millisecond, cfg.TickInterval())
}
