package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadFillsDefaults(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
blue:
  kind: mcts
  goroutines: 16
  duration: 50ms
`)
	cfg, err := Load(path)
	require.NoError(t, err, "a partial config should load")
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, uint64(1), cfg.GameSeed, "unset fields keep defaults")
	require.Equal(t, "random", cfg.Red.Kind, "unset red agent keeps default")
	require.Equal(t, 16, cfg.Blue.Goroutines)
	require.Equal(t, Duration(50*time.Millisecond), cfg.Blue.Duration)
}

func TestLoadRejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown experiment", "experiment: speedup"},
		{"unknown agent kind", "red:\n  kind: neural"},
		{"mcts without budget", "blue:\n  kind: mcts\n  goroutines: 8\n  duration: 0s"},
		{"bad duration", "blue:\n  kind: mcts\n  goroutines: 8\n  duration: fast"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			require.Error(t, err, "should reject %s", tt.name)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate(), "the default config should be runnable")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
