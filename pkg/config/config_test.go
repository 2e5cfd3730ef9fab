package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/getregsim/regsim/pkg/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, sim.DefaultPort, cfg.Sim.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())

	grace, err := cfg.ParseShutdownGrace()
	require.NoError(t, err)
	assert.Equal(t, DefaultShutdownGrace, grace)
}

func TestLoadFromFileYAML(t *testing.T) {
	path := writeTempConfig(t, "regsim.yaml", `
sim:
  port: 51000
  reflection: false
  delayScale: 0.5
log:
  level: debug
  format: json
shutdownGrace: 3s
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 51000, cfg.Sim.Port)
	assert.False(t, cfg.Sim.Reflection)
	assert.Equal(t, 0.5, cfg.Sim.DelayScale)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	grace, err := cfg.ParseShutdownGrace()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, grace)
}

func TestLoadFromFileJSON(t *testing.T) {
	path := writeTempConfig(t, "regsim.json", `{
  "sim": {"port": 52000, "reflection": true, "delayScale": 1.0},
  "log": {"level": "warn"}
}`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 52000, cfg.Sim.Port)
	assert.True(t, cfg.Sim.Reflection)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadFromFileKeepsDefaultsForMissingFields(t *testing.T) {
	path := writeTempConfig(t, "partial.yaml", `
sim:
  port: 53000
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 53000, cfg.Sim.Port)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, 1.0, cfg.Sim.DelayScale)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) string
		wantErr error
	}{
		{
			name:    "missing file",
			setup:   func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.yaml") },
			wantErr: ErrFileNotFound,
		},
		{
			name:    "empty file",
			setup:   func(t *testing.T) string { return writeTempConfig(t, "empty.yaml", "") },
			wantErr: ErrEmptyFile,
		},
		{
			name:    "bad yaml",
			setup:   func(t *testing.T) string { return writeTempConfig(t, "bad.yaml", "sim: [unclosed") },
			wantErr: ErrInvalidYAML,
		},
		{
			name:    "bad json",
			setup:   func(t *testing.T) string { return writeTempConfig(t, "bad.json", "{not json") },
			wantErr: ErrInvalidJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(tt.setup(t))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateRejectsBadGrace(t *testing.T) {
	cfg := Default()
	cfg.ShutdownGrace = "not-a-duration"
	assert.Error(t, cfg.Validate())

	cfg.ShutdownGrace = "-5s"
	assert.Error(t, cfg.Validate())
}

func TestValidatePropagatesSimErrors(t *testing.T) {
	cfg := Default()
	cfg.Sim.DelayScale = 0
	assert.ErrorIs(t, cfg.Validate(), sim.ErrInvalidDelayScale)
}
