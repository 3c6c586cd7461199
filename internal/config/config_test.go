package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
database_path: "/tmp/liftr-test.db"
debug: true
log_file: "/tmp/liftr.log"
auto_advance_ms: 750
default_unit: "lbs"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/liftr-test.db", cfg.DatabasePath)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "/tmp/liftr.log", cfg.LogFile)
	assert.Equal(t, 750, cfg.AutoAdvanceMS)
	assert.Equal(t, 750*time.Millisecond, cfg.AutoAdvance())
	assert.Equal(t, "lbs", cfg.DefaultUnit)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 500*time.Millisecond, cfg.AutoAdvance())
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeTemp(t, "debug: true\n"))
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, DefaultAutoAdvanceMS, cfg.AutoAdvanceMS)
	assert.Equal(t, "kg", cfg.DefaultUnit)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("LIFTR_DB_PATH", "/env/liftr.db")
	t.Setenv("LIFTR_DEBUG", "false")
	t.Setenv("LIFTR_AUTO_ADVANCE_MS", "0")
	t.Setenv("LIFTR_DEFAULT_UNIT", "kg")

	cfg, err := Load(writeTemp(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "/env/liftr.db", cfg.DatabasePath)
	assert.False(t, cfg.Debug)
	assert.Equal(t, 0, cfg.AutoAdvanceMS)
	assert.Equal(t, "kg", cfg.DefaultUnit)
	assert.Equal(t, "/tmp/liftr.log", cfg.LogFile, "unset env keeps file value")
}

func TestEnvOverrideIgnoresGarbage(t *testing.T) {
	t.Setenv("LIFTR_AUTO_ADVANCE_MS", "soon")
	t.Setenv("LIFTR_DEBUG", "maybe")

	cfg, err := Load(writeTemp(t, validYAML))
	require.NoError(t, err)
	assert.Equal(t, 750, cfg.AutoAdvanceMS)
	assert.True(t, cfg.Debug)
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load(writeTemp(t, "debug: [unclosed"))
	assert.ErrorContains(t, err, "parsing config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative delay", "auto_advance_ms: -1\n"},
		{"huge delay", "auto_advance_ms: 60000\n"},
		{"bad unit", "default_unit: stone\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeTemp(t, tt.yaml))
			assert.ErrorContains(t, err, "config validation")
		})
	}
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "config.yaml", filepath.Base(path))
	assert.Equal(t, "liftr", filepath.Base(filepath.Dir(path)))
}

func TestSetAutoAdvanceMS(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.SetAutoAdvanceMS(0))
	assert.Equal(t, time.Duration(0), cfg.AutoAdvance())

	require.NoError(t, cfg.SetAutoAdvanceMS(1500))
	assert.Equal(t, 1500*time.Millisecond, cfg.AutoAdvance())

	err := cfg.SetAutoAdvanceMS(99999999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auto_advance_ms")
	assert.Equal(t, 1500, cfg.AutoAdvanceMS, "rejected value must not stick")
}
