package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/qcri/qfmark/internal/classifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "models.yaml", cfg.Registry)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Marking.FocusWithClass)
	assert.False(t, cfg.Marking.MarkRelated)
	require.NoError(t, cfg.Validate())
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("QFMARK_DB", "/tmp/qf.db")
	t.Setenv("QFMARK_REGISTRY", "/etc/qf/models.yaml")
	t.Setenv("QFMARK_NE_PREFIX", "gold")
	t.Setenv("QFMARK_FOCUS_WITH_CLASS", "true")
	t.Setenv("QFMARK_MARK_RELATED", "1")
	t.Setenv("QFMARK_WORKERS", "8")
	t.Setenv("QFMARK_LOG_LEVEL", "debug")

	cfg := ConfigFromEnv()
	assert.Equal(t, "/tmp/qf.db", cfg.DBPath)
	assert.Equal(t, "/etc/qf/models.yaml", cfg.Registry)
	assert.Equal(t, "gold", cfg.Marking.NamedEntityPrefix)
	assert.True(t, cfg.Marking.FocusWithClass)
	assert.True(t, cfg.Marking.MarkRelated)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestConfigFromEnv_BadValuesFallBack(t *testing.T) {
	t.Setenv("QFMARK_WORKERS", "many")
	t.Setenv("QFMARK_MARK_RELATED", "maybe")

	cfg := ConfigFromEnv()
	assert.Equal(t, 4, cfg.Workers)
	assert.False(t, cfg.Marking.MarkRelated)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.LogLevel = "loud"
	assert.Error(t, cfg.Validate())
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{" error ", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
	_, err := ParseLogLevel("verbose")
	assert.Error(t, err)
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadRegistry(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "models.yaml", `
models:
  - category: HUM
    path: hum.yaml
  - category: LOC
    path: /abs/loc.yaml
`)
	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, []classifier.Entry{
		{ID: "HUM", Path: filepath.Join(dir, "hum.yaml")},
		{ID: "LOC", Path: "/abs/loc.yaml"},
	}, reg.Entries())
}

func TestLoadRegistry_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"no models", "models: []"},
		{"missing category", "models:\n  - path: a.yaml"},
		{"missing path", "models:\n  - category: HUM"},
		{"duplicate", "models:\n  - {category: HUM, path: a}\n  - {category: HUM, path: b}"},
		{"unknown field", "models:\n  - {category: HUM, path: a, weight: 2}"},
		{"malformed", "models: [HUM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "models.yaml", tt.body)
			_, err := LoadRegistry(path)
			assert.Error(t, err)
		})
	}

	_, err := LoadRegistry(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
