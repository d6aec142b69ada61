// Package config resolves qfmark settings from defaults, environment
// variables and command-line flags, and loads the model registry.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/qcri/qfmark/internal/question"
)

// Config holds all qfmark configuration.
type Config struct {
	// DBPath is the SQLite decision log. Empty means the default XDG path.
	DBPath string

	// Registry is the YAML file listing one model per category.
	Registry string

	// Marking selects the decorations applied before classification.
	Marking question.Options

	// Workers bounds the number of documents classified in parallel.
	Workers int

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Registry: "models.yaml",
		Workers:  4,
		LogLevel: "info",
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset or unparsable values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("QFMARK_DB"); p != "" {
		cfg.DBPath = p
	}
	if r := os.Getenv("QFMARK_REGISTRY"); r != "" {
		cfg.Registry = r
	}
	if p := os.Getenv("QFMARK_NE_PREFIX"); p != "" {
		cfg.Marking.NamedEntityPrefix = p
	}
	if b, ok := envBool("QFMARK_FOCUS_WITH_CLASS"); ok {
		cfg.Marking.FocusWithClass = b
	}
	if b, ok := envBool("QFMARK_MARK_RELATED"); ok {
		cfg.Marking.MarkRelated = b
	}
	if w := os.Getenv("QFMARK_WORKERS"); w != "" {
		if n, err := strconv.Atoi(w); err == nil {
			cfg.Workers = n
		}
	}
	if l := os.Getenv("QFMARK_LOG_LEVEL"); l != "" {
		cfg.LogLevel = l
	}

	return cfg
}

func envBool(key string) (bool, bool) {
	v := os.Getenv(key)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLogLevel converts a level name to a slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return l, nil
}
