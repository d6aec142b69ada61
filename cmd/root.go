package cmd

import (
	"fmt"
	"log/slog"

	"github.com/qcri/qfmark/internal/config"
	"github.com/qcri/qfmark/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "qfmark",
	Short: "Question tree marking and one-vs-all classification",
	Long: "qfmark decorates parsed question trees with focus, named-entity and " +
		"question-class labels, and picks a question category with a pool of " +
		"one-vs-all classifiers.",
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QFMARK_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides QFMARK_LOG_LEVEL)")

	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// setupLogging installs a text slog handler on stderr at the configured
// level.
func setupLogging(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return nil
}

// loadConfig layers flags over environment variables over defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.ConfigFromEnv()
	flags := cmd.Flags()

	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if flags.Changed("registry") {
		cfg.Registry, _ = flags.GetString("registry")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("ne-prefix") {
		cfg.Marking.NamedEntityPrefix, _ = flags.GetString("ne-prefix")
	}
	if flags.Changed("focus-class") {
		cfg.Marking.FocusWithClass, _ = flags.GetBool("focus-class")
	}
	if flags.Changed("related") {
		cfg.Marking.MarkRelated, _ = flags.GetBool("related")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// addMarkingFlags registers the flags that select tree decorations.
func addMarkingFlags(c *cobra.Command) {
	c.Flags().String("ne-prefix", "", "Suffix appended to named-entity labels as -<prefix>")
	c.Flags().Bool("focus-class", false, "Label the focus FOCUS-<CLASS> using the document's class")
	c.Flags().Bool("related", false, "Mark named entities related to the document's class")
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then QFMARK_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// warn reports a non-fatal problem on stderr through the default logger.
func warn(msg string, err error) {
	slog.Warn(msg, slog.Any("error", err))
}
