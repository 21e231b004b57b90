package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rahulj/mockmate/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mockmate",
	Short: "Terminal mock-interview practice",
	Long:  "MockMate — practice engineering interviews in the terminal: pick a stream, answer a timed round, get a score, a level, and a preparation roadmap.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides MOCKMATE_DB env var)")
	pf.String("log-level", "warn", "Log level (debug, info, warn, error)")
	pf.String("log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// viperForCmd binds a command's flags and environment to a fresh viper
// instance: flags win, then MOCKMATE_* env vars, then an optional
// mockmate.yaml config file.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("MOCKMATE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("mockmate")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/mockmate")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	}

	return v
}

// setupLogging configures the process-wide slog handler. Returns the
// logger so TUI code can log without touching the terminal default.
func setupLogging(v *viper.Viper) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelWarn
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	logger := slog.New(logHandler)
	slog.SetDefault(logger)
	return logger
}

// resolveDBPath returns the database path: --db flag or MOCKMATE_DB
// first, then the default XDG path.
func resolveDBPath(v *viper.Viper) (string, error) {
	if p := v.GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
