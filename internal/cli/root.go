// Package cli defines the command-line interface for cinotify.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/cinotify/internal/logging"
)

// Options stores global CLI options shared between commands.
type Options struct {
	ConfigPath string
	EnvFiles   []string
	LogLevel   logging.Level
}

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}

	rootCmd := newRootCommand(&Options{LogLevel: logging.LevelInfo}, logger)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
func newRootCommand(opts *Options, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cinotify",
		Short:         "cinotify posts GitHub Actions job results to Slack",
		Long:          "cinotify reads the current GitHub Actions run, builds a Slack notification for the job outcome and delivers it through an incoming webhook or the chat.postMessage API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			base := baseEnv{}
			if err := parseEnv(&base); err != nil {
				return err
			}
			if !cmd.Flags().Changed("config") && envPresent("CINOTIFY_CONFIG") {
				opts.ConfigPath = base.ConfigPath
			}
			if !cmd.Flags().Changed("env-file") && len(base.EnvFiles) > 0 {
				opts.EnvFiles = base.EnvFiles
			}

			levelName := cmd.Flag("log-level").Value.String()
			if !cmd.Flags().Changed("log-level") && envPresent("CINOTIFY_LOG_LEVEL") {
				levelName = base.LogLevel
			}
			level := logging.ParseLevel(levelName)
			if logging.RunnerDebug() {
				level = logging.LevelDebug
			}
			opts.LogLevel = level
			logger = logging.NewLogger(cmd.ErrOrStderr(), level)
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
			logger.Debug("logger initialized", "level", slog.Level(level))

			return loadEnvFiles(logger, opts.EnvFiles)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to a YAML file with default inputs")
	cmd.PersistentFlags().StringSliceVar(&opts.EnvFiles, "env-file", nil, "Load variables from .env files (existing variables win)")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newSendCommand(opts),
		newRenderCommand(opts),
	)

	return cmd
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}
