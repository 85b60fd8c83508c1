package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/cinotify/internal/config"
	"github.com/codex-k8s/cinotify/internal/env"
)

// loadEnvFiles exports the given .env files into the process environment.
func loadEnvFiles(logger *slog.Logger, files []string) error {
	if len(files) == 0 {
		return nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}
	vars, err := env.LoadEnvFiles(wd, files)
	if err != nil {
		return err
	}
	set, err := env.Export(vars)
	if err != nil {
		return err
	}
	logger.Debug("env files loaded", "files", files, "exported", len(set))
	return nil
}

// inputFlags binds the per-input flags shared by send and render.
type inputFlags struct {
	in      config.Inputs
	commit  bool
	timeout string
}

func addInputFlags(cmd *cobra.Command, f *inputFlags) {
	cmd.Flags().StringVar(&f.in.Type, "type", "", "Job status: success, failure or cancelled")
	cmd.Flags().StringVar(&f.in.JobName, "job-name", "", "Job name shown in the headline")
	cmd.Flags().StringVar(&f.in.Mention, "mention", "", "Slack handle to mention, e.g. here or channel")
	cmd.Flags().StringVar(&f.in.MentionIf, "mention-if", "", "When to mention: always, success, failure or cancelled")
	cmd.Flags().StringVar(&f.in.URL, "url", "", "Slack incoming webhook URL")
	cmd.Flags().StringVar(&f.in.SlackToken, "slack-token", "", "Slack bot token for chat.postMessage")
	cmd.Flags().StringVar(&f.in.SlackChannel, "slack-channel", "", "Channel ID for chat.postMessage")
	cmd.Flags().StringVar(&f.in.Username, "username", "", "Sender display name override")
	cmd.Flags().StringVar(&f.in.Channel, "channel", "", "Webhook channel override")
	cmd.Flags().StringVar(&f.in.IconEmoji, "icon-emoji", "", "Sender icon emoji override")
	cmd.Flags().BoolVar(&f.commit, "commit", false, "Annotate the message with the triggering commit")
	cmd.Flags().StringVar(&f.in.Token, "token", "", "GitHub token for the commit lookup")
	cmd.Flags().StringVar(&f.timeout, "timeout", "", "Per-request HTTP timeout (e.g. 30s)")
}

// layer returns the inputs explicitly set on the command line.
func (f *inputFlags) layer(cmd *cobra.Command) config.Inputs {
	in := f.in
	if cmd.Flags().Changed("commit") {
		in.Commit = strconv.FormatBool(f.commit)
	}
	if cmd.Flags().Changed("timeout") {
		in.Timeout = f.timeout
	}
	return in
}

// loadSettings layers the config file, environment and flags, then validates.
func loadSettings(cmd *cobra.Command, opts *Options, flags *inputFlags, validate config.ValidateOptions) (config.Settings, error) {
	fallbacks, err := config.Fallbacks()
	if err != nil {
		return config.Settings{}, err
	}

	var file config.Inputs
	if opts.ConfigPath != "" {
		if file, err = config.LoadFile(opts.ConfigPath); err != nil {
			return config.Settings{}, err
		}
	}

	fromEnv, err := config.FromEnv()
	if err != nil {
		return config.Settings{}, err
	}

	return config.Merge(fallbacks, file, fromEnv, flags.layer(cmd)).Validate(validate)
}
