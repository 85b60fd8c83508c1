package cli

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/cinotify/internal/config"
	"github.com/codex-k8s/cinotify/internal/runctx"
)

// newRenderCommand creates "render" which prints the payload without sending it.
func newRenderCommand(opts *Options) *cobra.Command {
	var compact bool
	flags := &inputFlags{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the Slack payload for the current run without sending it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			settings, err := loadSettings(cmd, opts, flags, config.ValidateOptions{SkipDestination: true})
			if err != nil {
				return err
			}
			runEnv, err := runctx.LoadEnvironment()
			if err != nil {
				return err
			}
			reportWarnings(cmd.ErrOrStderr(), logger, runEnv, settings.Warnings)

			n, err := composeNotification(cmd.Context(), logger, settings, runEnv, &http.Client{Timeout: settings.Timeout})
			if err != nil {
				return err
			}

			var raw []byte
			if compact {
				raw, err = json.Marshal(n.payload)
			} else {
				raw, err = json.MarshalIndent(n.payload, "", "  ")
			}
			if err != nil {
				return fmt.Errorf("encode payload: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return err
		},
	}

	addInputFlags(cmd, flags)
	cmd.Flags().BoolVar(&compact, "compact", false, "Print the payload on a single line")
	return cmd
}
