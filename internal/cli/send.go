package cli

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/cinotify/internal/config"
	"github.com/codex-k8s/cinotify/internal/ghoutput"
	"github.com/codex-k8s/cinotify/internal/runctx"
)

// newSendCommand creates "send" which composes the notification and delivers it once.
func newSendCommand(opts *Options) *cobra.Command {
	flags := &inputFlags{}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Compose the job notification and post it to Slack",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			settings, err := loadSettings(cmd, opts, flags, config.ValidateOptions{})
			if err != nil {
				return err
			}
			runEnv, err := runctx.LoadEnvironment()
			if err != nil {
				return err
			}
			reportWarnings(cmd.OutOrStdout(), logger, runEnv, settings.Warnings)

			httpClient := &http.Client{Timeout: settings.Timeout}
			n, err := composeNotification(cmd.Context(), logger, settings, runEnv, httpClient)
			if err != nil {
				return err
			}

			raw, err := json.Marshal(n.payload)
			if err != nil {
				return fmt.Errorf("encode payload: %w", err)
			}
			logger.Info("generated payload for slack", "payload", string(raw))

			sender, err := newSender(logger, settings.Destination, httpClient)
			if err != nil {
				return err
			}
			if err := sender.Send(cmd.Context(), n.payload); err != nil {
				return err
			}
			logger.Info("sent message to Slack", "transport", sender.Transport())

			return ghoutput.Write(map[string]string{
				"transport": sender.Transport(),
				"text":      n.payload.Text(),
			})
		},
	}

	addInputFlags(cmd, flags)
	return cmd
}
