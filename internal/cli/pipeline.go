package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2"

	"github.com/codex-k8s/cinotify/internal/config"
	"github.com/codex-k8s/cinotify/internal/ghoutput"
	"github.com/codex-k8s/cinotify/internal/githubapi"
	"github.com/codex-k8s/cinotify/internal/notify"
	"github.com/codex-k8s/cinotify/internal/runctx"
	"github.com/codex-k8s/cinotify/internal/slackapi"
)

// notification is a composed payload together with the context it describes.
type notification struct {
	run     notify.RunContext
	payload notify.Payload
}

// composeNotification gathers the run context, fetches commit metadata when
// requested and builds the payload. The lookup always finishes before
// composition starts.
func composeNotification(
	ctx context.Context,
	logger *slog.Logger,
	settings config.Settings,
	runEnv runctx.Environment,
	httpClient *http.Client,
) (notification, error) {
	rc, err := runEnv.RunContext()
	if err != nil {
		return notification{}, err
	}
	logger.Debug("run context resolved",
		"repository", rc.Owner+"/"+rc.Repo,
		"ref", rc.Ref,
		"event", rc.EventName,
		"trigger", rc.TriggerNumber,
	)

	var commit *notify.CommitInfo
	if settings.Commit {
		lookupCtx := context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		client, err := githubapi.NewClient(lookupCtx, logger, settings.GitHubToken, runEnv.APIURL)
		if err != nil {
			return notification{}, err
		}
		info, err := client.FetchCommit(ctx, rc.Owner, rc.Repo, rc.CommitRef())
		if err != nil {
			return notification{}, err
		}
		commit = &info
	}

	payload, err := notify.Compose(settings.Message(), rc, commit)
	if err != nil {
		return notification{}, err
	}
	return notification{run: rc, payload: payload}, nil
}

// newSender picks the transport named by the destination.
func newSender(logger *slog.Logger, dest config.Destination, httpClient *http.Client) (slackapi.Sender, error) {
	switch dest.Transport {
	case config.TransportWebhook:
		return slackapi.NewWebhookSender(logger, httpClient, dest.WebhookURL, slackapi.WebhookOptions{
			Username:  dest.Username,
			Channel:   dest.WebhookChannel,
			IconEmoji: dest.IconEmoji,
		})
	case config.TransportChat:
		return slackapi.NewChatSender(logger, dest.Token, dest.Channel, slackapi.ChatOptions{
			Username:   dest.Username,
			IconEmoji:  dest.IconEmoji,
			APIURL:     chatAPIURL(),
			HTTPClient: httpClient,
		})
	default:
		return nil, &config.ConfigurationError{Field: "url", Reason: fmt.Sprintf("unsupported transport %q", dest.Transport)}
	}
}

// chatAPIURL returns the Slack Web API base override from SLACK_API_URL, or
// empty for slack-go's default endpoint.
func chatAPIURL() string {
	if !envPresent("SLACK_API_URL") {
		return ""
	}
	return strings.TrimRight(strings.TrimSpace(os.Getenv("SLACK_API_URL")), "/") + "/"
}

// reportWarnings logs ignored inputs and, on a runner, annotates the step.
func reportWarnings(w io.Writer, logger *slog.Logger, runEnv runctx.Environment, warnings []string) {
	for _, msg := range warnings {
		logger.Warn(msg)
		if runEnv.Actions {
			ghoutput.Warning(w, msg)
		}
	}
}
