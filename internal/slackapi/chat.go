package slackapi

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"strings"

	"github.com/slack-go/slack"

	"github.com/codex-k8s/cinotify/internal/logging"
	"github.com/codex-k8s/cinotify/internal/notify"
)

// TransportChat identifies chat.postMessage delivery.
const TransportChat = "chat"

// ChatOptions configure a ChatSender.
type ChatOptions struct {
	// Username overrides the bot display name when the app allows it.
	Username string
	// IconEmoji overrides the bot icon when the app allows it.
	IconEmoji string
	// APIURL points the client at a non-default Slack API base; it must end in "/".
	APIURL string
	// HTTPClient replaces the default HTTP client.
	HTTPClient *http.Client
}

// ChatSender posts payloads through the Slack Web API with a bot token.
type ChatSender struct {
	logger  *slog.Logger
	api     *slack.Client
	channel string
	options ChatOptions
}

// NewChatSender constructs a ChatSender for channel authenticated with token.
func NewChatSender(logger *slog.Logger, token, channel string, options ChatOptions) (*ChatSender, error) {
	token = strings.TrimSpace(token)
	channel = strings.TrimSpace(channel)
	if token == "" {
		return nil, fmt.Errorf("slack token is empty")
	}
	if channel == "" {
		return nil, fmt.Errorf("slack channel is empty")
	}

	var opts []slack.Option
	if options.APIURL != "" {
		opts = append(opts, slack.OptionAPIURL(options.APIURL))
	}
	if options.HTTPClient != nil {
		opts = append(opts, slack.OptionHTTPClient(options.HTTPClient))
	}
	if logger != nil && logger.Enabled(context.Background(), slog.LevelDebug) {
		opts = append(opts,
			slack.OptionDebug(true),
			slack.OptionLog(log.New(logging.NewWriter(logger, "slack api"), "", 0)),
		)
	}

	return &ChatSender{
		logger:  logger,
		api:     slack.New(token, opts...),
		channel: channel,
		options: options,
	}, nil
}

func (s *ChatSender) Transport() string { return TransportChat }

// Send posts payload to the configured channel once.
func (s *ChatSender) Send(ctx context.Context, payload notify.Payload) error {
	wire := payload.Wire()
	msgOpts := []slack.MsgOption{
		slack.MsgOptionText(wire.Text, false),
		slack.MsgOptionAttachments(wire.Attachments...),
	}
	if wire.UnfurlLinks {
		msgOpts = append(msgOpts, slack.MsgOptionEnableLinkUnfurl())
	}
	if s.options.Username != "" {
		msgOpts = append(msgOpts, slack.MsgOptionUsername(s.options.Username))
	}
	if s.options.IconEmoji != "" {
		msgOpts = append(msgOpts, slack.MsgOptionIconEmoji(s.options.IconEmoji))
	}

	channel, ts, err := s.api.PostMessageContext(ctx, s.channel, msgOpts...)
	if err != nil {
		var platformErr slack.SlackErrorResponse
		if errors.As(err, &platformErr) {
			return &DeliveryError{Transport: TransportChat, Response: platformErr.Err, Err: err}
		}
		var statusErr slack.StatusCodeError
		if errors.As(err, &statusErr) {
			return &DeliveryError{Transport: TransportChat, StatusCode: statusErr.Code, Response: statusErr.Status, Err: err}
		}
		return &DeliveryError{Transport: TransportChat, Err: err}
	}
	if s.logger != nil {
		s.logger.Debug("slack message posted", "channel", channel, "ts", ts)
	}
	return nil
}
