package slackapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/slack-go/slack"

	"github.com/codex-k8s/cinotify/internal/notify"
)

// TransportWebhook identifies incoming-webhook delivery.
const TransportWebhook = "webhook"

// maxAckBytes bounds how much of a webhook response is kept for diagnostics.
const maxAckBytes = 64 << 10

// WebhookOptions are defaults merged into every webhook message.
type WebhookOptions struct {
	Username  string
	Channel   string
	IconEmoji string
}

// WebhookSender posts payloads to a Slack incoming webhook URL.
type WebhookSender struct {
	logger  *slog.Logger
	client  *http.Client
	url     string
	options WebhookOptions
}

// NewWebhookSender constructs a WebhookSender. A nil client uses http.DefaultClient.
func NewWebhookSender(logger *slog.Logger, client *http.Client, url string, options WebhookOptions) (*WebhookSender, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fmt.Errorf("webhook url is empty")
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &WebhookSender{
		logger:  logger,
		client:  client,
		url:     url,
		options: options,
	}, nil
}

func (s *WebhookSender) Transport() string { return TransportWebhook }

type webhookRequest struct {
	Username    string             `json:"username,omitempty"`
	Channel     string             `json:"channel,omitempty"`
	IconEmoji   string             `json:"icon_emoji,omitempty"`
	Text        string             `json:"text"`
	Attachments []slack.Attachment `json:"attachments"`
	UnfurlLinks bool               `json:"unfurl_links"`
}

// Send posts payload once. Slack acknowledges an accepted webhook with the
// literal body "ok"; anything else is a DeliveryError.
func (s *WebhookSender) Send(ctx context.Context, payload notify.Payload) error {
	wire := payload.Wire()
	body, err := json.Marshal(webhookRequest{
		Username:    s.options.Username,
		Channel:     s.options.Channel,
		IconEmoji:   s.options.IconEmoji,
		Text:        wire.Text,
		Attachments: wire.Attachments,
		UnfurlLinks: wire.UnfurlLinks,
	})
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return &DeliveryError{Transport: TransportWebhook, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return &DeliveryError{Transport: TransportWebhook, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	ack, err := io.ReadAll(io.LimitReader(resp.Body, maxAckBytes))
	if err != nil {
		return &DeliveryError{Transport: TransportWebhook, StatusCode: resp.StatusCode, Err: err}
	}
	text := strings.TrimSpace(string(ack))
	if s.logger != nil {
		s.logger.Debug("slack webhook response", "status", resp.StatusCode, "body", text)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || text != "ok" {
		return &DeliveryError{
			Transport:  TransportWebhook,
			StatusCode: resp.StatusCode,
			Response:   text,
		}
	}
	return nil
}
