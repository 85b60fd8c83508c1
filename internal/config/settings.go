package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/codex-k8s/cinotify/internal/notify"
)

// DefaultTimeout bounds each outbound HTTP request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

const (
	// TransportWebhook delivers through an incoming webhook URL.
	TransportWebhook = "webhook"
	// TransportChat delivers through chat.postMessage with a bot token.
	TransportChat = "chat"
)

// ConfigurationError reports a missing or malformed input.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Destination selects how the notification reaches Slack.
type Destination struct {
	// Transport is TransportWebhook or TransportChat.
	Transport string
	// WebhookURL is set for webhook delivery.
	WebhookURL string
	// Token and Channel are set for chat delivery.
	Token   string
	Channel string
	// WebhookChannel overrides the webhook's default channel.
	WebhookChannel string
	Username       string
	IconEmoji      string
}

// Settings are validated inputs ready for the notification pipeline.
type Settings struct {
	Status      notify.Status
	JobName     string
	Mention     string
	MentionIf   string
	Commit      bool
	GitHubToken string
	Timeout     time.Duration
	Destination Destination
	// Warnings lists inputs that were ignored rather than rejected.
	Warnings []string
}

// Message returns the composer inputs described by s.
func (s Settings) Message() notify.Message {
	return notify.Message{
		JobName:          s.JobName,
		Status:           s.Status.String(),
		Mention:          s.Mention,
		MentionCondition: s.MentionIf,
	}
}

// ValidateOptions tune Validate for commands that do not deliver.
type ValidateOptions struct {
	// SkipDestination allows missing Slack credentials.
	SkipDestination bool
}

// Validate checks in and resolves it into Settings. An unusable mention_if
// drops the mention with a warning instead of failing.
func (in Inputs) Validate(opts ValidateOptions) (Settings, error) {
	var s Settings

	statusRaw := strings.TrimSpace(in.Type)
	if statusRaw == "" {
		return Settings{}, &ConfigurationError{Field: "type", Reason: "input is required"}
	}
	status, err := notify.ParseStatus(statusRaw)
	if err != nil {
		return Settings{}, err
	}
	s.Status = status

	s.JobName = strings.TrimSpace(in.JobName)
	if s.JobName == "" {
		return Settings{}, &ConfigurationError{Field: "job_name", Reason: "input is required"}
	}

	s.Mention = strings.TrimSpace(in.Mention)
	s.MentionIf = strings.ToLower(strings.TrimSpace(in.MentionIf))
	if s.Mention != "" && !notify.ValidMentionCondition(s.MentionIf) {
		s.Warnings = append(s.Warnings, fmt.Sprintf("ignoring mention: mention_if %q is invalid", in.MentionIf))
		s.Mention = ""
		s.MentionIf = ""
	}

	if raw := strings.TrimSpace(in.Commit); raw != "" {
		commit, err := strconv.ParseBool(raw)
		if err != nil {
			return Settings{}, &ConfigurationError{Field: "commit", Reason: fmt.Sprintf("%q is not a boolean", raw)}
		}
		s.Commit = commit
	}
	s.GitHubToken = strings.TrimSpace(in.Token)
	if s.Commit && s.GitHubToken == "" {
		return Settings{}, &ConfigurationError{Field: "token", Reason: "a GitHub token is required when commit is enabled"}
	}

	s.Timeout = DefaultTimeout
	if raw := strings.TrimSpace(in.Timeout); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return Settings{}, &ConfigurationError{Field: "timeout", Reason: fmt.Sprintf("%q is not a positive duration", raw)}
		}
		s.Timeout = d
	}

	dest, err := in.destination()
	if err != nil && !opts.SkipDestination {
		return Settings{}, err
	}
	s.Destination = dest

	return s, nil
}

// destination prefers the webhook URL and falls back to bot credentials.
func (in Inputs) destination() (Destination, error) {
	d := Destination{
		Username:  strings.TrimSpace(in.Username),
		IconEmoji: strings.TrimSpace(in.IconEmoji),
	}
	if url := strings.TrimSpace(in.URL); url != "" {
		d.Transport = TransportWebhook
		d.WebhookURL = url
		d.WebhookChannel = strings.TrimSpace(in.Channel)
		return d, nil
	}

	token := strings.TrimSpace(in.SlackToken)
	channel := strings.TrimSpace(firstNonEmpty(in.SlackChannel, in.Channel))
	if token != "" && channel != "" {
		d.Transport = TransportChat
		d.Token = token
		d.Channel = channel
		return d, nil
	}

	reason := "missing Slack incoming webhook URL; set SLACK_WEBHOOK or the url input, or provide slack_token and channel"
	switch {
	case token != "":
		reason = "slack_token is set but no channel was given; set SLACK_CHANNEL or the channel input"
	case channel != "":
		reason = "channel is set but no slack_token was given; set SLACK_TOKEN or the slack_token input"
	}
	return Destination{}, &ConfigurationError{Field: "url", Reason: reason}
}
