package config

import (
	"fmt"

	envparse "github.com/caarlos0/env/v11"
)

// actionEnv holds the INPUT_* variables the runner exports for action inputs,
// plus the SLACK_* overrides.
type actionEnv struct {
	Type       string `env:"INPUT_TYPE"`
	JobName    string `env:"INPUT_JOB_NAME"`
	Mention    string `env:"INPUT_MENTION"`
	MentionIf  string `env:"INPUT_MENTION_IF"`
	URL        string `env:"INPUT_URL"`
	SlackToken string `env:"INPUT_SLACK_TOKEN"`
	Username   string `env:"INPUT_USERNAME"`
	Channel    string `env:"INPUT_CHANNEL"`
	IconEmoji  string `env:"INPUT_ICON_EMOJI"`
	Commit     string `env:"INPUT_COMMIT"`
	Token      string `env:"INPUT_TOKEN"`
	Timeout    string `env:"INPUT_TIMEOUT"`

	// SlackWebhook overrides the url input.
	SlackWebhook string `env:"SLACK_WEBHOOK"`
	// SlackTokenOverride overrides the slack_token input.
	SlackTokenOverride string `env:"SLACK_TOKEN"`
	// SlackChannel overrides the chat channel.
	SlackChannel string `env:"SLACK_CHANNEL"`
}

// fallbackEnv holds variables that only apply when no layer sets the input.
type fallbackEnv struct {
	// GitHubToken backs the token input.
	GitHubToken string `env:"GITHUB_TOKEN"`
}

// FromEnv reads Inputs from the process environment.
func FromEnv() (Inputs, error) {
	var e actionEnv
	if err := envparse.Parse(&e); err != nil {
		return Inputs{}, fmt.Errorf("parse action inputs from env: %w", err)
	}
	return e.inputs(), nil
}

// Fallbacks reads the lowest-precedence layer from the environment.
func Fallbacks() (Inputs, error) {
	var e fallbackEnv
	if err := envparse.Parse(&e); err != nil {
		return Inputs{}, fmt.Errorf("parse fallback inputs from env: %w", err)
	}
	return Inputs{Token: e.GitHubToken}, nil
}

func (e actionEnv) inputs() Inputs {
	return Inputs{
		Type:         e.Type,
		JobName:      e.JobName,
		Mention:      e.Mention,
		MentionIf:    e.MentionIf,
		URL:          firstNonEmpty(e.SlackWebhook, e.URL),
		SlackToken:   firstNonEmpty(e.SlackTokenOverride, e.SlackToken),
		SlackChannel: firstNonEmpty(e.SlackChannel, e.Channel),
		Username:     e.Username,
		Channel:      e.Channel,
		IconEmoji:    e.IconEmoji,
		Commit:       e.Commit,
		Token:        e.Token,
		Timeout:      e.Timeout,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
