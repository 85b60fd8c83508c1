// Package config loads and validates the notification inputs.
//
// Inputs are layered: an optional YAML file, then the action environment,
// then explicit command-line flags. Later layers override non-empty values of
// earlier ones.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Inputs are the raw, unvalidated notification inputs. Field names follow the
// action input names.
type Inputs struct {
	// Type is the job status (success, failure, cancelled).
	Type string `yaml:"type,omitempty"`
	// JobName is the headline subject.
	JobName string `yaml:"job_name,omitempty"`
	// Mention is the Slack handle to mention, e.g. "here".
	Mention string `yaml:"mention,omitempty"`
	// MentionIf is "always" or the status on which to mention.
	MentionIf string `yaml:"mention_if,omitempty"`
	// URL is the incoming webhook URL.
	URL string `yaml:"url,omitempty"`
	// SlackToken is the bot token for chat.postMessage.
	SlackToken string `yaml:"slack_token,omitempty"`
	// SlackChannel is the channel ID for chat.postMessage.
	SlackChannel string `yaml:"slack_channel,omitempty"`
	// Username overrides the sender name.
	Username string `yaml:"username,omitempty"`
	// Channel overrides the webhook channel.
	Channel string `yaml:"channel,omitempty"`
	// IconEmoji overrides the sender icon.
	IconEmoji string `yaml:"icon_emoji,omitempty"`
	// Commit enables commit annotation ("true"/"false").
	Commit string `yaml:"commit,omitempty"`
	// Token is the GitHub token used for commit lookups.
	Token string `yaml:"token,omitempty"`
	// Timeout bounds each HTTP request, e.g. "30s".
	Timeout string `yaml:"timeout,omitempty"`
}

// LoadFile reads Inputs from a YAML file. Unknown keys are rejected.
func LoadFile(path string) (Inputs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Inputs{}, &ConfigurationError{Field: "config", Reason: fmt.Sprintf("read %s: %v", path, err)}
	}

	var in Inputs
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		return Inputs{}, &ConfigurationError{Field: "config", Reason: fmt.Sprintf("parse %s: %v", path, err)}
	}
	return in, nil
}

// Merge combines layers in order; a non-empty value in a later layer wins.
func Merge(layers ...Inputs) Inputs {
	var out Inputs
	for _, l := range layers {
		override(&out.Type, l.Type)
		override(&out.JobName, l.JobName)
		override(&out.Mention, l.Mention)
		override(&out.MentionIf, l.MentionIf)
		override(&out.URL, l.URL)
		override(&out.SlackToken, l.SlackToken)
		override(&out.SlackChannel, l.SlackChannel)
		override(&out.Username, l.Username)
		override(&out.Channel, l.Channel)
		override(&out.IconEmoji, l.IconEmoji)
		override(&out.Commit, l.Commit)
		override(&out.Token, l.Token)
		override(&out.Timeout, l.Timeout)
	}
	return out
}

func override(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
