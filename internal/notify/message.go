package notify

import (
	"fmt"
	"strings"
)

// CommitInfo describes the commit a run was triggered for.
type CommitInfo struct {
	// Message is the full commit message; only its first line is rendered.
	Message string
	// URL is the commit page URL.
	URL string
	// Author is set when the commit author maps to a GitHub account.
	Author *CommitAuthor
}

// CommitAuthor is the GitHub account that authored a commit.
type CommitAuthor struct {
	Name string
	URL  string
}

// Field is a labelled value rendered as a mrkdwn section field.
type Field struct {
	Label string
	Value string
}

// Markdown renders the field as "*label*\nvalue".
func (f Field) Markdown() string {
	return fmt.Sprintf("*%s*\n%s", f.Label, f.Value)
}

// Message holds the job-level inputs of a notification.
type Message struct {
	JobName string
	// Status is the raw job status; it must parse with ParseStatus.
	Status string
	// Mention is a Slack handle such as "here" or "subteam^ID"; empty disables mentions.
	Mention string
	// MentionCondition is "always" or the status on which to mention.
	MentionCondition string
}

// Compose builds the Slack payload for msg. It performs no I/O: commit
// metadata, when wanted, must be fetched beforehand and passed in.
func Compose(msg Message, rc RunContext, commit *CommitInfo) (Payload, error) {
	status, err := ParseStatus(msg.Status)
	if err != nil {
		return Payload{}, err
	}
	accessory, err := status.Accessory()
	if err != nil {
		return Payload{}, err
	}

	text := fmt.Sprintf("%s %s", msg.JobName, accessory.Label)
	if msg.Mention != "" && IsMention(msg.MentionCondition, status.String()) {
		text = fmt.Sprintf("<!%s> %s", msg.Mention, text)
	}

	fields := baseFields(rc, ResolveLinks(rc))
	if commit != nil {
		fields = append(fields, commitFields(*commit)...)
	}

	return Payload{
		text:   text,
		color:  accessory.Color,
		fields: fields,
	}, nil
}

func baseFields(rc RunContext, links WorkflowLinks) []Field {
	event := rc.EventName
	if links.EventURL != "" {
		event = link(links.EventURL, rc.EventName)
	}
	return []Field{
		{Label: "repository", Value: link(links.RepositoryURL, rc.Owner+"/"+rc.Repo)},
		{Label: "ref", Value: rc.Ref},
		{Label: "event name", Value: event},
		{Label: "workflow", Value: link(links.ActionURL, rc.Workflow)},
	}
}

func commitFields(commit CommitInfo) []Field {
	fields := []Field{
		{Label: "commit", Value: link(commit.URL, firstLine(commit.Message))},
	}
	if commit.Author != nil {
		fields = append(fields, Field{Label: "author", Value: link(commit.Author.URL, commit.Author.Name)})
	}
	return fields
}

func link(url, title string) string {
	return fmt.Sprintf("<%s|%s>", url, title)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSuffix(line, "\r")
}
