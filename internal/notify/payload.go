package notify

import (
	"encoding/json"

	"github.com/slack-go/slack"
)

// Payload is a composed notification. It is built once by Compose and is
// read-only afterwards; accessors return copies.
type Payload struct {
	text   string
	color  string
	fields []Field
}

// Text is the headline, including the mention prefix when one applies.
func (p Payload) Text() string {
	return p.text
}

// Color is the attachment accent colour.
func (p Payload) Color() string {
	return p.color
}

// Fields returns the section fields in display order.
func (p Payload) Fields() []Field {
	out := make([]Field, len(p.fields))
	copy(out, p.fields)
	return out
}

// UnfurlLinks is always enabled for run notifications.
func (p Payload) UnfurlLinks() bool {
	return true
}

// Attachments renders the payload body as a single coloured attachment
// holding one section block of mrkdwn fields.
func (p Payload) Attachments() []slack.Attachment {
	elements := make([]*slack.TextBlockObject, 0, len(p.fields))
	for _, f := range p.fields {
		elements = append(elements, &slack.TextBlockObject{
			Type: slack.MarkdownType,
			Text: f.Markdown(),
		})
	}
	section := slack.NewSectionBlock(nil, elements, nil)
	return []slack.Attachment{{
		Color:  p.color,
		Blocks: slack.Blocks{BlockSet: []slack.Block{section}},
	}}
}

// WireMessage is the JSON body shared by both transports.
type WireMessage struct {
	Text        string             `json:"text"`
	Attachments []slack.Attachment `json:"attachments"`
	UnfurlLinks bool               `json:"unfurl_links"`
}

// Wire returns the JSON-ready form of p.
func (p Payload) Wire() WireMessage {
	return WireMessage{
		Text:        p.text,
		Attachments: p.Attachments(),
		UnfurlLinks: p.UnfurlLinks(),
	}
}

// MarshalJSON encodes p in its wire form.
func (p Payload) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Wire())
}
