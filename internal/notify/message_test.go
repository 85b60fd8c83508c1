package notify

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var prContext = RunContext{
	Owner:         "onvista-media",
	Repo:          "slatify",
	Ref:           "1",
	SHA:           "2",
	EventName:     "pull_request",
	Workflow:      "test",
	TriggerNumber: 3,
}

const repoURL = "https://github.com/onvista-media/slatify"

func sampleCommit() *CommitInfo {
	return &CommitInfo{
		Message: "Hello World\nYEAH!!!!!",
		URL:     "https://this.is.test",
		Author: &CommitAuthor{
			Name: "lazy-actions",
			URL:  "https://lazy-actions",
		},
	}
}

func TestComposeBaseFields(t *testing.T) {
	tests := []struct {
		name      string
		rc        RunContext
		wantEvent string
		wantCheck string
	}{
		{
			name:      "with event link",
			rc:        prContext,
			wantEvent: "<" + repoURL + "/pull/3|pull_request>",
			wantCheck: repoURL + "/pull/3/checks",
		},
		{
			name: "without event link",
			rc: func() RunContext {
				rc := prContext
				rc.EventName = "push"
				rc.TriggerNumber = 0
				return rc
			}(),
			wantEvent: "push",
			wantCheck: repoURL + "/commit/2/checks",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := Compose(Message{JobName: "build", Status: "success"}, tt.rc, nil)
			if err != nil {
				t.Fatalf("Compose() unexpected error: %v", err)
			}
			want := []Field{
				{Label: "repository", Value: "<" + repoURL + "|onvista-media/slatify>"},
				{Label: "ref", Value: "1"},
				{Label: "event name", Value: tt.wantEvent},
				{Label: "workflow", Value: "<" + tt.wantCheck + "|test>"},
			}
			if diff := cmp.Diff(want, payload.Fields()); diff != "" {
				t.Errorf("Fields() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComposeCommitFields(t *testing.T) {
	t.Run("with author", func(t *testing.T) {
		payload, err := Compose(Message{JobName: "build", Status: "success"}, prContext, sampleCommit())
		if err != nil {
			t.Fatalf("Compose() unexpected error: %v", err)
		}
		fields := payload.Fields()
		if len(fields) != 6 {
			t.Fatalf("len(Fields()) = %d, want 6", len(fields))
		}
		want := []Field{
			{Label: "commit", Value: "<https://this.is.test|Hello World>"},
			{Label: "author", Value: "<https://lazy-actions|lazy-actions>"},
		}
		if diff := cmp.Diff(want, fields[4:]); diff != "" {
			t.Errorf("commit fields mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("without author", func(t *testing.T) {
		commit := &CommitInfo{Message: "this is test", URL: "https://this.is.test"}
		payload, err := Compose(Message{JobName: "build", Status: "success"}, prContext, commit)
		if err != nil {
			t.Fatalf("Compose() unexpected error: %v", err)
		}
		fields := payload.Fields()
		if len(fields) != 5 {
			t.Fatalf("len(Fields()) = %d, want 5", len(fields))
		}
		if got, want := fields[4], (Field{Label: "commit", Value: "<https://this.is.test|this is test>"}); got != want {
			t.Errorf("commit field = %+v, want %+v", got, want)
		}
	})

	t.Run("crlf message", func(t *testing.T) {
		commit := &CommitInfo{Message: "subject\r\n\r\nbody", URL: "u"}
		payload, err := Compose(Message{JobName: "build", Status: "success"}, prContext, commit)
		if err != nil {
			t.Fatalf("Compose() unexpected error: %v", err)
		}
		if got := payload.Fields()[4].Value; got != "<u|subject>" {
			t.Errorf("commit value = %q, want %q", got, "<u|subject>")
		}
	})
}

func TestComposeMention(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want string
	}{
		{
			name: "always",
			msg:  Message{JobName: "test", Status: "success", Mention: "bot", MentionCondition: "always"},
			want: "<!bot> test Succeeded",
		},
		{
			name: "matching status",
			msg:  Message{JobName: "test", Status: "failure", Mention: "here", MentionCondition: "failure"},
			want: "<!here> test Failed",
		},
		{
			name: "different status",
			msg:  Message{JobName: "test", Status: "success", Mention: "bot", MentionCondition: "failure"},
			want: "test Succeeded",
		},
		{
			name: "empty mention",
			msg:  Message{JobName: "test", Status: "cancelled", MentionCondition: "always"},
			want: "test Cancelled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := Compose(tt.msg, prContext, nil)
			if err != nil {
				t.Fatalf("Compose() unexpected error: %v", err)
			}
			if got := payload.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComposeUnknownStatus(t *testing.T) {
	_, err := Compose(Message{JobName: "test", Status: "skipped"}, prContext, nil)
	var unknown *UnknownStatusError
	if !errors.As(err, &unknown) {
		t.Fatalf("Compose() error = %v, want UnknownStatusError", err)
	}
}

func TestComposeIsDeterministic(t *testing.T) {
	msg := Message{JobName: "test", Status: "success", Mention: "here", MentionCondition: "always"}
	first, err := Compose(msg, prContext, sampleCommit())
	if err != nil {
		t.Fatalf("Compose() unexpected error: %v", err)
	}
	second, err := Compose(msg, prContext, sampleCommit())
	if err != nil {
		t.Fatalf("Compose() unexpected error: %v", err)
	}
	a, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("payloads differ:\n%s\n%s", a, b)
	}
}

func TestPayloadFieldsAreCopies(t *testing.T) {
	payload, err := Compose(Message{JobName: "test", Status: "success"}, prContext, nil)
	if err != nil {
		t.Fatalf("Compose() unexpected error: %v", err)
	}
	fields := payload.Fields()
	fields[0].Value = "tampered"
	if payload.Fields()[0].Value == "tampered" {
		t.Error("Fields() exposes internal storage")
	}
}

func TestPayloadWireShape(t *testing.T) {
	msg := Message{JobName: "test", Status: "success", Mention: "here", MentionCondition: "always"}
	payload, err := Compose(msg, prContext, sampleCommit())
	if err != nil {
		t.Fatalf("Compose() unexpected error: %v", err)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}

	var got struct {
		Text        string `json:"text"`
		UnfurlLinks bool   `json:"unfurl_links"`
		Attachments []struct {
			Color  string `json:"color"`
			Blocks []struct {
				Type   string `json:"type"`
				Fields []struct {
					Type string `json:"type"`
					Text string `json:"text"`
				} `json:"fields"`
			} `json:"blocks"`
		} `json:"attachments"`
	}
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}

	if got.Text != "<!here> test Succeeded" {
		t.Errorf("text = %q", got.Text)
	}
	if !got.UnfurlLinks {
		t.Error("unfurl_links = false, want true")
	}
	if len(got.Attachments) != 1 || len(got.Attachments[0].Blocks) != 1 {
		t.Fatalf("unexpected attachment layout: %s", raw)
	}
	if got.Attachments[0].Color != "#2cbe4e" {
		t.Errorf("color = %q, want #2cbe4e", got.Attachments[0].Color)
	}
	block := got.Attachments[0].Blocks[0]
	if block.Type != "section" {
		t.Errorf("block type = %q, want section", block.Type)
	}
	wantTexts := []string{
		"*repository*\n<" + repoURL + "|onvista-media/slatify>",
		"*ref*\n1",
		"*event name*\n<" + repoURL + "/pull/3|pull_request>",
		"*workflow*\n<" + repoURL + "/pull/3/checks|test>",
		"*commit*\n<https://this.is.test|Hello World>",
		"*author*\n<https://lazy-actions|lazy-actions>",
	}
	if len(block.Fields) != len(wantTexts) {
		t.Fatalf("len(fields) = %d, want %d", len(block.Fields), len(wantTexts))
	}
	for i, f := range block.Fields {
		if f.Type != "mrkdwn" {
			t.Errorf("fields[%d].type = %q, want mrkdwn", i, f.Type)
		}
		if f.Text != wantTexts[i] {
			t.Errorf("fields[%d].text = %q, want %q", i, f.Text, wantTexts[i])
		}
	}
}
