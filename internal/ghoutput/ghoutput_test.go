package ghoutput

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output")
	if err := os.WriteFile(path, []byte("previous=1\n"), 0o600); err != nil {
		t.Fatalf("seed output: %v", err)
	}
	t.Setenv("GITHUB_OUTPUT", path)

	err := Write(map[string]string{
		"transport": "webhook",
		"text":      "<!here> build Failed\n100%",
		"  ":        "ignored",
	})
	if err != nil {
		t.Fatalf("Write() unexpected error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "previous=1\ntext=<!here> build Failed%0A100%25\ntransport=webhook\n"
	if string(got) != want {
		t.Errorf("output file = %q, want %q", got, want)
	}
}

func TestWriteWithoutOutputFile(t *testing.T) {
	t.Setenv("GITHUB_OUTPUT", "")
	if err := Write(map[string]string{"a": "b"}); err != nil {
		t.Fatalf("Write() unexpected error: %v", err)
	}
}

func TestCommands(t *testing.T) {
	var buf bytes.Buffer
	Error(&buf, "Failed to post message to Slack")
	Warning(&buf, "line one\nline two")

	want := "::error::Failed to post message to Slack\n::warning::line one%0Aline two\n"
	if buf.String() != want {
		t.Errorf("commands = %q, want %q", buf.String(), want)
	}
}
