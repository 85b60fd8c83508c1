package notify

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolveLinks(t *testing.T) {
	tests := []struct {
		name string
		rc   RunContext
		want WorkflowLinks
	}{
		{
			name: "pull request event",
			rc:   RunContext{Owner: "o", Repo: "r", SHA: "abc", EventName: "pull_request", TriggerNumber: 3},
			want: WorkflowLinks{
				RepositoryURL: "https://github.com/o/r",
				EventURL:      "https://github.com/o/r/pull/3",
				ActionURL:     "https://github.com/o/r/pull/3/checks",
			},
		},
		{
			name: "push event",
			rc:   RunContext{Owner: "o", Repo: "r", SHA: "abc", EventName: "push"},
			want: WorkflowLinks{
				RepositoryURL: "https://github.com/o/r",
				ActionURL:     "https://github.com/o/r/commit/abc/checks",
			},
		},
		{
			name: "enterprise server",
			rc:   RunContext{Owner: "o", Repo: "r", SHA: "abc", ServerURL: "https://ghe.example.com/"},
			want: WorkflowLinks{
				RepositoryURL: "https://ghe.example.com/o/r",
				ActionURL:     "https://ghe.example.com/o/r/commit/abc/checks",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveLinks(tt.rc)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ResolveLinks() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCommitRef(t *testing.T) {
	tests := []struct {
		name string
		rc   RunContext
		want string
	}{
		{name: "sha without head ref", rc: RunContext{SHA: "abc"}, want: "abc"},
		{name: "plain head ref", rc: RunContext{SHA: "abc", HeadRef: "feature/x"}, want: "feature/x"},
		{name: "qualified head ref", rc: RunContext{SHA: "abc", HeadRef: "refs/heads/feature"}, want: "feature"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rc.CommitRef(); got != tt.want {
				t.Errorf("CommitRef() = %q, want %q", got, tt.want)
			}
		})
	}
}
