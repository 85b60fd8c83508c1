package notify

import (
	"fmt"
	"strings"
)

// DefaultServerURL is used when a RunContext carries no server URL.
const DefaultServerURL = "https://github.com"

// RunContext is a snapshot of the workflow run being reported.
type RunContext struct {
	// Owner is the repository owner login.
	Owner string
	// Repo is the repository name without the owner.
	Repo string
	// Ref is the git ref that triggered the run.
	Ref string
	// SHA is the commit the run was triggered for.
	SHA string
	// EventName is the name of the triggering event (push, pull_request, ...).
	EventName string
	// Workflow is the workflow display name.
	Workflow string
	// TriggerNumber is the pull request number for PR events; zero when absent.
	TriggerNumber int
	// HeadRef is the source branch of a pull request run.
	HeadRef string
	// ServerURL is the GitHub web base URL.
	ServerURL string
}

// HasTrigger reports whether the run was triggered by a pull-request-style event.
func (rc RunContext) HasTrigger() bool {
	return rc.TriggerNumber > 0
}

// CommitRef is the ref used to look up the commit being reported: the PR head
// branch when known, the run SHA otherwise.
func (rc RunContext) CommitRef() string {
	if ref := strings.TrimPrefix(strings.TrimSpace(rc.HeadRef), "refs/heads/"); ref != "" {
		return ref
	}
	return rc.SHA
}

// WorkflowLinks are canonical links derived from a RunContext.
type WorkflowLinks struct {
	RepositoryURL string
	// EventURL is empty unless the run was triggered by a pull request.
	EventURL  string
	ActionURL string
}

// ResolveLinks derives repository, event and checks URLs for rc.
func ResolveLinks(rc RunContext) WorkflowLinks {
	server := strings.TrimRight(strings.TrimSpace(rc.ServerURL), "/")
	if server == "" {
		server = DefaultServerURL
	}
	links := WorkflowLinks{
		RepositoryURL: fmt.Sprintf("%s/%s/%s", server, rc.Owner, rc.Repo),
	}
	if rc.HasTrigger() {
		links.EventURL = fmt.Sprintf("%s/pull/%d", links.RepositoryURL, rc.TriggerNumber)
		links.ActionURL = links.EventURL + "/checks"
		return links
	}
	links.ActionURL = fmt.Sprintf("%s/commit/%s/checks", links.RepositoryURL, rc.SHA)
	return links
}
