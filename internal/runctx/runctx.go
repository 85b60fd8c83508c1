// Package runctx reads the GitHub Actions run context from the environment.
package runctx

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	envparse "github.com/caarlos0/env/v11"
	gogithub "github.com/google/go-github/v68/github"

	"github.com/codex-k8s/cinotify/internal/notify"
)

// Environment mirrors the default variables exported by the Actions runner.
type Environment struct {
	// Repository is the owner/name slug from GITHUB_REPOSITORY.
	Repository string `env:"GITHUB_REPOSITORY"`
	// Ref is the triggering ref from GITHUB_REF.
	Ref string `env:"GITHUB_REF"`
	// SHA is the triggering commit from GITHUB_SHA.
	SHA string `env:"GITHUB_SHA"`
	// EventName is the triggering event from GITHUB_EVENT_NAME.
	EventName string `env:"GITHUB_EVENT_NAME"`
	// EventPath is the webhook payload file from GITHUB_EVENT_PATH.
	EventPath string `env:"GITHUB_EVENT_PATH"`
	// Workflow is the workflow name from GITHUB_WORKFLOW.
	Workflow string `env:"GITHUB_WORKFLOW"`
	// HeadRef is the PR source branch from GITHUB_HEAD_REF.
	HeadRef string `env:"GITHUB_HEAD_REF"`
	// ServerURL is the web base from GITHUB_SERVER_URL.
	ServerURL string `env:"GITHUB_SERVER_URL" envDefault:"https://github.com"`
	// APIURL is the REST base from GITHUB_API_URL.
	APIURL string `env:"GITHUB_API_URL" envDefault:"https://api.github.com"`
	// Actions is true when running on an Actions runner (GITHUB_ACTIONS).
	Actions bool `env:"GITHUB_ACTIONS"`
}

// LoadEnvironment parses the runner variables from the process environment.
func LoadEnvironment() (Environment, error) {
	var e Environment
	if err := envparse.Parse(&e); err != nil {
		return Environment{}, fmt.Errorf("parse GitHub Actions environment: %w", err)
	}
	return e, nil
}

// pullRequestEvents carry a pull request number usable for event links.
var pullRequestEvents = map[string]bool{
	"pull_request":        true,
	"pull_request_target": true,
}

// RunContext builds the run snapshot, reading the event payload for pull
// request numbers.
func (e Environment) RunContext() (notify.RunContext, error) {
	owner, repo, err := splitRepository(e.Repository)
	if err != nil {
		return notify.RunContext{}, err
	}

	rc := notify.RunContext{
		Owner:     owner,
		Repo:      repo,
		Ref:       e.Ref,
		SHA:       e.SHA,
		EventName: e.EventName,
		Workflow:  e.Workflow,
		HeadRef:   e.HeadRef,
		ServerURL: e.ServerURL,
	}

	if pullRequestEvents[e.EventName] && strings.TrimSpace(e.EventPath) != "" {
		number, err := readEventNumber(e.EventPath)
		if err != nil {
			return notify.RunContext{}, err
		}
		rc.TriggerNumber = number
	}
	return rc, nil
}

func splitRepository(slug string) (string, string, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return "", "", fmt.Errorf("GITHUB_REPOSITORY is not set")
	}
	owner, repo, ok := strings.Cut(slug, "/")
	if !ok || strings.TrimSpace(owner) == "" || strings.TrimSpace(repo) == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("invalid repository slug %q, expected owner/repo", slug)
	}
	return owner, repo, nil
}

// eventPayload holds the parts of an event that identify an issue or pull request.
type eventPayload struct {
	Number      *int                  `json:"number,omitempty"`
	PullRequest *gogithub.PullRequest `json:"pull_request,omitempty"`
	Issue       *gogithub.Issue       `json:"issue,omitempty"`
}

// number follows the same precedence as the Actions toolkit: issue, then
// pull_request, then the top-level number.
func (p eventPayload) number() int {
	if n := p.Issue.GetNumber(); n > 0 {
		return n
	}
	if n := p.PullRequest.GetNumber(); n > 0 {
		return n
	}
	if p.Number != nil {
		return *p.Number
	}
	return 0
}

func readEventNumber(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read event payload: %w", err)
	}
	var payload eventPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return 0, fmt.Errorf("decode event payload %s: %w", path, err)
	}
	return payload.number(), nil
}
