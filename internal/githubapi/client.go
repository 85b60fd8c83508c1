// Package githubapi looks up commit metadata through the GitHub REST API.
package githubapi

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	gogithub "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"github.com/codex-k8s/cinotify/internal/notify"
)

// DefaultAPIURL is the public GitHub REST endpoint.
const DefaultAPIURL = "https://api.github.com"

// Client resolves commits for the repository a run belongs to.
type Client struct {
	logger *slog.Logger
	gh     *gogithub.Client
}

// NewClient builds a Client authenticated with token. A non-default apiURL
// (as exported by GITHUB_API_URL on GitHub Enterprise Server) switches the
// client to that endpoint.
func NewClient(ctx context.Context, logger *slog.Logger, token, apiURL string) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("github token is empty")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	gh := gogithub.NewClient(oauth2.NewClient(ctx, ts))

	apiURL = strings.TrimRight(strings.TrimSpace(apiURL), "/")
	if apiURL != "" && apiURL != DefaultAPIURL {
		var err error
		gh, err = gh.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			return nil, fmt.Errorf("configure GitHub API url %q: %w", apiURL, err)
		}
	}

	return &Client{logger: logger, gh: gh}, nil
}

// FetchCommit returns the commit at ref in owner/repo.
func (c *Client) FetchCommit(ctx context.Context, owner, repo, ref string) (notify.CommitInfo, error) {
	if c.logger != nil {
		c.logger.Debug("fetching commit", "owner", owner, "repo", repo, "ref", ref)
	}

	commit, resp, err := c.gh.Repositories.GetCommit(ctx, owner, repo, ref, nil)
	if err != nil {
		lookupErr := &LookupError{Owner: owner, Repo: repo, Ref: ref, Err: err}
		if resp != nil {
			lookupErr.StatusCode = resp.StatusCode
		}
		return notify.CommitInfo{}, lookupErr
	}
	return toCommitInfo(commit), nil
}

func toCommitInfo(commit *gogithub.RepositoryCommit) notify.CommitInfo {
	info := notify.CommitInfo{
		Message: commit.GetCommit().GetMessage(),
		URL:     commit.GetHTMLURL(),
	}
	if author := commit.GetAuthor(); author != nil && author.GetLogin() != "" {
		info.Author = &notify.CommitAuthor{
			Name: author.GetLogin(),
			URL:  author.GetHTMLURL(),
		}
	}
	return info
}
