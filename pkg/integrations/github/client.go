package github

import (
	"context"
	"fmt"

	"github.com/matzehuels/commitpin/pkg/buildinfo"
	"github.com/matzehuels/commitpin/pkg/errors"
	"github.com/matzehuels/commitpin/pkg/integrations"
)

// DefaultBaseURL is the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com"

// Client lists tags and commits of GitHub repositories.
// Each call is a single request for the first page of results, in the
// order the API returns them.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a GitHub API client. Anonymous credentials work but are
// limited to 60 requests per hour.
func NewClient(creds integrations.Credentials, retries int) *Client {
	return &Client{
		Client: integrations.NewClient(integrations.Options{
			Headers: map[string]string{
				"Accept":     "application/vnd.github.v3+json",
				"User-Agent": buildinfo.UserAgent(),
			},
			Credentials: creds,
			Retries:     retries,
		}),
		baseURL: DefaultBaseURL,
	}
}

// WithBaseURL returns a copy of c that talks to baseURL (GitHub Enterprise
// or a test server).
func (c *Client) WithBaseURL(baseURL string) *Client {
	return &Client{Client: c.Client, baseURL: baseURL}
}

// ListTags returns the tags of repository ("owner/repo").
func (c *Client) ListTags(ctx context.Context, repository string) ([]Tag, error) {
	var tags []Tag
	if err := c.list(ctx, repository, "tags", &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// ListCommits returns the commits of repository's default branch, most
// recent first.
func (c *Client) ListCommits(ctx context.Context, repository string) ([]Commit, error) {
	var commits []Commit
	if err := c.list(ctx, repository, "commits", &commits); err != nil {
		return nil, err
	}
	return commits, nil
}

func (c *Client) list(ctx context.Context, repository, resource string, v any) error {
	owner, repo, err := ParseRepoRef(repository)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/repos/%s/%s/%s", c.baseURL, owner, repo, resource)
	if err := c.Get(ctx, url, v); err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			return errors.Wrap(errors.ErrCodeNotFound, err, "github repo %s", repository)
		}
		return fmt.Errorf("list %s for %s: %w", resource, repository, err)
	}
	return nil
}
