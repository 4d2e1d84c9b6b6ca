// Package ghclient fetches organization repository metrics from the
// GitHub REST and GraphQL APIs.
package ghclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	gh "github.com/google/go-github/v57/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/repodash/repodash/internal/log"
)

// RepoSummary is the per-repository data available from the org listing
// alone. Counts the list payload doesn't carry are filled in later from
// the GraphQL API.
type RepoSummary struct {
	Name     string
	License  string
	Forks    int
	Watchers int
	Private  bool
	Archived bool
	Fork     bool
	HTMLURL  string
	PushedAt time.Time
}

// Counts holds the per-repository totals fetched via GraphQL.
type Counts struct {
	Collaborators int
	Issues        int
	PullRequests  int
	Discussions   int
	Projects      int
}

// Source is the GitHub surface the collector depends on. The interface
// enables substituting a fake in unit tests.
type Source interface {
	ListOrgRepos(ctx context.Context, org string) ([]RepoSummary, error)
	RepoCounts(ctx context.Context, org, name string) (Counts, error)
}

// Client implements Source against the real GitHub APIs.
type Client struct {
	rest    *gh.Client
	graphql *githubv4.Client
}

var _ Source = (*Client)(nil)

// NewClient creates a client authenticated with a personal access
// token. The transport sleeps through secondary rate limits instead of
// failing the collection run.
func NewClient(ctx context.Context, token string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("GitHub token not provided. Set the GITHUB_TOKEN environment variable")
	}

	waiter, err := github_ratelimit.NewRateLimitWaiter(nil,
		github_ratelimit.WithSingleSleepLimit(time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit transport: %w", err)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   waiter,
			Source: ts,
		},
	}

	return &Client{
		rest:    gh.NewClient(httpClient),
		graphql: githubv4.NewClient(httpClient),
	}, nil
}

// ListOrgRepos fetches every repository of org via the paginated REST
// listing.
func (c *Client) ListOrgRepos(ctx context.Context, org string) ([]RepoSummary, error) {
	opts := &gh.RepositoryListByOrgOptions{
		Type:        "all",
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var out []RepoSummary
	for {
		repos, resp, err := c.rest.Repositories.ListByOrg(ctx, org, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories for %s: %w", org, err)
		}

		for _, r := range repos {
			out = append(out, RepoSummary{
				Name:     r.GetName(),
				License:  r.GetLicense().GetSPDXID(),
				Forks:    r.GetForksCount(),
				Watchers: r.GetWatchersCount(),
				Private:  r.GetPrivate(),
				Archived: r.GetArchived(),
				Fork:     r.GetFork(),
				HTMLURL:  r.GetHTMLURL(),
				PushedAt: r.GetPushedAt().Time,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		log.Debug("listing repositories", "org", org, "page", resp.NextPage)
	}

	log.Info("listed repositories", "org", org, "count", len(out))
	return out, nil
}

// repoCountsQuery fetches in one round trip the totals the REST listing
// doesn't expose.
type repoCountsQuery struct {
	Repository struct {
		Collaborators struct {
			TotalCount int
		}
		Issues struct {
			TotalCount int
		} `graphql:"issues(states: OPEN)"`
		PullRequests struct {
			TotalCount int
		} `graphql:"pullRequests(states: OPEN)"`
		Discussions struct {
			TotalCount int
		}
		ProjectsV2 struct {
			TotalCount int
		}
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// RepoCounts fetches the GraphQL-only per-repository totals.
func (c *Client) RepoCounts(ctx context.Context, org, name string) (Counts, error) {
	var q repoCountsQuery
	vars := map[string]interface{}{
		"owner": githubv4.String(org),
		"name":  githubv4.String(name),
	}

	if err := c.graphql.Query(ctx, &q, vars); err != nil {
		return Counts{}, fmt.Errorf("failed to fetch counts for %s/%s: %w", org, name, err)
	}

	return Counts{
		Collaborators: q.Repository.Collaborators.TotalCount,
		Issues:        q.Repository.Issues.TotalCount,
		PullRequests:  q.Repository.PullRequests.TotalCount,
		Discussions:   q.Repository.Discussions.TotalCount,
		Projects:      q.Repository.ProjectsV2.TotalCount,
	}, nil
}
