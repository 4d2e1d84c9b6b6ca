package ghclient

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/repodash/repodash/internal/log"
	"github.com/repodash/repodash/internal/model"
)

// CollectOptions controls which repositories end up in the snapshot.
type CollectOptions struct {
	ExcludeRepos    []string
	IncludeArchived bool
	IncludeForks    bool

	// Workers bounds the concurrent per-repo count fetches.
	Workers int

	// OnProgress, if set, is called after each repository completes
	// with the number done and the total.
	OnProgress func(done, total int)
}

// Collector turns the GitHub API surface into metric records.
type Collector struct {
	source Source
}

// NewCollector creates a collector over the given source.
func NewCollector(source Source) *Collector {
	return &Collector{source: source}
}

// Collect lists the organization's repositories and enriches each with
// its GraphQL-only counts, fanning out up to opts.Workers fetches at a
// time. A repository whose count fetch fails keeps its listing data and
// zero counts; the errors are joined and returned alongside the
// records so the caller can decide whether a partial snapshot is
// acceptable.
func (c *Collector) Collect(ctx context.Context, org string, opts CollectOptions) ([]model.Record, error) {
	summaries, err := c.source.ListOrgRepos(ctx, org)
	if err != nil {
		return nil, err
	}

	excluded := make(map[string]bool, len(opts.ExcludeRepos))
	for _, name := range opts.ExcludeRepos {
		excluded[name] = true
	}

	var kept []RepoSummary
	for _, s := range summaries {
		switch {
		case excluded[s.Name]:
			log.Debug("skipping excluded repository", "repo", s.Name)
		case s.Archived && !opts.IncludeArchived:
			log.Debug("skipping archived repository", "repo", s.Name)
		case s.Fork && !opts.IncludeForks:
			log.Debug("skipping forked repository", "repo", s.Name)
		default:
			kept = append(kept, s)
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	records := make([]model.Record, len(kept))
	countErrs := make([]error, len(kept))
	var done int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, s := range kept {
		g.Go(func() error {
			counts, err := c.source.RepoCounts(gctx, org, s.Name)
			if err != nil {
				// Keep the listing data; the record just misses its
				// GraphQL counts.
				countErrs[i] = err
				log.Warn("counts unavailable", "repo", s.Name, "error", err)
			}
			records[i] = buildRecord(s, counts)

			if opts.OnProgress != nil {
				opts.OnProgress(int(atomic.AddInt64(&done, 1)), len(kept))
			}

			// Only context cancellation aborts the whole collection.
			if gctx.Err() != nil {
				return gctx.Err()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("collection aborted: %w", err)
	}

	return records, errors.Join(countErrs...)
}

// buildRecord merges the listing summary with the fetched counts.
func buildRecord(s RepoSummary, counts Counts) model.Record {
	return model.Record{
		Name:          s.Name,
		License:       s.License,
		Collaborators: counts.Collaborators,
		Issues:        counts.Issues,
		PullRequests:  counts.PullRequests,
		Forks:         s.Forks,
		Watchers:      s.Watchers,
		Discussions:   counts.Discussions,
		Projects:      counts.Projects,
		Private:       s.Private,
		Archived:      s.Archived,
		HTMLURL:       s.HTMLURL,
		PushedAt:      s.PushedAt,
	}
}
