package ghclient

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource implements Source from in-memory fixtures.
type fakeSource struct {
	mu        sync.Mutex
	summaries []RepoSummary
	counts    map[string]Counts
	countErrs map[string]error
	calls     []string
}

func (f *fakeSource) ListOrgRepos(_ context.Context, _ string) ([]RepoSummary, error) {
	return f.summaries, nil
}

func (f *fakeSource) RepoCounts(_ context.Context, _, name string) (Counts, error) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()

	if err, ok := f.countErrs[name]; ok {
		return Counts{}, err
	}
	return f.counts[name], nil
}

func TestCollectMergesCounts(t *testing.T) {
	source := &fakeSource{
		summaries: []RepoSummary{
			{Name: "core-api", License: "MIT", Forks: 4, Watchers: 12},
			{Name: "widget", Forks: 1},
		},
		counts: map[string]Counts{
			"core-api": {Collaborators: 7, Issues: 3, PullRequests: 2, Discussions: 1, Projects: 1},
			"widget":   {Collaborators: 2},
		},
	}

	records, err := NewCollector(source).Collect(context.Background(), "acme", CollectOptions{Workers: 2})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "core-api", records[0].Name)
	assert.Equal(t, "MIT", records[0].License)
	assert.Equal(t, 7, records[0].Collaborators)
	assert.Equal(t, 3, records[0].Issues)
	assert.Equal(t, 2, records[0].PullRequests)
	assert.Equal(t, 4, records[0].Forks)
	assert.Equal(t, 12, records[0].Watchers)

	assert.Equal(t, 2, records[1].Collaborators)
}

func TestCollectSkipRules(t *testing.T) {
	source := &fakeSource{
		summaries: []RepoSummary{
			{Name: "keep"},
			{Name: "skipped"},
			{Name: "old", Archived: true},
			{Name: "mirror", Fork: true},
		},
		counts: map[string]Counts{},
	}

	opts := CollectOptions{
		ExcludeRepos: []string{"skipped"},
		Workers:      1,
	}

	records, err := NewCollector(source).Collect(context.Background(), "acme", opts)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "keep", records[0].Name)
}

func TestCollectIncludesArchivedAndForksWhenAsked(t *testing.T) {
	source := &fakeSource{
		summaries: []RepoSummary{
			{Name: "old", Archived: true},
			{Name: "mirror", Fork: true},
		},
		counts: map[string]Counts{},
	}

	opts := CollectOptions{
		IncludeArchived: true,
		IncludeForks:    true,
		Workers:         1,
	}

	records, err := NewCollector(source).Collect(context.Background(), "acme", opts)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestCollectPartialCountFailure(t *testing.T) {
	boom := errors.New("boom")
	source := &fakeSource{
		summaries: []RepoSummary{
			{Name: "good", Forks: 2},
			{Name: "bad", Forks: 5},
		},
		counts: map[string]Counts{
			"good": {Collaborators: 3},
		},
		countErrs: map[string]error{
			"bad": boom,
		},
	}

	records, err := NewCollector(source).Collect(context.Background(), "acme", CollectOptions{Workers: 2})
	assert.ErrorIs(t, err, boom)

	// The failing repo still yields a record from its listing data.
	require.Len(t, records, 2)
	assert.Equal(t, 5, records[1].Forks)
	assert.Equal(t, 0, records[1].Collaborators)
	assert.Equal(t, 3, records[0].Collaborators)
}

func TestCollectReportsProgress(t *testing.T) {
	source := &fakeSource{
		summaries: []RepoSummary{{Name: "a"}, {Name: "b"}, {Name: "c"}},
		counts:    map[string]Counts{},
	}

	var mu sync.Mutex
	var seenTotal int
	var updates int
	opts := CollectOptions{
		Workers: 2,
		OnProgress: func(done, total int) {
			mu.Lock()
			defer mu.Unlock()
			updates++
			seenTotal = total
		},
	}

	_, err := NewCollector(source).Collect(context.Background(), "acme", opts)
	require.NoError(t, err)
	assert.Equal(t, 3, updates)
	assert.Equal(t, 3, seenTotal)
}
