// Package snapshot reads and writes the repository metrics data file:
// a JSON document with a top-level mapping from repository identifier
// to metric record, regenerated by each fetch and consumed read-only by
// the dashboard.
package snapshot

import (
	"sort"
	"time"

	"github.com/repodash/repodash/internal/model"
)

// Version is the snapshot schema version. Bump when the record shape
// changes incompatibly; Load rejects mismatched documents.
const Version = 1

// StaleAfter is the age past which a snapshot is reported as stale.
// A stale snapshot still loads; staleness is advisory.
const StaleAfter = 24 * time.Hour

// Snapshot is the on-disk data document.
type Snapshot struct {
	Version      int                     `json:"version"`
	Org          string                  `json:"org"`
	GeneratedAt  time.Time               `json:"generatedAt"`
	Repositories map[string]model.Record `json:"repositories"`
}

// New creates an empty snapshot for org, stamped now.
func New(org string) *Snapshot {
	return &Snapshot{
		Version:      Version,
		Org:          org,
		GeneratedAt:  time.Now().UTC(),
		Repositories: make(map[string]model.Record),
	}
}

// Add inserts a record keyed by its repository name.
func (s *Snapshot) Add(r model.Record) {
	s.Repositories[r.Name] = r
}

// Len returns the number of records.
func (s *Snapshot) Len() int {
	return len(s.Repositories)
}

// Records returns the records in a deterministic insertion order for
// the grid: sorted by identifier key. The JSON mapping carries no
// order, so this pins "original order" for the empty-sort case.
func (s *Snapshot) Records() []model.Record {
	keys := make([]string, 0, len(s.Repositories))
	for k := range s.Repositories {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]model.Record, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.Repositories[k])
	}
	return out
}

// Age returns the time since the snapshot was generated.
func (s *Snapshot) Age() time.Duration {
	return time.Since(s.GeneratedAt)
}

// IsStale reports whether the snapshot is older than StaleAfter.
func (s *Snapshot) IsStale() bool {
	return s.Age() > StaleAfter
}
