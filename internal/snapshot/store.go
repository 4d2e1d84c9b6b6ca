package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/repodash/repodash/internal/log"
)

// ErrNotFound is returned by Load when no snapshot exists yet.
var ErrNotFound = errors.New("no snapshot found, run 'repodash fetch' first")

// ErrVersionMismatch is returned when the snapshot on disk was written
// by an incompatible schema version.
var ErrVersionMismatch = errors.New("snapshot schema version mismatch, re-run 'repodash fetch'")

// Store persists snapshots as a single JSON file.
type Store struct {
	path string
}

// DefaultPath returns the snapshot location under the user cache dir.
func DefaultPath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "repodash", "snapshot.json"), nil
}

// NewStore creates a store at path. An empty path selects DefaultPath.
func NewStore(path string) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve snapshot path: %w", err)
		}
		path = p
	}
	return &Store{path: path}, nil
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Load reads and validates the snapshot.
func (s *Store) Load() (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read snapshot %s: %w", s.path, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", s.path, err)
	}

	if snap.Version != Version {
		log.Debug("snapshot version mismatch", "found", snap.Version, "want", Version)
		return nil, ErrVersionMismatch
	}

	if snap.IsStale() {
		log.Warn("snapshot is stale", "age", snap.Age().Round(time.Second).String())
	}

	return &snap, nil
}

// Save writes the snapshot atomically: temp file in the same directory,
// then rename over the target.
func (s *Store) Save(snap *Snapshot) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "snapshot-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp snapshot: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	log.Debug("snapshot saved", "path", s.path, "repos", snap.Len())
	return nil
}

// Clear removes the snapshot file. Missing files are not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove snapshot: %w", err)
	}
	return nil
}

// Stats describes the snapshot on disk without fully validating it.
type Stats struct {
	Exists      bool
	Path        string
	Org         string
	Repos       int
	GeneratedAt string
	Stale       bool
}

// Stats reports snapshot metadata for the snapshot stats command.
func (s *Store) Stats() (*Stats, error) {
	st := &Stats{Path: s.path}

	snap, err := s.Load()
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return st, nil
		}
		return nil, err
	}

	st.Exists = true
	st.Org = snap.Org
	st.Repos = snap.Len()
	st.GeneratedAt = snap.GeneratedAt.Local().Format("2006-01-02 15:04:05")
	st.Stale = snap.IsStale()
	return st, nil
}
