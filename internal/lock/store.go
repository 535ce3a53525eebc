package lock

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/renameio/v2"
)

// Store persists registry snapshots as a JSON document on disk. Writes are
// serialized by a mutex and replace the file atomically, so a reader never
// observes a torn document; each write carries the full registry state, so
// last-writer-wins is the intended policy.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a Store persisting to path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the lock file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the snapshot from disk. A missing, unreadable, or empty file
// falls back to writing current and returning it, so the snapshot is never
// left empty while packages are registered.
func (s *Store) Load(current Snapshot) (Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err == nil && len(data) > 0 {
		var snap Snapshot
		if jerr := json.Unmarshal(data, &snap); jerr == nil && len(snap) > 0 {
			return snap, nil
		}
	}

	if werr := s.Write(current); werr != nil {
		return nil, werr
	}
	return current, nil
}

// Write serializes snap and atomically replaces the lock file.
func (s *Store) Write(snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling lock snapshot: %w", err)
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating lock directory %s: %w", dir, err)
		}
	}
	if err := renameio.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing lock %s: %w", s.path, err)
	}
	return nil
}
