// Package manifest persists snapshot manifests for downstream verification.
package manifest

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.smelt.dev/smelt/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements snapshot manifest storage using a flat JSON file keyed by
// snapshot destination.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.SnapshotManifest
}

// NewStore creates a new Store backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.SnapshotManifest),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read manifest store")
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.Wrap(err, "failed to unmarshal manifest store")
	}

	return nil
}

func (s *Store) save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal manifest store")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for manifest store")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write manifest store")
	}

	return nil
}

// Get retrieves the manifest recorded for a snapshot destination.
func (s *Store) Get(dest string) (*domain.SnapshotManifest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.cache[dest]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

// Put stores the manifest.
func (s *Store) Put(m domain.SnapshotManifest) error {
	s.mu.Lock()
	s.cache[m.Dest] = m
	s.mu.Unlock()

	return s.save()
}
