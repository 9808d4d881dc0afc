// Package lock implements the lockfile store backed by a flat JSON file.
package lock

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/zerr"

	"github.com/embedder-rs/devshell/internal/core/domain"
)

const filePerm = 0o600

// DefaultFilename is the lockfile name looked up next to the manifest.
const DefaultFilename = "devshell.lock.json"

// FormatVersion is the current lockfile format version.
const FormatVersion = 1

// lockfileDTO is the on-disk representation.
type lockfileDTO struct {
	Version int                          `json:"version"`
	Records map[string]domain.LockRecord `json:"records"`
}

// Store implements ports.LockStore using a flat JSON file.
// The file is committed state owned by the repository, not runtime state:
// reads reflect whatever the operator last committed.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a LockStore backed by the file at the given path.
func NewStore(path string) *Store {
	return &Store{path: filepath.Clean(path)}
}

// Read loads the lockfile. A missing file yields an empty lockfile so that
// first-time provisioning works before anything has been locked.
func (s *Store) Read() (*domain.Lockfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &domain.Lockfile{
				Version: FormatVersion,
				Records: make(map[string]domain.LockRecord),
			}, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read lockfile"), "path", s.path)
	}

	var dto lockfileDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse lockfile"), "path", s.path)
	}

	if dto.Records == nil {
		dto.Records = make(map[string]domain.LockRecord)
	}
	return &domain.Lockfile{
		Version: dto.Version,
		Records: dto.Records,
	}, nil
}

// Write persists the lockfile with stable formatting so diffs stay readable
// under version control.
func (s *Store) Write(lock *domain.Lockfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dto := lockfileDTO{
		Version: lock.Version,
		Records: lock.Records,
	}
	if dto.Version == 0 {
		dto.Version = FormatVersion
	}

	data, err := json.MarshalIndent(dto, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal lockfile")
	}
	data = append(data, '\n')

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, filePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write lockfile"), "path", s.path)
	}
	return nil
}
