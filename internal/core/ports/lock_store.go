package ports

import "github.com/embedder-rs/devshell/internal/core/domain"

// LockStore defines the interface for reading and writing the committed
// lockfile record.
//
//go:generate go run go.uber.org/mock/mockgen -source=lock_store.go -destination=mocks/mock_lock_store.go -package=mocks
type LockStore interface {
	// Read loads the lockfile. A missing file yields an empty lockfile,
	// not an error.
	Read() (*domain.Lockfile, error)

	// Write persists the lockfile.
	Write(lock *domain.Lockfile) error
}
