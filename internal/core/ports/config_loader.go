package ports

import "github.com/embedder-rs/devshell/internal/core/domain"

// ConfigLoader defines the interface for loading the shell manifest.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the manifest from the given working directory and returns
	// the declared configuration with a validated source graph.
	Load(cwd string) (*domain.Manifest, error)
}
