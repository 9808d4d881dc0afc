package nix

import (
	"context"
	"os"
	"path/filepath"

	"github.com/grindlemire/graft"
	"go.trai.ch/zerr"

	"github.com/embedder-rs/devshell/internal/core/domain"
	"github.com/embedder-rs/devshell/internal/core/ports"
)

const (
	// FetcherNodeID is the unique identifier for the source fetcher Graft node.
	FetcherNodeID graft.ID = "adapter.nix.fetcher"
	// ToolchainNodeID is the unique identifier for the toolchain resolver Graft node.
	ToolchainNodeID graft.ID = "adapter.nix.toolchain"
	// EngineNodeID is the unique identifier for the engine provider Graft node.
	EngineNodeID graft.ID = "adapter.nix.engine"
	// ShellFactoryNodeID is the unique identifier for the shell factory Graft node.
	ShellFactoryNodeID graft.ID = "adapter.nix.shell_factory"
)

func init() {
	graft.Register(graft.Node[ports.SourceFetcher]{
		ID:        FetcherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SourceFetcher, error) {
			return NewFetcher(), nil
		},
	})

	graft.Register(graft.Node[ports.ToolchainResolver]{
		ID:        ToolchainNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ToolchainResolver, error) {
			return NewToolchainResolver(domain.CurrentSystem()), nil
		},
	})

	graft.Register(graft.Node[ports.EngineProvider]{
		ID:        EngineNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.EngineProvider, error) {
			return NewEngineProvider(domain.CurrentSystem()), nil
		},
	})

	graft.Register(graft.Node[ports.ShellFactory]{
		ID:        ShellFactoryNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ShellFactory, error) {
			dir, err := CacheDir()
			if err != nil {
				return nil, err
			}
			return NewShellFactory(dir), nil
		},
	})
}

// CacheDir returns the directory holding cached shell realisations.
func CacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", zerr.Wrap(err, "failed to determine user cache directory")
	}
	return filepath.Join(base, "devshell"), nil
}
