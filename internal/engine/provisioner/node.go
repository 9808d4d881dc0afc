package provisioner

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/embedder-rs/devshell/internal/adapters/fs"
	"github.com/embedder-rs/devshell/internal/adapters/lock"
	"github.com/embedder-rs/devshell/internal/adapters/logger"
	"github.com/embedder-rs/devshell/internal/adapters/nix"
	"github.com/embedder-rs/devshell/internal/adapters/telemetry"
	"github.com/embedder-rs/devshell/internal/core/ports"
)

// NodeID is the unique identifier for the provisioner Graft node.
const NodeID graft.ID = "engine.provisioner"

func init() {
	graft.Register(graft.Node[*Provisioner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			nix.FetcherNodeID,
			nix.ToolchainNodeID,
			nix.EngineNodeID,
			nix.ShellFactoryNodeID,
			fs.VendorerNodeID,
			lock.NodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: runNode,
	})
}

func runNode(ctx context.Context) (*Provisioner, error) {
	fetcher, err := graft.Dep[ports.SourceFetcher](ctx)
	if err != nil {
		return nil, err
	}
	toolchain, err := graft.Dep[ports.ToolchainResolver](ctx)
	if err != nil {
		return nil, err
	}
	engine, err := graft.Dep[ports.EngineProvider](ctx)
	if err != nil {
		return nil, err
	}
	shells, err := graft.Dep[ports.ShellFactory](ctx)
	if err != nil {
		return nil, err
	}
	vendorer, err := graft.Dep[ports.HeaderVendorer](ctx)
	if err != nil {
		return nil, err
	}
	lockStore, err := graft.Dep[ports.LockStore](ctx)
	if err != nil {
		return nil, err
	}
	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(fetcher, toolchain, engine, shells, vendorer, lockStore, tel, log), nil
}
