package app

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/embedder-rs/devshell/internal/adapters/config"
	"github.com/embedder-rs/devshell/internal/adapters/logger"
	"github.com/embedder-rs/devshell/internal/adapters/shell"
	"github.com/embedder-rs/devshell/internal/adapters/telemetry"
	"github.com/embedder-rs/devshell/internal/core/ports"
	"github.com/embedder-rs/devshell/internal/engine/provisioner"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			provisioner.NodeID,
			shell.FormatterNodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			prov, err := graft.Dep[*provisioner.Provisioner](ctx)
			if err != nil {
				return nil, err
			}

			formatterFor, err := graft.Dep[shell.FormatterFactory](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, prov, formatterFor), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(application, log, tel), nil
}
