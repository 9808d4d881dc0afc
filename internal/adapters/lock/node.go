package lock

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/embedder-rs/devshell/internal/core/ports"
)

// NodeID is the unique identifier for the lock store Graft node.
const NodeID graft.ID = "adapter.lock"

func init() {
	graft.Register(graft.Node[ports.LockStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.LockStore, error) {
			return NewStore(DefaultFilename), nil
		},
	})
}
