package fs

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/embedder-rs/devshell/internal/core/ports"
)

// VendorerNodeID is the unique identifier for the header vendorer Graft node.
const VendorerNodeID graft.ID = "adapter.fs.vendorer"

func init() {
	graft.Register(graft.Node[ports.HeaderVendorer]{
		ID:        VendorerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.HeaderVendorer, error) {
			return NewVendorer(), nil
		},
	})
}
