package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"

	"github.com/embedder-rs/devshell/internal/adapters/telemetry/progrock"
	"github.com/embedder-rs/devshell/internal/core/ports"
)

// NodeID is the unique identifier for the telemetry Graft node.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Telemetry, error) {
			if stderrIsTerminal() {
				return progrock.New(), nil
			}
			return NewNoOp(), nil
		},
	})
}

// stderrIsTerminal reports whether stderr is attached to a character device.
func stderrIsTerminal() bool {
	info, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
