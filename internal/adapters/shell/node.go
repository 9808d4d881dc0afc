package shell

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/embedder-rs/devshell/internal/adapters/logger"
	"github.com/embedder-rs/devshell/internal/core/ports"
)

// FormatterFactory builds a Formatter for the binary named by the manifest.
// The binary is only known after the manifest is loaded, so the node
// provides a factory rather than a finished adapter.
type FormatterFactory func(binary string) ports.Formatter

// FormatterNodeID is the unique identifier for the formatter factory Graft node.
const FormatterNodeID graft.ID = "adapter.shell.formatter"

func init() {
	graft.Register(graft.Node[FormatterFactory]{
		ID:        FormatterNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (FormatterFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return func(binary string) ports.Formatter {
				return NewFormatter(binary, log)
			}, nil
		},
	})
}
