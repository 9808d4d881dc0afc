// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"github.com/embedder-rs/devshell/internal/core/domain"
)

// ShellFactory realises ephemeral shell environments from resolved inputs.
//
// Implementations are responsible for:
//   - Installing the toolchain and auxiliary tools
//   - Constructing environment variable bindings (LIBCLANG_PATH,
//     FLUTTER_ENGINE, PATH) for the session
//   - Caching realisations keyed on the request ID so unchanged inputs
//     yield byte-identical bindings
//
//go:generate go run go.uber.org/mock/mockgen -source=shell_factory.go -destination=mocks/mock_shell_factory.go -package=mocks
type ShellFactory interface {
	// Realise produces the shell environment for the request.
	// The returned variables are sorted by key for deterministic output.
	Realise(ctx context.Context, req domain.ShellRequest) (domain.ShellEnv, error)
}

// EngineProvider obtains the engine build artifact for the active variant.
type EngineProvider interface {
	// Provide realises the engine artifact from the index's packaged engine
	// in both variants. The pinned engine source, when present, contributes
	// only the vendored header and the drift comparison target.
	Provide(ctx context.Context, manifest *domain.Manifest, index domain.FetchedSource, engineSrc *domain.FetchedSource) (domain.EngineArtifact, error)
}
