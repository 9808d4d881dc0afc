package ports

import (
	"context"

	"github.com/embedder-rs/devshell/internal/core/domain"
)

// ToolchainResolver resolves a toolchain request against a fetched overlay.
//
//go:generate go run go.uber.org/mock/mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type ToolchainResolver interface {
	// Resolve evaluates the overlay for a toolchain build matching spec.
	// "latest nightly" resolves to whatever the overlay carries at evaluation
	// time; an unmatched channel is a fatal resolution failure, there is no
	// fallback.
	Resolve(ctx context.Context, spec domain.ToolchainSpec, overlay, index domain.FetchedSource) (domain.ResolvedToolchain, error)
}
