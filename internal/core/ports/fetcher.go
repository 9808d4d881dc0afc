package ports

import (
	"context"

	"github.com/embedder-rs/devshell/internal/core/domain"
)

// SourceFetcher resolves a pinned source reference to immutable local content.
//
//go:generate go run go.uber.org/mock/mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type SourceFetcher interface {
	// Fetch resolves the source's reference and returns the store path plus
	// the exact revision it resolved to. Fetching the same reference twice
	// yields the same content.
	Fetch(ctx context.Context, src domain.PinnedSource) (domain.FetchedSource, error)
}
