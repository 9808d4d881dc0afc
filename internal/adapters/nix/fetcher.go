// Package nix implements the provisioning ports using the Nix CLI.
package nix

import (
	"context"

	"go.trai.ch/zerr"

	"github.com/embedder-rs/devshell/internal/core/domain"
	"github.com/embedder-rs/devshell/internal/core/ports"
)

var _ ports.SourceFetcher = (*Fetcher)(nil)

// Fetcher implements ports.SourceFetcher using `nix flake prefetch`.
// Prefetching only downloads the source into the store and reports the
// locked reference; it never evaluates the source, so flake-disabled
// checkouts (the engine source tree) are fetched the same way.
type Fetcher struct{}

// NewFetcher creates a new Fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{}
}

// Fetch resolves the source's reference to an immutable store path.
func (f *Fetcher) Fetch(ctx context.Context, src domain.PinnedSource) (domain.FetchedSource, error) {
	var result prefetchResult
	if err := runJSON(ctx, &result, "flake", "prefetch", "--json", src.FlakeRef()); err != nil {
		fetchErr := zerr.Wrap(err, domain.ErrNixFetchFailed.Error())
		fetchErr = zerr.With(fetchErr, "source", src.Name.String())
		return domain.FetchedSource{}, zerr.With(fetchErr, "ref", src.FlakeRef())
	}

	if result.StorePath == "" {
		emptyErr := zerr.With(domain.ErrNixFetchFailed, "source", src.Name.String())
		return domain.FetchedSource{}, zerr.With(emptyErr, "reason", "prefetch returned no store path")
	}

	return domain.FetchedSource{
		Source:      src,
		StorePath:   result.StorePath,
		ResolvedRev: result.Locked.Rev,
		NarHash:     result.Hash,
	}, nil
}
