package domain

// SourceKind classifies how a pinned source participates in evaluation.
type SourceKind string

const (
	// KindIndex is a package index snapshot (e.g. a nixpkgs branch or rev).
	KindIndex SourceKind = "index"
	// KindOverlay is a toolchain overlay layered on top of an index.
	KindOverlay SourceKind = "overlay"
	// KindSource is a plain (non-flake) source checkout, fetched for its files only.
	KindSource SourceKind = "source"
)

// PinnedSource is a named external dependency identified by a location
// reference and, where applicable, a content lock (exact rev or tag).
// Resolution of a PinnedSource is deterministic given its reference:
// the same reference always yields the same content.
type PinnedSource struct {
	// Name is the manifest-level name of the dependency (e.g. "nixpkgs").
	Name InternedString

	// Kind determines how the source is consumed after fetching.
	Kind SourceKind

	// URL is the flake-style location reference (e.g. "github:NixOS/nixpkgs/nixos-24.05").
	URL InternedString

	// Ref is an optional content lock: an exact tag or commit appended to the
	// reference at fetch time. Empty means the URL already carries the pin.
	Ref InternedString

	// Flake is false for plain source checkouts that must not be evaluated
	// as flakes (the engine source tree is fetched this way).
	Flake bool

	// Follows lists the names of sources this source is layered on.
	// An overlay follows its index so both resolve against the same snapshot.
	Follows []InternedString
}

// FlakeRef returns the full reference passed to the fetcher, combining the
// URL with the content lock when one is set.
func (s PinnedSource) FlakeRef() string {
	if s.Ref.String() == "" {
		return s.URL.String()
	}
	return s.URL.String() + "/" + s.Ref.String()
}

// FetchedSource is the result of resolving a PinnedSource: an immutable
// store path plus the exact reference it resolved to.
type FetchedSource struct {
	// Source is the declaration that produced this fetch.
	Source PinnedSource

	// StorePath is the absolute path of the fetched content in the store.
	StorePath string

	// ResolvedRev is the commit the reference resolved to.
	ResolvedRev string

	// NarHash is the content hash reported by the fetcher.
	NarHash string
}
