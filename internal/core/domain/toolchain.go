package domain

// ToolchainSpec is the user's request for a compiler toolchain, before
// resolution against the overlay.
type ToolchainSpec struct {
	// Channel selects the release channel (e.g. "nightly", "stable").
	// "nightly" without a date means the latest build the overlay carries,
	// which is the one deliberately non-reproducible point in the system.
	Channel InternedString

	// Date optionally pins a channel snapshot (e.g. "2024-06-01").
	// Empty selects latest.
	Date InternedString

	// Profile is the component profile (e.g. "default", "minimal").
	Profile InternedString

	// Components lists extensions enabled on top of the profile
	// (e.g. "rust-analyzer", "rust-src").
	Components []InternedString
}

// IsPinned reports whether an exact channel snapshot date is named.
func (t ToolchainSpec) IsPinned() bool {
	return t.Date.String() != ""
}

// ResolvedToolchain is a fully resolved toolchain description.
type ResolvedToolchain struct {
	// Spec is the request that produced this resolution.
	Spec ToolchainSpec

	// Version is the resolved toolchain version string
	// (e.g. "1.82.0-nightly-2024-08-20").
	Version string

	// StorePath is the store path of the realised toolchain derivation.
	StorePath string

	// Components are the component names present in the resolution.
	Components []string
}
