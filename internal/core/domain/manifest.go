package domain

import "runtime"

// Variant selects which of the two provisioning flavours the manifest wants.
type Variant string

const (
	// VariantVendored fetches the pinned engine source directly, vendors the
	// embedder header into the working directory and checks the lockfile for
	// version drift.
	VariantVendored Variant = "vendored"

	// VariantPackaged relies on the package index's own packaged engine.
	// No header copy and no drift check are performed.
	VariantPackaged Variant = "packaged"
)

// Manifest is the declarative description of the development shell: the
// pinned sources, the toolchain request, the auxiliary tools and the engine
// configuration. It is loaded from devshell.yaml and immutable afterwards.
type Manifest struct {
	// Version is the manifest format version.
	Version string

	// Variant selects vendored or packaged engine provisioning.
	Variant Variant

	// Systems is the declared set of supported system identifiers.
	// Only Linux systems are recognised.
	Systems []InternedString

	// Sources is the pinned source graph.
	Sources *Graph

	// Toolchain is the compiler toolchain request.
	Toolchain ToolchainSpec

	// Tools lists auxiliary tool package names installed into the shell.
	Tools []InternedString

	// Engine configures how the engine artifact is obtained.
	Engine EngineSpec

	// Formatter is the external formatter package the fmt entry point
	// passes through to.
	Formatter InternedString
}

// EngineSpec configures engine artifact resolution.
type EngineSpec struct {
	// SourceName is the pinned source holding the engine source tree
	// (vendored variant). It must name a source in the graph.
	SourceName InternedString

	// Package is the attribute path of the packaged engine in the index
	// (e.g. "flutter-engine").
	Package InternedString

	// VendorHeader enables the embedder.h copy side effect.
	VendorHeader bool
}

// SupportsSystem reports whether the manifest declares the given system.
func (m *Manifest) SupportsSystem(system string) bool {
	for _, s := range m.Systems {
		if s.String() == system {
			return true
		}
	}
	return false
}

// Vendored reports whether the manifest uses the vendored engine variant.
func (m *Manifest) Vendored() bool {
	return m.Variant == VariantVendored
}

// CurrentSystem returns the Nix-style system identifier of the running
// process. The provisioner only targets Linux, so the OS component is fixed.
func CurrentSystem() string {
	switch runtime.GOARCH {
	case "arm64":
		return "aarch64-linux"
	case "386":
		return "i686-linux"
	default:
		return "x86_64-linux"
	}
}
