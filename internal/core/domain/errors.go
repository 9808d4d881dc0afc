package domain

import "go.trai.ch/zerr"

var (
	// ErrSourceAlreadyExists is returned when attempting to declare a source with a name that already exists.
	ErrSourceAlreadyExists = zerr.New("source already exists")

	// ErrMissingSource is returned when a source references another source that doesn't exist in the graph.
	ErrMissingSource = zerr.New("missing source")

	// ErrCycleDetected is returned when a cycle is detected in the source dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrSourceNotFound is returned when a requested source is not found in the graph.
	ErrSourceNotFound = zerr.New("source not found")

	// ErrUnsupportedSystem is returned when provisioning is requested for a system
	// outside the manifest's declared system set.
	ErrUnsupportedSystem = zerr.New("unsupported system")

	// ErrNoMatchingToolchain is returned when the overlay has no toolchain build
	// matching the requested channel, profile and components.
	ErrNoMatchingToolchain = zerr.New("no matching toolchain build")

	// ErrNixFetchFailed is returned when the Nix CLI fails to fetch a pinned source.
	ErrNixFetchFailed = zerr.New("nix fetch failed")

	// ErrNixBuildFailed is returned when the Nix CLI fails to realise a build artifact.
	ErrNixBuildFailed = zerr.New("nix build failed")

	// ErrLockEntryMissing is returned when the lockfile has no record for a declared source.
	ErrLockEntryMissing = zerr.New("lockfile entry missing")

	// ErrProvisionFailed is a sentinel wrapped around any fatal provisioning failure
	// so the CLI can map it to a non-zero exit code without re-logging.
	ErrProvisionFailed = zerr.New("provisioning failed")
)
