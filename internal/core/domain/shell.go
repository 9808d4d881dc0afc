package domain

// Environment variable names the provisioned shell exposes to the
// downstream bindings build.
const (
	// EnvLibclangPath points at the native library directory containing
	// libclang, consumed by the bindings generator.
	EnvLibclangPath = "LIBCLANG_PATH"

	// EnvFlutterEngine points at the engine build output directory
	// containing libflutter_engine.so, consumed by the crate's build script.
	EnvFlutterEngine = "FLUTTER_ENGINE"
)

// EngineSharedObject is the library the engine output directory must contain
// for the downstream link step to succeed.
const EngineSharedObject = "libflutter_engine.so"

// EmbedderHeaderPath is the engine source tree's internal path of the
// embedder API header.
const EmbedderHeaderPath = "shell/platform/embedder/embedder.h"

// EmbedderHeaderName is the filename the header is vendored as, relative to
// the invocation's working directory.
const EmbedderHeaderName = "embedder.h"

// EngineArtifact is a realised engine build output.
type EngineArtifact struct {
	// Version is the version string reported by the resolved package.
	Version string

	// LibDir is the directory containing the engine shared object.
	// FLUTTER_ENGINE is bound to this path.
	LibDir string

	// StorePath is the root store path of the realised package.
	StorePath string
}

// ShellRequest carries everything the shell factory needs to realise an
// environment: the resolved inputs plus the deterministic cache key.
type ShellRequest struct {
	// ID is the deterministic cache key for this source set.
	ID string

	// System is the target system identifier.
	System string

	// Index is the fetched package index snapshot.
	Index FetchedSource

	// Overlay is the fetched toolchain overlay, nil when the manifest
	// declares none.
	Overlay *FetchedSource

	// Toolchain is the resolved compiler toolchain.
	Toolchain ResolvedToolchain

	// Tools lists auxiliary tool package names to install.
	Tools []string

	// Engine is the realised engine artifact whose paths are exported.
	Engine EngineArtifact
}

// ShellEnv is the ephemeral environment produced for a development session.
// It has no identity beyond the inputs that produced it.
type ShellEnv struct {
	// ID is the deterministic cache key derived from the source set.
	ID string `json:"id"`

	// Vars holds the environment variable bindings, sorted by key.
	Vars []EnvVar `json:"vars"`

	// Tools lists the installed tool names, for reporting.
	Tools []string `json:"tools,omitzero"`
}

// EnvVar is a single environment variable binding.
type EnvVar struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Lookup returns the value bound to key, and whether it is present.
func (s *ShellEnv) Lookup(key string) (string, bool) {
	for _, v := range s.Vars {
		if v.Key == key {
			return v.Value, true
		}
	}
	return "", false
}
