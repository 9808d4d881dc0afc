package nix

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"

	"github.com/embedder-rs/devshell/internal/core/domain"
	"github.com/embedder-rs/devshell/internal/core/ports"
)

const (
	dirPerm  = 0o750
	filePerm = 0o600
)

var _ ports.ShellFactory = (*ShellFactory)(nil)

// ShellFactory implements ports.ShellFactory using `nix print-dev-env`.
// Realisations are cached as JSON keyed on the deterministic shell ID, which
// makes repeated provisioning with unchanged sources byte-identical.
type ShellFactory struct {
	cacheDir string
}

// NewShellFactory creates a factory caching realisations under cacheDir.
func NewShellFactory(cacheDir string) *ShellFactory {
	return &ShellFactory{cacheDir: cacheDir}
}

// Realise produces the shell environment for the request.
func (f *ShellFactory) Realise(ctx context.Context, req domain.ShellRequest) (domain.ShellEnv, error) {
	cachePath := filepath.Join(f.cacheDir, "shells", req.ID+".json")
	if cached, err := loadShellFromCache(cachePath); err == nil {
		cached.ID = req.ID
		if v, ok := ports.VertexFromContext(ctx); ok {
			v.Cached()
		}
		return cached, nil
	}

	expr := shellExpr(req, req.Overlay)
	tmpPath, cleanup, err := createTempExpr(expr)
	if err != nil {
		return domain.ShellEnv{}, err
	}
	defer cleanup()

	var output devEnvOutput
	if err := runJSON(ctx, &output, "print-dev-env", "--json", "--impure", "--file", tmpPath); err != nil {
		return domain.ShellEnv{}, zerr.Wrap(err, "failed to realise shell environment")
	}

	vars := extractVars(output)

	// The engine binding comes from the already-realised artifact; make sure
	// it survives variable filtering even if the expression output drops it.
	if _, ok := lookupVar(vars, domain.EnvFlutterEngine); !ok {
		vars = append(vars, domain.EnvVar{Key: domain.EnvFlutterEngine, Value: req.Engine.LibDir})
	}

	slices.SortFunc(vars, func(a, b domain.EnvVar) int {
		return strings.Compare(a.Key, b.Key)
	})

	env := domain.ShellEnv{
		ID:    req.ID,
		Vars:  vars,
		Tools: req.Tools,
	}

	if err := saveShellToCache(cachePath, env); err != nil {
		// Cache write failure is not fatal; the realisation itself succeeded.
		if v, ok := ports.VertexFromContext(ctx); ok {
			v.Log(domain.LogLevelWarn, "failed to persist shell cache: "+err.Error())
		}
	}

	return env, nil
}

// extractVars keeps the exported variables relevant to the bindings build
// and drops interactive shell noise.
func extractVars(output devEnvOutput) []domain.EnvVar {
	vars := make([]domain.EnvVar, 0, len(output.Variables))
	for key, variable := range output.Variables {
		if variable.Type != "exported" {
			continue
		}
		if !shouldIncludeVar(key) {
			continue
		}

		var value string
		switch v := variable.Value.(type) {
		case string:
			value = v
		case []any:
			parts := make([]string, 0, len(v))
			for _, part := range v {
				if s, ok := part.(string); ok {
					parts = append(parts, s)
				}
			}
			value = strings.Join(parts, ":")
		default:
			continue
		}

		vars = append(vars, domain.EnvVar{Key: key, Value: value})
	}
	return vars
}

// shouldIncludeVar determines if an environment variable is part of the
// provisioned shell. Build-related variables pass; interactive shell
// variables are excluded.
func shouldIncludeVar(key string) bool {
	include := []string{
		"PATH",
		domain.EnvLibclangPath,
		domain.EnvFlutterEngine,
		"RUSTC",
		"RUSTDOC",
		"RUSTFLAGS",
		"RUST_SRC_PATH",
		"CARGO",
		"CC",
		"CXX",
		"LD",
		"AR",
		"CFLAGS",
		"CXXFLAGS",
		"LDFLAGS",
		"PKG_CONFIG_PATH",
		"BINDGEN_EXTRA_CLANG_ARGS",
		"NIX_",
	}
	for _, prefix := range include {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

func lookupVar(vars []domain.EnvVar, key string) (string, bool) {
	for _, v := range vars {
		if v.Key == key {
			return v.Value, true
		}
	}
	return "", false
}

// createTempExpr writes the expression to a temporary file for --file use.
func createTempExpr(expr string) (tmpPath string, cleanup func(), err error) {
	tmpFile, err := os.CreateTemp("", "devshell-*.nix")
	if err != nil {
		return "", nil, zerr.Wrap(err, "failed to create temp nix file")
	}

	tmpPath = tmpFile.Name()
	cleanup = func() {
		_ = os.Remove(tmpPath)
	}

	if _, writeErr := tmpFile.WriteString(expr); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, zerr.Wrap(writeErr, "failed to write nix expression")
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return "", nil, zerr.Wrap(closeErr, "failed to close temp nix file")
	}
	return tmpPath, cleanup, nil
}

// loadShellFromCache attempts to load a cached realisation.
func loadShellFromCache(path string) (domain.ShellEnv, error) {
	//nolint:gosec // Path is constructed from trusted cache directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ShellEnv{}, fmt.Errorf("cache miss")
		}
		return domain.ShellEnv{}, zerr.Wrap(err, "failed to read shell cache")
	}

	var env domain.ShellEnv
	if err := json.Unmarshal(data, &env); err != nil {
		return domain.ShellEnv{}, zerr.Wrap(err, "failed to unmarshal shell cache")
	}
	return env, nil
}

// saveShellToCache persists a realisation to the cache.
func saveShellToCache(path string, env domain.ShellEnv) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return zerr.Wrap(err, "failed to create cache directory")
	}

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal shell environment")
	}

	//nolint:gosec // Path is constructed from trusted cache directory
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return zerr.Wrap(err, "failed to write shell cache")
	}
	return nil
}
