package nix

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedder-rs/devshell/internal/core/domain"
)

func TestShouldIncludeVar(t *testing.T) {
	included := []string{
		"PATH",
		domain.EnvLibclangPath,
		domain.EnvFlutterEngine,
		"RUSTC",
		"RUST_SRC_PATH",
		"CARGO_HOME",
		"PKG_CONFIG_PATH",
		"BINDGEN_EXTRA_CLANG_ARGS",
		"NIX_CFLAGS_COMPILE",
	}
	for _, key := range included {
		assert.True(t, shouldIncludeVar(key), "expected %s to be included", key)
	}

	excluded := []string{
		"HOME",
		"SHELL",
		"TERM",
		"PS1",
		"shellHook",
	}
	for _, key := range excluded {
		assert.False(t, shouldIncludeVar(key), "expected %s to be excluded", key)
	}
}

func TestExtractVars(t *testing.T) {
	output := devEnvOutput{
		Variables: map[string]devEnvVariable{
			domain.EnvLibclangPath: {Type: "exported", Value: "/nix/store/clang/lib"},
			"PATH":                 {Type: "exported", Value: []any{"/nix/store/a/bin", "/nix/store/b/bin"}},
			"HOME":                 {Type: "exported", Value: "/home/user"},
			"buildInputs":          {Type: "var", Value: "ignored"},
			"BASHOPTS":             {Type: "exported", Value: 42},
		},
	}

	vars := extractVars(output)
	require.Len(t, vars, 2)

	got := make(map[string]string, len(vars))
	for _, v := range vars {
		got[v.Key] = v.Value
	}
	assert.Equal(t, "/nix/store/clang/lib", got[domain.EnvLibclangPath])
	// Array values collapse to a colon-joined path list.
	assert.Equal(t, "/nix/store/a/bin:/nix/store/b/bin", got["PATH"])
}

func TestShellFactory_Realise_CacheHit(t *testing.T) {
	cacheDir := t.TempDir()
	factory := NewShellFactory(cacheDir)

	env := domain.ShellEnv{
		ID: "cached-id",
		Vars: []domain.EnvVar{
			{Key: domain.EnvFlutterEngine, Value: "/nix/store/engine/lib"},
		},
	}
	cachePath := filepath.Join(cacheDir, "shells", env.ID+".json")
	require.NoError(t, saveShellToCache(cachePath, env))

	// A cache hit must not shell out to nix at all.
	got, err := factory.Realise(context.Background(), domain.ShellRequest{ID: "cached-id"})
	require.NoError(t, err)
	assert.Equal(t, env.ID, got.ID)

	value, ok := got.Lookup(domain.EnvFlutterEngine)
	require.True(t, ok)
	assert.Equal(t, "/nix/store/engine/lib", value)
}

func TestShellCache_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shells", "id.json")
	env := domain.ShellEnv{
		ID: "id",
		Vars: []domain.EnvVar{
			{Key: "PATH", Value: "/nix/store/a/bin"},
		},
		Tools: []string{"alejandra"},
	}

	require.NoError(t, saveShellToCache(path, env))

	got, err := loadShellFromCache(path)
	require.NoError(t, err)
	assert.Equal(t, env, got)
}

func TestLoadShellFromCache_Miss(t *testing.T) {
	_, err := loadShellFromCache(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestCreateTempExpr(t *testing.T) {
	path, cleanup, err := createTempExpr("pkgs.mkShell {}")
	require.NoError(t, err)
	defer cleanup()

	assert.FileExists(t, path)
	cleanup()
	assert.NoFileExists(t, path)
}
