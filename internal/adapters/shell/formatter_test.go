package shell

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.trai.ch/zerr"

	"github.com/embedder-rs/devshell/internal/core/ports/mocks"
)

func testLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	logger := mocks.NewMockLogger(gomock.NewController(t))
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	return logger
}

func TestFormatter_Format(t *testing.T) {
	f := NewFormatter("sh", testLogger(t))
	require.NoError(t, f.Format(context.Background(), []string{"-c", "exit 0"}))
}

func TestFormatter_Format_ExitCodeSurfaced(t *testing.T) {
	f := NewFormatter("sh", testLogger(t))

	err := f.Format(context.Background(), []string{"-c", "exit 3"})
	require.Error(t, err)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, 3, zErr.Metadata()["exit_code"])
	assert.Equal(t, "sh", zErr.Metadata()["binary"])
}

func TestFormatter_Format_MissingBinary(t *testing.T) {
	f := NewFormatter("definitely-not-a-formatter-binary", testLogger(t))

	err := f.Format(context.Background(), nil)
	require.Error(t, err)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, -1, zErr.Metadata()["exit_code"])
}

func TestLookPath(t *testing.T) {
	dir := t.TempDir()
	binary := filepath.Join(dir, "alejandra")
	require.NoError(t, os.WriteFile(binary, []byte("#!/bin/sh\nexit 0\n"), 0o755))

	env := []string{"HOME=/home/user", "PATH=" + dir}

	t.Run("found on provided PATH", func(t *testing.T) {
		got, err := lookPath("alejandra", env)
		require.NoError(t, err)
		assert.Equal(t, binary, got)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := lookPath("missing-binary", env)
		require.Error(t, err)
	})

	t.Run("empty PATH", func(t *testing.T) {
		_, err := lookPath("alejandra", []string{"HOME=/home/user"})
		require.Error(t, err)
	})

	t.Run("directories are not matches", func(t *testing.T) {
		require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o750))
		_, err := lookPath("subdir", env)
		require.Error(t, err)
	})
}

func TestFormatter_WithEnv(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "fmt-probe")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nexit 0\n"), 0o755))

	base := NewFormatter("fmt-probe", testLogger(t))
	scoped := base.WithEnv([]string{"PATH=" + dir})

	require.NoError(t, scoped.Format(context.Background(), nil))
	// The original keeps resolving against the process environment.
	require.Error(t, base.Format(context.Background(), nil))
}
