// Package fs provides filesystem adapters for header vendoring.
package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"

	"github.com/embedder-rs/devshell/internal/core/domain"
	"github.com/embedder-rs/devshell/internal/core/ports"
)

const headerPerm = 0o644

var _ ports.HeaderVendorer = (*Vendorer)(nil)

// Vendorer implements ports.HeaderVendorer by copying the embedder header
// out of the fetched engine source tree.
type Vendorer struct{}

// NewVendorer creates a new Vendorer.
func NewVendorer() *Vendorer {
	return &Vendorer{}
}

// Vendor copies srcRoot/shell/platform/embedder/embedder.h into
// destDir/embedder.h, unconditionally overwriting any existing file. The
// copy is verified against the source by content hash; since the source is
// an immutable store path, repeating the copy is idempotent.
func (v *Vendorer) Vendor(ctx context.Context, srcRoot, destDir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	srcPath := filepath.Join(srcRoot, filepath.FromSlash(domain.EmbedderHeaderPath))
	destPath := filepath.Join(destDir, domain.EmbedderHeaderName)

	if err := copyFile(srcPath, destPath); err != nil {
		return "", err
	}

	srcHash, err := hashFile(srcPath)
	if err != nil {
		return "", err
	}
	destHash, err := hashFile(destPath)
	if err != nil {
		return "", err
	}
	if srcHash != destHash {
		mismatch := zerr.New("vendored header does not match source")
		mismatch = zerr.With(mismatch, "src", srcPath)
		return "", zerr.With(mismatch, "dest", destPath)
	}

	abs, err := filepath.Abs(destPath)
	if err != nil {
		return destPath, nil //nolint:nilerr // the copy succeeded; Abs is cosmetic
	}
	return abs, nil
}

func copyFile(srcPath, destPath string) error {
	src, err := os.Open(srcPath) //nolint:gosec // path derives from a fetched store path
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open embedder header"), "path", srcPath)
	}
	defer src.Close() //nolint:errcheck // Best effort close in defer

	// O_TRUNC makes the overwrite unconditional.
	dest, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, headerPerm) //nolint:gosec // destination is the working directory
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create vendored header"), "path", destPath)
	}

	if _, err := io.Copy(dest, src); err != nil {
		_ = dest.Close()
		return zerr.With(zerr.Wrap(err, "failed to copy embedder header"), "path", destPath)
	}
	if err := dest.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to flush vendored header"), "path", destPath)
	}
	return nil
}

// hashFile computes the XXHash of a file's content.
func hashFile(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}
	return hasher.Sum64(), nil
}
