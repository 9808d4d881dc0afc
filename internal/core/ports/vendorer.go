package ports

import "context"

// HeaderVendorer copies the embedder header out of the fetched engine source.
//
//go:generate go run go.uber.org/mock/mockgen -source=vendorer.go -destination=mocks/mock_vendorer.go -package=mocks
type HeaderVendorer interface {
	// Vendor copies the header at srcRoot/shell/platform/embedder/embedder.h
	// into destDir/embedder.h, unconditionally overwriting any existing file.
	// Returns the absolute destination path.
	Vendor(ctx context.Context, srcRoot, destDir string) (string, error)
}
