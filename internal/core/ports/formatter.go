package ports

import "context"

// Formatter is the pass-through entry point to the external source formatter.
// There is no custom behavior: arguments go straight to the formatter binary
// and its exit status is surfaced unchanged.
//
//go:generate go run go.uber.org/mock/mockgen -source=formatter.go -destination=mocks/mock_formatter.go -package=mocks
type Formatter interface {
	// Format runs the formatter with the given arguments in the working
	// directory.
	Format(ctx context.Context, args []string) error
}
