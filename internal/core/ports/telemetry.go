package ports

import (
	"context"
	"io"

	"github.com/embedder-rs/devshell/internal/core/domain"
)

// Telemetry records provisioning progress as a set of vertices, one per
// resolution step.
type Telemetry interface {
	// Record starts recording a new vertex and attaches it to the context.
	Record(ctx context.Context, name string, opts ...VertexOption) (context.Context, Vertex)

	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one unit of provisioning work.
type Vertex interface {
	// Stdout returns a writer capturing the step's standard output stream.
	Stdout() io.Writer

	// Stderr returns a writer capturing the step's error output stream.
	Stderr() io.Writer

	// Log records a structured log message associated with this vertex.
	Log(level domain.LogLevel, msg string)

	// Complete marks the vertex as finished, with err non-nil on failure.
	Complete(err error)

	// Cached marks the vertex as a cache hit.
	Cached()
}

// VertexConfig holds configuration for a starting vertex.
type VertexConfig struct {
	// Internal hides the vertex from user-facing progress output.
	Internal bool
}

// VertexOption is a functional option for configuring a vertex.
type VertexOption func(*VertexConfig)

// WithInternal marks the vertex as internal.
func WithInternal() VertexOption {
	return func(c *VertexConfig) {
		c.Internal = true
	}
}

type vertexContextKey struct{}

// ContextWithVertex attaches a vertex to the context.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexContextKey{}, v)
}

// VertexFromContext returns the vertex attached to the context, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexContextKey{}).(Vertex)
	return v, ok
}
