// Package domain contains the core domain models for the source resolution graph.
package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Graph represents the dependency graph of pinned sources. Edges come from
// the Follows relation: an overlay depends on the index it is layered on.
type Graph struct {
	sources    map[InternedString]PinnedSource
	fetchOrder []InternedString
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		sources: make(map[InternedString]PinnedSource),
	}
}

// AddSource adds a pinned source to the graph.
// It returns an error if a source with the same name already exists.
func (g *Graph) AddSource(s PinnedSource) error {
	if _, exists := g.sources[s.Name]; exists {
		return zerr.With(ErrSourceAlreadyExists, "source_name", s.Name.String())
	}
	g.sources[s.Name] = s
	return nil
}

// Get returns the source with the given name.
func (g *Graph) Get(name InternedString) (PinnedSource, error) {
	s, ok := g.sources[name]
	if !ok {
		return PinnedSource{}, zerr.With(ErrSourceNotFound, "source_name", name.String())
	}
	return s, nil
}

// Len returns the number of sources in the graph.
func (g *Graph) Len() int {
	return len(g.sources)
}

// Validate checks for unknown references and cycles using a topological sort.
// It populates the fetch order if successful. The order is deterministic:
// ties between independent sources are broken by name.
func (g *Graph) Validate() error {
	g.fetchOrder = make([]InternedString, 0, len(g.sources))
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		src, exists := g.sources[u]
		if !exists {
			return zerr.With(ErrMissingSource, "source", u.String())
		}

		for _, dep := range src.Follows {
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.fetchOrder = append(g.fetchOrder, u)
		return nil
	}

	// Iterate roots in name order so the fetch order is stable between runs.
	// A stable order keeps telemetry output and cache keys reproducible.
	names := make([]string, 0, len(g.sources))
	for name := range g.sources {
		names = append(names, name.String())
	}
	slices.Sort(names)

	for _, name := range names {
		n := NewInternedString(name)
		if visited[n] == 0 {
			if err := visit(n); err != nil {
				return err
			}
		}
	}

	return nil
}

// OfKind returns the sources of the given kind, sorted by name.
func (g *Graph) OfKind(kind SourceKind) []PinnedSource {
	var out []PinnedSource
	for _, s := range g.sources {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b PinnedSource) int {
		return strings.Compare(a.Name.String(), b.Name.String())
	})
	return out
}

// buildCycleError constructs an error with cycle path metadata.
func (g *Graph) buildCycleError(path []InternedString, dep InternedString) error {
	cyclePath := ""
	startIdx := -1
	for i, node := range path {
		if node == dep {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(path); i++ {
		cyclePath += path[i].String() + " -> "
	}
	cyclePath += dep.String()
	return zerr.With(ErrCycleDetected, "cycle", cyclePath)
}

// Walk returns an iterator that yields sources in fetch order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[PinnedSource] {
	return func(yield func(PinnedSource) bool) {
		for _, name := range g.fetchOrder {
			if !yield(g.sources[name]) {
				return
			}
		}
	}
}
