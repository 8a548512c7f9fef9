// Package pgraph is an embeddable, in-memory, schema-optional
// property-graph store with a Cypher-subset pattern language for
// querying it. A host program builds or loads a Graph and issues
// pattern queries against it; there is no network listener, no
// persistence beyond the JSON load/save calls below, and no implicit
// concurrency (spec §5).
package pgraph

import (
	"context"
	"io"
	"time"

	"github.com/orinthal/pgraph/internal/graph"
	"github.com/orinthal/pgraph/internal/match"
	"github.com/orinthal/pgraph/internal/path"
	"github.com/orinthal/pgraph/internal/serialization"
)

type (
	// Options carries the optional seeding/hop-cap parameters every
	// Match* method accepts.
	Options = match.Options

	// Row is a single projected binding returned by MatchRows.
	Row = match.Row

	// ColumnSets is Match's per-variable id-set result shape.
	ColumnSets = match.ColumnSets

	// PathMatch is a row plus its ordered edge trace, returned by
	// MatchPaths.
	PathMatch = path.PathMatch

	// PathEdge is one edge in a PathMatch's trace.
	PathEdge = path.PathEdge

	// Node is a labeled, property-bearing vertex.
	Node = graph.Node

	// Value is the tagged scalar union node/edge properties hold.
	Value = graph.Value
)

// Graph is the embeddable store plus its query surface.
type Graph struct {
	store *graph.Store
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{store: graph.New()}
}

// Load reads a Graph from JSON on r (spec §6 wire format).
func Load(r io.Reader) (*Graph, error) {
	store, err := serialization.ReadJSON(r)
	if err != nil {
		return nil, err
	}
	return &Graph{store: store}, nil
}

// LoadFile reads a Graph from a JSON file at path.
func LoadFile(path string) (*Graph, error) {
	store, err := serialization.LoadJSON(path)
	if err != nil {
		return nil, err
	}
	return &Graph{store: store}, nil
}

// AddNode inserts or wholesale-replaces a node.
func (g *Graph) AddNode(n Node) {
	g.store.AddNode(n)
}

// AddEdge inserts or replaces the edge keyed by (src, typ, dst).
func (g *Graph) AddEdge(src, typ, dst string, props map[string]Value) {
	g.store.AddEdge(src, typ, dst, props)
}

// GetNode returns the node at id, if any.
func (g *Graph) GetNode(id string) (Node, bool) {
	return g.store.GetNode(id)
}

// NodeCount returns the number of nodes currently in the store.
func (g *Graph) NodeCount() int {
	return len(g.store.Nodes())
}

// EdgeCount returns the number of edges currently in the store.
func (g *Graph) EdgeCount() int {
	return len(g.store.Edges())
}

// Save writes the graph to w as spec §6 JSON, stamped with the current
// time as metadata.serializedAt.
func (g *Graph) Save(w io.Writer) error {
	return serialization.WriteJSON(g.store, w, time.Now().UTC().Format(time.RFC3339))
}

// SaveFile writes the graph to a JSON file at path.
func (g *Graph) SaveFile(path string) error {
	return serialization.SaveJSON(g.store, path, time.Now().UTC().Format(time.RFC3339))
}

// Match runs pattern and collapses surviving rows into per-variable id
// sets (spec §4.7 entry point `match`).
func (g *Graph) Match(ctx context.Context, pattern string, opts Options) (ColumnSets, error) {
	return match.Sets(ctx, g.store, pattern, opts)
}

// MatchRows runs pattern and returns its ordered, paginated rows (spec
// §4.7 entry point `matchRows`).
func (g *Graph) MatchRows(ctx context.Context, pattern string, opts Options) ([]Row, error) {
	return match.Rows(ctx, g.store, pattern, opts)
}

// MatchPaths runs pattern and reconstructs a PathMatch per surviving
// row (spec §4.7 entry point `matchPaths`).
func (g *Graph) MatchPaths(ctx context.Context, pattern string, opts Options) ([]PathMatch, error) {
	return match.Paths(ctx, g.store, pattern, opts)
}

// MatchMany runs each pattern, concatenates results, and deduplicates
// by id across the union (spec §4.7 entry point `matchMany`).
func (g *Graph) MatchMany(ctx context.Context, patterns []string, opts Options) (ColumnSets, error) {
	return match.SetsMany(ctx, g.store, patterns, opts)
}

// MatchRowsMany is matchRowsMany: run each pattern, concatenate rows,
// deduplicate by full row equality.
func (g *Graph) MatchRowsMany(ctx context.Context, patterns []string, opts Options) ([]Row, error) {
	return match.RowsMany(ctx, g.store, patterns, opts)
}

// MatchPathsMany is matchPathsMany.
func (g *Graph) MatchPathsMany(ctx context.Context, patterns []string, opts Options) ([]PathMatch, error) {
	return match.PathsMany(ctx, g.store, patterns, opts)
}
