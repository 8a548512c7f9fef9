// Package bind holds the partial/complete variable binding that flows
// through matching (spec §3 "Binding": "partial or complete assignment
// of pattern variables to graph ids"). It sits below internal/predicate,
// internal/exec, and internal/path so none of those import each other
// just to share this one shape.
package bind

import "github.com/orinthal/pgraph/internal/graph"

// EdgeRef is what an edge variable binds to: enough of the edge record
// to answer type(r) and r.prop lookups without a second store fetch.
type EdgeRef struct {
	Src, Type, Dst string
	Properties     map[string]graph.Value
}

// Binding is a snapshot of every variable bound so far during a match
// attempt. Node and Edge maps are never mutated in place — WithNode and
// WithEdge return a new Binding sharing the unchanged half of the state, so a
// backtracking search can hold onto an earlier Binding after trying and
// abandoning an extension of it.
type Binding struct {
	Nodes map[string]string  // node variable -> node id
	Edges map[string]EdgeRef // edge variable -> edge reference
}

// Empty returns a Binding with no variables bound.
func Empty() Binding {
	return Binding{Nodes: map[string]string{}, Edges: map[string]EdgeRef{}}
}

// WithNode returns a copy of b with var bound to id. A variable already
// bound is overwritten with no consistency check (spec §4.3: "the
// previous binding is overwritten with no consistency check").
func (b Binding) WithNode(v, id string) Binding {
	nodes := make(map[string]string, len(b.Nodes)+1)
	for k, val := range b.Nodes {
		nodes[k] = val
	}
	nodes[v] = id
	return Binding{Nodes: nodes, Edges: b.Edges}
}

// WithEdge returns a copy of b with var bound to ref.
func (b Binding) WithEdge(v string, ref EdgeRef) Binding {
	edges := make(map[string]EdgeRef, len(b.Edges)+1)
	for k, val := range b.Edges {
		edges[k] = val
	}
	edges[v] = ref
	return Binding{Nodes: b.Nodes, Edges: edges}
}

// Node returns the id bound to a node variable.
func (b Binding) Node(v string) (string, bool) {
	id, ok := b.Nodes[v]
	return id, ok
}

// Edge returns the reference bound to an edge variable.
func (b Binding) Edge(v string) (EdgeRef, bool) {
	ref, ok := b.Edges[v]
	return ref, ok
}
