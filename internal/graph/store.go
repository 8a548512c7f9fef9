package graph

import (
	"maps"
	"slices"
)

// Store is the indexed node/edge table described in spec §3: a node
// table, an edge table keyed by (src, type, dst), and forward/reverse
// type-indexed adjacency kept consistent with the edge table on every
// mutation. It is the Go-native replacement for the teacher's
// ProbabilisticAdjacencyListGraph, carrying the same "plain map-of-maps,
// total operations, silent replace" shape.
type Store struct {
	nodes map[string]Node
	edges map[Key]Edge

	outByType map[string]map[string]map[string]bool // src -> type -> dst set
	inByType  map[string]map[string]map[string]bool // dst -> type -> src set
}

// New returns an empty store.
func New() *Store {
	return &Store{
		nodes:     make(map[string]Node),
		edges:     make(map[Key]Edge),
		outByType: make(map[string]map[string]map[string]bool),
		inByType:  make(map[string]map[string]map[string]bool),
	}
}

// AddNode inserts or wholesale-replaces the node at n.ID. Existing
// incident edges are untouched by a replace.
func (s *Store) AddNode(n Node) {
	s.nodes[n.ID] = n.clone()
}

// RemoveNode deletes a node and every edge touching it. Unknown ids are
// a no-op, matching the store's total-operation contract.
func (s *Store) RemoveNode(id string) {
	if _, ok := s.nodes[id]; !ok {
		return
	}
	for typ, dsts := range s.outByType[id] {
		for dst := range dsts {
			s.removeEdgeIndexes(id, typ, dst)
		}
	}
	for typ, srcs := range s.inByType[id] {
		for src := range srcs {
			s.removeEdgeIndexes(src, typ, id)
		}
	}
	delete(s.nodes, id)
	delete(s.outByType, id)
	delete(s.inByType, id)
}

// GetNode returns the node at id, if any.
func (s *Store) GetNode(id string) (Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// HasNode reports whether id names a node in the store.
func (s *Store) HasNode(id string) bool {
	_, ok := s.nodes[id]
	return ok
}

// Nodes returns every node in the store; iteration order is unspecified.
func (s *Store) Nodes() []Node {
	return slices.Collect(maps.Values(s.nodes))
}

// AddEdge inserts or replaces the edge keyed by (src, typ, dst). A
// replace's properties wholly supersede the previous ones, dropping any
// key the new call omitted. Edges against unknown node ids are still
// indexed — the store does not enforce referential integrity; only
// deserialization does (spec §3).
func (s *Store) AddEdge(src, typ, dst string, props map[string]Value) {
	e := Edge{Src: src, Type: typ, Dst: dst, Properties: props}.clone()
	s.edges[e.Key()] = e

	if s.outByType[src] == nil {
		s.outByType[src] = make(map[string]map[string]bool)
	}
	if s.outByType[src][typ] == nil {
		s.outByType[src][typ] = make(map[string]bool)
	}
	s.outByType[src][typ][dst] = true

	if s.inByType[dst] == nil {
		s.inByType[dst] = make(map[string]map[string]bool)
	}
	if s.inByType[dst][typ] == nil {
		s.inByType[dst][typ] = make(map[string]bool)
	}
	s.inByType[dst][typ][src] = true
}

func (s *Store) removeEdgeIndexes(src, typ, dst string) {
	delete(s.edges, Key{Src: src, Type: typ, Dst: dst})
	if m := s.outByType[src]; m != nil {
		delete(m[typ], dst)
		if len(m[typ]) == 0 {
			delete(m, typ)
		}
	}
	if m := s.inByType[dst]; m != nil {
		delete(m[typ], src)
		if len(m[typ]) == 0 {
			delete(m, typ)
		}
	}
}

// RemoveEdge deletes the edge keyed by (src, typ, dst), if present.
func (s *Store) RemoveEdge(src, typ, dst string) {
	if !s.HasEdge(src, typ, dst) {
		return
	}
	s.removeEdgeIndexes(src, typ, dst)
}

// HasEdge reports whether the given (src, typ, dst) triple exists.
func (s *Store) HasEdge(src, typ, dst string) bool {
	_, ok := s.edges[Key{Src: src, Type: typ, Dst: dst}]
	return ok
}

// GetEdge returns the edge record for (src, typ, dst), if any.
func (s *Store) GetEdge(src, typ, dst string) (Edge, bool) {
	e, ok := s.edges[Key{Src: src, Type: typ, Dst: dst}]
	return e, ok
}

// Edges returns every edge in the store; iteration order is unspecified.
func (s *Store) Edges() []Edge {
	return slices.Collect(maps.Values(s.edges))
}

// OutNeighbors returns the dst ids reachable from src via edges of typ.
// Unknown src or typ yields an empty, non-nil slice.
func (s *Store) OutNeighbors(src, typ string) []string {
	return keys(s.outByType[src][typ])
}

// InNeighbors returns the src ids that reach dst via edges of typ.
func (s *Store) InNeighbors(dst, typ string) []string {
	return keys(s.inByType[dst][typ])
}

// OutTypes returns the distinct edge types leaving src.
func (s *Store) OutTypes(src string) []string {
	return keys(s.outByType[src])
}

// InTypes returns the distinct edge types arriving at dst.
func (s *Store) InTypes(dst string) []string {
	return keys(s.inByType[dst])
}

func keys[V any](m map[string]V) []string {
	if len(m) == 0 {
		return []string{}
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
