// Package exec implements the fixed-segment (C5) and variable-length
// (C6) extension steps: given a binding with the previous NodeSegment
// already bound, produce every binding that extends it across one
// EdgeSegment to the next NodeSegment. internal/match drives the
// recursive multi-way join these steps are one link of.
package exec

import (
	"strings"

	"github.com/orinthal/pgraph/internal/bind"
	"github.com/orinthal/pgraph/internal/graph"
	"github.com/orinthal/pgraph/internal/plan"
)

// Candidate is one way to extend a binding across a segment: the
// terminal node id and the last edge walked to reach it (for a
// variable-length segment, only its final hop).
type Candidate struct {
	TerminalID string
	LastEdge   bind.EdgeRef
}

// Extend returns every binding reachable from prevID across seg,
// filtered by seg's own constraints and by term's filters, with seg's
// edge variable (if any) and term's variable bound in each result.
//
// knownIsPrevious tells Extend which side of the segment the known node
// sits on: true when prevID is the earlier position in declaration
// order (the ordinary left-to-right case), false when the search is
// extending backward from a terminal anchor. Spec §4.3/§4.5 only state
// the forward rule ("forward uses outByType, backward uses inByType");
// the reverse-anchored case is resolved here as the XNOR of the two
// booleans so that a backward search from a known right-hand node still
// ends up consulting the same adjacency index a symmetric forward
// search would.
func Extend(store *graph.Store, b bind.Binding, prevID string, seg plan.EdgeSegment, term plan.NodeSegment, knownIsPrevious bool) []bind.Binding {
	useOut := knownIsPrevious == (seg.Direction == plan.Forward)

	if seg.VarLen != nil {
		return extendVarLen(store, b, prevID, seg, term, useOut)
	}
	return extendFixed(store, b, prevID, seg, term, useOut)
}

func extendFixed(store *graph.Store, b bind.Binding, prevID string, seg plan.EdgeSegment, term plan.NodeSegment, useOut bool) []bind.Binding {
	var out []bind.Binding
	for _, typ := range candidateTypes(store, prevID, seg, useOut) {
		for _, other := range neighborIDs(store, prevID, typ, useOut) {
			src, dst := edgeEndpoints(prevID, other, useOut)
			edge, ok := store.GetEdge(src, typ, dst)
			if !ok {
				continue
			}
			if !propertiesMatch(edge.Properties, seg.EdgePropertyConstraints) {
				continue
			}
			if !nodeAccepted(store, other, term) {
				continue
			}
			nb := b.WithNode(term.Var, other)
			if seg.EdgeVar != nil {
				nb = nb.WithEdge(*seg.EdgeVar, bind.EdgeRef{Src: edge.Src, Type: edge.Type, Dst: edge.Dst, Properties: edge.Properties})
			}
			out = append(out, nb)
		}
	}
	return out
}

// extendVarLen performs the spec §4.6 breadth-first walk: depth levels
// 1..max, a node may not repeat within one traversal path, and every
// node reached at depth >= min is a terminal candidate. Distinct walks
// that reach the same node are still only emitted once per start node
// (spec §8 testable property implied by "matchRows rows are
// row-unique" combined with the worked example in §4.6's surrounding
// scenario list) — emittedTerminal tracks that.
func extendVarLen(store *graph.Store, b bind.Binding, prevID string, seg plan.EdgeSegment, term plan.NodeSegment, useOut bool) []bind.Binding {
	type state struct {
		node    string
		visited map[string]bool
		lastEdge bind.EdgeRef
	}

	frontier := []state{{node: prevID, visited: map[string]bool{prevID: true}}}
	var out []bind.Binding
	emitted := map[string]bool{}

	for depth := 1; depth <= seg.VarLen.Max; depth++ {
		var next []state
		for _, st := range frontier {
			for _, typ := range candidateTypes(store, st.node, seg, useOut) {
				for _, other := range neighborIDs(store, st.node, typ, useOut) {
					if st.visited[other] {
						continue
					}
					src, dst := edgeEndpoints(st.node, other, useOut)
					edge, ok := store.GetEdge(src, typ, dst)
					if !ok {
						continue
					}
					if !propertiesMatch(edge.Properties, seg.EdgePropertyConstraints) {
						continue
					}
					visited := make(map[string]bool, len(st.visited)+1)
					for k := range st.visited {
						visited[k] = true
					}
					visited[other] = true
					ref := bind.EdgeRef{Src: edge.Src, Type: edge.Type, Dst: edge.Dst, Properties: edge.Properties}
					next = append(next, state{node: other, visited: visited, lastEdge: ref})

					if depth >= seg.VarLen.Min && !emitted[other] && nodeAccepted(store, other, term) {
						emitted[other] = true
						nb := b.WithNode(term.Var, other)
						if seg.EdgeVar != nil {
							nb = nb.WithEdge(*seg.EdgeVar, ref)
						}
						out = append(out, nb)
					}
				}
			}
		}
		frontier = next
		if len(frontier) == 0 {
			break
		}
	}

	return out
}

func candidateTypes(store *graph.Store, id string, seg plan.EdgeSegment, useOut bool) []string {
	var all []string
	if useOut {
		all = store.OutTypes(id)
	} else {
		all = store.InTypes(id)
	}
	if seg.TypeSet == nil {
		return all
	}
	out := make([]string, 0, len(all))
	for _, t := range all {
		if seg.TypeSet[t] {
			out = append(out, t)
		}
	}
	return out
}

func neighborIDs(store *graph.Store, id, typ string, useOut bool) []string {
	if useOut {
		return store.OutNeighbors(id, typ)
	}
	return store.InNeighbors(id, typ)
}

// edgeEndpoints maps (known, other) to (src, dst) given which adjacency
// index was consulted: a forward/outByType lookup means known is the
// source; a backward/inByType lookup means known is the destination.
func edgeEndpoints(known, other string, useOut bool) (src, dst string) {
	if useOut {
		return known, other
	}
	return other, known
}

func propertiesMatch(props map[string]graph.Value, constraints []plan.PropertyConstraint) bool {
	for _, c := range constraints {
		v, ok := props[c.Key]
		if !ok {
			return false
		}
		if !constraintHolds(v, c) {
			return false
		}
	}
	return true
}

// Accepts reports whether the node at id satisfies seg's typeTag,
// labelFilter, and propertyConstraints. Exported for internal/match's
// anchor-position search (spec §4.7), which needs the same acceptance
// test Extend applies to candidate terminals, but against a seed id
// with no edge segment involved yet.
func Accepts(store *graph.Store, id string, seg plan.NodeSegment) bool {
	return nodeAccepted(store, id, seg)
}

func nodeAccepted(store *graph.Store, id string, seg plan.NodeSegment) bool {
	n, ok := store.GetNode(id)
	if !ok {
		return false
	}
	if seg.TypeTag != nil && n.Type != *seg.TypeTag {
		return false
	}
	if seg.LabelFilter != nil {
		switch seg.LabelFilter.Mode {
		case plan.LabelEq:
			if n.Label != seg.LabelFilter.Value {
				return false
			}
		case plan.LabelContains:
			if !containsFold(n.Label, seg.LabelFilter.Value) {
				return false
			}
		}
	}
	return propertiesMatch(n.Properties, seg.PropertyConstraints)
}

func constraintHolds(v graph.Value, c plan.PropertyConstraint) bool {
	switch c.Op {
	case plan.Eq:
		return graph.Equal(v, c.Value)
	case plan.Ne:
		return !graph.Equal(v, c.Value)
	case plan.Contains:
		return containsFold(v.AsText(), c.Value.AsText())
	case plan.Gt, plan.Ge, plan.Lt, plan.Le:
		cmp, ok := graph.Compare(v, c.Value)
		if !ok {
			return false
		}
		switch c.Op {
		case plan.Gt:
			return cmp > 0
		case plan.Ge:
			return cmp >= 0
		case plan.Lt:
			return cmp < 0
		default:
			return cmp <= 0
		}
	default:
		return false
	}
}

// containsFold implements the spec §4.2/§8.250 "lowercase both sides
// before comparing" substring rule used by the `~` operator.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
