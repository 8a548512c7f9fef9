// Package path implements the C8 path recorder (spec §4.8):
// reconstructing a PathMatch — a row plus its ordered edge trace — from
// a surviving binding and the plan that produced it.
package path

import (
	"github.com/orinthal/pgraph/internal/bind"
	"github.com/orinthal/pgraph/internal/graph"
	"github.com/orinthal/pgraph/internal/plan"
)

// PathEdge is one edge in a PathMatch's trace (spec §4.8).
type PathEdge struct {
	From, To     string
	Type         string
	FromVariable string
	ToVariable   string
	Properties   map[string]graph.Value
}

// PathMatch is a row plus the ordered edge trace that witnessed it
// (spec §4.8, GLOSSARY "PathMatch").
type PathMatch struct {
	Nodes map[string]graph.Value
	Edges []PathEdge
}

// Record reconstructs a PathMatch from a surviving binding, the plan
// that produced it, and the already-projected row (spec §4.8: "nodes"
// is the projected mapping, "edges" is computed from the full binding
// regardless of projection — the documented known limitation that a
// projection dropping edge-carrying node variables still leaves edges
// referencing ids absent from nodes).
func Record(store *graph.Store, pl *plan.Plan, b bind.Binding, row map[string]graph.Value) PathMatch {
	edges := make([]PathEdge, 0, len(pl.Edges))
	for i, seg := range pl.Edges {
		fromVar := pl.Nodes[i].Var
		toVar := pl.Nodes[i+1].Var
		fromID, _ := b.Node(fromVar)
		toID, _ := b.Node(toVar)

		if seg.VarLen != nil {
			// Only the last hop is observable (spec §4.8: "only the
			// last hop is represented (endpoint-to-endpoint)").
			if seg.EdgeVar != nil {
				if ref, ok := b.Edge(*seg.EdgeVar); ok {
					edges = append(edges, PathEdge{
						From: fromID, To: toID, Type: ref.Type,
						FromVariable: fromVar, ToVariable: toVar,
						Properties: ref.Properties,
					})
					continue
				}
			}
			if e, ok := findAnyEdge(store, fromID, toID); ok {
				edges = append(edges, PathEdge{
					From: fromID, To: toID, Type: e.Type,
					FromVariable: fromVar, ToVariable: toVar,
					Properties: e.Properties,
				})
			}
			continue
		}

		if seg.EdgeVar != nil {
			if ref, ok := b.Edge(*seg.EdgeVar); ok {
				edges = append(edges, PathEdge{
					From: ref.Src, To: ref.Dst, Type: ref.Type,
					FromVariable: fromVar, ToVariable: toVar,
					Properties: ref.Properties,
				})
				continue
			}
		}
		if e, ok := findAnyEdge(store, fromID, toID); ok {
			edges = append(edges, PathEdge{
				From: e.Src, To: e.Dst, Type: e.Type,
				FromVariable: fromVar, ToVariable: toVar,
				Properties: e.Properties,
			})
		}
	}

	return PathMatch{Nodes: nodesOnly(pl, b, row), Edges: edges}
}

// nodesOnly strips any row entry that came from an edge-variable RETURN
// item (spec §4.8: "edge variables excluded"). With no RETURN clause,
// the default projection already only contains node variables, so this
// is a no-op in that case.
func nodesOnly(pl *plan.Plan, b bind.Binding, row map[string]graph.Value) map[string]graph.Value {
	if pl.Projection == nil {
		return row
	}
	out := make(map[string]graph.Value, len(row))
	for _, item := range pl.Projection {
		if _, isEdge := b.Edge(item.Source.Var); isEdge {
			if _, isNode := b.Node(item.Source.Var); !isNode {
				continue
			}
		}
		if v, ok := row[item.Alias]; ok {
			out[item.Alias] = v
		}
	}
	return out
}

// findAnyEdge recovers a concrete edge record between two bound node
// ids when the segment carried no edge variable to read it off
// directly — direction-agnostic since the segment's own direction was
// already resolved during matching.
func findAnyEdge(store *graph.Store, a, b string) (graph.Edge, bool) {
	for _, typ := range store.OutTypes(a) {
		if e, ok := store.GetEdge(a, typ, b); ok {
			return e, true
		}
	}
	for _, typ := range store.OutTypes(b) {
		if e, ok := store.GetEdge(b, typ, a); ok {
			return e, true
		}
	}
	return graph.Edge{}, false
}
