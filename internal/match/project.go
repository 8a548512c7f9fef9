package match

import (
	"github.com/orinthal/pgraph/internal/bind"
	"github.com/orinthal/pgraph/internal/graph"
	"github.com/orinthal/pgraph/internal/plan"
)

// project builds a Row from a complete binding per spec §4.3's RETURN
// rules: the listed items keyed by alias, or every node variable keyed
// by its own name when RETURN was omitted.
func project(store *graph.Store, pl *plan.Plan, b bind.Binding) Row {
	if pl.Projection == nil {
		row := make(Row, len(pl.Nodes))
		for _, v := range pl.NodeVars() {
			if id, ok := b.Node(v); ok {
				row[v] = graph.String(id)
			}
		}
		return row
	}

	row := make(Row, len(pl.Projection))
	for _, item := range pl.Projection {
		row[item.Alias] = resolveSource(store, item.Source, b)
	}
	return row
}

// resolveSource resolves one ReturnSource/OrderItem source against a
// binding: a bare node variable yields its id, a bare edge variable
// yields its type string, and var.prop yields the property value (or
// Null if the referenced node/edge does not carry that key).
func resolveSource(store *graph.Store, src plan.ReturnSource, b bind.Binding) graph.Value {
	if id, ok := b.Node(src.Var); ok {
		if src.Key == nil {
			return graph.String(id)
		}
		n, ok := store.GetNode(id)
		if !ok {
			return graph.Null()
		}
		v, ok := n.Properties[*src.Key]
		if !ok {
			return graph.Null()
		}
		return v
	}
	if ref, ok := b.Edge(src.Var); ok {
		if src.Key == nil {
			return graph.String(ref.Type)
		}
		v, ok := ref.Properties[*src.Key]
		if !ok {
			return graph.Null()
		}
		return v
	}
	return graph.Null()
}
