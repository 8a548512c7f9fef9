// Package predicate evaluates WHERE expressions against a binding
// (spec §4.4, the C4 predicate evaluator). It never returns an error:
// an operand that cannot be resolved — an unbound variable or a missing
// property — makes the comparison false, per spec §4.4 "Dotted access
// on an unknown variable evaluates the whole comparison to false, never
// raising." Resolved operands of different kinds go through graph.Equal
// and graph.Compare: `=` is false and `!=` true across kinds, and the
// relational operators order kinds of different rank by that rank.
package predicate

import (
	"strings"

	"github.com/orinthal/pgraph/internal/bind"
	"github.com/orinthal/pgraph/internal/graph"
	"github.com/orinthal/pgraph/internal/plan"
)

// Evaluate reports whether expr holds under b, resolving node and edge
// property lookups against store. A nil expr is vacuously true (no
// WHERE clause).
func Evaluate(store *graph.Store, expr *plan.WhereExpr, b bind.Binding) bool {
	if expr == nil {
		return true
	}
	switch {
	case expr.Or != nil:
		for _, clause := range expr.Or {
			if Evaluate(store, clause, b) {
				return true
			}
		}
		return false
	case expr.And != nil:
		for _, clause := range expr.And {
			if !Evaluate(store, clause, b) {
				return false
			}
		}
		return true
	case expr.Not != nil:
		return !Evaluate(store, expr.Not, b)
	case expr.Comparison != nil:
		return evalComparison(store, expr.Comparison, b)
	default:
		return true
	}
}

func evalComparison(store *graph.Store, c *plan.Comparison, b bind.Binding) bool {
	left, ok := resolve(store, c.Left, b)
	if !ok {
		return false
	}
	right, ok := resolve(store, c.Right, b)
	if !ok {
		return false
	}

	switch c.Op {
	case plan.CmpEq:
		return graph.Equal(left, right)
	case plan.CmpNe:
		return !graph.Equal(left, right)
	case plan.CmpGt, plan.CmpGe, plan.CmpLt, plan.CmpLe:
		cmp, ok := graph.Compare(left, right)
		if !ok {
			return false
		}
		switch c.Op {
		case plan.CmpGt:
			return cmp > 0
		case plan.CmpGe:
			return cmp >= 0
		case plan.CmpLt:
			return cmp < 0
		default:
			return cmp <= 0
		}
	case plan.CmpStartsWith:
		return strings.HasPrefix(left.AsText(), right.AsText())
	case plan.CmpEndsWith:
		return strings.HasSuffix(left.AsText(), right.AsText())
	case plan.CmpContains:
		return strings.Contains(left.AsText(), right.AsText())
	default:
		return false
	}
}

// resolve evaluates one Operand under b. ok is false when the operand
// names an unbound variable or a property the bound node/edge does not
// carry — callers treat that as "comparison is false", never an error.
func resolve(store *graph.Store, o plan.Operand, b bind.Binding) (graph.Value, bool) {
	switch {
	case o.Literal != nil:
		return *o.Literal, true

	case o.TypeCall != nil:
		ref, ok := b.Edge(*o.TypeCall)
		if !ok {
			return graph.Value{}, false
		}
		return graph.String(ref.Type), true

	case o.Property != nil:
		return resolveProperty(store, o.Property, b)

	default:
		return graph.Value{}, false
	}
}

func resolveProperty(store *graph.Store, ref *plan.PropertyRef, b bind.Binding) (graph.Value, bool) {
	if nodeID, ok := b.Node(ref.Var); ok {
		n, ok := store.GetNode(nodeID)
		if !ok {
			return graph.Value{}, false
		}
		v, ok := n.Properties[ref.Key]
		return v, ok
	}
	if edgeRef, ok := b.Edge(ref.Var); ok {
		v, ok := edgeRef.Properties[ref.Key]
		return v, ok
	}
	return graph.Value{}, false
}
