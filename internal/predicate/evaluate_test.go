package predicate

import (
	"testing"

	"github.com/orinthal/pgraph/internal/bind"
	"github.com/orinthal/pgraph/internal/graph"
	"github.com/orinthal/pgraph/internal/plan"
)

func prop(var_, key string) plan.Operand {
	return plan.Operand{Property: &plan.PropertyRef{Var: var_, Key: key}}
}

func lit(v graph.Value) plan.Operand {
	return plan.Operand{Literal: &v}
}

func cmp(left plan.Operand, op plan.CompareOp, right plan.Operand) *plan.WhereExpr {
	return &plan.WhereExpr{Comparison: &plan.Comparison{Left: left, Op: op, Right: right}}
}

func TestEvaluateNilExprIsTrue(t *testing.T) {
	store := graph.New()
	if !Evaluate(store, nil, bind.Empty()) {
		t.Error("expected nil WHERE expr to be vacuously true")
	}
}

func TestEvaluateComparisonOnBoundNode(t *testing.T) {
	store := graph.New()
	store.AddNode(graph.Node{ID: "1", Properties: map[string]graph.Value{"age": graph.Int(30)}})
	b := bind.Empty().WithNode("person", "1")

	expr := cmp(prop("person", "age"), plan.CmpGt, lit(graph.Int(25)))
	if !Evaluate(store, expr, b) {
		t.Error("expected person.age > 25 to hold for age=30")
	}

	expr2 := cmp(prop("person", "age"), plan.CmpLt, lit(graph.Int(25)))
	if Evaluate(store, expr2, b) {
		t.Error("expected person.age < 25 to fail for age=30")
	}
}

func TestEvaluateUnboundVariableIsFalse(t *testing.T) {
	store := graph.New()
	expr := cmp(prop("ghost", "age"), plan.CmpGt, lit(graph.Int(25)))
	if Evaluate(store, expr, bind.Empty()) {
		t.Error("expected unbound variable comparison to be false")
	}
}

func TestEvaluateMissingPropertyIsFalse(t *testing.T) {
	store := graph.New()
	store.AddNode(graph.Node{ID: "1"})
	b := bind.Empty().WithNode("person", "1")
	expr := cmp(prop("person", "age"), plan.CmpGt, lit(graph.Int(25)))
	if Evaluate(store, expr, b) {
		t.Error("expected missing property comparison to be false")
	}
}

func TestEvaluateAndShortCircuits(t *testing.T) {
	store := graph.New()
	store.AddNode(graph.Node{ID: "1", Properties: map[string]graph.Value{"age": graph.Int(30)}})
	b := bind.Empty().WithNode("person", "1")

	trueExpr := cmp(prop("person", "age"), plan.CmpEq, lit(graph.Int(30)))
	falseExpr := cmp(prop("person", "age"), plan.CmpEq, lit(graph.Int(99)))

	and := &plan.WhereExpr{And: []*plan.WhereExpr{trueExpr, falseExpr}}
	if Evaluate(store, and, b) {
		t.Error("expected AND(true, false) to be false")
	}

	andBoth := &plan.WhereExpr{And: []*plan.WhereExpr{trueExpr, trueExpr}}
	if !Evaluate(store, andBoth, b) {
		t.Error("expected AND(true, true) to be true")
	}
}

func TestEvaluateOrShortCircuits(t *testing.T) {
	store := graph.New()
	store.AddNode(graph.Node{ID: "1", Properties: map[string]graph.Value{"age": graph.Int(30)}})
	b := bind.Empty().WithNode("person", "1")

	trueExpr := cmp(prop("person", "age"), plan.CmpEq, lit(graph.Int(30)))
	falseExpr := cmp(prop("person", "age"), plan.CmpEq, lit(graph.Int(99)))

	or := &plan.WhereExpr{Or: []*plan.WhereExpr{falseExpr, trueExpr}}
	if !Evaluate(store, or, b) {
		t.Error("expected OR(false, true) to be true")
	}

	orNeither := &plan.WhereExpr{Or: []*plan.WhereExpr{falseExpr, falseExpr}}
	if Evaluate(store, orNeither, b) {
		t.Error("expected OR(false, false) to be false")
	}
}

func TestEvaluateNot(t *testing.T) {
	store := graph.New()
	store.AddNode(graph.Node{ID: "1", Properties: map[string]graph.Value{"age": graph.Int(30)}})
	b := bind.Empty().WithNode("person", "1")

	trueExpr := cmp(prop("person", "age"), plan.CmpEq, lit(graph.Int(30)))
	not := &plan.WhereExpr{Not: trueExpr}
	if Evaluate(store, not, b) {
		t.Error("expected NOT(true) to be false")
	}
}

func TestEvaluateTypeCall(t *testing.T) {
	store := graph.New()
	b := bind.Empty().WithEdge("r", bind.EdgeRef{Src: "a", Type: "DIRECT_REPORT", Dst: "b"})

	expr := cmp(plan.Operand{TypeCall: strPtr("r")}, plan.CmpStartsWith, lit(graph.String("DIRECT_")))
	if !Evaluate(store, expr, b) {
		t.Error("expected type(r) STARTS WITH 'DIRECT_' to hold")
	}
}

func TestEvaluateStringOperatorsCaseSensitive(t *testing.T) {
	store := graph.New()
	store.AddNode(graph.Node{ID: "1", Properties: map[string]graph.Value{"name": graph.String("Alice")}})
	b := bind.Empty().WithNode("p", "1")

	contains := cmp(prop("p", "name"), plan.CmpContains, lit(graph.String("lic")))
	if !Evaluate(store, contains, b) {
		t.Error("expected 'Alice' CONTAINS 'lic'")
	}

	containsWrongCase := cmp(prop("p", "name"), plan.CmpContains, lit(graph.String("LIC")))
	if Evaluate(store, containsWrongCase, b) {
		t.Error("expected CONTAINS to be case-sensitive")
	}

	startsWith := cmp(prop("p", "name"), plan.CmpStartsWith, lit(graph.String("Al")))
	if !Evaluate(store, startsWith, b) {
		t.Error("expected 'Alice' STARTS WITH 'Al'")
	}

	endsWith := cmp(prop("p", "name"), plan.CmpEndsWith, lit(graph.String("ce")))
	if !Evaluate(store, endsWith, b) {
		t.Error("expected 'Alice' ENDS WITH 'ce'")
	}
}

func TestEvaluateNumericComparisons(t *testing.T) {
	store := graph.New()
	store.AddNode(graph.Node{ID: "1", Properties: map[string]graph.Value{"age": graph.Int(30)}})
	b := bind.Empty().WithNode("p", "1")

	cases := []struct {
		op   plan.CompareOp
		val  int64
		want bool
	}{
		{plan.CmpGe, 30, true},
		{plan.CmpGe, 31, false},
		{plan.CmpLe, 30, true},
		{plan.CmpLe, 29, false},
		{plan.CmpNe, 31, true},
		{plan.CmpNe, 30, false},
	}
	for _, tc := range cases {
		expr := cmp(prop("p", "age"), tc.op, lit(graph.Int(tc.val)))
		if got := Evaluate(store, expr, b); got != tc.want {
			t.Errorf("op=%v val=%d: got %v, want %v", tc.op, tc.val, got, tc.want)
		}
	}
}

func strPtr(s string) *string { return &s }
