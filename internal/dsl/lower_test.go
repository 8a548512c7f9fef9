package dsl

import (
	"testing"

	"github.com/orinthal/pgraph/internal/plan"
)

func TestBuildSingleNode(t *testing.T) {
	p, err := Build(`person:Person`)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(p.Nodes) != 1 || len(p.Edges) != 0 {
		t.Fatalf("expected one node, zero edges, got %d/%d", len(p.Nodes), len(p.Edges))
	}
	if p.Nodes[0].Var != "person" {
		t.Errorf("Var = %q, want person", p.Nodes[0].Var)
	}
	if p.Nodes[0].TypeTag == nil || *p.Nodes[0].TypeTag != "Person" {
		t.Errorf("TypeTag = %v, want Person", p.Nodes[0].TypeTag)
	}
}

func TestBuildSingleHopForward(t *testing.T) {
	p, err := Build(`user-[:MEMBER_OF]->group`)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(p.Nodes) != 2 || len(p.Edges) != 1 {
		t.Fatalf("expected 2 nodes, 1 edge, got %d/%d", len(p.Nodes), len(p.Edges))
	}
	if p.Nodes[0].Var != "user" || p.Nodes[1].Var != "group" {
		t.Errorf("node vars = %q, %q", p.Nodes[0].Var, p.Nodes[1].Var)
	}
	edge := p.Edges[0]
	if edge.Direction != plan.Forward {
		t.Error("expected forward direction")
	}
	if edge.TypeSet == nil || !edge.TypeSet["MEMBER_OF"] {
		t.Errorf("TypeSet = %v, want {MEMBER_OF}", edge.TypeSet)
	}
}

func TestBuildSingleHopBackward(t *testing.T) {
	p, err := Build(`group<-[:MEMBER_OF]-user`)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if p.Edges[0].Direction != plan.Backward {
		t.Error("expected backward direction")
	}
}

func TestBuildEdgeWithMultipleTypes(t *testing.T) {
	p, err := Build(`a-[:FOO|BAR]->b`)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	ts := p.Edges[0].TypeSet
	if !ts["FOO"] || !ts["BAR"] {
		t.Errorf("TypeSet = %v, want {FOO, BAR}", ts)
	}
}

func TestBuildEdgeAnyType(t *testing.T) {
	p, err := Build(`a-[]->b`)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if p.Edges[0].TypeSet != nil {
		t.Errorf("expected nil TypeSet for any-type edge, got %v", p.Edges[0].TypeSet)
	}
}

func TestBuildVarLenStar(t *testing.T) {
	p, err := Build(`a-[:KNOWS*]->b`)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	vl := p.Edges[0].VarLen
	if vl == nil {
		t.Fatal("expected VarLen set")
	}
	if vl.Min != defaultMinHops || vl.Max != defaultMaxHops {
		t.Errorf("VarLen = %+v, want {%d, %d}", vl, defaultMinHops, defaultMaxHops)
	}
}

func TestBuildVarLenExact(t *testing.T) {
	p, err := Build(`a-[:KNOWS*3]->b`)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	vl := p.Edges[0].VarLen
	if vl.Min != 3 || vl.Max != 3 {
		t.Errorf("VarLen = %+v, want {3, 3}", vl)
	}
}

func TestBuildVarLenRange(t *testing.T) {
	p, err := Build(`a-[:KNOWS*2..5]->b`)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	vl := p.Edges[0].VarLen
	if vl.Min != 2 || vl.Max != 5 {
		t.Errorf("VarLen = %+v, want {2, 5}", vl)
	}
}

func TestBuildVarLenOpenLowerBound(t *testing.T) {
	p, err := Build(`a-[:KNOWS*..4]->b`)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	vl := p.Edges[0].VarLen
	if vl.Min != defaultMinHops || vl.Max != 4 {
		t.Errorf("VarLen = %+v, want {%d, 4}", vl, defaultMinHops)
	}
}

func TestBuildNodePropertyConstraints(t *testing.T) {
	p, err := Build(`person:Person{age > 25, name = "Alice"}`)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	pcs := p.Nodes[0].PropertyConstraints
	if len(pcs) != 2 {
		t.Fatalf("expected 2 constraints, got %d", len(pcs))
	}
	if pcs[0].Key != "age" || pcs[0].Op != plan.Gt || pcs[0].Value.I != 25 {
		t.Errorf("constraint[0] = %+v", pcs[0])
	}
	if pcs[1].Key != "name" || pcs[1].Op != plan.Eq || pcs[1].Value.S != "Alice" {
		t.Errorf("constraint[1] = %+v", pcs[1])
	}
}

func TestBuildLabelEqAndContains(t *testing.T) {
	p, err := Build(`n{label = "widget"}`)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	lf := p.Nodes[0].LabelFilter
	if lf == nil || lf.Mode != plan.LabelEq || lf.Value != "widget" {
		t.Errorf("LabelFilter = %+v", lf)
	}

	p2, err := Build(`n{label ~ "wid"}`)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	lf2 := p2.Nodes[0].LabelFilter
	if lf2 == nil || lf2.Mode != plan.LabelContains || lf2.Value != "wid" {
		t.Errorf("LabelFilter = %+v", lf2)
	}
}

func TestBuildWhereSimpleComparison(t *testing.T) {
	p, err := Build(`person:Person WHERE person.age > 25`)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if p.Where == nil || p.Where.Comparison == nil {
		t.Fatalf("expected a single comparison, got %+v", p.Where)
	}
	c := p.Where.Comparison
	if c.Left.Property == nil || c.Left.Property.Var != "person" || c.Left.Property.Key != "age" {
		t.Errorf("left operand = %+v", c.Left)
	}
	if c.Op != plan.CmpGt {
		t.Errorf("op = %v, want CmpGt", c.Op)
	}
	if c.Right.Literal == nil || c.Right.Literal.I != 25 {
		t.Errorf("right operand = %+v", c.Right)
	}
}

func TestBuildWhereAndOr(t *testing.T) {
	p, err := Build(`a WHERE a.x = 1 AND a.y = 2 OR a.z = 3`)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// OR at top level, containing two clauses: (x=1 AND y=2), (z=3).
	if len(p.Where.Or) != 2 {
		t.Fatalf("expected 2 OR clauses, got %d: %+v", len(p.Where.Or), p.Where)
	}
	if len(p.Where.Or[0].And) != 2 {
		t.Errorf("expected first OR clause to be an AND of 2, got %+v", p.Where.Or[0])
	}
}

func TestBuildWhereNot(t *testing.T) {
	p, err := Build(`a WHERE NOT a.x = 1`)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if p.Where.Not == nil {
		t.Fatalf("expected NOT wrapper, got %+v", p.Where)
	}
}

func TestBuildWhereParentheses(t *testing.T) {
	p, err := Build(`a WHERE (a.x = 1 OR a.y = 2) AND a.z = 3`)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(p.Where.And) != 2 {
		t.Fatalf("expected top-level AND of 2, got %+v", p.Where)
	}
	if len(p.Where.And[0].Or) != 2 {
		t.Errorf("expected first AND clause to be the parenthesized OR, got %+v", p.Where.And[0])
	}
}

func TestBuildWhereStringOperators(t *testing.T) {
	cases := []struct {
		pattern string
		want    plan.CompareOp
	}{
		{`a WHERE a.name STARTS WITH "Al"`, plan.CmpStartsWith},
		{`a WHERE a.name ENDS WITH "ce"`, plan.CmpEndsWith},
		{`a WHERE a.name CONTAINS "lic"`, plan.CmpContains},
	}
	for _, tc := range cases {
		p, err := Build(tc.pattern)
		if err != nil {
			t.Fatalf("Build(%q): %v", tc.pattern, err)
		}
		if p.Where.Comparison.Op != tc.want {
			t.Errorf("Build(%q): op = %v, want %v", tc.pattern, p.Where.Comparison.Op, tc.want)
		}
	}
}

func TestBuildWhereTypeCall(t *testing.T) {
	p, err := Build(`a-[r]->b WHERE type(r) STARTS WITH "DIRECT_"`)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	c := p.Where.Comparison
	if c.Left.TypeCall == nil || *c.Left.TypeCall != "r" {
		t.Errorf("left operand = %+v, want type(r)", c.Left)
	}
}

func TestBuildReturnWithAliasAndProperty(t *testing.T) {
	p, err := Build(`person:Person RETURN person.name AS n, person`)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(p.Projection) != 2 {
		t.Fatalf("expected 2 projection items, got %d", len(p.Projection))
	}
	if p.Projection[0].Alias != "n" || p.Projection[0].Source.Var != "person" || *p.Projection[0].Source.Key != "name" {
		t.Errorf("item[0] = %+v", p.Projection[0])
	}
	if p.Projection[1].Alias != "person" || p.Projection[1].Source.Key != nil {
		t.Errorf("item[1] = %+v", p.Projection[1])
	}
}

func TestBuildOrderBySkipLimit(t *testing.T) {
	p, err := Build(`person:Person RETURN person ORDER BY person.age DESC SKIP 5 LIMIT 10`)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(p.Order) != 1 || !p.Order[0].Desc {
		t.Fatalf("Order = %+v, want one DESC item", p.Order)
	}
	if p.Skip == nil || *p.Skip != 5 {
		t.Errorf("Skip = %v, want 5", p.Skip)
	}
	if p.Limit == nil || *p.Limit != 10 {
		t.Errorf("Limit = %v, want 10", p.Limit)
	}
}

func TestBuildMultiHopChain(t *testing.T) {
	p, err := Build(`a-[:R1]->b-[:R2]->c-[:R3]->d`)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(p.Nodes) != 4 || len(p.Edges) != 3 {
		t.Fatalf("expected 4 nodes, 3 edges, got %d/%d", len(p.Nodes), len(p.Edges))
	}
}

func TestBuildInvalidSyntax(t *testing.T) {
	_, err := Build(`-->not valid((`)
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	if _, ok := err.(SyntaxError); !ok {
		t.Errorf("expected SyntaxError, got %T", err)
	}
}

func TestBuildWithMaxHopsOverridesUnboundedStar(t *testing.T) {
	p, err := BuildWithMaxHops(`a-[:KNOWS*]->b`, 25)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if p.Edges[0].VarLen.Max != 25 {
		t.Errorf("Max = %d, want 25", p.Edges[0].VarLen.Max)
	}
}

func TestUnquoteHandlesEscapes(t *testing.T) {
	got := unquote(`"line\nbreak\ttab\"quote"`)
	want := "line\nbreak\ttab\"quote"
	if got != want {
		t.Errorf("unquote = %q, want %q", got, want)
	}
}

func TestBuildNodeWithoutType(t *testing.T) {
	p, err := Build(`n`)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if p.Nodes[0].TypeTag != nil {
		t.Errorf("TypeTag = %v, want nil", p.Nodes[0].TypeTag)
	}
}
