package dsl

import (
	"strings"

	"github.com/orinthal/pgraph/internal/graph"
	"github.com/orinthal/pgraph/internal/plan"
)

const (
	defaultMinHops = 1
	defaultMaxHops = 10 // spec §9 "Unlimited var-length default cap"
)

// Build parses a pattern string and lowers it into an immutable Plan
// (spec §4.3, the C3 planner) with the default variable-length hop cap.
// Build and BuildWithMaxHops are the package's two parse entry points.
func Build(pattern string) (*plan.Plan, error) {
	return BuildWithMaxHops(pattern, defaultMaxHops)
}

// BuildWithMaxHops is Build with the engine-wide unbounded-var-length
// cap overridden, exposed so match.Plan can thread a caller's
// Options.MaxHops down to the planner without a global.
func BuildWithMaxHops(pattern string, maxHops int) (*plan.Plan, error) {
	ast, err := dslParser.ParseString("", pattern)
	if err != nil {
		return nil, SyntaxError{Kind: "InvalidSyntax", Message: err.Error()}
	}
	return lower(ast, maxHops)
}

func lower(g *Grammar, maxHops int) (*plan.Plan, error) {
	nodes := []plan.NodeSegment{lowerNode(g.Start)}
	edges := make([]plan.EdgeSegment, 0, len(g.Hops))
	for _, hop := range g.Hops {
		edges = append(edges, lowerEdge(hop.Edge, maxHops))
		nodes = append(nodes, lowerNode(hop.Node))
	}

	p := &plan.Plan{Nodes: nodes, Edges: edges}

	if g.Where != nil {
		p.Where = lowerOr(g.Where)
	}
	if g.Return != nil {
		items := make([]plan.ReturnItem, len(g.Return))
		for i, r := range g.Return {
			items[i] = lowerReturnItem(r)
		}
		p.Projection = items
	}
	if g.OrderBy != nil {
		items := make([]plan.OrderItem, len(g.OrderBy))
		for i, o := range g.OrderBy {
			items[i] = lowerOrderItem(o)
		}
		p.Order = items
	}
	if g.Skip != nil {
		v := int(*g.Skip)
		p.Skip = &v
	}
	if g.Limit != nil {
		v := int(*g.Limit)
		p.Limit = &v
	}

	return p, nil
}

func lowerNode(n *NodeExprAST) plan.NodeSegment {
	seg := plan.NodeSegment{Var: n.Var, TypeTag: n.Type}

	var props []plan.PropertyConstraint
	for _, pf := range n.Props {
		op := lowerOp(pf.Op)
		val := lowerLiteral(pf.Value)
		if pf.Key == "label" && (op == plan.Eq || op == plan.Contains) {
			mode := plan.LabelEq
			if op == plan.Contains {
				mode = plan.LabelContains
			}
			seg.LabelFilter = &plan.LabelFilter{Mode: mode, Value: val.AsText()}
			continue
		}
		props = append(props, plan.PropertyConstraint{Key: pf.Key, Op: op, Value: val})
	}
	seg.PropertyConstraints = props

	return seg
}

func lowerEdge(e *EdgeExprAST, maxHops int) plan.EdgeSegment {
	seg := plan.EdgeSegment{Direction: plan.Forward}
	if e.Left == "<-" && e.Right == "-" {
		seg.Direction = plan.Backward
	}

	if e.Body == nil {
		return seg
	}
	b := e.Body

	seg.EdgeVar = b.Var

	if len(b.Types) > 0 {
		set := make(map[string]bool, len(b.Types))
		for _, t := range b.Types {
			set[t] = true
		}
		seg.TypeSet = set
	}

	if b.VarLen != nil {
		vl := plan.VarLen{Min: defaultMinHops, Max: maxHops}
		switch {
		case b.VarLen.Exact != nil:
			n := int(*b.VarLen.Exact)
			vl.Min, vl.Max = n, n
		case b.VarLen.Range != nil:
			if b.VarLen.Range.Min != nil {
				vl.Min = int(*b.VarLen.Range.Min)
			}
			if b.VarLen.Range.Max != nil {
				vl.Max = int(*b.VarLen.Range.Max)
			}
		}
		seg.VarLen = &vl
	}

	var props []plan.PropertyConstraint
	for _, pf := range b.Props {
		props = append(props, plan.PropertyConstraint{
			Key: pf.Key, Op: lowerOp(pf.Op), Value: lowerLiteral(pf.Value),
		})
	}
	seg.EdgePropertyConstraints = props

	return seg
}

func lowerOp(tok string) plan.Op {
	switch tok {
	case ":", "=":
		return plan.Eq
	case "!=":
		return plan.Ne
	case ">":
		return plan.Gt
	case ">=":
		return plan.Ge
	case "<":
		return plan.Lt
	case "<=":
		return plan.Le
	case "~":
		return plan.Contains
	default:
		return plan.Eq
	}
}

func lowerLiteral(l *LiteralAST) graph.Value {
	switch {
	case l == nil:
		return graph.Null()
	case l.Str != nil:
		return graph.String(unquote(*l.Str))
	case l.Float != nil:
		return graph.Float(*l.Float)
	case l.Int != nil:
		return graph.Int(*l.Int)
	case l.True:
		return graph.Bool(true)
	case l.False:
		return graph.Bool(false)
	default:
		return graph.Null()
	}
}

func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	quote := s[0]
	inner := s[1 : len(s)-1]
	var b strings.Builder
	b.Grow(len(inner))
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
			switch inner[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(inner[i])
			}
			continue
		}
		b.WriteByte(inner[i])
	}
	_ = quote
	return b.String()
}

func lowerReturnItem(r *RetItemAST) plan.ReturnItem {
	alias := r.Var
	if r.Prop != nil {
		alias = r.Var + "." + *r.Prop
	}
	if r.Alias != nil {
		alias = *r.Alias
	}
	return plan.ReturnItem{
		Source: plan.ReturnSource{Var: r.Var, Key: r.Prop},
		Alias:  alias,
	}
}

func lowerOrderItem(o *OrderItemAST) plan.OrderItem {
	desc := o.Dir != nil && strings.EqualFold(*o.Dir, "DESC")
	return plan.OrderItem{
		Source: plan.ReturnSource{Var: o.Var, Key: o.Prop},
		Desc:   desc,
	}
}

func lowerOr(o *OrExprAST) *plan.WhereExpr {
	clauses := collectOr(o)
	if len(clauses) == 1 {
		return clauses[0]
	}
	return &plan.WhereExpr{Or: clauses}
}

func collectOr(o *OrExprAST) []*plan.WhereExpr {
	out := []*plan.WhereExpr{lowerAnd(o.Left)}
	for _, r := range o.Rest {
		out = append(out, lowerAnd(r))
	}
	return out
}

func lowerAnd(a *AndExprAST) *plan.WhereExpr {
	clauses := []*plan.WhereExpr{lowerUnary(a.Left)}
	for _, r := range a.Rest {
		clauses = append(clauses, lowerUnary(r))
	}
	if len(clauses) == 1 {
		return clauses[0]
	}
	return &plan.WhereExpr{And: clauses}
}

func lowerUnary(u *UnaryExprAST) *plan.WhereExpr {
	switch {
	case u.Not != nil:
		return &plan.WhereExpr{Not: lowerUnary(u.Not)}
	case u.Paren != nil:
		return lowerOr(u.Paren)
	default:
		return lowerComparison(u.Comparison)
	}
}

func lowerComparison(c *ComparisonExprAST) *plan.WhereExpr {
	left := lowerOperand(c.Left)
	right := lowerOperand(c.Rest.Right)
	op := lowerCompareOp(c.Rest.Op)
	return &plan.WhereExpr{Comparison: &plan.Comparison{Left: left, Op: op, Right: right}}
}

func lowerCompareOp(o CompareOpAST) plan.CompareOp {
	switch {
	case o.Ne, o.Ne2:
		return plan.CmpNe
	case o.Ge:
		return plan.CmpGe
	case o.Le:
		return plan.CmpLe
	case o.Gt:
		return plan.CmpGt
	case o.Lt:
		return plan.CmpLt
	case o.StartsWith:
		return plan.CmpStartsWith
	case o.EndsWith:
		return plan.CmpEndsWith
	case o.Contains:
		return plan.CmpContains
	default:
		return plan.CmpEq
	}
}

func lowerOperand(o *OperandAST) plan.Operand {
	switch {
	case o.TypeCall != nil:
		return plan.Operand{TypeCall: o.TypeCall}
	case o.Property != nil:
		return plan.Operand{Property: &plan.PropertyRef{Var: o.Property.Var, Key: o.Property.Key}}
	default:
		v := lowerLiteral(o.Literal)
		return plan.Operand{Literal: &v}
	}
}
