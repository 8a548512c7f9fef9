package plan

import "github.com/orinthal/pgraph/internal/graph"

// WhereExpr is the WHERE predicate AST (spec §4.4). Exactly one of its
// fields is non-nil/true per node, mirroring the teacher's tagged-union
// AST style (e.g. dsl.QueryAST in ritamzico/pgraph).
type WhereExpr struct {
	Or         []*WhereExpr // OR'd together when len > 1
	And        []*WhereExpr // AND'd together when len > 1
	Not        *WhereExpr
	Comparison *Comparison
}

// CompareOp is a WHERE-clause comparison operator. It is distinct from
// Op (inline property-constraint operators) because WHERE additionally
// has the three string operators and lacks the inline block's ':'
// synonym.
type CompareOp int

const (
	CmpEq CompareOp = iota
	CmpNe
	CmpGt
	CmpGe
	CmpLt
	CmpLe
	CmpStartsWith
	CmpEndsWith
	CmpContains
)

// Operand is one side of a Comparison: a dotted variable.property
// access, a type(var) call, or a literal scalar.
type Operand struct {
	Property *PropertyRef
	TypeCall *string // variable name passed to type(...)
	Literal  *graph.Value
}

// PropertyRef is a `var.key` reference, resolved against either a node
// or an edge variable at evaluation time.
type PropertyRef struct {
	Var string
	Key string
}

// Comparison is a single `Left Op Right` atom.
type Comparison struct {
	Left  Operand
	Op    CompareOp
	Right Operand
}
