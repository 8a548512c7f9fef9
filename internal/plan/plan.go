// Package plan holds the immutable lowered form of a pattern string
// (spec §3 "Plan"/"NodeSegment"/"EdgeSegment"). Nothing in this package
// parses or evaluates anything; internal/dsl builds a Plan, and
// internal/exec, internal/predicate, internal/match, internal/path
// consume it.
package plan

import "github.com/orinthal/pgraph/internal/graph"

// Direction is the direction of an EdgeSegment from the previous node in
// the plan to the next one (spec §4.3 "Direction encoding").
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Op is a property-constraint comparison operator (spec §3 NodeSegment/
// EdgeSegment propertyConstraints). ':' and '=' are synonyms for Eq at
// the grammar layer; both lower to Eq here.
type Op int

const (
	Eq Op = iota
	Ne
	Gt
	Ge
	Lt
	Le
	Contains
)

// LabelMode distinguishes the two forms an inline `label` filter can
// take: exact match or case-insensitive substring.
type LabelMode int

const (
	LabelEq LabelMode = iota
	LabelContains
)

// LabelFilter is the special-cased `label` inline constraint on a node.
type LabelFilter struct {
	Mode  LabelMode
	Value string
}

// PropertyConstraint is one `key Op value` inline constraint, used for
// both node and edge inline property blocks.
type PropertyConstraint struct {
	Key   string
	Op    Op
	Value graph.Value
}

// VarLen is the min..max hop bound of a variable-length EdgeSegment.
// Absent Min/Max is represented by the engine-wide defaults being
// applied at lowering time (spec §4.6: min defaults to 1, max to 10),
// so by the time a Plan reaches internal/exec both fields are always
// populated.
type VarLen struct {
	Min, Max int
}

// NodeSegment is one node position in the plan.
type NodeSegment struct {
	Var                 string
	TypeTag             *string
	LabelFilter         *LabelFilter
	PropertyConstraints []PropertyConstraint
}

// EdgeSegment is one edge position in the plan, connecting the
// NodeSegment before it to the NodeSegment after it.
type EdgeSegment struct {
	EdgeVar                 *string
	TypeSet                 map[string]bool // nil means "any type"
	Direction               Direction
	VarLen                  *VarLen // nil means exactly one hop
	EdgePropertyConstraints []PropertyConstraint
}

// ReturnSource names what a RETURN/ORDER BY item resolves against: a
// bare variable (node or edge), or a dotted node.property access.
type ReturnSource struct {
	Var string
	Key *string // nil for a bare variable reference
}

// ReturnItem is one projected column (spec §3 "projection").
type ReturnItem struct {
	Source ReturnSource
	Alias  string
}

// OrderItem is one ORDER BY key (spec §3 "order").
type OrderItem struct {
	Source ReturnSource
	Desc   bool
}

// Plan is the immutable lowered form of a pattern string. Nodes and
// Edges are the spec's alternating segment chain, split into two
// parallel slices with len(Nodes) == len(Edges)+1 for convenience;
// Edges[i] connects Nodes[i] to Nodes[i+1].
type Plan struct {
	Nodes []NodeSegment
	Edges []EdgeSegment

	Where *WhereExpr // nil means no WHERE clause (always true)

	// Projection is nil when RETURN was omitted, meaning "every node
	// variable, keyed by its own name".
	Projection []ReturnItem

	Order []OrderItem
	Skip  *int
	Limit *int
}

// NodeVars returns the set of node variable names declared in the plan,
// in declaration order, without duplicates (a repeated variable only
// appears once — spec §4.3 "the later use wins").
func (p *Plan) NodeVars() []string {
	seen := make(map[string]bool, len(p.Nodes))
	out := make([]string, 0, len(p.Nodes))
	for _, n := range p.Nodes {
		if !seen[n.Var] {
			seen[n.Var] = true
			out = append(out, n.Var)
		}
	}
	return out
}

// EdgeVars returns the set of edge variable names declared in the plan.
func (p *Plan) EdgeVars() []string {
	var out []string
	seen := make(map[string]bool)
	for _, e := range p.Edges {
		if e.EdgeVar != nil && !seen[*e.EdgeVar] {
			seen[*e.EdgeVar] = true
			out = append(out, *e.EdgeVar)
		}
	}
	return out
}
