// Package match implements the C7 match driver (spec §4.7): seeding,
// the bidirectional recursive join across C5/C6, WHERE application,
// projection, ordering, pagination, and the match/matchRows/matchPaths/
// *Many entry points.
package match

import (
	"context"
	"sort"

	"github.com/orinthal/pgraph/internal/bind"
	"github.com/orinthal/pgraph/internal/dsl"
	"github.com/orinthal/pgraph/internal/exec"
	"github.com/orinthal/pgraph/internal/graph"
	"github.com/orinthal/pgraph/internal/plan"
	"github.com/orinthal/pgraph/internal/predicate"
)

// Row is a single projected binding (spec §3 "Row"): keys are RETURN
// aliases (or every node variable, keyed by name, when RETURN is
// omitted); values are node ids, property scalars, or an edge's type
// string, per spec §4.3's RETURN rules.
type Row map[string]graph.Value

// ColumnSets is match's (as opposed to matchRows') result shape: each
// pattern variable mapped to the set of ids/values it took across every
// surviving row (spec §4.7 step 7).
type ColumnSets map[string]map[string]bool

// Candidate pairs a surviving binding with its projected row — the two
// shapes internal/path needs together to reconstruct a PathMatch (spec
// §4.8's "keep an internal full binding during path recording even if
// the public row shape is projected").
type Candidate struct {
	Binding bind.Binding
	Row     Row
}

// Plan builds the lowered Plan for pattern, honoring opts' hop-cap
// override. Exported so code outside this package (internal/path's
// external tests) can build the same Plan that Run consumes.
func Plan(pattern string, opts Options) (*plan.Plan, error) {
	return dsl.BuildWithMaxHops(pattern, opts.effectiveMaxHops())
}

// Run executes pattern against store end to end (spec §4.7 steps 1-6)
// and returns the surviving (binding, row) pairs in final order, after
// WHERE, dedup, ORDER BY, SKIP, and LIMIT. Both Rows and Paths are thin
// wrappers over this.
func Run(ctx context.Context, store *graph.Store, pl *plan.Plan, opts Options) ([]Candidate, error) {
	if opts.StartID != nil && len(opts.StartIDs) > 0 {
		return nil, ValidationError{Kind: "ConflictingStartArgs", Message: "both StartID and StartIDs were supplied"}
	}

	bindings, err := runSearch(ctx, store, pl, opts)
	if err != nil {
		return nil, err
	}

	var kept []Candidate
	for _, b := range bindings {
		if !predicate.Evaluate(store, pl.Where, b) {
			continue
		}
		kept = append(kept, Candidate{Binding: b, Row: project(store, pl, b)})
	}
	if len(bindings) > 0 && len(kept) == 0 {
		debugf(opts, "WHERE collapsed %d candidate binding(s) to zero rows (unresolved identifier or no binding satisfied it)", len(bindings))
	}
	kept = dedupCandidates(kept)
	sortCandidates(store, pl, kept)
	kept = paginateCandidates(kept, pl.Skip, pl.Limit)
	return kept, nil
}

// Rows runs pattern against store and returns every surviving row
// (spec §4.7 steps 1-6), honoring opts' seeding and hop-cap knobs.
func Rows(ctx context.Context, store *graph.Store, pattern string, opts Options) ([]Row, error) {
	pl, err := Plan(pattern, opts)
	if err != nil {
		return nil, err
	}
	candidates, err := Run(ctx, store, pl, opts)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, len(candidates))
	for i, c := range candidates {
		rows[i] = c.Row
	}
	return rows, nil
}

// Sets runs pattern and collapses surviving rows into per-variable id
// sets (spec §4.7 step 7): an empty or omitted result yields an empty,
// non-nil mapping.
func Sets(ctx context.Context, store *graph.Store, pattern string, opts Options) (ColumnSets, error) {
	pl, err := Plan(pattern, opts)
	if err != nil {
		return nil, err
	}
	candidates, err := Run(ctx, store, pl, opts)
	if err != nil {
		return nil, err
	}
	return collapseColumns(candidates), nil
}

func collapseColumns(candidates []Candidate) ColumnSets {
	out := ColumnSets{}
	for _, c := range candidates {
		for k, v := range c.Row {
			if out[k] == nil {
				out[k] = map[string]bool{}
			}
			out[k][v.AsText()] = true
		}
	}
	return out
}

// runSearch performs seeding (spec §4.7 "Seeding") and, for every seed,
// the bidirectional recursive join, returning the unfiltered (pre-WHERE)
// set of complete bindings.
func runSearch(ctx context.Context, store *graph.Store, pl *plan.Plan, opts Options) ([]bind.Binding, error) {
	if len(pl.Nodes) == 0 {
		return nil, nil
	}

	seeds, err := seedBindings(store, pl, opts)
	if err != nil {
		return nil, err
	}

	var out []bind.Binding
	for _, sd := range seeds {
		if err := ctx.Err(); err != nil {
			return nil, nil
		}
		out = append(out, matchFromAnchor(ctx, store, pl, sd.binding, sd.pos)...)
	}
	return out, nil
}

type seed struct {
	binding bind.Binding
	pos     int
}

// seedBindings implements spec §4.7's three seeding modes: a single
// StartID, a StartIDs list, or (with neither) every store node tried at
// position 0.
func seedBindings(store *graph.Store, pl *plan.Plan, opts Options) ([]seed, error) {
	if opts.StartID != nil {
		pos, ok := anchorPosition(store, pl, *opts.StartID, opts.StartType)
		if !ok {
			debugf(opts, "startID %q did not anchor at any node segment (unknown id, or every segment's filters rejected it)", *opts.StartID)
			return nil, nil
		}
		return []seed{{binding: bind.Empty().WithNode(pl.Nodes[pos].Var, *opts.StartID), pos: pos}}, nil
	}

	if len(opts.StartIDs) > 0 {
		var seeds []seed
		for _, id := range opts.StartIDs {
			pos, ok := anchorPosition(store, pl, id, opts.StartType)
			if !ok {
				continue
			}
			seeds = append(seeds, seed{binding: bind.Empty().WithNode(pl.Nodes[pos].Var, id), pos: pos})
		}
		if len(seeds) == 0 {
			debugf(opts, "none of %d startIds anchored at any node segment", len(opts.StartIDs))
		}
		return seeds, nil
	}

	var seeds []seed
	for _, n := range store.Nodes() {
		if exec.Accepts(store, n.ID, pl.Nodes[0]) {
			seeds = append(seeds, seed{binding: bind.Empty().WithNode(pl.Nodes[0].Var, n.ID), pos: 0})
		}
	}
	return seeds, nil
}

// anchorPosition finds the first node-segment index id can legally
// occupy (spec §4.7: "first tried at the first node segment; if ...
// fails, the driver tries subsequent node segments in order"),
// restricted to positions matching startType when given.
func anchorPosition(store *graph.Store, pl *plan.Plan, id string, startType *string) (int, bool) {
	if !store.HasNode(id) {
		return 0, false
	}
	for i, seg := range pl.Nodes {
		if startType != nil {
			if seg.TypeTag == nil || *seg.TypeTag != *startType {
				continue
			}
		}
		if exec.Accepts(store, id, seg) {
			return i, true
		}
	}
	return 0, false
}

// matchFromAnchor extends a one-node binding at pl.Nodes[pos] outward
// in both directions along the segment chain and merges the two
// independent extension sets (spec §4.3/SPEC_FULL.md's "bidirectional
// anchoring" resolution).
func matchFromAnchor(ctx context.Context, store *graph.Store, pl *plan.Plan, b bind.Binding, pos int) []bind.Binding {
	rights := extendForward(ctx, store, pl, b, pos)
	lefts := extendBackward(ctx, store, pl, b, pos)

	out := make([]bind.Binding, 0, len(rights)*len(lefts))
	for _, l := range lefts {
		for _, r := range rights {
			out = append(out, overlay(l, r))
		}
	}
	return out
}

// overlay merges two bindings that both extend the same anchor: r's
// entries win on conflict since r's variables are declared later in
// pattern order than l's (spec §4.3 "the later use wins").
func overlay(l, r bind.Binding) bind.Binding {
	out := l
	for v, id := range r.Nodes {
		out = out.WithNode(v, id)
	}
	for v, ref := range r.Edges {
		out = out.WithEdge(v, ref)
	}
	return out
}

func extendForward(ctx context.Context, store *graph.Store, pl *plan.Plan, b bind.Binding, pos int) []bind.Binding {
	if pos >= len(pl.Nodes)-1 {
		return []bind.Binding{b}
	}
	if err := ctx.Err(); err != nil {
		return nil
	}
	prevID, _ := b.Node(pl.Nodes[pos].Var)
	candidates := exec.Extend(store, b, prevID, pl.Edges[pos], pl.Nodes[pos+1], true)

	var out []bind.Binding
	for _, nb := range candidates {
		out = append(out, extendForward(ctx, store, pl, nb, pos+1)...)
	}
	return out
}

func extendBackward(ctx context.Context, store *graph.Store, pl *plan.Plan, b bind.Binding, pos int) []bind.Binding {
	if pos <= 0 {
		return []bind.Binding{b}
	}
	if err := ctx.Err(); err != nil {
		return nil
	}
	knownID, _ := b.Node(pl.Nodes[pos].Var)
	candidates := exec.Extend(store, b, knownID, pl.Edges[pos-1], pl.Nodes[pos-1], false)

	var out []bind.Binding
	for _, nb := range candidates {
		out = append(out, extendBackward(ctx, store, pl, nb, pos-1)...)
	}
	return out
}

func dedupCandidates(candidates []Candidate) []Candidate {
	seen := make(map[string]bool, len(candidates))
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		key := rowKey(c.Row)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

func rowKey(r Row) string {
	keysSorted := make([]string, 0, len(r))
	for k := range r {
		keysSorted = append(keysSorted, k)
	}
	sort.Strings(keysSorted)
	s := ""
	for _, k := range keysSorted {
		s += k + "=" + r[k].String() + "\x00"
	}
	return s
}

func paginateCandidates(candidates []Candidate, skip, limit *int) []Candidate {
	if skip != nil {
		if *skip >= len(candidates) {
			return nil
		}
		candidates = candidates[*skip:]
	}
	if limit != nil && *limit < len(candidates) {
		candidates = candidates[:*limit]
	}
	return candidates
}

func sortCandidates(store *graph.Store, pl *plan.Plan, candidates []Candidate) {
	if len(pl.Order) == 0 {
		return
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return lessBindings(store, candidates[i].Binding, candidates[j].Binding, pl.Order)
	})
}

func lessBindings(store *graph.Store, a, b bind.Binding, order []plan.OrderItem) bool {
	for _, o := range order {
		va, hasA := resolveOrdered(store, o.Source, a)
		vb, hasB := resolveOrdered(store, o.Source, b)
		cmp, ok := orderCompare(va, hasA, vb, hasB)
		if !ok || cmp == 0 {
			continue
		}
		if o.Desc {
			return cmp > 0
		}
		return cmp < 0
	}
	return false
}

// resolveOrdered resolves an ORDER BY source against the full binding
// (not the projected row), so ordering works regardless of whether
// RETURN renamed or dropped the underlying variable.
func resolveOrdered(store *graph.Store, src plan.ReturnSource, b bind.Binding) (graph.Value, bool) {
	if id, ok := b.Node(src.Var); ok {
		if src.Key == nil {
			return graph.String(id), true
		}
		n, ok := store.GetNode(id)
		if !ok {
			return graph.Value{}, false
		}
		v, ok := n.Properties[*src.Key]
		return v, ok
	}
	if ref, ok := b.Edge(src.Var); ok {
		if src.Key == nil {
			return graph.String(ref.Type), true
		}
		v, ok := ref.Properties[*src.Key]
		return v, ok
	}
	return graph.Value{}, false
}

// orderCompare implements spec §4.7 step 5 / SPEC_FULL.md's null-
// placement resolution: a key absent from the binding sorts first in
// ascending order (last once the caller reverses for Desc); present
// values order by the scalar-union total order.
func orderCompare(a graph.Value, hasA bool, b graph.Value, hasB bool) (int, bool) {
	switch {
	case !hasA && !hasB:
		return 0, false
	case !hasA:
		return -1, true
	case !hasB:
		return 1, true
	default:
		cmp, ok := graph.Compare(a, b)
		if !ok {
			return 0, false
		}
		return cmp, true
	}
}
