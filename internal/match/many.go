package match

import (
	"context"

	"github.com/orinthal/pgraph/internal/graph"
	"github.com/orinthal/pgraph/internal/plan"
)

// RowsMany runs every pattern in turn, concatenates their rows, and
// deduplicates by full row equality (spec §4.7 "matchMany... run each
// pattern, concatenate rows, deduplicate by full row equality").
func RowsMany(ctx context.Context, store *graph.Store, patterns []string, opts Options) ([]Row, error) {
	var all []Candidate
	for _, p := range patterns {
		pl, err := Plan(p, opts)
		if err != nil {
			return nil, err
		}
		candidates, err := Run(ctx, store, pl, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, candidates...)
	}
	all = dedupCandidates(all)
	rows := make([]Row, len(all))
	for i, c := range all {
		rows[i] = c.Row
	}
	return rows, nil
}

// SetsMany runs every pattern and collapses the concatenated,
// deduplicated rows into per-variable id sets.
func SetsMany(ctx context.Context, store *graph.Store, patterns []string, opts Options) (ColumnSets, error) {
	var all []Candidate
	for _, p := range patterns {
		pl, err := Plan(p, opts)
		if err != nil {
			return nil, err
		}
		candidates, err := Run(ctx, store, pl, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, candidates...)
	}
	return collapseColumns(dedupCandidates(all)), nil
}

// PlannedCandidate is RowsMany's internal/path counterpart: a surviving
// (binding, row) pair tagged with the plan that produced it, since
// matchPathsMany reconstructs each row's path against its own pattern's
// plan rather than a single shared one.
type PlannedCandidate struct {
	Candidate
	Plan *plan.Plan
}

// CandidatesMany runs every pattern, tags each surviving candidate with
// its originating plan, concatenates, and deduplicates by row equality.
func CandidatesMany(ctx context.Context, store *graph.Store, patterns []string, opts Options) ([]PlannedCandidate, error) {
	var all []PlannedCandidate
	for _, p := range patterns {
		pl, err := Plan(p, opts)
		if err != nil {
			return nil, err
		}
		candidates, err := Run(ctx, store, pl, opts)
		if err != nil {
			return nil, err
		}
		for _, c := range candidates {
			all = append(all, PlannedCandidate{Candidate: c, Plan: pl})
		}
	}

	seen := make(map[string]bool, len(all))
	out := make([]PlannedCandidate, 0, len(all))
	for _, c := range all {
		key := rowKey(c.Row)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out, nil
}
