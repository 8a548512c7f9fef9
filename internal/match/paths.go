package match

import (
	"context"

	"github.com/orinthal/pgraph/internal/graph"
	"github.com/orinthal/pgraph/internal/path"
)

// Paths runs pattern and reconstructs a path.PathMatch per surviving
// row (spec §4.7 step 8 / §4.8).
func Paths(ctx context.Context, store *graph.Store, pattern string, opts Options) ([]path.PathMatch, error) {
	pl, err := Plan(pattern, opts)
	if err != nil {
		return nil, err
	}
	candidates, err := Run(ctx, store, pl, opts)
	if err != nil {
		return nil, err
	}
	out := make([]path.PathMatch, len(candidates))
	for i, c := range candidates {
		out[i] = path.Record(store, pl, c.Binding, c.Row)
	}
	return out, nil
}

// PathsMany is matchPathsMany: run every pattern, reconstruct paths
// against each row's own plan, concatenated and deduplicated by row.
func PathsMany(ctx context.Context, store *graph.Store, patterns []string, opts Options) ([]path.PathMatch, error) {
	candidates, err := CandidatesMany(ctx, store, patterns, opts)
	if err != nil {
		return nil, err
	}
	out := make([]path.PathMatch, len(candidates))
	for i, c := range candidates {
		out[i] = path.Record(store, c.Plan, c.Binding, c.Row)
	}
	return out, nil
}
