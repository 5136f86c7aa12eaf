package workspace

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/lauft/wsync/internal/reconcile"
)

// RepoPlan is the reconciliation plan for one target, or the error that
// prevented planning it.
type RepoPlan struct {
	Target Target
	Plan   *reconcile.Plan
	Err    error
}

// BuildPlans inspects all targets and computes their plans in parallel.
// Planning is read-only, so bounded concurrency across repositories is
// safe; mutations stay sequential and happen later, per repository.
// Results keep manifest order regardless of completion order, and a
// failed repository never aborts the others.
func BuildPlans(ctx context.Context, vcs reconcile.VCS, targets []Target) []RepoPlan {
	results := make([]RepoPlan, len(targets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8) // Bound concurrent git operations

	for i, t := range targets {
		g.Go(func() error {
			results[i] = buildPlan(ctx, vcs, t)
			return nil // Per-repo errors are carried in the result
		})
	}

	_ = g.Wait()

	return results
}

func buildPlan(ctx context.Context, vcs reconcile.VCS, t Target) RepoPlan {
	resolve, err := t.Resolver()
	if err != nil {
		return RepoPlan{Target: t, Err: err}
	}
	plan, err := reconcile.BuildPlan(ctx, vcs, t.Repo, t.Path, resolve)
	if err != nil {
		return RepoPlan{Target: t, Err: err}
	}
	return RepoPlan{Target: t, Plan: plan}
}
