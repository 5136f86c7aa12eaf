package reconcile

import (
	"context"

	"github.com/lauft/wsync/internal/config"
)

// Options controls plan execution.
type Options struct {
	// DryRun skips every mutating call. Outcomes keep the same shape and
	// are marked hypothetical.
	DryRun bool
}

// Execute applies a plan's actions strictly in order.
//
// Worktree mutations against one repository are never issued concurrently:
// git's worktree metadata and index locks are per-repository, so execution
// is sequential by construction. Failures are recorded on the item's outcome
// and never abort the remaining items.
//
// Cancellation is honored between actions; an in-flight action completes
// before the run stops.
func Execute(ctx context.Context, vcs VCS, plan *Plan, repoPath string, opts Options) []Outcome {
	outcomes := make([]Outcome, 0, len(plan.Actions))

	for _, pa := range plan.Actions {
		o := outcomeFor(plan.Repo.Name, pa, opts.DryRun)

		if err := ctx.Err(); err != nil {
			o.Success = false
			o.Detail = "cancelled"
			outcomes = append(outcomes, o)
			continue
		}

		switch pa.Action {
		case ActionCreate:
			if opts.DryRun {
				break
			}
			if err := applyCreate(ctx, vcs, repoPath, pa); err != nil {
				o.Success = false
				o.Detail = err.Error()
			}

		case ActionUpdate:
			if opts.DryRun {
				break
			}
			if err := applyUpdate(ctx, vcs, repoPath, pa); err != nil {
				o.Success = false
				o.Detail = err.Error()
			}

		case ActionUnchanged, ActionBlocked, ActionError:
			// Recorded for reporting only; no VCS call.
		}

		outcomes = append(outcomes, o)
	}

	return outcomes
}

func applyCreate(ctx context.Context, vcs VCS, repoPath string, pa PlannedAction) error {
	if err := vcs.AddWorktree(ctx, repoPath, pa.Path, pa.Ref); err != nil {
		return err
	}
	if pa.Spec.Locked() {
		return vcs.LockWorktree(ctx, repoPath, pa.Path, pa.Spec.LockReason)
	}
	return nil
}

// applyUpdate advances the worktree in place and reconciles its lock state.
// The checkout is skipped when only the lock drifted.
func applyUpdate(ctx context.Context, vcs VCS, repoPath string, pa PlannedAction) error {
	needsCheckout := pa.Actual == nil ||
		pa.Actual.Commit != pa.Ref.Commit ||
		(pa.Ref.Kind == config.RefBranch && pa.Actual.Branch != pa.Ref.Name)

	if needsCheckout {
		// A locked worktree can still be checked out; the lock guards
		// against removal, not movement.
		if err := vcs.UpdateWorktree(ctx, pa.Path, pa.Ref); err != nil {
			return err
		}
	}

	wantLock := pa.Spec.Locked()
	haveLock := pa.Actual != nil && pa.Actual.Locked
	switch {
	case wantLock && !haveLock:
		return vcs.LockWorktree(ctx, repoPath, pa.Path, pa.Spec.LockReason)
	case !wantLock && haveLock:
		return vcs.UnlockWorktree(ctx, repoPath, pa.Path)
	}
	return nil
}

func outcomeFor(repoName string, pa PlannedAction, dryRun bool) Outcome {
	kind, value := pa.Spec.Ref()
	return Outcome{
		Repo:     repoName,
		Path:     pa.Path,
		RefKind:  kind,
		RefValue: value,
		Action:   pa.Action,
		Success:  pa.Action != ActionError,
		Detail:   pa.Detail,
		DryRun:   dryRun,
	}
}
