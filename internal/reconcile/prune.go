package reconcile

import (
	"context"
	"fmt"

	"github.com/lauft/wsync/internal/config"
)

// PruneOptions controls orphan removal.
type PruneOptions struct {
	// DryRun previews removals without mutating anything.
	DryRun bool
	// Force allows pruning dirty or locked orphans. Without it such
	// orphans are reported as skipped, never removed.
	Force bool
	// Confirm is asked per orphan before removal. A nil Confirm means
	// unattended mode (--yes): every eligible orphan is pruned.
	Confirm func(Orphan) (bool, error)
}

// Prune removes orphaned worktrees: registration and directory both.
//
// Orphans are processed in listing order, sequentially. A failed removal is
// recorded on that orphan's outcome and the remaining orphans are still
// processed. Prune returns early only when the confirmation prompt itself
// fails (e.g. terminal closed).
func Prune(ctx context.Context, vcs VCS, repoName, repoPath string, orphans []Orphan, opts PruneOptions) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(orphans))

	for _, orphan := range orphans {
		o := orphanOutcome(repoName, orphan, opts.DryRun)

		if err := ctx.Err(); err != nil {
			o.Action = ActionSkip
			o.Success = false
			o.Detail = "cancelled"
			outcomes = append(outcomes, o)
			continue
		}

		if skip, reason := protected(orphan, opts.Force); skip {
			o.Action = ActionSkip
			o.Detail = reason
			outcomes = append(outcomes, o)
			continue
		}

		if opts.Confirm != nil {
			ok, err := opts.Confirm(orphan)
			if err != nil {
				return outcomes, fmt.Errorf("confirm prune of %s: %w", orphan.Actual.Path, err)
			}
			if !ok {
				o.Action = ActionSkip
				o.Detail = "declined"
				outcomes = append(outcomes, o)
				continue
			}
		}

		if !opts.DryRun {
			// Force is needed at the git level whenever the directory
			// is already gone or an override was requested.
			force := opts.Force || !orphan.Actual.ExistsOnDisk
			if err := vcs.RemoveWorktree(ctx, repoPath, orphan.Actual.Path, force); err != nil {
				o.Success = false
				o.Detail = err.Error()
			}
		}

		outcomes = append(outcomes, o)
	}

	return outcomes, nil
}

// protected reports whether an orphan must not be pruned without an explicit
// override, and why.
func protected(orphan Orphan, force bool) (bool, string) {
	if force {
		return false, ""
	}
	if orphan.Actual.Dirty {
		return true, "uncommitted changes (use --force)"
	}
	if orphan.Actual.Locked {
		reason := orphan.Actual.LockReason
		if reason == "" {
			return true, "locked (use --force)"
		}
		return true, fmt.Sprintf("locked: %s (use --force)", reason)
	}
	return false, ""
}

func orphanOutcome(repoName string, orphan Orphan, dryRun bool) Outcome {
	o := Outcome{
		Repo:    repoName,
		Path:    orphan.Actual.Path,
		Action:  ActionPrune,
		Success: true,
		DryRun:  dryRun,
	}
	if orphan.Actual.Branch != "" {
		o.RefKind = config.RefBranch
		o.RefValue = orphan.Actual.Branch
	} else {
		o.RefKind = config.RefCommit
		o.RefValue = short(orphan.Actual.Commit)
	}
	return o
}
