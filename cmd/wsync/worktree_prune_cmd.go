package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lauft/wsync/internal/git"
	"github.com/lauft/wsync/internal/output"
	"github.com/lauft/wsync/internal/reconcile"
	"github.com/lauft/wsync/internal/report"
	"github.com/lauft/wsync/internal/ui/prompt"
	"github.com/lauft/wsync/internal/workspace"
)

func newWorktreePruneCmd() *cobra.Command {
	var (
		dryRun  bool
		yes     bool
		force   bool
		formats reportFlags
	)

	cmd := &cobra.Command{
		Use:   "prune [patterns...]",
		Short: "Remove worktrees the manifest no longer declares",
		Long: `Remove orphaned worktrees: registration and directory both. Each
removal is confirmed individually unless --yes is given. Dirty or
locked orphans are skipped unless --force is given.

Examples:
  wsync worktree prune              # Confirm each orphan
  wsync worktree prune --dry-run    # Preview what would be removed
  wsync worktree prune --yes        # Remove without asking
  wsync worktree prune --force      # Include dirty and locked orphans`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			targets, err := loadTargets(args)
			if err != nil {
				return err
			}
			if len(targets) == 0 {
				output.FromContext(ctx).Println("No repositories declared")
				return nil
			}

			var confirm func(reconcile.Orphan) (bool, error)
			if !yes && !dryRun {
				confirm = func(o reconcile.Orphan) (bool, error) {
					res, err := prompt.Confirm(fmt.Sprintf("Remove %s?", o.Actual.Path))
					if err != nil {
						if errors.Is(err, prompt.ErrNoTerminal) {
							return false, fmt.Errorf("%w (use --yes)", err)
						}
						return false, err
					}
					if res.Cancelled {
						return false, errors.New("cancelled")
					}
					return res.Confirmed, nil
				}
			}

			var vcs git.Client
			plans := workspace.BuildPlans(ctx, &vcs, targets)

			var outcomes []reconcile.Outcome
			for _, rp := range plans {
				if rp.Err != nil {
					outcomes = append(outcomes, planFailure(rp.Target.Repo.Name, rp.Err))
					continue
				}

				pruned, err := reconcile.Prune(ctx, vcs, rp.Target.Repo.Name, rp.Target.Path, rp.Plan.Orphans, reconcile.PruneOptions{
					DryRun:  dryRun,
					Force:   force,
					Confirm: confirm,
				})
				outcomes = append(outcomes, pruned...)
				if err != nil {
					return err
				}
			}

			summary := reconcile.Summarize(outcomes)
			if err := formats.write(ctx, outcomes, report.FormatPruneSummary(summary)); err != nil {
				return err
			}
			if !summary.Clean() {
				return errRunFailed
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Preview removals without applying them")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Remove every eligible orphan without asking")
	cmd.Flags().BoolVar(&force, "force", false, "Also remove dirty and locked orphans")
	formats.register(cmd)

	return cmd
}
