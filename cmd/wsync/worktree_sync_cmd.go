package main

import (
	"github.com/spf13/cobra"

	"github.com/lauft/wsync/internal/git"
	"github.com/lauft/wsync/internal/log"
	"github.com/lauft/wsync/internal/output"
	"github.com/lauft/wsync/internal/reconcile"
	"github.com/lauft/wsync/internal/report"
	"github.com/lauft/wsync/internal/workspace"
)

func newWorktreeSyncCmd() *cobra.Command {
	var (
		dryRun  bool
		noFetch bool
		formats reportFlags
	)

	cmd := &cobra.Command{
		Use:   "sync [patterns...]",
		Short: "Reconcile declared worktrees with the manifest",
		Long: `Create missing worktrees and advance existing ones to their declared
refs. Worktrees with uncommitted changes are reported as blocked and
never touched. Orphans are reported but left alone; run
'wsync worktree prune' to remove them.

Refs are fetched from origin first so branch declarations resolve to
the remote tip; --no-fetch skips that and reconciles against local
state only.

Examples:
  wsync worktree sync               # Reconcile all repositories
  wsync worktree sync api           # One repository
  wsync worktree sync --dry-run     # Preview the plan without applying it`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			targets, err := loadTargets(args)
			if err != nil {
				return err
			}
			if len(targets) == 0 {
				output.FromContext(ctx).Println("No repositories declared")
				return nil
			}

			if !noFetch {
				for _, t := range targets {
					if !git.IsRepo(ctx, t.Path) {
						continue
					}
					if err := git.Fetch(ctx, t.Path); err != nil {
						l.Warnf("fetch %s: %v", t.Repo.Name, err)
					}
				}
			}

			// Inspection is read-only and runs in parallel; the plans come
			// back in manifest order and are applied sequentially.
			var vcs git.Client
			plans := workspace.BuildPlans(ctx, &vcs, targets)

			var outcomes []reconcile.Outcome
			for _, rp := range plans {
				if rp.Err != nil {
					outcomes = append(outcomes, planFailure(rp.Target.Repo.Name, rp.Err))
					continue
				}
				outcomes = append(outcomes, reconcile.Execute(ctx, vcs, rp.Plan, rp.Target.Path, reconcile.Options{DryRun: dryRun})...)

				for _, orphan := range rp.Plan.Orphans {
					l.Warnf("orphaned worktree %s (run 'wsync worktree prune')", orphan.Actual.Path)
				}
			}

			summary := reconcile.Summarize(outcomes)
			if err := formats.write(ctx, outcomes, report.FormatSummary(summary)); err != nil {
				return err
			}
			if !summary.Clean() {
				return errRunFailed
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Preview actions without applying them")
	cmd.Flags().BoolVar(&noFetch, "no-fetch", false, "Skip fetching before reconciliation")
	formats.register(cmd)

	return cmd
}
