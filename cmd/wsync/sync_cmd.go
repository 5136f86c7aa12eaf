package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/lauft/wsync/internal/git"
	"github.com/lauft/wsync/internal/log"
	"github.com/lauft/wsync/internal/output"
	"github.com/lauft/wsync/internal/reconcile"
	"github.com/lauft/wsync/internal/report"
	"github.com/lauft/wsync/internal/ui/progress"
	"github.com/lauft/wsync/internal/workspace"
)

func newSyncCmd() *cobra.Command {
	var (
		includeWorktrees bool
		dryRun           bool
		formats          reportFlags
	)

	cmd := &cobra.Command{
		Use:   "sync [patterns...]",
		Short: "Clone or fast-forward declared repositories",
		Long: `Bring every declared primary checkout up to date: missing repositories
are cloned, existing clean ones are fetched and fast-forwarded, dirty
ones are skipped with a warning.

Examples:
  wsync sync                        # Sync all declared repositories
  wsync sync api-*                  # Sync repositories matching a glob
  wsync sync --dry-run              # Preview without touching anything
  wsync sync --include-worktrees    # Also reconcile declared worktrees`,
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

			var sp *progress.Spinner
			if !l.Verbose() && isatty.IsTerminal(os.Stderr.Fd()) {
				sp = progress.NewSpinner("syncing repositories")
				sp.Start()
			}

			var vcs git.Client
			var outcomes []reconcile.Outcome

			// Mutations run strictly in manifest order, one repository
			// at a time.
			for _, t := range targets {
				if sp != nil {
					sp.UpdateMessage("syncing " + t.Repo.Name)
				}

				o := workspace.SyncPrimary(ctx, t, dryRun)
				outcomes = append(outcomes, o)

				if !includeWorktrees {
					continue
				}
				// Worktree reconciliation needs a usable repository: skip
				// it when the primary failed or only hypothetically exists.
				if !o.Success || (dryRun && o.Action == reconcile.ActionCreate) {
					continue
				}

				resolve, err := t.Resolver()
				if err != nil {
					outcomes = append(outcomes, planFailure(t.Repo.Name, err))
					continue
				}
				plan, err := reconcile.BuildPlan(ctx, vcs, t.Repo, t.Path, resolve)
				if err != nil {
					outcomes = append(outcomes, planFailure(t.Repo.Name, err))
					continue
				}
				outcomes = append(outcomes, reconcile.Execute(ctx, vcs, plan, t.Path, reconcile.Options{DryRun: dryRun})...)

				for _, orphan := range plan.Orphans {
					l.Warnf("orphaned worktree %s (run 'wsync worktree prune')", orphan.Actual.Path)
				}
			}

			if sp != nil {
				sp.Stop()
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

	cmd.Flags().BoolVar(&includeWorktrees, "include-worktrees", false, "Also reconcile declared worktrees per repository")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Preview actions without applying them")
	formats.register(cmd)

	return cmd
}
