package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lauft/wsync/internal/git"
	"github.com/lauft/wsync/internal/output"
	"github.com/lauft/wsync/internal/reconcile"
	"github.com/lauft/wsync/internal/report"
	"github.com/lauft/wsync/internal/ui/styles"
	"github.com/lauft/wsync/internal/workspace"
)

func newWorktreeListCmd() *cobra.Command {
	var (
		colorMode string
		formats   reportFlags
	)

	cmd := &cobra.Command{
		Use:     "list [patterns...]",
		Short:   "Show declared worktrees and their state",
		Aliases: []string{"ls"},
		Long: `Compare every declared worktree against what is on disk and show the
action a sync would take. Nothing is fetched and nothing is mutated.

Registered worktrees the declaration no longer mentions appear as
orphans.

Examples:
  wsync worktree list             # All repositories
  wsync worktree list api         # One repository
  wsync worktree list --json      # Machine-readable report`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch colorMode {
			case "auto", "always", "never":
			default:
				return fmt.Errorf("invalid --color value %q (use auto, always or never)", colorMode)
			}
			styles.SetColorMode(colorMode, os.Stdout)

			ctx := cmd.Context()

			targets, err := loadTargets(args)
			if err != nil {
				return err
			}
			if len(targets) == 0 {
				output.FromContext(ctx).Println("No repositories declared")
				return nil
			}

			var vcs git.Client
			plans := workspace.BuildPlans(ctx, &vcs, targets)

			var outcomes []reconcile.Outcome
			for _, rp := range plans {
				if rp.Err != nil {
					outcomes = append(outcomes, planFailure(rp.Target.Repo.Name, rp.Err))
					continue
				}
				outcomes = append(outcomes, reconcile.PlanOutcomes(rp.Plan)...)
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

	cmd.Flags().StringVar(&colorMode, "color", "auto", "Color output: auto, always or never")
	formats.register(cmd)

	return cmd
}
