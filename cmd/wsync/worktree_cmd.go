package main

import (
	"github.com/spf13/cobra"
)

func newWorktreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "worktree",
		Short:   "Inspect and reconcile declared worktrees",
		Aliases: []string{"wt"},
		Long: `Manage the auxiliary worktrees declared in the manifest: list their
state, reconcile them against the declaration, and prune the ones the
declaration no longer mentions.`,
	}

	cmd.AddCommand(newWorktreeListCmd())
	cmd.AddCommand(newWorktreeSyncCmd())
	cmd.AddCommand(newWorktreePruneCmd())

	return cmd
}
