package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lauft/wsync/internal/git"
	"github.com/lauft/wsync/internal/log"
	"github.com/lauft/wsync/internal/output"
	"github.com/lauft/wsync/internal/ui/styles"
)

var (
	// Global flags
	configPath string
	verbose    bool
	quiet      bool
)

// errRunFailed signals a completed run whose report contains errors or
// failed mutations. The report already tells the story; only the exit
// code changes.
var errRunFailed = errors.New("completed with errors")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wsync",
	Short: "Declarative workspace and worktree synchronizer",
	Long: `wsync reads a TOML manifest declaring repositories and their worktrees,
then reconciles on-disk state with the declaration: missing checkouts are
cloned, declared worktrees are created or advanced, and drift is reported.

Worktrees with uncommitted changes are never touched.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
			return nil
		}
		return git.CheckGit()
	},
	// Run is not set - shows help when no subcommand provided
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Logger on stderr for diagnostics, printer on stdout for report data
	// with the summary line on stderr
	logger := log.New(os.Stderr, verbose, quiet)
	ctx = log.WithLogger(ctx, logger)
	ctx = output.WithPrinter(ctx, output.New(os.Stdout, os.Stderr))

	styles.SetColorMode("auto", os.Stdout)

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errRunFailed) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'wsync -h' for help")
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "f", "", "Manifest file (default ~/.config/wsync/workspace.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newWorktreeCmd())
}
