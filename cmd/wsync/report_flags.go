package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lauft/wsync/internal/output"
	"github.com/lauft/wsync/internal/reconcile"
	"github.com/lauft/wsync/internal/report"
)

// reportFlags holds the output format selection shared by the reporting
// commands.
type reportFlags struct {
	jsonOut bool
	ndjson  bool
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.jsonOut, "json", false, "Emit the report as a JSON array")
	cmd.Flags().BoolVar(&f.ndjson, "ndjson", false, "Emit the report as newline-delimited JSON")
	cmd.MarkFlagsMutuallyExclusive("json", "ndjson")
}

// write renders outcomes to the printer's data stream in the selected
// format, followed by the summary line on its status stream.
func (f *reportFlags) write(ctx context.Context, outcomes []reconcile.Outcome, summary string) error {
	out := output.FromContext(ctx)

	switch {
	case f.jsonOut:
		if err := report.WriteJSON(out.Writer(), report.FromOutcomes(outcomes)); err != nil {
			return err
		}
	case f.ndjson:
		if err := report.WriteNDJSON(out.Writer(), report.FromOutcomes(outcomes)); err != nil {
			return err
		}
	default:
		out.Print(report.RenderHuman(outcomes))
	}

	out.Statusln(summary)
	return nil
}

// planFailure records a repository whose plan could not be built.
func planFailure(repoName string, err error) reconcile.Outcome {
	return reconcile.Outcome{
		Repo:    repoName,
		Action:  reconcile.ActionError,
		Success: false,
		Detail:  err.Error(),
	}
}
