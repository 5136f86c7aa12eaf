package report

import (
	"fmt"
	"strings"

	"github.com/lauft/wsync/internal/reconcile"
)

// FormatSummary renders the one-line sync summary, e.g.
// "+2 created ~1 updated =4 unchanged !1 blocked x0 errors".
// Orphan and failure figures are appended only when present.
func FormatSummary(s reconcile.Summary) string {
	line := fmt.Sprintf("+%d created ~%d updated =%d unchanged !%d blocked x%d errors",
		s.Created, s.Updated, s.Unchanged, s.Blocked, s.Errors)
	if s.Orphans > 0 {
		line += fmt.Sprintf(" ?%d orphaned", s.Orphans)
	}
	if s.Failed > 0 {
		line += fmt.Sprintf(" x%d failed", s.Failed)
	}
	return line
}

// FormatPruneSummary renders the prune variant of the summary line.
func FormatPruneSummary(s reconcile.Summary) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("-%d pruned", s.Pruned))
	parts = append(parts, fmt.Sprintf("!%d skipped", s.Skipped))
	if s.Failed > 0 {
		parts = append(parts, fmt.Sprintf("x%d failed", s.Failed))
	}
	return strings.Join(parts, " ")
}
