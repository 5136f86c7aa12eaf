package report

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/lauft/wsync/internal/reconcile"
	"github.com/lauft/wsync/internal/ui/styles"
)

// actionSymbol maps each action to its one-character marker. The same
// markers appear in the summary line.
var actionSymbol = map[reconcile.Action]string{
	reconcile.ActionCreate:    "+",
	reconcile.ActionUpdate:    "~",
	reconcile.ActionUnchanged: "=",
	reconcile.ActionBlocked:   "!",
	reconcile.ActionError:     "x",
	reconcile.ActionPrune:     "-",
	reconcile.ActionSkip:      "!",
	reconcile.ActionOrphan:    "?",
}

func actionStyle(a reconcile.Action, success bool) lipgloss.Style {
	if !success {
		return styles.ErrorStyle
	}
	switch a {
	case reconcile.ActionCreate, reconcile.ActionUpdate, reconcile.ActionPrune:
		return styles.SuccessStyle
	case reconcile.ActionBlocked, reconcile.ActionSkip, reconcile.ActionOrphan:
		return styles.WarningStyle
	case reconcile.ActionError:
		return styles.ErrorStyle
	default:
		return styles.MutedStyle
	}
}

// renderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func renderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// RenderHuman renders outcomes as a table for terminal display.
// Action markers are colored according to the active color mode.
func RenderHuman(outcomes []reconcile.Outcome) string {
	if len(outcomes) == 0 {
		return ""
	}

	headers := []string{"", "REPO", "PATH", "REF", "ACTION", "DETAIL"}
	rows := make([][]string, 0, len(outcomes))
	for _, o := range outcomes {
		marker := actionSymbol[o.Action]
		marker = styles.Render(actionStyle(o.Action, o.Success), marker)

		action := string(o.Action)
		if !o.Success && o.Action != reconcile.ActionError {
			action = "failed"
		}

		ref := o.RefValue
		if o.RefKind != "" {
			ref = string(o.RefKind) + ":" + o.RefValue
		}

		rows = append(rows, []string{marker, o.Repo, o.Path, ref, action, o.Detail})
	}

	return renderTable(headers, rows)
}
