// Package report renders reconciliation outcomes for humans and machines.
//
// The machine formats (JSON array and NDJSON) share one record shape so the
// two are interchangeable for consumers; the human format is a styled table
// plus a one-line summary on stderr.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lauft/wsync/internal/reconcile"
)

// Record is the machine-readable form of one outcome. Field names are part
// of the output contract.
type Record struct {
	Repository string `json:"repository"`
	Path       string `json:"path"`
	RefType    string `json:"ref_type,omitempty"`
	RefValue   string `json:"ref_value,omitempty"`
	Action     string `json:"action"`
	Success    bool   `json:"success"`
	Detail     string `json:"detail,omitempty"`
	DryRun     bool   `json:"dry_run"`
}

// FromOutcomes converts outcomes to records, preserving order.
func FromOutcomes(outcomes []reconcile.Outcome) []Record {
	records := make([]Record, 0, len(outcomes))
	for _, o := range outcomes {
		records = append(records, Record{
			Repository: o.Repo,
			Path:       o.Path,
			RefType:    string(o.RefKind),
			RefValue:   o.RefValue,
			Action:     string(o.Action),
			Success:    o.Success,
			Detail:     o.Detail,
			DryRun:     o.DryRun,
		})
	}
	return records
}

// WriteJSON writes records as one indented JSON array. An empty run produces
// "[]", never "null".
func WriteJSON(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// WriteNDJSON writes one compact JSON object per line.
func WriteNDJSON(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode report line: %w", err)
		}
	}
	return nil
}
