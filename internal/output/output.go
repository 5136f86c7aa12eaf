// Package output provides context-aware output for wsync.
//
// A Printer carries two streams: the data stream (stdout) for report
// payloads such as tables, JSON and NDJSON, and the status stream (stderr)
// for the end-of-run summary line. Keeping them apart means piped report
// output never mixes with the summary, and the summary survives --quiet,
// which filters diagnostics in the log package, not here.
package output

import (
	"context"
	"fmt"
	"io"
	"os"
)

type ctxKey struct{}

// Printer writes report data and the run summary on separate streams.
type Printer struct {
	data   io.Writer
	status io.Writer
}

// New creates a Printer with the given data and status streams.
func New(data, status io.Writer) *Printer {
	return &Printer{data: data, status: status}
}

// WithPrinter attaches a Printer to the context.
func WithPrinter(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext retrieves the Printer from context.
// Returns a stdout/stderr Printer if none is attached.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stdout, os.Stderr)
}

// Print writes report data without a newline.
func (p *Printer) Print(a ...any) {
	fmt.Fprint(p.data, a...)
}

// Printf writes formatted report data.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.data, format, a...)
}

// Println writes a line of report data.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.data, a...)
}

// Statusln writes a line to the status stream. The exit code is derived
// from the summary printed here, so it is never suppressed.
func (p *Printer) Statusln(a ...any) {
	fmt.Fprintln(p.status, a...)
}

// Writer returns the data stream, for encoders that need an io.Writer.
func (p *Printer) Writer() io.Writer {
	return p.data
}
