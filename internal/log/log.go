// Package log provides context-aware diagnostic logging for wsync.
// All log output goes to stderr; stdout is reserved for data.
package log

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

type ctxKey struct{}

var (
	warnPrefix = color.New(color.FgYellow).Sprint("Warning:")
	errPrefix  = color.New(color.FgRed).Sprint("Error:")
)

// Logger provides diagnostics and verbose command logging.
type Logger struct {
	out     io.Writer
	verbose bool
	quiet   bool
}

// New creates a new logger.
func New(out io.Writer, verbose, quiet bool) *Logger {
	return &Logger{out: out, verbose: verbose, quiet: quiet}
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a no-op logger if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return &Logger{out: io.Discard}
}

// Printf writes formatted diagnostic output.
func (l *Logger) Printf(format string, args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, format, args...)
}

// Println writes a line of diagnostic output.
func (l *Logger) Println(args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintln(l.out, args...)
}

// Warnf writes a warning. Warnings are printed even in quiet mode.
func (l *Logger) Warnf(format string, args ...any) {
	fmt.Fprintf(l.out, "%s %s\n", warnPrefix, fmt.Sprintf(format, args...))
}

// Errorf writes an error line. Errors are printed even in quiet mode.
func (l *Logger) Errorf(format string, args ...any) {
	fmt.Fprintf(l.out, "%s %s\n", errPrefix, fmt.Sprintf(format, args...))
}

// Command logs an external command execution.
// Only prints when verbose mode is enabled.
func (l *Logger) Command(name string, args ...string) {
	if l.verbose && !l.quiet {
		fmt.Fprintf(l.out, "$ %s %s\n", name, strings.Join(args, " "))
	}
}

// Verbose returns true if verbose mode is enabled.
func (l *Logger) Verbose() bool {
	return l.verbose
}

// Writer returns the underlying writer.
func (l *Logger) Writer() io.Writer {
	return l.out
}
