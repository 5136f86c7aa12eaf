// Package cmdexec provides helpers for executing external commands with
// proper error handling.
//
// Failures capture trimmed stderr and surface it in the returned error, so
// "exit status 128" becomes the actual message git printed. Commands are
// logged through the context logger when verbose mode is enabled.
//
// wsync shells out to the installed git binary rather than using a Go git
// library. This keeps behavior identical to what the user sees on the command
// line and picks up their configuration (SSH keys, credential helpers).
package cmdexec

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/lauft/wsync/internal/log"
)

// Error describes a failed external command.
type Error struct {
	Name   string
	Args   []string
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// RunContext executes a command in dir (empty = current directory) and
// returns an *Error carrying stderr if it fails.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	_, err := run(ctx, dir, name, args, false)
	return err
}

// OutputContext executes a command in dir and returns its stdout.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	return run(ctx, dir, name, args, true)
}

func run(ctx context.Context, dir, name string, args []string, wantOutput bool) ([]byte, error) {
	log.FromContext(ctx).Command(name, args...)

	// The context is checked before launch, not wired into the process:
	// a mutating git call that has started is allowed to finish so the
	// repository is never left with half-written worktree metadata.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cmd := exec.Command(name, args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	var stdout bytes.Buffer
	if wantOutput {
		cmd.Stdout = &stdout
	}

	if err := cmd.Run(); err != nil {
		return nil, &Error{
			Name:   name,
			Args:   args,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return stdout.Bytes(), nil
}
