package git

import (
	"context"
	"fmt"
	"os/exec"
)

// ErrGitNotFound indicates git is not installed or not in PATH.
var ErrGitNotFound = fmt.Errorf("git not found: please install git (https://git-scm.com)")

// CheckGit verifies that git is available in PATH.
func CheckGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return ErrGitNotFound
	}
	return nil
}

// IsRepo returns true if path is the root of a git working tree.
func IsRepo(ctx context.Context, path string) bool {
	return runGit(ctx, path, "rev-parse", "--is-inside-work-tree") == nil
}
