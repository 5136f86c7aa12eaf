package git

import (
	"context"
	"fmt"
	"strings"
)

// IsDirty returns true if the working tree at path has uncommitted changes:
// staged, unstaged, or untracked.
func IsDirty(ctx context.Context, path string) bool {
	output, err := outputGit(ctx, path, "status", "--porcelain")
	if err != nil {
		return false // treat error as clean (safe default)
	}
	return strings.TrimSpace(string(output)) != ""
}

// CurrentCommit returns the full commit hash of HEAD at path.
func CurrentCommit(ctx context.Context, path string) (string, error) {
	output, err := outputGit(ctx, path, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// Clone clones url into path.
func Clone(ctx context.Context, url, path string) error {
	if err := runGit(ctx, "", "clone", url, path); err != nil {
		return fmt.Errorf("clone %s: %w", url, err)
	}
	return nil
}

// Fetch updates refs and tags from origin.
func Fetch(ctx context.Context, repoPath string) error {
	if err := runGit(ctx, repoPath, "fetch", "--tags", "--prune", "--quiet", "origin"); err != nil {
		return fmt.Errorf("fetch origin: %w", err)
	}
	return nil
}

// FastForward advances the primary checkout. Fast-forward only: a diverged
// checkout fails rather than creating a merge commit.
func FastForward(ctx context.Context, repoPath string) error {
	if err := runGit(ctx, repoPath, "pull", "--ff-only", "--quiet"); err != nil {
		return fmt.Errorf("fast-forward: %w", err)
	}
	return nil
}

// BranchExists reports whether a local branch exists in the repository.
func BranchExists(ctx context.Context, repoPath, branch string) bool {
	return runGit(ctx, repoPath, "rev-parse", "--verify", "--quiet", "refs/heads/"+branch) == nil
}

// RemoteBranchExists reports whether origin has the branch.
func RemoteBranchExists(ctx context.Context, repoPath, branch string) bool {
	return runGit(ctx, repoPath, "rev-parse", "--verify", "--quiet", "refs/remotes/origin/"+branch) == nil
}
