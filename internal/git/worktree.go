package git

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/lauft/wsync/internal/config"
	"github.com/lauft/wsync/internal/reconcile"
)

// worktreeEntry is one record from git worktree list --porcelain.
type worktreeEntry struct {
	Path       string
	Head       string
	Branch     string // empty when detached
	Bare       bool
	Detached   bool
	Locked     bool
	LockReason string
	Prunable   bool
}

// parseWorktreeList parses git worktree list --porcelain output.
// Entries are separated by blank lines; attribute lines are "key value" or a
// bare keyword.
func parseWorktreeList(output []byte) []worktreeEntry {
	var entries []worktreeEntry
	var current worktreeEntry
	open := false

	flush := func() {
		if open {
			entries = append(entries, current)
		}
		current = worktreeEntry{}
		open = false
	}

	for _, line := range strings.Split(string(output), "\n") {
		switch {
		case strings.HasPrefix(line, "worktree "):
			flush()
			current.Path = strings.TrimPrefix(line, "worktree ")
			open = true
		case strings.HasPrefix(line, "HEAD "):
			current.Head = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch refs/heads/"):
			current.Branch = strings.TrimPrefix(line, "branch refs/heads/")
		case line == "bare":
			current.Bare = true
		case line == "detached":
			current.Detached = true
		case line == "locked":
			current.Locked = true
		case strings.HasPrefix(line, "locked "):
			current.Locked = true
			current.LockReason = strings.TrimPrefix(line, "locked ")
		case line == "prunable" || strings.HasPrefix(line, "prunable "):
			current.Prunable = true
		}
	}
	flush()

	return entries
}

// ListWorktrees enumerates all worktrees registered with the repository,
// excluding the primary working copy (git lists it first).
//
// Observed state is built fresh on every call: lock state comes from the
// porcelain listing, the dirty flag from a status query per worktree, and
// directories deleted behind git's back are reported with
// ExistsOnDisk=false.
func (Client) ListWorktrees(ctx context.Context, repoPath string) ([]reconcile.ActualWorktree, error) {
	output, err := outputGit(ctx, repoPath, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("list worktrees: %w", err)
	}

	var worktrees []reconcile.ActualWorktree
	for i, entry := range parseWorktreeList(output) {
		if i == 0 || entry.Bare {
			continue // primary working copy
		}

		wt := reconcile.ActualWorktree{
			Path:       entry.Path,
			Commit:     entry.Head,
			Branch:     entry.Branch,
			Locked:     entry.Locked,
			LockReason: entry.LockReason,
		}

		if info, err := os.Stat(entry.Path); err == nil && info.IsDir() && !entry.Prunable {
			wt.ExistsOnDisk = true
			wt.Dirty = IsDirty(ctx, entry.Path)
		}

		worktrees = append(worktrees, wt)
	}

	return worktrees, nil
}

// AddWorktree materializes a worktree at path checked out to ref.
//
// Tag and commit refs check out detached. Branch refs check out the branch;
// when only origin has it, a tracking branch is created.
func (Client) AddWorktree(ctx context.Context, repoPath, path string, ref reconcile.ResolvedRef) error {
	if ref.Kind != config.RefBranch {
		if err := runGit(ctx, repoPath, "worktree", "add", "--detach", path, ref.Commit); err != nil {
			return fmt.Errorf("add worktree %s: %w", path, err)
		}
		return nil
	}

	if !BranchExists(ctx, repoPath, ref.Name) {
		if err := runGit(ctx, repoPath, "worktree", "add", "--track", "-b", ref.Name, path, "origin/"+ref.Name); err != nil {
			return fmt.Errorf("add worktree %s: %w", path, err)
		}
		return nil
	}

	if err := runGit(ctx, repoPath, "worktree", "add", path, ref.Name); err != nil {
		return fmt.Errorf("add worktree %s: %w", path, err)
	}
	// The local branch can lag the resolved tip, since fetching never moves
	// local branches. Fast-forward the fresh checkout so creation lands on
	// the commit the plan resolved.
	if err := runGit(ctx, path, "merge", "--ff-only", ref.Commit); err != nil {
		return fmt.Errorf("fast-forward %s in %s: %w", ref.Name, path, err)
	}
	return nil
}

// UpdateWorktree advances an existing worktree to ref in place. The
// directory is never removed and recreated, so ignored or generated files a
// user keeps there survive.
//
// Branch refs fast-forward only; a worktree whose branch has diverged from
// the resolved tip fails rather than being reset.
func (Client) UpdateWorktree(ctx context.Context, path string, ref reconcile.ResolvedRef) error {
	if ref.Kind != config.RefBranch {
		if err := runGit(ctx, path, "checkout", "--detach", ref.Commit); err != nil {
			return fmt.Errorf("update worktree %s: %w", path, err)
		}
		return nil
	}

	if err := runGit(ctx, path, "checkout", ref.Name); err != nil {
		return fmt.Errorf("checkout %s in %s: %w", ref.Name, path, err)
	}
	if err := runGit(ctx, path, "merge", "--ff-only", ref.Commit); err != nil {
		return fmt.Errorf("fast-forward %s in %s: %w", ref.Name, path, err)
	}
	return nil
}

// RemoveWorktree removes a worktree's registration and directory. A worktree
// whose directory already vanished is removed by registration alone.
func (Client) RemoveWorktree(ctx context.Context, repoPath, path string, force bool) error {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, path)

	err := runGit(ctx, repoPath, args...)
	if err == nil {
		return nil
	}

	// Plain removal validates the directory, which fails when it was deleted
	// behind git's back; --force skips validation and drops just this
	// registration. Never `worktree prune` here: that would take every
	// prunable registration in the repository with it.
	if !force {
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			if retryErr := runGit(ctx, repoPath, "worktree", "remove", "--force", path); retryErr == nil {
				return nil
			}
		}
	}
	return fmt.Errorf("remove worktree %s: %w", path, err)
}

// LockWorktree locks a worktree against removal and moves.
func (Client) LockWorktree(ctx context.Context, repoPath, path, reason string) error {
	args := []string{"worktree", "lock"}
	if reason != "" {
		args = append(args, "--reason", reason)
	}
	args = append(args, path)

	if err := runGit(ctx, repoPath, args...); err != nil {
		return fmt.Errorf("lock worktree %s: %w", path, err)
	}
	return nil
}

// UnlockWorktree removes a worktree's lock.
func (Client) UnlockWorktree(ctx context.Context, repoPath, path string) error {
	if err := runGit(ctx, repoPath, "worktree", "unlock", path); err != nil {
		return fmt.Errorf("unlock worktree %s: %w", path, err)
	}
	return nil
}
