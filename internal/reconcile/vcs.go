package reconcile

import (
	"context"

	"github.com/lauft/wsync/internal/config"
)

// VCS is the capability interface the reconciler needs from a version
// control collaborator. All methods shell out to the VCS binary in the real
// implementation and block until the subprocess exits.
//
// Read methods (ResolveRef, ListWorktrees) have no side effects. Mutating
// methods fail with an error carrying the subprocess's stderr on non-zero
// exit.
type VCS interface {
	// ResolveRef resolves a spec's ref selector to a concrete commit.
	// A missing ref yields ResolvedRef{Exists: false} and a nil error;
	// only genuine command failures return an error.
	ResolveRef(ctx context.Context, repoPath string, spec config.WorktreeSpec) (ResolvedRef, error)

	// ListWorktrees enumerates all worktrees registered with the
	// repository, excluding the primary working copy.
	ListWorktrees(ctx context.Context, repoPath string) ([]ActualWorktree, error)

	// AddWorktree materializes a worktree at path checked out to ref.
	AddWorktree(ctx context.Context, repoPath, path string, ref ResolvedRef) error

	// UpdateWorktree advances an existing worktree to ref in place,
	// without removing and recreating the directory.
	UpdateWorktree(ctx context.Context, path string, ref ResolvedRef) error

	// RemoveWorktree removes a worktree's registration and directory.
	RemoveWorktree(ctx context.Context, repoPath, path string, force bool) error

	// LockWorktree locks a worktree with an optional reason.
	LockWorktree(ctx context.Context, repoPath, path, reason string) error

	// UnlockWorktree removes a worktree's lock.
	UnlockWorktree(ctx context.Context, repoPath, path string) error
}
