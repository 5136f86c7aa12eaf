// Package git drives the installed git binary.
//
// All operations shell out via [os/exec] rather than using a Go git library.
// This is simpler, more reliable, and ensures compatibility with user
// configurations (SSH keys, credential helpers, aliases).
//
// # Worktree operations
//
// [Client] implements the reconciler's VCS interface:
//
//   - [Client.ResolveRef]: resolve a tag/branch/commit selector to a commit
//   - [Client.ListWorktrees]: enumerate registered worktrees with lock and
//     dirty state (git worktree list --porcelain)
//   - [Client.AddWorktree], [Client.UpdateWorktree], [Client.RemoveWorktree]
//   - [Client.LockWorktree], [Client.UnlockWorktree]
//
// # Repository operations
//
// Free functions cover primary-checkout needs: [Clone], [Fetch],
// [FastForward], [IsDirty], [CurrentCommit].
package git
