package git

import (
	"context"
	"strings"

	"github.com/lauft/wsync/internal/config"
	"github.com/lauft/wsync/internal/reconcile"
)

// Client is the git-backed VCS collaborator used by the reconciler.
type Client struct{}

// ResolveRef resolves a spec's ref selector against the repository's object
// database. Lookups never create refs; a name or commit that cannot be found
// yields Exists: false with a nil error, which the planner surfaces as an
// ERROR action without aborting the run.
//
// Branch names prefer the remote-tracking ref (origin/<name>) over the local
// branch so a branch worktree follows the fetched tip; local-only branches
// still resolve.
func (Client) ResolveRef(ctx context.Context, repoPath string, spec config.WorktreeSpec) (reconcile.ResolvedRef, error) {
	kind, value := spec.Ref()
	ref := reconcile.ResolvedRef{Kind: kind, Name: value}

	var candidates []string
	switch kind {
	case config.RefTag:
		candidates = []string{"refs/tags/" + value}
	case config.RefBranch:
		candidates = []string{"refs/remotes/origin/" + value, "refs/heads/" + value}
	case config.RefCommit:
		candidates = []string{value}
	}

	for _, name := range candidates {
		if commit, ok := revParseCommit(ctx, repoPath, name); ok {
			ref.Commit = commit
			ref.Exists = true
			return ref, nil
		}
	}
	return ref, nil
}

// revParseCommit peels a ref name to the commit it points at.
// Returns ok=false when the name does not resolve.
func revParseCommit(ctx context.Context, repoPath, name string) (string, bool) {
	output, err := outputGit(ctx, repoPath, "rev-parse", "--verify", "--quiet", name+"^{commit}")
	if err != nil {
		return "", false
	}
	commit := strings.TrimSpace(string(output))
	return commit, commit != ""
}
