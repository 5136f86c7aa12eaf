package reconcile

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/lauft/wsync/internal/config"
)

// PathResolver canonicalizes a raw worktree dir from the manifest into an
// absolute path. It is injected so the planner never reads ambient process
// state (cwd, $HOME) and stays deterministic under test.
type PathResolver func(raw string) (string, error)

// BuildPlan diffs the repository's declared worktrees against actual state.
//
// Specs are classified in declaration order; the order is preserved in the
// returned plan so repeated runs produce identical output. Worktrees
// registered with the repository but absent from the declaration are
// collected as orphans. Orphans are only ever removed by the prune path.
func BuildPlan(ctx context.Context, vcs VCS, repo config.RepositoryDecl, repoPath string, resolve PathResolver) (*Plan, error) {
	actual, err := vcs.ListWorktrees(ctx, repoPath)
	if err != nil {
		return nil, fmt.Errorf("list worktrees for %s: %w", repo.Name, err)
	}

	byPath := make(map[string]*ActualWorktree, len(actual))
	for i := range actual {
		byPath[filepath.Clean(actual[i].Path)] = &actual[i]
	}

	plan := &Plan{Repo: repo}
	declared := make(map[string]bool, len(repo.Worktrees))

	for _, spec := range repo.Worktrees {
		pa := classify(ctx, vcs, repoPath, spec, resolve, byPath, declared)
		if pa.Path != "" {
			declared[pa.Path] = true
		}
		plan.Actions = append(plan.Actions, pa)
	}

	// Anything registered but not declared is an orphan candidate.
	for _, wt := range actual {
		if !declared[filepath.Clean(wt.Path)] {
			plan.Orphans = append(plan.Orphans, Orphan{Actual: wt})
		}
	}

	return plan, nil
}

func classify(ctx context.Context, vcs VCS, repoPath string, spec config.WorktreeSpec, resolve PathResolver, byPath map[string]*ActualWorktree, declared map[string]bool) PlannedAction {
	kind, value := spec.Ref()
	pa := PlannedAction{Spec: spec}

	path, err := resolve(spec.Dir)
	if err != nil {
		pa.Action = ActionError
		pa.Detail = fmt.Sprintf("invalid dir %q: %v", spec.Dir, err)
		return pa
	}
	pa.Path = path

	// Two specs targeting the same canonical path is a configuration
	// error: the first declaration wins, later ones are refused.
	if declared[path] {
		pa.Action = ActionError
		pa.Detail = fmt.Sprintf("duplicate target path %s (first declaration wins)", path)
		return pa
	}

	ref, err := vcs.ResolveRef(ctx, repoPath, spec)
	if err != nil {
		pa.Action = ActionError
		pa.Detail = fmt.Sprintf("resolve %s %q: %v", kind, value, err)
		return pa
	}
	pa.Ref = ref
	if !ref.Exists {
		pa.Action = ActionError
		pa.Detail = fmt.Sprintf("%s %q not found", kind, value)
		return pa
	}

	wt := byPath[path]
	pa.Actual = wt

	switch {
	case wt == nil || !wt.ExistsOnDisk:
		// Registered-but-missing directories are re-materialized, not
		// updated in place.
		pa.Action = ActionCreate
		pa.Detail = fmt.Sprintf("%s @ %s", value, short(ref.Commit))
		return pa

	case wt.Dirty:
		pa.Action = ActionBlocked
		pa.Detail = "uncommitted changes"
		return pa
	}

	aligned := wt.Commit == ref.Commit
	if kind == config.RefBranch {
		// A branch worktree is current only when it sits on the right
		// branch at the resolved tip; otherwise fetching plus a
		// fast-forward is safe and idempotent.
		aligned = aligned && wt.Branch == ref.Name
	}

	if !aligned {
		pa.Action = ActionUpdate
		pa.Detail = fmt.Sprintf("%s -> %s", short(wt.Commit), short(ref.Commit))
		return pa
	}

	if wt.Locked != spec.Locked() {
		pa.Action = ActionUpdate
		if spec.Locked() {
			pa.Detail = "lock missing"
		} else {
			pa.Detail = "lock no longer declared"
		}
		return pa
	}

	pa.Action = ActionUnchanged
	return pa
}

// short truncates a commit hash for human-readable details.
func short(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
