package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lauft/wsync/internal/config"
)

func TestExecute_CreateAppliesLock(t *testing.T) {
	t.Parallel()

	vcs := newFakeVCS()
	vcs.setRef(config.RefTag, "v1.0.0", commitA)

	repo := declRepo(config.WorktreeSpec{Dir: "../wt-a", Tag: "v1.0.0", LockReason: "release build"})
	plan := mustPlan(t, vcs, repo)

	outcomes := Execute(context.Background(), vcs, plan, testRepoPath, Options{})

	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Success)
	assert.Equal(t, []string{"add /ws/wt-a", "lock /ws/wt-a"}, vcs.calls)

	wt := vcs.find("/ws/wt-a")
	require.NotNil(t, wt)
	assert.Equal(t, commitA, wt.Commit)
	assert.True(t, wt.Locked)
	assert.Equal(t, "release build", wt.LockReason)
}

func TestExecute_DryRunSkipsMutations(t *testing.T) {
	t.Parallel()

	vcs := newFakeVCS()
	vcs.setRef(config.RefTag, "v1.0.0", commitA)

	plan := mustPlan(t, vcs, declRepo(config.WorktreeSpec{Dir: "../wt-a", Tag: "v1.0.0"}))
	outcomes := Execute(context.Background(), vcs, plan, testRepoPath, Options{DryRun: true})

	require.Len(t, outcomes, 1)
	assert.Equal(t, ActionCreate, outcomes[0].Action)
	assert.True(t, outcomes[0].DryRun)
	assert.True(t, outcomes[0].Success)
	assert.Empty(t, vcs.calls, "dry-run must not call the VCS")
}

func TestExecute_FailureDoesNotAbortSiblings(t *testing.T) {
	t.Parallel()

	vcs := newFakeVCS()
	vcs.setRef(config.RefTag, "v1.0.0", commitA)
	vcs.failOn["add /ws/wt-a"] = errors.New("disk full")

	plan := mustPlan(t, vcs, declRepo(
		config.WorktreeSpec{Dir: "../wt-a", Tag: "v1.0.0"},
		config.WorktreeSpec{Dir: "../wt-b", Tag: "v1.0.0"},
	))
	outcomes := Execute(context.Background(), vcs, plan, testRepoPath, Options{})

	require.Len(t, outcomes, 2)
	assert.False(t, outcomes[0].Success)
	assert.Contains(t, outcomes[0].Detail, "disk full")
	assert.True(t, outcomes[1].Success, "second item still processed")

	sum := Summarize(outcomes)
	assert.Equal(t, 1, sum.Failed)
	assert.Equal(t, 1, sum.Created)
	assert.False(t, sum.Clean())
}

func TestExecute_BlockedAndErrorNeverMutate(t *testing.T) {
	t.Parallel()

	vcs := newFakeVCS()
	vcs.setRef(config.RefTag, "v1.0.0", commitA)
	vcs.worktrees = []ActualWorktree{
		{Path: "/ws/wt-dirty", Commit: commitB, Dirty: true, ExistsOnDisk: true},
	}

	plan := mustPlan(t, vcs, declRepo(
		config.WorktreeSpec{Dir: "../wt-dirty", Tag: "v1.0.0"},
		config.WorktreeSpec{Dir: "../wt-missing", Tag: "no-such-tag"},
	))
	outcomes := Execute(context.Background(), vcs, plan, testRepoPath, Options{})

	assert.Equal(t, ActionBlocked, outcomes[0].Action)
	assert.Equal(t, ActionError, outcomes[1].Action)
	assert.False(t, outcomes[1].Success)
	assert.Empty(t, vcs.calls)

	// The dirty worktree is byte-for-byte untouched.
	assert.Equal(t, commitB, vcs.find("/ws/wt-dirty").Commit)
}

func TestExecute_UpdateOnlyLockDrift(t *testing.T) {
	t.Parallel()

	vcs := newFakeVCS()
	vcs.setRef(config.RefTag, "v1.0.0", commitA)
	vcs.worktrees = []ActualWorktree{
		{Path: "/ws/wt-a", Commit: commitA, ExistsOnDisk: true},
	}

	plan := mustPlan(t, vcs, declRepo(config.WorktreeSpec{Dir: "../wt-a", Tag: "v1.0.0", Lock: true}))
	outcomes := Execute(context.Background(), vcs, plan, testRepoPath, Options{})

	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Success)
	assert.Equal(t, []string{"lock /ws/wt-a"}, vcs.calls, "aligned commit needs no checkout")
}

// Running sync twice must be idempotent for fixed-point refs: everything the
// first run created or updated is unchanged on the second run.
func TestExecute_SecondRunUnchanged(t *testing.T) {
	t.Parallel()

	vcs := newFakeVCS()
	vcs.setRef(config.RefTag, "v1.0.0", commitA)
	vcs.setRef(config.RefCommit, commitB, commitB)
	vcs.setRef(config.RefBranch, "develop", commitB)

	repo := declRepo(
		config.WorktreeSpec{Dir: "../wt-tag", Tag: "v1.0.0"},
		config.WorktreeSpec{Dir: "../wt-commit", Commit: commitB},
		config.WorktreeSpec{Dir: "../wt-branch", Branch: "develop"},
	)

	first := mustPlan(t, vcs, repo)
	Execute(context.Background(), vcs, first, testRepoPath, Options{})

	second := mustPlan(t, vcs, repo)
	for _, pa := range second.Actions {
		assert.Equal(t, ActionUnchanged, pa.Action, "spec %s", pa.Spec.Dir)
	}

	sum := Summarize(Execute(context.Background(), vcs, second, testRepoPath, Options{}))
	assert.Equal(t, Summary{Unchanged: 3}, sum)
}

// When a branch advances between runs, the second run updates the worktree
// to the new tip.
func TestExecute_BranchAdvanceUpdates(t *testing.T) {
	t.Parallel()

	vcs := newFakeVCS()
	vcs.setRef(config.RefBranch, "develop", commitA)

	repo := declRepo(config.WorktreeSpec{Dir: "../wt-b", Branch: "develop"})
	Execute(context.Background(), vcs, mustPlan(t, vcs, repo), testRepoPath, Options{})
	require.Equal(t, commitA, vcs.find("/ws/wt-b").Commit)

	// develop moves forward.
	vcs.setRef(config.RefBranch, "develop", commitB)

	second := mustPlan(t, vcs, repo)
	require.Equal(t, ActionUpdate, second.Actions[0].Action)

	sum := Summarize(Execute(context.Background(), vcs, second, testRepoPath, Options{}))
	assert.Equal(t, 1, sum.Updated)
	assert.Equal(t, commitB, vcs.find("/ws/wt-b").Commit)
}

func TestExecute_CancelledContext(t *testing.T) {
	t.Parallel()

	vcs := newFakeVCS()
	vcs.setRef(config.RefTag, "v1.0.0", commitA)

	plan := mustPlan(t, vcs, declRepo(config.WorktreeSpec{Dir: "../wt-a", Tag: "v1.0.0"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := Execute(ctx, vcs, plan, testRepoPath, Options{})
	require.Len(t, outcomes, 1)
	assert.False(t, outcomes[0].Success)
	assert.Equal(t, "cancelled", outcomes[0].Detail)
	assert.Empty(t, vcs.calls)
}
