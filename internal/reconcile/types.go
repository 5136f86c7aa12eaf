// Package reconcile computes and applies the minimal set of actions that
// bring a repository's worktrees into agreement with its declaration.
//
// The package is split into a planner (pure classification, no mutation) and
// an executor (applies a computed plan). Both talk to the VCS through the
// narrow [VCS] interface so they can be tested against an in-memory fake.
package reconcile

import (
	"github.com/lauft/wsync/internal/config"
)

// Action classifies what needs to happen for one declared worktree.
type Action string

const (
	// ActionCreate materializes a missing worktree.
	ActionCreate Action = "create"
	// ActionUpdate advances an existing worktree in place.
	ActionUpdate Action = "update"
	// ActionUnchanged means declaration and reality already agree.
	ActionUnchanged Action = "unchanged"
	// ActionBlocked means the worktree has uncommitted changes and is
	// never mutated, regardless of ref alignment.
	ActionBlocked Action = "blocked"
	// ActionError means the declaration cannot be satisfied (unresolvable
	// ref, duplicate target path). No mutation is attempted.
	ActionError Action = "error"
	// ActionPrune removes an orphaned worktree (prune path only).
	ActionPrune Action = "prune"
	// ActionSkip records an orphan left alone (dirty or locked without
	// an override, or the operator declined).
	ActionSkip Action = "skip"
	// ActionOrphan marks a registered worktree absent from the
	// declaration in status listings; prune decides its fate.
	ActionOrphan Action = "orphan"
)

// ResolvedRef is the result of resolving a ref selector against a repository.
// A missing ref is not an error: Exists is false and the planner classifies
// the spec accordingly.
type ResolvedRef struct {
	Kind   config.RefKind
	Name   string
	Commit string
	Exists bool
}

// ActualWorktree is the observed state of one registered worktree.
// Constructed fresh on every run; the filesystem and git metadata are the
// source of truth, never a cache.
type ActualWorktree struct {
	Path         string
	Commit       string
	Branch       string // empty when detached
	Dirty        bool
	Locked       bool
	LockReason   string
	ExistsOnDisk bool
}

// PlannedAction is one planner decision for a declared worktree.
type PlannedAction struct {
	Spec   config.WorktreeSpec
	Path   string // canonical absolute target path
	Ref    ResolvedRef
	Actual *ActualWorktree // nil when no worktree is registered at Path
	Action Action
	Detail string
}

// Orphan is a registered worktree absent from the declaration.
// Candidates for pruning; never implicitly deleted during a sync.
type Orphan struct {
	Actual ActualWorktree
}

// Plan is the full reconciliation decision set for one repository.
// Actions preserve declaration order.
type Plan struct {
	Repo    config.RepositoryDecl
	Actions []PlannedAction
	Orphans []Orphan
}

// Outcome records the result of one planned or executed action.
type Outcome struct {
	Repo     string
	Path     string
	RefKind  config.RefKind
	RefValue string
	Action   Action
	Success  bool
	Detail   string
	DryRun   bool
}

// Summary aggregates outcomes for the end-of-run report and exit code.
type Summary struct {
	Created   int
	Updated   int
	Unchanged int
	Blocked   int
	Errors    int
	Failed    int
	Pruned    int
	Skipped   int
	Orphans   int
}

// Add folds one outcome into the summary.
func (s *Summary) Add(o Outcome) {
	if !o.Success && o.Action != ActionError {
		s.Failed++
		return
	}
	switch o.Action {
	case ActionCreate:
		s.Created++
	case ActionUpdate:
		s.Updated++
	case ActionUnchanged:
		s.Unchanged++
	case ActionBlocked:
		s.Blocked++
	case ActionError:
		s.Errors++
	case ActionPrune:
		s.Pruned++
	case ActionSkip:
		s.Skipped++
	case ActionOrphan:
		s.Orphans++
	}
}

// Summarize builds a summary from a set of outcomes.
func Summarize(outcomes []Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		s.Add(o)
	}
	return s
}

// Clean reports whether the run had no errors and no failed mutations.
// The process exit code is derived from this.
func (s Summary) Clean() bool {
	return s.Errors == 0 && s.Failed == 0
}
