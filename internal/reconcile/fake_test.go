package reconcile

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/lauft/wsync/internal/config"
)

// fakeVCS is an in-memory VCS collaborator. Mutations are applied to the
// fake's state so re-planning after execution behaves like a second run
// against a real repository.
type fakeVCS struct {
	refs      map[string]ResolvedRef // "<kind>:<value>" -> resolution
	worktrees []ActualWorktree
	calls     []string
	failOn    map[string]error // call prefix -> injected error
}

func newFakeVCS() *fakeVCS {
	return &fakeVCS{
		refs:   make(map[string]ResolvedRef),
		failOn: make(map[string]error),
	}
}

func (f *fakeVCS) setRef(kind config.RefKind, value, commit string) {
	f.refs[string(kind)+":"+value] = ResolvedRef{Kind: kind, Name: value, Commit: commit, Exists: true}
}

func (f *fakeVCS) record(call string) error {
	f.calls = append(f.calls, call)
	for prefix, err := range f.failOn {
		if len(call) >= len(prefix) && call[:len(prefix)] == prefix {
			return err
		}
	}
	return nil
}

func (f *fakeVCS) find(path string) *ActualWorktree {
	for i := range f.worktrees {
		if filepath.Clean(f.worktrees[i].Path) == filepath.Clean(path) {
			return &f.worktrees[i]
		}
	}
	return nil
}

func (f *fakeVCS) ResolveRef(_ context.Context, _ string, spec config.WorktreeSpec) (ResolvedRef, error) {
	kind, value := spec.Ref()
	if ref, ok := f.refs[string(kind)+":"+value]; ok {
		return ref, nil
	}
	return ResolvedRef{Kind: kind, Name: value}, nil
}

func (f *fakeVCS) ListWorktrees(_ context.Context, _ string) ([]ActualWorktree, error) {
	out := make([]ActualWorktree, len(f.worktrees))
	copy(out, f.worktrees)
	return out, nil
}

func (f *fakeVCS) AddWorktree(_ context.Context, _, path string, ref ResolvedRef) error {
	if err := f.record("add " + path); err != nil {
		return err
	}
	wt := ActualWorktree{Path: path, Commit: ref.Commit, ExistsOnDisk: true}
	if ref.Kind == config.RefBranch {
		wt.Branch = ref.Name
	}
	f.worktrees = append(f.worktrees, wt)
	return nil
}

func (f *fakeVCS) UpdateWorktree(_ context.Context, path string, ref ResolvedRef) error {
	if err := f.record("upd " + path); err != nil {
		return err
	}
	wt := f.find(path)
	if wt == nil {
		return fmt.Errorf("no worktree at %s", path)
	}
	wt.Commit = ref.Commit
	if ref.Kind == config.RefBranch {
		wt.Branch = ref.Name
	} else {
		wt.Branch = ""
	}
	return nil
}

func (f *fakeVCS) RemoveWorktree(_ context.Context, _, path string, _ bool) error {
	if err := f.record("rm  " + path); err != nil {
		return err
	}
	for i := range f.worktrees {
		if filepath.Clean(f.worktrees[i].Path) == filepath.Clean(path) {
			f.worktrees = append(f.worktrees[:i], f.worktrees[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no worktree at %s", path)
}

func (f *fakeVCS) LockWorktree(_ context.Context, _, path, reason string) error {
	if err := f.record("lock " + path); err != nil {
		return err
	}
	wt := f.find(path)
	if wt == nil {
		return fmt.Errorf("no worktree at %s", path)
	}
	wt.Locked = true
	wt.LockReason = reason
	return nil
}

func (f *fakeVCS) UnlockWorktree(_ context.Context, _, path string) error {
	if err := f.record("unlk " + path); err != nil {
		return err
	}
	wt := f.find(path)
	if wt == nil {
		return fmt.Errorf("no worktree at %s", path)
	}
	wt.Locked = false
	wt.LockReason = ""
	return nil
}
