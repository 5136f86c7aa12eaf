// Package workspace maps the manifest onto the filesystem and keeps
// primary checkouts in sync.
package workspace

import (
	"fmt"
	"os"

	"github.com/lauft/wsync/internal/config"
	"github.com/lauft/wsync/internal/pathutil"
	"github.com/lauft/wsync/internal/reconcile"
)

// Target is one declared repository with its resolved absolute path.
type Target struct {
	Repo config.RepositoryDecl
	Path string
}

// Targets resolves every declared repository path against the workspace
// root. Order follows the manifest.
func Targets(cfg *config.Config) ([]Target, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get home directory: %w", err)
	}
	return resolveTargets(cfg, home)
}

// resolveTargets is the testable core of Targets.
func resolveTargets(cfg *config.Config, home string) ([]Target, error) {
	root, err := pathutil.Resolve(cfg.Workspace.Root, "/", home)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace root: %w", err)
	}

	targets := make([]Target, 0, len(cfg.Repositories))
	for _, repo := range cfg.Repositories {
		path, err := pathutil.Resolve(repo.Path, root, home)
		if err != nil {
			return nil, fmt.Errorf("resolve path of repository %q: %w", repo.Name, err)
		}
		targets = append(targets, Target{Repo: repo, Path: path})
	}
	return targets, nil
}

// Resolver returns the path resolver for the target's worktree dirs.
// Relative dirs resolve against the repository root, so the conventional
// "../name-wt" layout puts worktrees next to the primary checkout.
func (t Target) Resolver() (reconcile.PathResolver, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get home directory: %w", err)
	}
	repoPath := t.Path
	return func(raw string) (string, error) {
		return pathutil.Resolve(raw, repoPath, home)
	}, nil
}
