// Package config loads and validates the wsync workspace manifest.
//
// The manifest is a TOML file declaring repositories and their worktrees:
//
//	[workspace]
//	root = "~/src"
//
//	[[repositories]]
//	name = "example"
//	path = "example"
//	url  = "git@github.com:me/example.git"
//
//	  [[repositories.worktree]]
//	  dir = "../example-v1"
//	  tag = "v1.0.0"
//	  lock = true
//	  lock_reason = "release build"
//
//	  [[repositories.worktree]]
//	  dir = "../example-dev"
//	  branch = "develop"
//
// Loading resolves dynamic shapes once; everything downstream works on the
// canonical structs in this package and never re-inspects raw TOML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultPath returns the default manifest location,
// ~/.config/wsync/workspace.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "wsync", "workspace.toml"), nil
}

// RefKind identifies how a worktree is pinned.
type RefKind string

const (
	RefTag    RefKind = "tag"
	RefBranch RefKind = "branch"
	RefCommit RefKind = "commit"
)

// WorktreeSpec declares one auxiliary worktree of a repository.
// Exactly one of Tag, Branch, Commit is set; Validate enforces this before
// any VCS call is made.
type WorktreeSpec struct {
	Dir        string `toml:"dir"`
	Tag        string `toml:"tag"`
	Branch     string `toml:"branch"`
	Commit     string `toml:"commit"`
	Lock       bool   `toml:"lock"`
	LockReason string `toml:"lock_reason"`
}

// Ref returns the spec's ref selector as a (kind, value) pair.
func (s WorktreeSpec) Ref() (RefKind, string) {
	switch {
	case s.Tag != "":
		return RefTag, s.Tag
	case s.Branch != "":
		return RefBranch, s.Branch
	default:
		return RefCommit, s.Commit
	}
}

// Locked reports whether the worktree should be locked.
// Setting lock_reason implies lock = true.
func (s WorktreeSpec) Locked() bool {
	return s.Lock || s.LockReason != ""
}

// RepositoryDecl declares one primary repository and its worktrees.
// Immutable once loaded for a sync run.
type RepositoryDecl struct {
	Name      string         `toml:"name"`
	Path      string         `toml:"path"`
	URL       string         `toml:"url"`
	VCS       string         `toml:"vcs"`
	Worktrees []WorktreeSpec `toml:"worktree"`
}

// Workspace holds workspace-level settings.
type Workspace struct {
	Root string `toml:"root"`
}

// Config is the loaded, validated manifest.
type Config struct {
	Workspace    Workspace        `toml:"workspace"`
	Repositories []RepositoryDecl `toml:"repositories"`
}

// Load reads and validates the manifest at path.
// If path is empty the default location is used. A missing default file
// yields an empty config; a missing explicit file is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults(filepath.Dir(path))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills derivable fields. The workspace root defaults to the
// directory containing the manifest, repository names default to the final
// path element, and the VCS kind defaults to git.
func (c *Config) applyDefaults(configDir string) {
	if c.Workspace.Root == "" {
		c.Workspace.Root = configDir
	}
	for i := range c.Repositories {
		r := &c.Repositories[i]
		if r.Name == "" && r.Path != "" {
			r.Name = filepath.Base(r.Path)
		}
		if r.Path == "" && r.Name != "" {
			r.Path = r.Name
		}
		if r.VCS == "" {
			r.VCS = "git"
		}
	}
}
