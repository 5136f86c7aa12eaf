package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrValidation marks configuration validation failures. These abort a run
// before any VCS call is made.
var ErrValidation = errors.New("invalid configuration")

// supportedVCS lists the VCS kinds wsync can drive.
var supportedVCS = []string{"git"}

// Validate checks the manifest for structural errors: missing fields,
// duplicate repository names, and ambiguous ref selectors.
func (c *Config) Validate() error {
	seenNames := make(map[string]bool)

	for i, repo := range c.Repositories {
		where := fmt.Sprintf("repositories[%d]", i)
		if repo.Name != "" {
			where = fmt.Sprintf("repository %q", repo.Name)
		}

		if repo.Name == "" {
			return fmt.Errorf("%w: %s: name or path required", ErrValidation, where)
		}
		if seenNames[repo.Name] {
			return fmt.Errorf("%w: duplicate repository name %q", ErrValidation, repo.Name)
		}
		seenNames[repo.Name] = true

		if !slices.Contains(supportedVCS, repo.VCS) {
			return fmt.Errorf("%w: %s: unsupported vcs %q (supported: %s)",
				ErrValidation, where, repo.VCS, strings.Join(supportedVCS, ", "))
		}

		for j, wt := range repo.Worktrees {
			if err := wt.validate(); err != nil {
				return fmt.Errorf("%w: %s: worktree[%d]: %v", ErrValidation, where, j, err)
			}
		}
	}
	return nil
}

// validate enforces the exactly-one-ref invariant on a single spec.
func (s WorktreeSpec) validate() error {
	if s.Dir == "" {
		return fmt.Errorf("dir required")
	}

	var set []string
	if s.Tag != "" {
		set = append(set, "tag")
	}
	if s.Branch != "" {
		set = append(set, "branch")
	}
	if s.Commit != "" {
		set = append(set, "commit")
	}

	switch len(set) {
	case 0:
		return fmt.Errorf("%s: one of tag, branch or commit required", s.Dir)
	case 1:
		return nil
	default:
		return fmt.Errorf("%s: %s are mutually exclusive", s.Dir, strings.Join(set, " and "))
	}
}
