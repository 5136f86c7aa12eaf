package main

import (
	"fmt"
	"path"

	"github.com/sahilm/fuzzy"

	"github.com/lauft/wsync/internal/config"
	"github.com/lauft/wsync/internal/workspace"
)

// loadTargets loads the manifest and resolves the repositories the command
// operates on. Patterns are shell globs matched against repository names;
// no patterns means every declared repository.
func loadTargets(patterns []string) ([]workspace.Target, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	targets, err := workspace.Targets(cfg)
	if err != nil {
		return nil, err
	}

	return filterTargets(targets, patterns)
}

// filterTargets selects targets whose repository name matches any pattern.
// Manifest order is preserved and each target appears at most once. A
// pattern matching nothing is an error, with a suggestion when a declared
// name is close.
func filterTargets(targets []workspace.Target, patterns []string) ([]workspace.Target, error) {
	if len(patterns) == 0 {
		return targets, nil
	}

	matched := make(map[string]bool, len(patterns))
	selected := make(map[string]bool, len(targets))

	for _, pattern := range patterns {
		for _, t := range targets {
			ok, err := path.Match(pattern, t.Repo.Name)
			if err != nil {
				return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
			}
			if ok {
				matched[pattern] = true
				selected[t.Repo.Name] = true
			}
		}
		if !matched[pattern] {
			return nil, unknownPatternError(pattern, targets)
		}
	}

	var result []workspace.Target
	for _, t := range targets {
		if selected[t.Repo.Name] {
			result = append(result, t)
		}
	}
	return result, nil
}

func unknownPatternError(pattern string, targets []workspace.Target) error {
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = t.Repo.Name
	}

	if matches := fuzzy.Find(pattern, names); len(matches) > 0 {
		return fmt.Errorf("no repository matches %q (did you mean %q?)", pattern, matches[0].Str)
	}
	return fmt.Errorf("no repository matches %q", pattern)
}
