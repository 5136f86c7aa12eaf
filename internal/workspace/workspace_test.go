package workspace

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lauft/wsync/internal/config"
)

func TestResolveTargets(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Workspace: config.Workspace{Root: "~/src"},
		Repositories: []config.RepositoryDecl{
			{Name: "alpha", Path: "alpha"},
			{Name: "beta", Path: "/opt/beta"},
			{Name: "gamma", Path: "nested/gamma"},
		},
	}

	targets, err := resolveTargets(cfg, "/home/u")
	require.NoError(t, err)
	require.Len(t, targets, 3)

	require.Equal(t, "/home/u/src/alpha", targets[0].Path)
	require.Equal(t, "/opt/beta", targets[1].Path)
	require.Equal(t, "/home/u/src/nested/gamma", targets[2].Path)
}

func TestResolveTargets_AbsoluteRoot(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Workspace:    config.Workspace{Root: "/ws"},
		Repositories: []config.RepositoryDecl{{Name: "r", Path: "r"}},
	}

	targets, err := resolveTargets(cfg, "/home/u")
	require.NoError(t, err)
	require.Equal(t, "/ws/r", targets[0].Path)
}

func TestResolveTargets_OrderPreserved(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Workspace: config.Workspace{Root: "/ws"},
		Repositories: []config.RepositoryDecl{
			{Name: "z", Path: "z"},
			{Name: "a", Path: "a"},
			{Name: "m", Path: "m"},
		},
	}

	targets, err := resolveTargets(cfg, "/home/u")
	require.NoError(t, err)

	names := make([]string, len(targets))
	for i, tgt := range targets {
		names[i] = tgt.Repo.Name
	}
	require.Equal(t, []string{"z", "a", "m"}, names)
}
