package workspace

import (
	"context"
	"fmt"
	"os"

	"github.com/lauft/wsync/internal/git"
	"github.com/lauft/wsync/internal/log"
	"github.com/lauft/wsync/internal/reconcile"
)

// SyncPrimary brings one primary checkout up to date: a missing repository
// is cloned, an existing clean one is fetched and fast-forwarded, a dirty
// one is left alone and reported as blocked.
func SyncPrimary(ctx context.Context, t Target, dryRun bool) reconcile.Outcome {
	o := reconcile.Outcome{
		Repo:    t.Repo.Name,
		Path:    t.Path,
		Success: true,
		DryRun:  dryRun,
	}

	switch {
	case !dirExists(t.Path):
		o.Action = reconcile.ActionCreate
		o.Detail = "clone"
		if t.Repo.URL == "" {
			o.Action = reconcile.ActionError
			o.Success = false
			o.Detail = "missing and no url declared"
			return o
		}
		if dryRun {
			return o
		}
		if err := git.Clone(ctx, t.Repo.URL, t.Path); err != nil {
			o.Success = false
			o.Detail = err.Error()
		}
		return o

	case !git.IsRepo(ctx, t.Path):
		o.Action = reconcile.ActionError
		o.Success = false
		o.Detail = "exists but is not a git repository"
		return o

	case git.IsDirty(ctx, t.Path):
		o.Action = reconcile.ActionBlocked
		o.Detail = "uncommitted changes"
		log.FromContext(ctx).Warnf("skipping %s: uncommitted changes", t.Repo.Name)
		return o

	default:
		return pullPrimary(ctx, t, o)
	}
}

// pullPrimary fetches and fast-forwards a clean existing checkout.
func pullPrimary(ctx context.Context, t Target, o reconcile.Outcome) reconcile.Outcome {
	before, err := git.CurrentCommit(ctx, t.Path)
	if err != nil {
		o.Action = reconcile.ActionError
		o.Success = false
		o.Detail = err.Error()
		return o
	}

	if o.DryRun {
		o.Action = reconcile.ActionUpdate
		o.Detail = "fetch and fast-forward"
		return o
	}

	if err := git.Fetch(ctx, t.Path); err != nil {
		o.Action = reconcile.ActionUpdate
		o.Success = false
		o.Detail = err.Error()
		return o
	}
	if err := git.FastForward(ctx, t.Path); err != nil {
		o.Action = reconcile.ActionUpdate
		o.Success = false
		o.Detail = err.Error()
		return o
	}

	after, err := git.CurrentCommit(ctx, t.Path)
	if err != nil {
		o.Action = reconcile.ActionUpdate
		o.Success = false
		o.Detail = err.Error()
		return o
	}

	if after == before {
		o.Action = reconcile.ActionUnchanged
		return o
	}
	o.Action = reconcile.ActionUpdate
	o.Detail = fmt.Sprintf("%s -> %s", shortCommit(before), shortCommit(after))
	return o
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func shortCommit(c string) string {
	if len(c) > 7 {
		return c[:7]
	}
	return c
}
