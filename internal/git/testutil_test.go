package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupTestRepo creates a git repository with one commit on main.
// Returns the resolved repo path (symlinks evaluated, for macOS temp dirs).
func setupTestRepo(t *testing.T) string {
	t.Helper()

	if err := CheckGit(); err != nil {
		t.Skipf("git not available: %v", err)
	}

	tmpDir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("failed to resolve symlinks: %v", err)
	}

	ctx := context.Background()
	repoPath := filepath.Join(resolved, "repo")
	if err := runGit(ctx, "", "init", "-b", "main", repoPath); err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}
	configureTestRepo(t, repoPath)

	if err := os.WriteFile(filepath.Join(repoPath, "README.md"), []byte("test\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := runGit(ctx, repoPath, "add", "."); err != nil {
		t.Fatalf("failed to add: %v", err)
	}
	commit(t, repoPath, "initial commit")

	return repoPath
}

func configureTestRepo(t *testing.T, repoPath string) {
	t.Helper()
	ctx := context.Background()
	for _, kv := range [][2]string{
		{"user.email", "test@example.com"},
		{"user.name", "Test"},
		{"commit.gpgsign", "false"},
		{"tag.gpgsign", "false"},
	} {
		if err := runGit(ctx, repoPath, "config", kv[0], kv[1]); err != nil {
			t.Fatalf("failed to set %s: %v", kv[0], err)
		}
	}
}

func commit(t *testing.T, repoPath, msg string) string {
	t.Helper()
	ctx := context.Background()
	if err := runGit(ctx, repoPath, "commit", "--allow-empty", "-m", msg); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
	head, err := CurrentCommit(ctx, repoPath)
	if err != nil {
		t.Fatalf("failed to read HEAD: %v", err)
	}
	return head
}

func writeDirtyFile(t *testing.T, dir string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "scratch.txt"), []byte("wip\n"), 0644); err != nil {
		t.Fatal(err)
	}
}

func assertHead(t *testing.T, path, want string) {
	t.Helper()
	got, err := CurrentCommit(context.Background(), path)
	if err != nil {
		t.Fatalf("CurrentCommit(%s) = %v", path, err)
	}
	if !strings.HasPrefix(got, want) && !strings.HasPrefix(want, got) {
		t.Errorf("HEAD of %s = %s, want %s", path, got, want)
	}
}
