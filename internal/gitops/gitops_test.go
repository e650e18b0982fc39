package gitops

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

func TestInit(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	err := Init(dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, ".git"))
	require.NoError(t, err, ".git directory should exist")
}

func TestIsRepo(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	assert.False(t, IsRepo(dir), "empty dir should not be a repo")

	require.NoError(t, Init(dir))
	assert.True(t, IsRepo(dir), "initialized dir should be a repo")
}

func TestCommitAll(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	require.NoError(t, Init(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "expenses.json"), []byte("[]"), 0o644))

	hash, err := CommitAll(dir, "add: Coffee", "Test Author", "test@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	log := exec.Command("git", "log", "--format=%s", "-1")
	log.Dir = dir
	out, err := log.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "add: Coffee")

	authorLog := exec.Command("git", "log", "--format=%an <%ae>", "-1")
	authorLog.Dir = dir
	out, err = authorLog.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "Test Author <test@example.com>")
}

func TestCommitIfChanged(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	require.NoError(t, Init(dir))

	changed, err := HasChanges(dir)
	require.NoError(t, err)
	assert.False(t, changed)

	hash, err := CommitIfChanged(dir, "noop", "Test", "test@example.com")
	require.NoError(t, err)
	assert.Empty(t, hash, "clean tree is not committed")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	changed, err = HasChanges(dir)
	require.NoError(t, err)
	assert.True(t, changed)

	hash, err = CommitIfChanged(dir, "add a", "Test", "test@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	changed, err = HasChanges(dir)
	require.NoError(t, err)
	assert.False(t, changed)
}
