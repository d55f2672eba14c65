package gitsync

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/the-notes-must-flow/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := ExecRunner{Timeout: 30 * time.Second}.Run(context.Background(), dir, args...)
	require.NoError(t, err, out.Combined())
	return strings.TrimSpace(string(out.Stdout))
}

func TestExecRunner_Failure(t *testing.T) {
	requireGit(t)

	out, err := ExecRunner{}.Run(context.Background(), t.TempDir(), "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exited with status")
	assert.Contains(t, strings.ToLower(string(out.Stderr)), "not a git repository")
	assert.Contains(t, strings.ToLower(out.Combined()), "not a git repository")
}

func TestExecRunner_SeparatesStreams(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not installed")
	}

	out, err := ExecRunner{Binary: sh}.Run(context.Background(), t.TempDir(), "-c", "echo changed; echo warning >&2")
	require.NoError(t, err)
	assert.Equal(t, "changed\n", string(out.Stdout))
	assert.Equal(t, "warning\n", string(out.Stderr))
}

func TestSync_RealRepository(t *testing.T) {
	requireGit(t)

	remote := filepath.Join(t.TempDir(), "remote.git")
	git(t, t.TempDir(), "init", "--bare", remote)

	root := t.TempDir()
	git(t, root, "init")
	git(t, root, "symbolic-ref", "HEAD", "refs/heads/main")
	git(t, root, "config", "user.email", "notes@example.com")
	git(t, root, "config", "user.name", "Notes")
	git(t, root, "config", "commit.gpgsign", "false")
	git(t, root, "remote", "add", "origin", remote)

	s := New(Options{
		Runner:       ExecRunner{Timeout: 30 * time.Second},
		Logger:       common.DiscardLogger(),
		Root:         root,
		Remote:       "origin",
		Branch:       "main",
		CommitPrefix: "Notes update: ",
	})
	require.NoError(t, s.CheckSetup())

	require.NoError(t, os.MkdirAll(filepath.Join(root, "Quantum_Mechanics"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Quantum_Mechanics", "quantum_notes.pdf"), []byte("psi"), 0o600))

	report := s.Sync(context.Background())
	require.NoError(t, report.Err, report.Output)
	assert.True(t, report.Committed)
	assert.True(t, report.Pushed)

	subject := git(t, remote, "log", "-1", "--format=%s", "main")
	assert.Equal(t, report.Message, subject)
	assert.True(t, strings.HasPrefix(subject, "Notes update: "))

	// Nothing changed since: no new commit.
	again := s.Sync(context.Background())
	require.NoError(t, again.Err)
	assert.True(t, again.Clean)
	assert.Equal(t, "1", git(t, root, "rev-list", "--count", "HEAD"))
}
