package relocate

import (
	"context"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/Veraticus/the-notes-must-flow/internal/common"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	root  = "/notes"
	inbox = "/notes/_Inbox"
)

func setup(t *testing.T, files ...string) (afero.Fs, *Relocator) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(inbox, 0o750))
	for _, name := range files {
		require.NoError(t, afero.WriteFile(fs, filepath.Join(inbox, name), []byte("content of "+name), 0o640))
	}
	return fs, NewRelocator(fs, root, inbox, common.DiscardLogger())
}

func TestRelocator_Move(t *testing.T) {
	fs, r := setup(t, "quantum_notes.pdf")

	rel, err := r.Move(context.Background(), "quantum_notes.pdf", "Quantum_Mechanics")
	require.NoError(t, err)

	assert.True(t, rel.Succeeded())
	assert.Equal(t, filepath.Join(root, "Quantum_Mechanics", "quantum_notes.pdf"), rel.Destination)
	assert.False(t, rel.MovedAt.IsZero())

	data, err := afero.ReadFile(fs, rel.Destination)
	require.NoError(t, err)
	assert.Equal(t, "content of quantum_notes.pdf", string(data))

	exists, err := afero.Exists(fs, filepath.Join(inbox, "quantum_notes.pdf"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRelocator_EnsureFolderIsIdempotent(t *testing.T) {
	_, r := setup(t)

	first, err := r.EnsureFolder("Labs_and_Data")
	require.NoError(t, err)
	second, err := r.EnsureFolder("Labs_and_Data")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRelocator_SameFolderTwice(t *testing.T) {
	fs, r := setup(t, "lab1.docx", "lab2.docx")

	_, err := r.Move(context.Background(), "lab1.docx", "Labs_and_Data")
	require.NoError(t, err)
	_, err = r.Move(context.Background(), "lab2.docx", "Labs_and_Data")
	require.NoError(t, err)

	infos, err := afero.ReadDir(fs, filepath.Join(root, "Labs_and_Data"))
	require.NoError(t, err)
	assert.Len(t, infos, 2)
}

func TestRelocator_MissingSource(t *testing.T) {
	_, r := setup(t)

	rel, err := r.Move(context.Background(), "ghost.pdf", "Computing")
	require.Error(t, err)
	assert.False(t, rel.Succeeded())
	assert.Equal(t, err, rel.Err)
}

func TestRelocator_RejectsUnsafeFolder(t *testing.T) {
	_, r := setup(t, "a.pdf")

	for _, folder := range []string{"", "..", "../escape", "a/b", ".git"} {
		_, err := r.Move(context.Background(), "a.pdf", folder)
		assert.ErrorIs(t, err, common.ErrInvalidFolder, folder)
	}
}

func TestRelocator_CanceledContext(t *testing.T) {
	fs, r := setup(t, "a.pdf")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Move(ctx, "a.pdf", "Computing")
	require.ErrorIs(t, err, context.Canceled)

	exists, err := afero.Exists(fs, filepath.Join(inbox, "a.pdf"))
	require.NoError(t, err)
	assert.True(t, exists)
}

// crossDeviceFs fails every rename with EXDEV to force the copy path.
type crossDeviceFs struct {
	afero.Fs
}

func (c crossDeviceFs) Rename(oldname, newname string) error {
	return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: syscall.EXDEV}
}

func TestRelocator_CrossDeviceFallback(t *testing.T) {
	base, _ := setup(t, "maxwell.pdf")
	r := NewRelocator(crossDeviceFs{Fs: base}, root, inbox, common.DiscardLogger())

	rel, err := r.Move(context.Background(), "maxwell.pdf", "Electromagnetism")
	require.NoError(t, err)

	data, err := afero.ReadFile(base, rel.Destination)
	require.NoError(t, err)
	assert.Equal(t, "content of maxwell.pdf", string(data))

	exists, err := afero.Exists(base, filepath.Join(inbox, "maxwell.pdf"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRelocator_RealFilesystem(t *testing.T) {
	dir := t.TempDir()
	inboxDir := filepath.Join(dir, "_Inbox")
	require.NoError(t, os.MkdirAll(inboxDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(inboxDir, "stats_hw.pdf"), []byte("x"), 0o600))

	r := NewRelocator(afero.NewOsFs(), dir, inboxDir, common.DiscardLogger())
	rel, err := r.Move(context.Background(), "stats_hw.pdf", "Math_Methods")
	require.NoError(t, err)

	_, err = os.Stat(rel.Destination)
	require.NoError(t, err)
}
