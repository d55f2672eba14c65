package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// InboxBuilder populates an inbox directory on an afero filesystem.
//
// Example:
//
//	testutil.NewInboxBuilder(t, fs, "/notes/_Inbox").
//		WithFiles("quantum_notes.md", "lab3.pdf").
//		WithDir("drafts").
//		Build()
type InboxBuilder struct {
	fs    afero.Fs
	t     *testing.T
	files map[string]string
	dir   string
	order []string
	dirs  []string
}

// NewInboxBuilder starts a builder for dir.
func NewInboxBuilder(t *testing.T, fs afero.Fs, dir string) *InboxBuilder {
	t.Helper()
	return &InboxBuilder{
		fs:    fs,
		t:     t,
		dir:   dir,
		files: make(map[string]string),
	}
}

// WithFiles adds files whose content is their own name.
func (b *InboxBuilder) WithFiles(names ...string) *InboxBuilder {
	for _, name := range names {
		b.WithFile(name, name)
	}
	return b
}

// WithFile adds a file with the given content.
func (b *InboxBuilder) WithFile(name, content string) *InboxBuilder {
	if _, exists := b.files[name]; !exists {
		b.order = append(b.order, name)
	}
	b.files[name] = content
	return b
}

// WithDir adds a subdirectory.
func (b *InboxBuilder) WithDir(name string) *InboxBuilder {
	b.dirs = append(b.dirs, name)
	return b
}

// Build writes everything and returns the inbox path.
func (b *InboxBuilder) Build() string {
	b.t.Helper()

	if err := b.fs.MkdirAll(b.dir, 0o750); err != nil {
		b.t.Fatalf("failed to create inbox %s: %v", b.dir, err)
	}
	for _, name := range b.dirs {
		if err := b.fs.MkdirAll(filepath.Join(b.dir, name), 0o750); err != nil {
			b.t.Fatalf("failed to create inbox dir %s: %v", name, err)
		}
	}
	for _, name := range b.order {
		path := filepath.Join(b.dir, name)
		if err := afero.WriteFile(b.fs, path, []byte(b.files[name]), 0o600); err != nil {
			b.t.Fatalf("failed to write inbox file %s: %v", name, err)
		}
	}
	return b.dir
}
