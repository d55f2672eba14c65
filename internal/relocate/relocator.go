// Package relocate moves inbox files into category folders under the
// repository root.
package relocate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Veraticus/the-notes-must-flow/internal/common"
	"github.com/Veraticus/the-notes-must-flow/internal/model"
	"github.com/spf13/afero"
)

// Relocator moves files from the inbox into <root>/<folder>/.
type Relocator struct {
	fs       afero.Fs
	logger   *slog.Logger
	now      func() time.Time
	root     string
	inboxDir string
}

// NewRelocator creates a relocator rooted at root that reads from inboxDir.
func NewRelocator(fs afero.Fs, root, inboxDir string, logger *slog.Logger) *Relocator {
	return &Relocator{
		fs:       fs,
		root:     root,
		inboxDir: inboxDir,
		logger:   logger,
		now:      time.Now,
	}
}

// Destination returns the directory a folder name resolves to.
func (r *Relocator) Destination(folder string) (string, error) {
	if err := model.ValidateFolderName(folder); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidFolder, err)
	}
	return filepath.Join(r.root, folder), nil
}

// EnsureFolder creates the destination directory and any missing parents.
// It succeeds when the directory already exists.
func (r *Relocator) EnsureFolder(folder string) (string, error) {
	dir, err := r.Destination(folder)
	if err != nil {
		return "", err
	}
	if err := r.fs.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create folder %s: %w", dir, err)
	}
	return dir, nil
}

// Move relocates filename from the inbox into folder, keeping its name. The
// returned Relocation always describes the attempt; err is set when the file
// did not reach its destination.
func (r *Relocator) Move(ctx context.Context, filename, folder string) (model.Relocation, error) {
	rel := model.Relocation{
		File:   filename,
		Folder: folder,
	}

	if err := ctx.Err(); err != nil {
		rel.Err = err
		return rel, err
	}

	dir, err := r.EnsureFolder(folder)
	if err != nil {
		rel.Err = err
		return rel, err
	}

	src := filepath.Join(r.inboxDir, filename)
	dst := filepath.Join(dir, filename)
	rel.Destination = dst

	if err := r.move(src, dst); err != nil {
		rel.Err = fmt.Errorf("failed to move %s to %s: %w", filename, folder, err)
		return rel, rel.Err
	}

	rel.MovedAt = r.now()
	r.logger.Debug("moved file", "file", filename, "destination", dst)
	return rel, nil
}

// move renames src to dst, copying across filesystems when a rename is not
// possible.
func (r *Relocator) move(src, dst string) error {
	err := r.fs.Rename(src, dst)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}

	r.logger.Debug("rename crossed filesystems, copying instead", "src", src, "dst", dst)
	if err := r.copyFile(src, dst); err != nil {
		return err
	}
	return r.fs.Remove(src)
}

func (r *Relocator) copyFile(src, dst string) (err error) {
	in, err := r.fs.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := r.fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			_ = r.fs.Remove(dst)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	if err = out.Sync(); err != nil {
		return err
	}
	return r.fs.Chtimes(dst, info.ModTime(), info.ModTime())
}
