// Package inbox lists the loose files waiting to be filed.
package inbox

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/Veraticus/the-notes-must-flow/internal/model"
	"github.com/spf13/afero"
)

// Scanner lists candidate files in a single inbox directory.
type Scanner struct {
	fs     afero.Fs
	logger *slog.Logger
	dir    string
}

// ScanResult holds the files found by one scan.
type ScanResult struct {
	Entries []model.InboxEntry
	Created bool
}

// NewScanner creates a scanner for dir.
func NewScanner(fs afero.Fs, dir string, logger *slog.Logger) *Scanner {
	return &Scanner{
		fs:     fs,
		dir:    dir,
		logger: logger,
	}
}

// Dir returns the inbox directory.
func (s *Scanner) Dir() string {
	return s.dir
}

// Scan returns the visible regular files directly inside the inbox, sorted by
// name. A missing inbox is created and reported as empty.
func (s *Scanner) Scan(ctx context.Context) (ScanResult, error) {
	if err := ctx.Err(); err != nil {
		return ScanResult{}, err
	}

	exists, err := afero.DirExists(s.fs, s.dir)
	if err != nil {
		return ScanResult{}, fmt.Errorf("failed to check inbox %s: %w", s.dir, err)
	}
	if !exists {
		if err := s.fs.MkdirAll(s.dir, 0o750); err != nil {
			return ScanResult{}, fmt.Errorf("failed to create inbox %s: %w", s.dir, err)
		}
		s.logger.Info("created inbox", "dir", s.dir)
		return ScanResult{Created: true}, nil
	}

	infos, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return ScanResult{}, fmt.Errorf("failed to read inbox %s: %w", s.dir, err)
	}

	entries := make([]model.InboxEntry, 0, len(infos))
	for _, info := range infos {
		name := info.Name()
		if strings.HasPrefix(name, model.HiddenPrefix) {
			continue
		}
		if info.IsDir() || !isRegular(info) {
			s.logger.Debug("skipping non-file inbox entry", "name", name)
			continue
		}
		entries = append(entries, model.InboxEntry{Name: name})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return ScanResult{Entries: entries}, nil
}

// isRegular accepts regular files and symlinks; sockets, pipes and devices
// are left alone.
func isRegular(info os.FileInfo) bool {
	mode := info.Mode()
	return mode.IsRegular() || mode&os.ModeSymlink != 0
}
