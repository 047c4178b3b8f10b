// Package storage persists generated icons to the local filesystem with
// conflict-safe naming.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidFilename is returned when the filename fails security
	// validation (path separators, traversal, null bytes).
	ErrInvalidFilename = errors.New("invalid filename")

	// ErrTooManyConflicts is returned when conflict suffixing is exhausted.
	ErrTooManyConflicts = errors.New("too many name conflicts")
)

// maxConflictSuffix bounds the -1, -2, ... probe loop.
const maxConflictSuffix = 100

// ValidateName checks that name is safe to use as a bare filename.
//
// Rules:
//   - non-empty, at most 255 characters
//   - no path separators or null bytes
//   - not "." or ".."
func ValidateName(name string) error {
	if name == "" || len(name) > 255 {
		return ErrInvalidFilename
	}
	for _, c := range name {
		if c == '/' || c == '\\' || c == '\x00' {
			return ErrInvalidFilename
		}
	}
	if name == "." || name == ".." {
		return ErrInvalidFilename
	}
	return nil
}

// Store writes icon files beneath a base directory.
type Store struct {
	baseDir string
	logger  *slog.Logger
}

// New creates a Store rooted at baseDir. The directory is created on first
// save, not here, so constructing a Store never touches the disk.
func New(baseDir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{baseDir: baseDir, logger: logger}
}

// Save writes content as <dir>/<name>.svg and returns the final path.
//
// dir overrides the store's base directory when non-empty. If the target
// name is taken, Save probes name-1.svg, name-2.svg, and so on; creation uses
// O_EXCL so concurrent savers (including other processes) cannot claim the
// same path.
func (s *Store) Save(name, dir, content string) (string, error) {
	name = strings.TrimSpace(name)
	if strings.HasSuffix(strings.ToLower(name), ".svg") {
		name = name[:len(name)-len(".svg")]
	}
	if err := ValidateName(name); err != nil {
		return "", fmt.Errorf("filename %q: %w", name, err)
	}

	targetDir := s.baseDir
	if dir != "" {
		targetDir = dir
	}
	if err := os.MkdirAll(targetDir, 0o750); err != nil {
		return "", fmt.Errorf("create output directory %s: %w", targetDir, err)
	}

	for i := 0; i <= maxConflictSuffix; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d", name, i)
		}
		path := filepath.Join(targetDir, candidate+".svg")

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create %s: %w", path, err)
		}

		if _, err := f.WriteString(content); err != nil {
			f.Close()
			os.Remove(path)
			return "", fmt.Errorf("write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("close %s: %w", path, err)
		}

		s.logger.Debug("saved icon", "path", path, "bytes", len(content))
		return path, nil
	}

	return "", fmt.Errorf("saving %s.svg in %s: %w", name, targetDir, ErrTooManyConflicts)
}
