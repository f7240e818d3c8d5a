// Package insert places generated media into the user's working
// document tree on disk.
package insert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/multiplewords/studio-cli/internal/core/domain"
	"github.com/multiplewords/studio-cli/internal/core/ports/driven"
)

// Ensure FileInserter implements the interface.
var _ driven.DocumentInserter = (*FileInserter)(nil)

// FileInserter writes media files under a base directory, one
// subdirectory per media kind.
type FileInserter struct {
	baseDir string
}

// NewFileInserter creates an inserter rooted at baseDir. An empty
// baseDir falls back to ~/.studio/media.
func NewFileInserter(baseDir string) (*FileInserter, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".studio", "media")
	}
	return &FileInserter{baseDir: baseDir}, nil
}

// Insert writes the media bytes and returns the absolute path.
func (f *FileInserter) Insert(ctx context.Context, kind domain.MediaKind, data []byte, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty media payload", domain.ErrInvalidInput)
	}

	dir := filepath.Join(f.baseDir, string(kind))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create media directory: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}
	return path, nil
}
