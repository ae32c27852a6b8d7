package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// ErrInvalidKey is returned for keys that would escape the archive directory
var ErrInvalidKey = errors.New("invalid archive key")

// FileSystemArchiveStorage stores exports below a local directory
type FileSystemArchiveStorage struct {
	baseDir string
	logger  *zap.Logger
}

// NewFileSystemArchiveStorage creates the directory if needed
func NewFileSystemArchiveStorage(baseDir string, logger *zap.Logger) (*FileSystemArchiveStorage, error) {
	if baseDir == "" {
		baseDir = "data/exports"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory %s: %w", baseDir, err)
	}
	return &FileSystemArchiveStorage{baseDir: baseDir, logger: logger}, nil
}

// Store writes data to {baseDir}/{key}
func (s *FileSystemArchiveStorage) Store(ctx context.Context, key string, data []byte, contentType string) (*StoredObject, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fullPath, err := s.resolve(key)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write archive file: %w", err)
	}

	s.logger.Info("Export archived",
		zap.String("path", fullPath),
		zap.Int("size", len(data)),
	)

	return &StoredObject{Key: key, URL: "file://" + filepath.ToSlash(fullPath), Size: int64(len(data))}, nil
}

func (s *FileSystemArchiveStorage) resolve(key string) (string, error) {
	if key == "" || filepath.IsAbs(key) || containsDotDot(key) {
		s.logger.Warn("blocked archive key", zap.String("key", key))
		return "", ErrInvalidKey
	}

	absBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base path: %w", err)
	}
	absPath, err := filepath.Abs(filepath.Join(s.baseDir, filepath.FromSlash(key)))
	if err != nil {
		return "", fmt.Errorf("failed to resolve file path: %w", err)
	}
	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", ErrInvalidKey
	}
	return absPath, nil
}

// containsDotDot checks the raw key for ".." components before any cleaning
func containsDotDot(key string) bool {
	parts := strings.FieldsFunc(key, func(r rune) bool {
		return r == '/' || r == filepath.Separator
	})
	return slices.Contains(parts, "..")
}

var _ ArchiveStorage = (*FileSystemArchiveStorage)(nil)
