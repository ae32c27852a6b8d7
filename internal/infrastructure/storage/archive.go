// Package storage archives generated export documents to object storage or
// the local file system.
package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	infraconfig "github.com/orderpad/backend/internal/infrastructure/config"
)

// ArchiveStorage keeps a copy of every generated export
type ArchiveStorage interface {
	// Store saves data under key and reports where it went
	Store(ctx context.Context, key string, data []byte, contentType string) (*StoredObject, error)
}

// StoredObject describes an archived document
type StoredObject struct {
	Key  string
	URL  string
	Size int64
}

// ArchiveKey builds the object key for an export: {prefix}{yyyy}/{mm}/{id}-{fileName}
func ArchiveKey(prefix, fileName string, at time.Time, id uuid.UUID) string {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix + path.Join(
		fmt.Sprintf("%04d", at.Year()),
		fmt.Sprintf("%02d", int(at.Month())),
		id.String()+"-"+path.Base(fileName),
	)
}

// NewArchiveStorage builds the archive selected by configuration. It returns
// nil when archiving is disabled.
func NewArchiveStorage(ctx context.Context, cfg infraconfig.ArchiveConfig, logger *zap.Logger) (ArchiveStorage, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Driver {
	case infraconfig.ArchiveDriverS3:
		s, err := NewS3ArchiveStorage(&cfg, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s, nil
	case infraconfig.ArchiveDriverFilesystem, "":
		return NewFileSystemArchiveStorage(cfg.Dir, logger)
	default:
		return nil, fmt.Errorf("unknown archive driver %q", cfg.Driver)
	}
}
