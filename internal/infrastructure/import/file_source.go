package csvimport

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/orderpad/backend/internal/domain/catalog"
)

// FileSource loads the base catalog from a CSV file on disk
type FileSource struct {
	path   string
	logger *zap.Logger
}

// NewFileSource creates a FileSource for path
func NewFileSource(path string, logger *zap.Logger) *FileSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSource{path: path, logger: logger}
}

// Load implements catalog.Source
func (s *FileSource) Load(ctx context.Context) (catalog.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	res, err := ParseCatalogDetailed(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", s.path, err)
	}

	for _, issue := range res.Issues {
		s.logger.Warn("Catalog row issue",
			zap.String("file", s.FileName()),
			zap.Int("row", issue.Row),
			zap.String("column", issue.Column),
			zap.String("code", issue.Code),
			zap.String("value", issue.Value),
			zap.String("message", issue.Message),
		)
	}
	s.logger.Info("Catalog loaded",
		zap.String("file", s.FileName()),
		zap.Int("items", len(res.Catalog)),
		zap.Int("issues", len(res.Issues)),
	)

	return res.Catalog, nil
}

// FileName implements catalog.Source
func (s *FileSource) FileName() string {
	return filepath.Base(s.path)
}

var _ catalog.Source = (*FileSource)(nil)
