package ordering

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orderpad/backend/internal/domain/ordering"
	"github.com/orderpad/backend/internal/infrastructure/printing"
	"github.com/orderpad/backend/internal/infrastructure/spreadsheet"
	"github.com/orderpad/backend/internal/infrastructure/storage"
	"github.com/orderpad/backend/internal/infrastructure/telemetry"
)

// Export formats
const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// OrderDocumentWriter renders an order sheet to PDF
type OrderDocumentWriter interface {
	Write(ctx context.Context, sheet *ordering.OrderSheet) (*printing.OrderDocument, error)
}

// InventoryWorkbookWriter renders the full inventory workbook
type InventoryWorkbookWriter interface {
	Write(rows []ordering.InventoryRow) ([]byte, error)
}

// ExportService produces the order document and the full inventory workbook
type ExportService struct {
	catalogs      CatalogProvider
	pdf           OrderDocumentWriter
	xlsx          InventoryWorkbookWriter
	archive       storage.ArchiveStorage
	archivePrefix string
	now           func() time.Time
	metrics       *telemetry.OrderingMetrics
	logger        *zap.Logger
}

// ExportOption configures an ExportService
type ExportOption func(*ExportService)

// WithArchive keeps a copy of every export under prefix
func WithArchive(archive storage.ArchiveStorage, prefix string) ExportOption {
	return func(s *ExportService) {
		s.archive = archive
		s.archivePrefix = prefix
	}
}

// WithClock sets the source of the document date
func WithClock(now func() time.Time) ExportOption {
	return func(s *ExportService) {
		s.now = now
	}
}

// WithExportMetrics records export counts and durations
func WithExportMetrics(m *telemetry.OrderingMetrics) ExportOption {
	return func(s *ExportService) {
		s.metrics = m
	}
}

// WithExportLogger sets the logger
func WithExportLogger(l *zap.Logger) ExportOption {
	return func(s *ExportService) {
		s.logger = l
	}
}

// NewExportService creates a new ExportService
func NewExportService(catalogs CatalogProvider, pdf OrderDocumentWriter, xlsx InventoryWorkbookWriter, opts ...ExportOption) *ExportService {
	s := &ExportService{
		catalogs: catalogs,
		pdf:      pdf,
		xlsx:     xlsx,
		now:      time.Now,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OrderDocument renders the items with a positive order quantity, grouped by
// category. The session must have been applied.
func (s *ExportService) OrderDocument(ctx context.Context, session ordering.Session) (_ *Artifact, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "export", "order_document",
		telemetry.SpanAttrExportFormat, FormatPDF,
	)
	defer span.End()
	start := time.Now()
	defer func() {
		s.metrics.RecordExport(ctx, FormatPDF, time.Since(start), err)
		telemetry.RecordError(span, err)
	}()

	c, err := s.catalogs.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	sheet, err := ordering.BuildOrderSheet(c, session, s.now())
	if err != nil {
		return nil, err
	}
	doc, err := s.pdf.Write(ctx, sheet)
	if err != nil {
		return nil, err
	}

	artifact := &Artifact{
		FileName:    doc.FileName,
		ContentType: printing.PDFContentType,
		Data:        doc.Data,
		Pages:       doc.Pages,
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrFileName, artifact.FileName,
		telemetry.SpanAttrOrderLines, sheet.LineCount(),
	)
	s.archiveCopy(ctx, artifact)
	return artifact, nil
}

// FullInventory lists every catalog item with its inventory and order entries
func (s *ExportService) FullInventory(ctx context.Context, session ordering.Session) (_ *Artifact, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "export", "full_inventory",
		telemetry.SpanAttrExportFormat, FormatXLSX,
	)
	defer span.End()
	start := time.Now()
	defer func() {
		s.metrics.RecordExport(ctx, FormatXLSX, time.Since(start), err)
		telemetry.RecordError(span, err)
	}()

	c, err := s.catalogs.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	data, err := s.xlsx.Write(ordering.InventoryRows(c, session))
	if err != nil {
		return nil, err
	}

	artifact := &Artifact{
		FileName:    ordering.FullInventoryFileName(s.now()),
		ContentType: spreadsheet.XLSXContentType,
		Data:        data,
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrFileName, artifact.FileName,
		telemetry.SpanAttrItemCount, len(c),
	)
	s.archiveCopy(ctx, artifact)
	return artifact, nil
}

// archiveCopy stores a copy when archiving is configured. A failed copy is
// logged and does not fail the export.
func (s *ExportService) archiveCopy(ctx context.Context, a *Artifact) {
	if s.archive == nil {
		return
	}
	key := storage.ArchiveKey(s.archivePrefix, a.FileName, s.now(), uuid.New())
	obj, err := s.archive.Store(ctx, key, a.Data, a.ContentType)
	if err != nil {
		s.logger.Warn("Failed to archive export",
			zap.String("file_name", a.FileName),
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}
	a.ArchiveKey = obj.Key
	a.ArchiveURL = obj.URL
	s.logger.Info("Export archived",
		zap.String("file_name", a.FileName),
		zap.String("key", obj.Key),
		zap.Int64("size", obj.Size),
	)
}
