package catalog

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/orderpad/backend/internal/domain/catalog"
	"github.com/orderpad/backend/internal/domain/shared"
	csvimport "github.com/orderpad/backend/internal/infrastructure/import"
	"github.com/orderpad/backend/internal/infrastructure/telemetry"
)

// CSVContentType is the MIME type of the re-exported catalog
const CSVContentType = "text/csv; charset=utf-8"

// Setup actions reported to metrics
const (
	ActionUpdateRecommendation = "update_recommendation"
	ActionMoveItem             = "move_item"
	ActionReorderItems         = "reorder_items"
	ActionAddItem              = "add_item"
	ActionRemoveItem           = "remove_item"
	ActionReset                = "reset"
)

func errUnknownDayType(raw string) error {
	return shared.Errorf(shared.ErrInvalidInput, "Unknown day type %q", raw)
}

// SetupService edits the catalog on top of the base file. Edits are stored as
// overrides; the base file is never rewritten.
type SetupService struct {
	source    catalog.Source
	overrides catalog.OverrideRepository
	metrics   *telemetry.OrderingMetrics
	logger    *zap.Logger

	// mu serialises read-modify-write of the override documents
	mu   sync.Mutex
	base catalog.Catalog
}

// NewSetupService creates a new SetupService. metrics may be nil.
func NewSetupService(
	source catalog.Source,
	overrides catalog.OverrideRepository,
	metrics *telemetry.OrderingMetrics,
	logger *zap.Logger,
) *SetupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SetupService{
		source:    source,
		overrides: overrides,
		metrics:   metrics,
		logger:    logger,
	}
}

// FileName returns the base catalog's file name
func (s *SetupService) FileName() string {
	return s.source.FileName()
}

// Catalog returns the effective catalog: the saved item list (or the base
// file when none is saved) with recommendation overrides applied
func (s *SetupService) Catalog(ctx context.Context) (catalog.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.effective(ctx)
}

// UpdateRecommendation overrides one item's recommended quantity for one day
// type. Negative quantities are stored as 0.
func (s *SetupService) UpdateRecommendation(ctx context.Context, req UpdateRecommendationRequest) (catalog.Catalog, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "setup", "update_recommendation",
		telemetry.SpanAttrItemName, req.Name,
		telemetry.SpanAttrDayType, req.DayType,
	)
	defer span.End()

	day, ok := catalog.ParseDayType(req.DayType)
	if !ok {
		return nil, errUnknownDayType(req.DayType)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.items(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if items.IndexOf(req.Name) < 0 {
		return nil, shared.Errorf(shared.ErrNotFound, "Item %q not found", req.Name)
	}

	recs, err := s.overrides.Recommendations(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load recommendation overrides: %w", err)
	}
	if err := s.overrides.SaveRecommendations(ctx, recs.With(req.Name, day, req.Quantity)); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save recommendation overrides: %w", err)
	}

	s.changed(ctx, ActionUpdateRecommendation, zap.String("item", req.Name), zap.String("day_type", day.String()))
	return s.effective(ctx)
}

// MoveItem moves one item to a new position
func (s *SetupService) MoveItem(ctx context.Context, req MoveItemRequest) (catalog.Catalog, error) {
	if req.From == nil || req.To == nil {
		return nil, shared.Errorf(shared.ErrInvalidInput, "Both from and to are required")
	}
	return s.editItems(ctx, ActionMoveItem, func(items catalog.Catalog) (catalog.Catalog, error) {
		return items.Move(*req.From, *req.To)
	}, zap.Int("from", *req.From), zap.Int("to", *req.To))
}

// ReorderItems arranges the catalog in the given name order
func (s *SetupService) ReorderItems(ctx context.Context, req ReorderItemsRequest) (catalog.Catalog, error) {
	return s.editItems(ctx, ActionReorderItems, func(items catalog.Catalog) (catalog.Catalog, error) {
		return items.Reorder(req.Names)
	}, zap.Int("items", len(req.Names)))
}

// AddItem appends a new item
func (s *SetupService) AddItem(ctx context.Context, req AddItemRequest) (catalog.Catalog, error) {
	item, err := req.toItem()
	if err != nil {
		return nil, err
	}
	return s.editItems(ctx, ActionAddItem, func(items catalog.Catalog) (catalog.Catalog, error) {
		return items.Add(item)
	}, zap.String("item", item.Name))
}

// RemoveItem drops an item together with its recommendation overrides
func (s *SetupService) RemoveItem(ctx context.Context, name string) (catalog.Catalog, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "setup", "remove_item", telemetry.SpanAttrItemName, name)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.items(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	updated, err := items.Remove(name)
	if err != nil {
		return nil, err
	}
	if err := s.overrides.SaveItems(ctx, updated); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save items: %w", err)
	}

	recs, err := s.overrides.Recommendations(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load recommendation overrides: %w", err)
	}
	if _, ok := recs[name]; ok {
		if err := s.overrides.SaveRecommendations(ctx, recs.Without(name)); err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to save recommendation overrides: %w", err)
		}
	}

	s.changed(ctx, ActionRemoveItem, zap.String("item", name))
	return s.effective(ctx)
}

// ExportCSV writes the effective catalog in the base file's format and
// returns it with the base file's name
func (s *SetupService) ExportCSV(ctx context.Context) ([]byte, string, error) {
	c, err := s.Catalog(ctx)
	if err != nil {
		return nil, "", err
	}
	var buf bytes.Buffer
	if err := csvimport.WriteCatalog(&buf, c); err != nil {
		return nil, "", fmt.Errorf("failed to write catalog: %w", err)
	}
	return buf.Bytes(), s.source.FileName(), nil
}

// Reset discards every saved override
func (s *SetupService) Reset(ctx context.Context) (catalog.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.overrides.Clear(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear overrides: %w", err)
	}
	s.changed(ctx, ActionReset)
	return s.effective(ctx)
}

func (s *SetupService) editItems(
	ctx context.Context,
	action string,
	edit func(catalog.Catalog) (catalog.Catalog, error),
	fields ...zap.Field,
) (catalog.Catalog, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "setup", action)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.items(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	updated, err := edit(items)
	if err != nil {
		return nil, err
	}
	if err := s.overrides.SaveItems(ctx, updated); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save items: %w", err)
	}

	s.changed(ctx, action, fields...)
	return s.effective(ctx)
}

func (s *SetupService) changed(ctx context.Context, action string, fields ...zap.Field) {
	s.metrics.RecordSetupChange(ctx, action)
	s.logger.Info("Setup changed", append([]zap.Field{zap.String("action", action)}, fields...)...)
}

// items returns the saved item list, or the base catalog when none is saved.
// Callers hold s.mu.
func (s *SetupService) items(ctx context.Context) (catalog.Catalog, error) {
	saved, ok, err := s.overrides.Items(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load saved items: %w", err)
	}
	if ok {
		return saved, nil
	}
	if s.base == nil {
		base, err := s.source.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load base catalog: %w", err)
		}
		s.base = base
	}
	return s.base.Clone(), nil
}

// effective returns items with recommendation overrides applied. Callers hold s.mu.
func (s *SetupService) effective(ctx context.Context) (catalog.Catalog, error) {
	items, err := s.items(ctx)
	if err != nil {
		return nil, err
	}
	recs, err := s.overrides.Recommendations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load recommendation overrides: %w", err)
	}
	return recs.Apply(items), nil
}
