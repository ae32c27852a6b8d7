package ordering

import (
	"context"

	"go.uber.org/zap"

	"github.com/orderpad/backend/internal/domain/catalog"
	"github.com/orderpad/backend/internal/domain/ordering"
	"github.com/orderpad/backend/internal/domain/shared"
	"github.com/orderpad/backend/internal/infrastructure/telemetry"
)

// CatalogProvider returns the effective catalog
type CatalogProvider interface {
	Catalog(ctx context.Context) (catalog.Catalog, error)
}

// SessionService applies ordering operations to client-held sessions. It keeps
// no session state; every method takes a session and returns the next one.
type SessionService struct {
	catalogs CatalogProvider
	metrics  *telemetry.OrderingMetrics
	logger   *zap.Logger
}

// NewSessionService creates a new SessionService. metrics may be nil.
func NewSessionService(catalogs CatalogProvider, metrics *telemetry.OrderingMetrics, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		catalogs: catalogs,
		metrics:  metrics,
		logger:   logger,
	}
}

// Catalog returns the effective catalog
func (s *SessionService) Catalog(ctx context.Context) (catalog.Catalog, error) {
	return s.catalogs.Catalog(ctx)
}

// Start opens an empty session for the day type
func (s *SessionService) Start(ctx context.Context, dayType string) (ordering.Session, error) {
	day, ok := catalog.ParseDayType(dayType)
	if !ok {
		return ordering.Session{}, shared.Errorf(shared.ErrInvalidInput, "Unknown day type %q", dayType)
	}
	session, err := ordering.NewSession(day)
	if err != nil {
		return ordering.Session{}, err
	}
	s.logger.Debug("Session started", zap.String("session_id", session.ID.String()), zap.String("day_type", day.String()))
	return session, nil
}

// ChangeDayType switches the day type, clearing inventory and orders
func (s *SessionService) ChangeDayType(_ context.Context, session ordering.Session, dayType string) (ordering.Session, error) {
	day, ok := catalog.ParseDayType(dayType)
	if !ok {
		return ordering.Session{}, shared.Errorf(shared.ErrInvalidInput, "Unknown day type %q", dayType)
	}
	return session.WithDayType(day)
}

// UpdateInventory records stock on hand for a catalog item
func (s *SessionService) UpdateInventory(ctx context.Context, session ordering.Session, name string, value ordering.Entry) (ordering.Session, error) {
	if err := s.requireItem(ctx, name); err != nil {
		return ordering.Session{}, err
	}
	return session.Normalize().WithInventory(name, ordering.ParseEntry(value.String())), nil
}

// UpdateOrder sets an explicit order quantity for a catalog item
func (s *SessionService) UpdateOrder(ctx context.Context, session ordering.Session, name string, value ordering.Entry) (ordering.Session, error) {
	if err := s.requireItem(ctx, name); err != nil {
		return ordering.Session{}, err
	}
	return session.Normalize().WithOrder(name, ordering.ParseEntry(value.String())), nil
}

// UpdateNote attaches a note to a catalog item
func (s *SessionService) UpdateNote(ctx context.Context, session ordering.Session, name, note string) (ordering.Session, error) {
	if err := s.requireItem(ctx, name); err != nil {
		return ordering.Session{}, err
	}
	return session.Normalize().WithNote(name, note), nil
}

// UpdateFinalNote sets the note printed under the document date
func (s *SessionService) UpdateFinalNote(_ context.Context, session ordering.Session, note string) ordering.Session {
	return session.Normalize().WithFinalNote(note)
}

// ToggleDoNotRecommend pins or releases an item's order quantity
func (s *SessionService) ToggleDoNotRecommend(ctx context.Context, session ordering.Session, name string, on bool) (ordering.Session, error) {
	if err := s.requireItem(ctx, name); err != nil {
		return ordering.Session{}, err
	}
	return session.Normalize().WithDoNotRecommend(name, on), nil
}

// Apply fills in order quantities from the recommendations for the session's
// day type. Explicit orders are kept once normalized. Every operation here
// normalizes the incoming session, since clients send it back verbatim.
func (s *SessionService) Apply(ctx context.Context, session ordering.Session) (ordering.Session, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "session", "apply",
		telemetry.SpanAttrDayType, session.DayType.String(),
	)
	defer span.End()

	if !session.DayType.IsValid() {
		return ordering.Session{}, shared.Errorf(shared.ErrInvalidInput, "Unknown day type %q", session.DayType)
	}

	c, err := s.catalogs.Catalog(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return ordering.Session{}, err
	}

	applied := ordering.Reconcile(c, session.Normalize())

	lines := 0
	for _, item := range c {
		if applied.Orders[item.Name].IsPositive() {
			lines++
		}
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrItemCount, len(c),
		telemetry.SpanAttrOrderLines, lines,
	)
	s.metrics.RecordApply(ctx, session.DayType.String(), lines)
	s.logger.Info("Recommendations applied",
		zap.String("session_id", session.ID.String()),
		zap.String("day_type", session.DayType.String()),
		zap.Int("items", len(c)),
		zap.Int("order_lines", lines),
	)

	return applied, nil
}

// View lays the session out against the current catalog
func (s *SessionService) View(ctx context.Context, session ordering.Session) (SessionResponse, error) {
	c, err := s.catalogs.Catalog(ctx)
	if err != nil {
		return SessionResponse{}, err
	}
	return NewSessionResponse(c, session.Normalize()), nil
}

func (s *SessionService) requireItem(ctx context.Context, name string) error {
	c, err := s.catalogs.Catalog(ctx)
	if err != nil {
		return err
	}
	if c.IndexOf(name) < 0 {
		return shared.Errorf(shared.ErrNotFound, "Item %q not found", name)
	}
	return nil
}
