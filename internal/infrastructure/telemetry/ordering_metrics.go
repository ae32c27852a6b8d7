package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics set is built without a meter
var ErrMeterNil = errors.New("telemetry: meter is nil")

// Outcome attribute values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// OrderingMetrics counts applied sessions, generated exports and setup edits.
// A nil *OrderingMetrics records nothing.
type OrderingMetrics struct {
	sessionsApplied  *Counter
	linesToOrder     *Histogram
	exportsGenerated *Counter
	exportDuration   *Histogram
	setupChanges     *Counter
}

// NewOrderingMetrics registers the instruments on meter
func NewOrderingMetrics(meter metric.Meter) (*OrderingMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &OrderingMetrics{}
	var err error

	if m.sessionsApplied, err = NewCounter(meter, "orderpad.sessions.applied",
		"Number of times recommendations were applied to a session", "{session}"); err != nil {
		return nil, err
	}
	if m.linesToOrder, err = NewHistogram(meter, HistogramOpts{
		Name:        "orderpad.sessions.lines_to_order",
		Description: "Items with a positive order quantity after applying recommendations",
		Unit:        "{item}",
		Boundaries:  []float64{0, 5, 10, 20, 40, 80, 160},
	}); err != nil {
		return nil, err
	}
	if m.exportsGenerated, err = NewCounter(meter, "orderpad.exports.generated",
		"Number of export documents generated", "{document}"); err != nil {
		return nil, err
	}
	if m.exportDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "orderpad.exports.duration",
		Description: "Time spent generating an export document",
		Unit:        "s",
		Boundaries:  ExportDurationBuckets,
	}); err != nil {
		return nil, err
	}
	if m.setupChanges, err = NewCounter(meter, "orderpad.setup.changes",
		"Number of persisted setup edits", "{change}"); err != nil {
		return nil, err
	}

	return m, nil
}

// RecordApply records one apply of recommendations
func (m *OrderingMetrics) RecordApply(ctx context.Context, dayType string, lines int) {
	if m == nil {
		return
	}
	m.sessionsApplied.Inc(ctx, AttrDayType.String(dayType))
	m.linesToOrder.Record(ctx, float64(lines), AttrDayType.String(dayType))
}

// RecordExport records one export attempt
func (m *OrderingMetrics) RecordExport(ctx context.Context, format string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.exportsGenerated.Inc(ctx, AttrExportFormat.String(format), AttrOutcome.String(outcome))
	m.exportDuration.RecordDuration(ctx, d, AttrExportFormat.String(format))
}

// RecordSetupChange records one persisted setup edit
func (m *OrderingMetrics) RecordSetupChange(ctx context.Context, action string) {
	if m == nil {
		return
	}
	m.setupChanges.Inc(ctx, AttrSetupAction.String(action))
}
