package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool          // include query variables in spans
	SlowQueryThresh time.Duration // default 200ms
	DBSystem        string        // sqlite or postgresql
}

// DefaultDBTracingConfig returns tracing disabled with a 200ms slow query threshold
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		SlowQueryThresh: 200 * time.Millisecond,
		DBSystem:        "postgresql",
	}
}

// DBTracingPlugin is a gorm.Plugin installing otelgorm plus slow query marking
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates the plugin. Pass it to persistence.WithPlugins.
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	if cfg.SlowQueryThresh == 0 {
		cfg.SlowQueryThresh = DefaultDBTracingConfig().SlowQueryThresh
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DBTracingPlugin{config: cfg, logger: logger}
}

// Name implements gorm.Plugin
func (p *DBTracingPlugin) Name() string {
	return "orderpad:tracing"
}

// Initialize implements gorm.Plugin
func (p *DBTracingPlugin) Initialize(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(p.config.DBSystem)}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}
	if err := p.registerCallbacks(db); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
		zap.String("db_system", p.config.DBSystem),
	)
	return nil
}

// registerCallbacks times every statement and annotates its span before
// otelgorm ends it
func (p *DBTracingPlugin) registerCallbacks(db *gorm.DB) error {
	cb := db.Callback()
	type hooks struct {
		before func(func(*gorm.DB)) error
		after  func(func(*gorm.DB)) error
	}
	ops := map[string]hooks{
		"create": {
			func(f func(*gorm.DB)) error { return cb.Create().Before("gorm:create").Register("otel_timing:before_create", f) },
			func(f func(*gorm.DB)) error {
				return cb.Create().After("gorm:create").Before("otel:after_create").Register("otel_slow_query:create", f)
			},
		},
		"query": {
			func(f func(*gorm.DB)) error { return cb.Query().Before("gorm:query").Register("otel_timing:before_query", f) },
			func(f func(*gorm.DB)) error {
				return cb.Query().After("gorm:query").Before("otel:after_query").Register("otel_slow_query:query", f)
			},
		},
		"update": {
			func(f func(*gorm.DB)) error { return cb.Update().Before("gorm:update").Register("otel_timing:before_update", f) },
			func(f func(*gorm.DB)) error {
				return cb.Update().After("gorm:update").Before("otel:after_update").Register("otel_slow_query:update", f)
			},
		},
		"delete": {
			func(f func(*gorm.DB)) error { return cb.Delete().Before("gorm:delete").Register("otel_timing:before_delete", f) },
			func(f func(*gorm.DB)) error {
				return cb.Delete().After("gorm:delete").Before("otel:after_delete").Register("otel_slow_query:delete", f)
			},
		},
		"row": {
			func(f func(*gorm.DB)) error { return cb.Row().Before("gorm:row").Register("otel_timing:before_row", f) },
			func(f func(*gorm.DB)) error {
				return cb.Row().After("gorm:row").Before("otel:after_row").Register("otel_slow_query:row", f)
			},
		},
		"raw": {
			func(f func(*gorm.DB)) error { return cb.Raw().Before("gorm:raw").Register("otel_timing:before_raw", f) },
			func(f func(*gorm.DB)) error {
				return cb.Raw().After("gorm:raw").Before("otel:after_raw").Register("otel_slow_query:raw", f)
			},
		},
	}
	for _, h := range ops {
		if err := h.before(markQueryStart); err != nil {
			return err
		}
		if err := h.after(p.afterQuery); err != nil {
			return err
		}
	}
	return nil
}

type contextKey string

const queryStartTimeKey contextKey = "otel_query_start_time"

func markQueryStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartTimeKey, time.Now())
	}
}

// afterQuery annotates the active span with table, row count, errors and slowness
func (p *DBTracingPlugin) afterQuery(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	if start, ok := ctx.Value(queryStartTimeKey).(time.Time); ok {
		if elapsed := time.Since(start); elapsed > p.config.SlowQueryThresh {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
			span.AddEvent("slow_query_warning", trace.WithAttributes(
				attribute.Int64("duration_ms", elapsed.Milliseconds()),
				attribute.Int64("threshold_ms", p.config.SlowQueryThresh.Milliseconds()),
			))
		}
	}
}

var _ gorm.Plugin = (*DBTracingPlugin)(nil)
