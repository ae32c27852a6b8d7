package main

import (
	"fmt"

	"go.uber.org/zap"

	catalogapp "github.com/orderpad/backend/internal/application/catalog"
	orderingapp "github.com/orderpad/backend/internal/application/ordering"
	"github.com/orderpad/backend/internal/domain/shared"
	"github.com/orderpad/backend/internal/infrastructure/cache"
	"github.com/orderpad/backend/internal/infrastructure/config"
	csvimport "github.com/orderpad/backend/internal/infrastructure/import"
	"github.com/orderpad/backend/internal/infrastructure/logger"
	"github.com/orderpad/backend/internal/infrastructure/persistence"
	"github.com/orderpad/backend/internal/infrastructure/printing"
	"github.com/orderpad/backend/internal/infrastructure/spreadsheet"
)

// environment holds the services shared by every subcommand
type environment struct {
	logLevel string

	cfg      *config.Config
	log      *zap.Logger
	store    shared.KeyValueStore
	renderer *printing.ChromedpRenderer

	setup    *catalogapp.SetupService
	sessions *orderingapp.SessionService
	exports  *orderingapp.ExportService
}

func (e *environment) open() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	e.cfg = cfg

	e.log, err = logger.New(&logger.Config{
		Level:      e.logLevel,
		Format:     "console",
		Output:     "stderr",
		TimeFormat: logger.DefaultTimeFormat,
	})
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}

	e.store, err = cache.NewKeyValueStoreFactory(cfg.Store, cfg.Redis,
		cache.WithLogger(e.log),
		cache.WithSQLStore(func() (shared.KeyValueStore, error) {
			db, err := persistence.NewDatabase(&cfg.Database,
				persistence.WithGormLogger(logger.NewGormLogger(e.log, logger.GormLogLevel(e.logLevel), cfg.Database.SlowQueryThreshold)),
			)
			if err != nil {
				return nil, err
			}
			return persistence.NewDatabaseKeyValueStore(db, cfg.Store.KeyPrefix), nil
		}),
	).CreateStore()
	if err != nil {
		return fmt.Errorf("open override store: %w", err)
	}

	e.setup = catalogapp.NewSetupService(
		csvimport.NewFileSource(cfg.Catalog.Path, e.log),
		persistence.NewKVOverrideRepository(e.store, e.log),
		nil, e.log,
	)
	e.sessions = orderingapp.NewSessionService(e.setup, nil, e.log)

	// The browser is launched by the first render, so commands that never
	// print a PDF do not pay for it.
	e.renderer, err = printing.NewChromedpRenderer(printing.ChromedpConfigFrom(cfg.PDF, e.log))
	if err != nil {
		return fmt.Errorf("initialize pdf renderer: %w", err)
	}
	e.exports = orderingapp.NewExportService(e.setup,
		printing.NewOrderDocumentWriter(e.renderer, printing.WithWriterLogger(e.log)),
		spreadsheet.NewFullInventoryWriter(),
		orderingapp.WithExportLogger(e.log),
	)
	return nil
}

func (e *environment) close() error {
	var err error
	if e.renderer != nil {
		err = e.renderer.Close()
	}
	if e.store != nil {
		if cerr := e.store.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if e.log != nil {
		_ = logger.Sync(e.log)
	}
	return err
}
