package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/securecheck/backend/internal/ingestion"
	"github.com/securecheck/backend/internal/query"
	"github.com/securecheck/backend/internal/storage/sqlstore"
	"github.com/securecheck/backend/pkg/config"
	appLogger "github.com/securecheck/backend/pkg/logger"
)

// environment is what every subcommand needs once flags are parsed.
type environment struct {
	configPath string
	cfg        *config.Config
	engine     *query.Engine
}

func (e *environment) setup(serving bool) error {
	cfg, err := config.Load(e.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Report commands print to stdout; keep logs out of their way.
	outputPath := cfg.Logging.OutputPath
	if !serving && outputPath == "stdout" {
		outputPath = "stderr"
	}
	if err := appLogger.Init(cfg.Logging.Level, cfg.Logging.Format, outputPath); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	store := sqlstore.NewClient(cfg.Store.Driver, cfg.Store.DSN())
	e.cfg = cfg
	e.engine = query.NewEngine(store, ingestion.NewLoader(), cfg.Extract.Path)

	appLogger.Debug("Environment ready",
		zap.String("store_driver", store.Driver()),
		zap.String("extract_path", cfg.Extract.Path),
	)
	return nil
}

func (e *environment) teardown() {
	appLogger.Sync()
}
