package reporter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/crestline-data/revlens/pkg/db/warehouse"
	"github.com/crestline-data/revlens/pkg/logging"
	"github.com/crestline-data/revlens/pkg/reports"
	"github.com/crestline-data/revlens/pkg/utils"
)

type App struct {
	Logger    *zap.Logger
	Warehouse *warehouse.DB
	Suite     *reports.Suite
	OutputDir string
}

// Initialize initializes the application.
func Initialize(ctx context.Context) *App {
	logger, err := logging.New()
	if err != nil {
		// nothing else to do here, we'll just log to stderr
		panic(err)
	}

	wh, err := warehouse.New(ctx, logger, "reporter")
	if err != nil {
		logger.Fatal("Unable to connect to warehouse", zap.Error(err))
	}

	suite, err := reports.NewSuite(logger, wh)
	if err != nil {
		logger.Fatal("Unable to build report suite", zap.Error(err))
	}

	return &App{
		Logger:    logger,
		Warehouse: wh,
		Suite:     suite,
		OutputDir: utils.Env("REPORTS_OUTPUT_DIR", "reports"),
	}
}

// Run executes the suite once and writes one CSV file per report.
func (a *App) Run(ctx context.Context) error {
	start := time.Now()

	tables, err := a.Suite.Run(ctx)
	if err != nil {
		return fmt.Errorf("run report suite: %w", err)
	}

	if err := os.MkdirAll(a.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for _, table := range tables {
		if err := a.writeTable(table); err != nil {
			return err
		}
	}

	a.Logger.Info("Reports written",
		zap.Int("reports", len(tables)),
		zap.String("dir", a.OutputDir),
		zap.Duration("took", time.Since(start)))
	return nil
}

func (a *App) writeTable(table *reports.Table) error {
	path := filepath.Join(a.OutputDir, table.Name+".csv")

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := table.WriteCSV(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	a.Logger.Debug("Report written", zap.String("path", path), zap.Int("rows", len(table.Rows)))
	return nil
}

// Stop closes the warehouse connection.
func (a *App) Stop() {
	a.Warehouse.Close()
	a.Logger.Info("さようなら!")
}
