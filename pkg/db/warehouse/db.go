package warehouse

import (
	"context"
	"fmt"
	"time"

	"github.com/crestline-data/revlens/pkg/db/clickhouse"
	"github.com/crestline-data/revlens/pkg/utils"
	"go.uber.org/zap"
)

// DB is the sales warehouse store. It owns the source tables the report
// suite reads (subscriptions, customers, invoices, order lines,
// settlements) and exposes typed fetches plus batch loaders used by
// backfills and test fixtures. Reports never write; all mutation here is
// loading source data.
type DB struct {
	clickhouse.Client
	Name string
}

// New creates and initializes the warehouse database connection.
// Component selects the connection pool sizing ("reporter" or "loader").
func New(ctx context.Context, logger *zap.Logger, component string) (*DB, error) {
	dbName := clickhouse.SanitizeName(utils.Env("WAREHOUSE_DB", "sales_warehouse"))

	client, err := clickhouse.New(ctx, logger.With(
		zap.String("db", dbName),
		zap.String("component", component),
	), dbName, clickhouse.GetPoolConfigForComponent(component))
	if err != nil {
		return nil, err
	}

	db := &DB{
		Client: client,
		Name:   dbName,
	}

	if err := db.InitializeDB(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

// Close terminates the underlying ClickHouse connection.
func (db *DB) Close() error {
	return db.Db.Close()
}

// InitializeDB ensures the database and the source tables exist.
// Tables are created IF NOT EXISTS; in production deployments the warehouse
// usually already carries them and this is a no-op.
func (db *DB) InitializeDB(ctx context.Context) error {
	initStart := time.Now()

	if err := db.CreateDbIfNotExists(ctx, db.Name); err != nil {
		return fmt.Errorf("failed to create database %s: %w", db.Name, err)
	}

	initOps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"subscriptions", db.initSubscriptions},
		{"customers", db.initCustomers},
		{"invoices", db.initInvoices},
		{"order_lines", db.initOrderLines},
		{"settlements", db.initSettlements},
	}

	for _, op := range initOps {
		if err := op.fn(ctx); err != nil {
			return fmt.Errorf("init %s: %w", op.name, err)
		}
	}

	db.Logger.Info("Warehouse tables initialized",
		zap.String("database", db.Name),
		zap.Duration("took", time.Since(initStart)))

	return nil
}
