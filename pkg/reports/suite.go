package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/crestline-data/revlens/pkg/db/models/sales"
	"github.com/crestline-data/revlens/pkg/utils"
	"github.com/puzpuzpuz/xsync/v4"
	"go.uber.org/zap"
)

// Source supplies the relations the report suite reads. The warehouse
// store implements it; tests use in-memory fixtures.
type Source interface {
	Subscriptions(ctx context.Context) ([]sales.Subscription, error)
	Customers(ctx context.Context) ([]sales.Customer, error)
	Invoices(ctx context.Context) ([]sales.Invoice, error)
	OrderLines(ctx context.Context) ([]sales.OrderLine, error)
	Settlements(ctx context.Context) ([]sales.Settlement, error)
}

// Suite bundles the six report pipelines over one source. Pipelines are
// independent read-only transformations, so they run on a bounded worker
// pool with no coordination beyond collecting results.
type Suite struct {
	Logger    *zap.Logger
	Source    Source
	Reconcile ReconcileConfig
	// Now anchors every open-ended reporting window; injectable for tests.
	Now func() time.Time
}

// NewSuite builds a suite with the production reconciliation defaults.
func NewSuite(logger *zap.Logger, source Source) (*Suite, error) {
	now := time.Now()
	cfg, err := DefaultReconcileConfig(now)
	if err != nil {
		return nil, err
	}
	return &Suite{
		Logger:    logger,
		Source:    source,
		Reconcile: cfg,
		Now:       time.Now,
	}, nil
}

// reportNames in output order.
var reportNames = []string{
	"active_customers",
	"daily_active_customers",
	"city_sales",
	"city_sales_over_threshold",
	"customer_first_invoice",
	"monthly_invoice_totals",
	"order_invoice_variance",
}

// Run executes every pipeline and returns the rendered tables in a fixed
// order. One failing pipeline fails the run; there is nothing to roll back
// because nothing is written.
func (s *Suite) Run(ctx context.Context) ([]*Table, error) {
	start := time.Now()
	now := s.Now()

	subs, err := s.Source.Subscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load subscriptions: %w", err)
	}
	customers, err := s.Source.Customers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	invoices, err := s.Source.Invoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("load invoices: %w", err)
	}
	orders, err := s.Source.OrderLines(ctx)
	if err != nil {
		return nil, fmt.Errorf("load order lines: %w", err)
	}
	settlements, err := s.Source.Settlements(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settlements: %w", err)
	}

	builders := map[string]func() *Table{
		"active_customers": func() *Table {
			return ActiveCountTable(now, ActiveCount(subs, now))
		},
		"daily_active_customers": func() *Table {
			spine := subscriptionSpine(subs, now)
			return ActiveSeriesTable(ActiveSeries(subs, spine))
		},
		"city_sales": func() *Table {
			return CitySalesTable("city_sales", CitySales(customers, invoices))
		},
		"city_sales_over_threshold": func() *Table {
			return CitySalesTable("city_sales_over_threshold", CitySalesOver(customers, invoices, CityThreshold))
		},
		"customer_first_invoice": func() *Table {
			return FirstInvoicesTable(FirstInvoices(customers, invoices))
		},
		"monthly_invoice_totals": func() *Table {
			return MonthlyInvoiceTable(MonthlyInvoiceTotals(invoices, now))
		},
		"order_invoice_variance": func() *Table {
			cfg := s.Reconcile
			cfg.Now = now
			return ReconcileTable(Reconcile(orders, settlements, cfg))
		},
	}

	pool := pond.NewPool(utils.EnvInt("REPORTS_MAX_PARALLELISM", 4))
	defer pool.StopAndWait()
	group := pool.NewGroupContext(ctx)

	results := xsync.NewMap[string, *Table]()
	for _, name := range reportNames {
		name := name
		build := builders[name]
		group.SubmitErr(func() error {
			reportStart := time.Now()
			table := build()
			results.Store(name, table)
			s.Logger.Debug("Report computed",
				zap.String("report", name),
				zap.Int("rows", len(table.Rows)),
				zap.Duration("took", time.Since(reportStart)))
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("report suite: %w", err)
	}

	tables := make([]*Table, 0, len(reportNames))
	for _, name := range reportNames {
		table, ok := results.Load(name)
		if !ok {
			return nil, fmt.Errorf("report %s produced no result", name)
		}
		tables = append(tables, table)
	}

	s.Logger.Info("Report suite finished",
		zap.Int("reports", len(tables)),
		zap.Duration("took", time.Since(start)))

	return tables, nil
}

// subscriptionSpine derives the daily spine from the earliest subscription
// start through now. No upper bound is supplied: open subscriptions must
// not enumerate future dates.
func subscriptionSpine(subs []sales.Subscription, now time.Time) []time.Time {
	if len(subs) == 0 {
		return nil
	}
	earliest := subs[0].StartAt
	for _, s := range subs[1:] {
		if s.StartAt.Before(earliest) {
			earliest = s.StartAt
		}
	}
	return DateSpine(earliest, nil, now)
}
