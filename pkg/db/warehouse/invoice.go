package warehouse

import (
	"context"
	"fmt"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/crestline-data/revlens/pkg/db/clickhouse"
	"github.com/crestline-data/revlens/pkg/db/models/sales"
)

// initInvoices creates the invoice table.
func (db *DB) initInvoices(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s"."%s" (
			%s
		) ENGINE = %s
		ORDER BY (customer_id, created_at, invoice_id)
	`, db.Name, sales.InvoicesTableName, sales.ColumnsToSchemaSQL(sales.InvoiceColumns), clickhouse.Engine(clickhouse.MergeTree, ""))

	return db.Exec(ctx, query)
}

// InsertInvoices loads invoices in one batch.
func (db *DB) InsertInvoices(ctx context.Context, invoices []*sales.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO "%s"."%s" (%s) VALUES`,
		db.Name, sales.InvoicesTableName,
		strings.Join(sales.ColumnsToNameList(sales.InvoiceColumns), ", "),
	)
	batch, err := db.PrepareBatch(ctx, query)
	if err != nil {
		return err
	}
	defer func(batch driver.Batch) {
		_ = batch.Abort()
	}(batch)

	for _, inv := range invoices {
		if err := batch.Append(inv.InvoiceID, inv.CustomerID, inv.Amount, inv.CreatedAt); err != nil {
			return err
		}
	}

	return batch.Send()
}

// Invoices fetches all invoices ordered by creation time then ID, matching
// the first-invoice tie-break order the reports rely on.
func (db *DB) Invoices(ctx context.Context) ([]sales.Invoice, error) {
	query := fmt.Sprintf(`
		SELECT invoice_id, customer_id, amount, created_at
		FROM "%s"."%s"
		ORDER BY created_at, invoice_id
	`, db.Name, sales.InvoicesTableName)

	var rows []sales.Invoice
	if err := db.Select(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("fetch invoices: %w", err)
	}

	return rows, nil
}
