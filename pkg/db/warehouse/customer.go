package warehouse

import (
	"context"
	"fmt"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/crestline-data/revlens/pkg/db/clickhouse"
	"github.com/crestline-data/revlens/pkg/db/models/sales"
)

// initCustomers creates the customer master table.
// ReplacingMergeTree on customer_id keeps the latest master record when the
// feed re-delivers a customer.
func (db *DB) initCustomers(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s"."%s" (
			%s
		) ENGINE = %s
		ORDER BY (customer_id)
	`, db.Name, sales.CustomersTableName, sales.ColumnsToSchemaSQL(sales.CustomerColumns), clickhouse.Engine(clickhouse.ReplacingMergeTree, ""))

	return db.Exec(ctx, query)
}

// InsertCustomers loads customer master records in one batch.
func (db *DB) InsertCustomers(ctx context.Context, customers []*sales.Customer) error {
	if len(customers) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO "%s"."%s" (%s) VALUES`,
		db.Name, sales.CustomersTableName,
		strings.Join(sales.ColumnsToNameList(sales.CustomerColumns), ", "),
	)
	batch, err := db.PrepareBatch(ctx, query)
	if err != nil {
		return err
	}
	defer func(batch driver.Batch) {
		_ = batch.Abort()
	}(batch)

	for _, c := range customers {
		if err := batch.Append(c.CustomerID, c.Name, c.City, c.CreditLimit); err != nil {
			return err
		}
	}

	return batch.Send()
}

// Customers fetches all customer master records.
// FINAL collapses ReplacingMergeTree duplicates so every customer appears once.
func (db *DB) Customers(ctx context.Context) ([]sales.Customer, error) {
	query := fmt.Sprintf(`
		SELECT customer_id, name, city, credit_limit
		FROM "%s"."%s" FINAL
		ORDER BY customer_id
	`, db.Name, sales.CustomersTableName)

	var rows []sales.Customer
	if err := db.Select(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("fetch customers: %w", err)
	}

	return rows, nil
}
