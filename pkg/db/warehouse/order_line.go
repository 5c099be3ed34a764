package warehouse

import (
	"context"
	"fmt"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/crestline-data/revlens/pkg/db/clickhouse"
	"github.com/crestline-data/revlens/pkg/db/models/sales"
)

// initOrderLines creates the sales-order line table.
// Both channel feeds (webshop and marketplace) land here tagged by channel,
// so the qualification rules live in one place downstream.
func (db *DB) initOrderLines(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s"."%s" (
			%s
		) ENGINE = %s
		PARTITION BY toYYYYMM(ordered_at)
		ORDER BY (order_header, line_item)
	`, db.Name, sales.OrderLinesTableName, sales.ColumnsToSchemaSQL(sales.OrderLineColumns), clickhouse.Engine(clickhouse.MergeTree, ""))

	return db.Exec(ctx, query)
}

// InsertOrderLines loads order lines in one batch.
func (db *DB) InsertOrderLines(ctx context.Context, lines []*sales.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO "%s"."%s" (%s) VALUES`,
		db.Name, sales.OrderLinesTableName,
		strings.Join(sales.ColumnsToNameList(sales.OrderLineColumns), ", "),
	)
	batch, err := db.PrepareBatch(ctx, query)
	if err != nil {
		return err
	}
	defer func(batch driver.Batch) {
		_ = batch.Abort()
	}(batch)

	for _, l := range lines {
		err = batch.Append(
			l.OrderHeader,
			l.LineItem,
			l.OrderedAt,
			l.Channel,
			l.Brand,
			l.Country,
			l.TransactionType,
			l.Demand,
			l.Backlog,
		)
		if err != nil {
			return err
		}
	}

	return batch.Send()
}

// OrderLines fetches all sales-order lines from both channels.
// Qualification (brand/country/transaction-type) happens in the
// reconciliation pipeline, not here, so the exclusion rules stay testable.
func (db *DB) OrderLines(ctx context.Context) ([]sales.OrderLine, error) {
	query := fmt.Sprintf(`
		SELECT order_header, line_item, ordered_at, channel, brand, country,
		       transaction_type, demand, backlog
		FROM "%s"."%s"
		ORDER BY order_header, line_item
	`, db.Name, sales.OrderLinesTableName)

	var rows []sales.OrderLine
	if err := db.Select(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("fetch order lines: %w", err)
	}

	return rows, nil
}
