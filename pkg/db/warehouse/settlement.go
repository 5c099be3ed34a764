package warehouse

import (
	"context"
	"fmt"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/crestline-data/revlens/pkg/db/clickhouse"
	"github.com/crestline-data/revlens/pkg/db/models/sales"
)

// initSettlements creates the invoice/settlement detail table.
func (db *DB) initSettlements(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s"."%s" (
			%s
		) ENGINE = %s
		PARTITION BY toYYYYMM(settled_at)
		ORDER BY (order_header, line_item, settled_at)
	`, db.Name, sales.SettlementsTableName, sales.ColumnsToSchemaSQL(sales.SettlementColumns), clickhouse.Engine(clickhouse.MergeTree, ""))

	return db.Exec(ctx, query)
}

// InsertSettlements loads settlement detail rows in one batch.
func (db *DB) InsertSettlements(ctx context.Context, settlements []*sales.Settlement) error {
	if len(settlements) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO "%s"."%s" (%s) VALUES`,
		db.Name, sales.SettlementsTableName,
		strings.Join(sales.ColumnsToNameList(sales.SettlementColumns), ", "),
	)
	batch, err := db.PrepareBatch(ctx, query)
	if err != nil {
		return err
	}
	defer func(batch driver.Batch) {
		_ = batch.Abort()
	}(batch)

	for _, s := range settlements {
		err = batch.Append(
			s.OrderHeader,
			s.LineItem,
			s.SettledAt,
			s.Channel,
			s.FulfillmentCode,
			s.Origin,
			s.Brand,
			s.Country,
			s.TransactionType,
			s.NetValue,
		)
		if err != nil {
			return err
		}
	}

	return batch.Send()
}

// Settlements fetches all settlement detail rows from both channels.
func (db *DB) Settlements(ctx context.Context) ([]sales.Settlement, error) {
	query := fmt.Sprintf(`
		SELECT order_header, line_item, settled_at, channel, fulfillment_code,
		       origin, brand, country, transaction_type, net_value
		FROM "%s"."%s"
		ORDER BY order_header, line_item, settled_at
	`, db.Name, sales.SettlementsTableName)

	var rows []sales.Settlement
	if err := db.Select(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("fetch settlements: %w", err)
	}

	return rows, nil
}
