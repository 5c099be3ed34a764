package warehouse

import (
	"context"
	"fmt"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/crestline-data/revlens/pkg/db/clickhouse"
	"github.com/crestline-data/revlens/pkg/db/models/sales"
)

// initSubscriptions creates the subscription history table. Re-delivered
// feed rows are tolerated as-is: the reports only count distinct customers,
// so duplicate intervals cannot change a result.
func (db *DB) initSubscriptions(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s"."%s" (
			%s
		) ENGINE = %s
		ORDER BY (customer_id, start_at)
	`, db.Name, sales.SubscriptionsTableName, sales.ColumnsToSchemaSQL(sales.SubscriptionColumns), clickhouse.Engine(clickhouse.MergeTree, ""))

	return db.Exec(ctx, query)
}

// InsertSubscriptions loads subscription intervals in one batch.
func (db *DB) InsertSubscriptions(ctx context.Context, subs []*sales.Subscription) error {
	if len(subs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO "%s"."%s" (%s) VALUES`,
		db.Name, sales.SubscriptionsTableName,
		strings.Join(sales.ColumnsToNameList(sales.SubscriptionColumns), ", "),
	)
	batch, err := db.PrepareBatch(ctx, query)
	if err != nil {
		return err
	}
	defer func(batch driver.Batch) {
		_ = batch.Abort()
	}(batch)

	for _, s := range subs {
		if err := batch.Append(s.CustomerID, s.StartAt, s.EndAt); err != nil {
			return err
		}
	}

	return batch.Send()
}

// Subscriptions fetches the full subscription history, ordered for
// deterministic pipeline input.
func (db *DB) Subscriptions(ctx context.Context) ([]sales.Subscription, error) {
	query := fmt.Sprintf(`
		SELECT customer_id, start_at, end_at
		FROM "%s"."%s"
		ORDER BY customer_id, start_at
	`, db.Name, sales.SubscriptionsTableName)

	var rows []sales.Subscription
	if err := db.Select(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("fetch subscriptions: %w", err)
	}

	return rows, nil
}
