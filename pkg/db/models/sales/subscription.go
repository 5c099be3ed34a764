package sales

import (
	"time"
)

const SubscriptionsTableName = "subscriptions"

// Subscription is one customer subscription interval.
// A customer may hold several overlapping subscriptions; reports must not
// collapse them except through distinct-customer counting.
//
// EndAt is nil while the subscription is still open. The interval is
// half-open: a subscription is active on date D when StartAt <= D and
// (EndAt is nil or EndAt > D). An EndAt landing exactly on midnight of D
// means the customer is NOT active on D.
type Subscription struct {
	CustomerID string     `ch:"customer_id"`
	StartAt    time.Time  `ch:"start_at"`
	EndAt      *time.Time `ch:"end_at"`
}

// SubscriptionColumns defines the subscriptions source table schema.
var SubscriptionColumns = []ColumnDef{
	{Name: "customer_id", Type: "String", Codec: "ZSTD(1)"},
	{Name: "start_at", Type: "DateTime64(6)", Codec: "DoubleDelta, LZ4"},
	{Name: "end_at", Type: "Nullable(DateTime64(6))", Codec: "DoubleDelta, LZ4"},
}
