package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

const OrderLinesTableName = "order_lines"

// Channel names used across order and settlement feeds.
// ChannelWebshop is the internal channel; ChannelMarketplace covers
// externally fulfilled orders.
const (
	ChannelWebshop     = "webshop"
	ChannelMarketplace = "marketplace"
)

// Transaction types appearing on order lines and settlements.
const (
	TxnTypeSale   = "sale"
	TxnTypeReturn = "return"
)

// OrderLine is one sales-order line at order-header/line grain.
// OrderedAt is stored in UTC; reconciliation converts to the reporting
// zone before any day or month bucketing.
type OrderLine struct {
	OrderHeader     string          `ch:"order_header"`
	LineItem        uint32          `ch:"line_item"`
	OrderedAt       time.Time       `ch:"ordered_at"`
	Channel         string          `ch:"channel"`
	Brand           string          `ch:"brand"`
	Country         string          `ch:"country"`
	TransactionType string          `ch:"transaction_type"`
	Demand          decimal.Decimal `ch:"demand"`
	Backlog         decimal.Decimal `ch:"backlog"`
}

// OrderLineColumns defines the order_lines source table schema.
var OrderLineColumns = []ColumnDef{
	{Name: "order_header", Type: "String", Codec: "ZSTD(1)"},
	{Name: "line_item", Type: "UInt32"},
	{Name: "ordered_at", Type: "DateTime64(6)", Codec: "DoubleDelta, LZ4"},
	{Name: "channel", Type: "LowCardinality(String)"},
	{Name: "brand", Type: "LowCardinality(String)"},
	{Name: "country", Type: "LowCardinality(String)"},
	{Name: "transaction_type", Type: "LowCardinality(String)"},
	{Name: "demand", Type: "Decimal(18, 2)"},
	{Name: "backlog", Type: "Decimal(18, 2)"},
}
