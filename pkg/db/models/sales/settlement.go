package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

const SettlementsTableName = "settlements"

// Settlement is one invoice/settlement detail row keyed by order
// header/line. One order line fans out to zero, one, or many settlement
// rows; reconciliation pre-aggregates them to line grain before joining
// back to orders.
//
// FulfillmentCode and Origin coexist because the upstream feed changed its
// channel classification scheme at a cutoff date: older rows carry a
// fulfillment code, newer rows carry the order origin. The policy table in
// pkg/reports decides which field is authoritative for a given date.
type Settlement struct {
	OrderHeader     string          `ch:"order_header"`
	LineItem        uint32          `ch:"line_item"`
	SettledAt       time.Time       `ch:"settled_at"`
	Channel         string          `ch:"channel"`
	FulfillmentCode string          `ch:"fulfillment_code"`
	Origin          string          `ch:"origin"`
	Brand           string          `ch:"brand"`
	Country         string          `ch:"country"`
	TransactionType string          `ch:"transaction_type"`
	NetValue        decimal.Decimal `ch:"net_value"`
}

// SettlementColumns defines the settlements source table schema.
var SettlementColumns = []ColumnDef{
	{Name: "order_header", Type: "String", Codec: "ZSTD(1)"},
	{Name: "line_item", Type: "UInt32"},
	{Name: "settled_at", Type: "DateTime64(6)", Codec: "DoubleDelta, LZ4"},
	{Name: "channel", Type: "LowCardinality(String)"},
	{Name: "fulfillment_code", Type: "LowCardinality(String)"},
	{Name: "origin", Type: "LowCardinality(String)"},
	{Name: "brand", Type: "LowCardinality(String)"},
	{Name: "country", Type: "LowCardinality(String)"},
	{Name: "transaction_type", Type: "LowCardinality(String)"},
	{Name: "net_value", Type: "Decimal(18, 2)"},
}
