package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

const InvoicesTableName = "invoices"

// Invoice is one customer invoice.
// InvoiceID is the deterministic tie-breaker when two invoices share the
// same creation timestamp (lowest ID wins "first invoice").
type Invoice struct {
	InvoiceID  uint64          `ch:"invoice_id"`
	CustomerID string          `ch:"customer_id"`
	Amount     decimal.Decimal `ch:"amount"`
	CreatedAt  time.Time       `ch:"created_at"`
}

// InvoiceColumns defines the invoices source table schema.
var InvoiceColumns = []ColumnDef{
	{Name: "invoice_id", Type: "UInt64", Codec: "DoubleDelta, LZ4"},
	{Name: "customer_id", Type: "String", Codec: "ZSTD(1)"},
	{Name: "amount", Type: "Decimal(18, 2)"},
	{Name: "created_at", Type: "DateTime64(6)", Codec: "DoubleDelta, LZ4"},
}
