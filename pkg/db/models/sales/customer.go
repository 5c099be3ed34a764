package sales

import (
	"github.com/shopspring/decimal"
)

const CustomersTableName = "customers"

// Customer is the customer master record.
// City is a bare textual name: two same-named cities in different regions
// collapse into one rollup bucket. That conflation is a documented property
// of the source data, not something the reports correct.
type Customer struct {
	CustomerID  string          `ch:"customer_id"`
	Name        string          `ch:"name"`
	City        string          `ch:"city"`
	CreditLimit decimal.Decimal `ch:"credit_limit"`
}

// CustomerColumns defines the customers source table schema.
var CustomerColumns = []ColumnDef{
	{Name: "customer_id", Type: "String", Codec: "ZSTD(1)"},
	{Name: "name", Type: "String", Codec: "ZSTD(1)"},
	{Name: "city", Type: "LowCardinality(String)"},
	{Name: "credit_limit", Type: "Decimal(18, 2)"},
}
