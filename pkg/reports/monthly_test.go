package reports

import (
	"testing"
	"time"

	"github.com/crestline-data/revlens/pkg/db/models/sales"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyInvoiceTotals(t *testing.T) {
	invoices := []sales.Invoice{
		{InvoiceID: 1, CustomerID: "c1", Amount: dec(100), CreatedAt: date(2023, time.November, 12)},
		{InvoiceID: 2, CustomerID: "c2", Amount: dec(50), CreatedAt: date(2023, time.November, 20)},
		// December has no invoices.
		{InvoiceID: 3, CustomerID: "c1", Amount: dec(75), CreatedAt: date(2024, time.January, 4)},
		{InvoiceID: 4, CustomerID: "c1", Amount: dec(25), CreatedAt: date(2024, time.February, 8)},
	}
	now := date(2024, time.March, 15)

	rows := MonthlyInvoiceTotals(invoices, now)

	// Nov 2023 through Mar 2024, every month present.
	require.Len(t, rows, 5)

	assert.Equal(t, Month{2023, time.November}, Month{rows[0].Year, rows[0].Month})
	assert.True(t, rows[0].MonthTotal.Equal(dec(150)))
	assert.True(t, rows[0].RunningTotal.Equal(dec(150)))

	// Zero month carries the running total forward unchanged.
	assert.Equal(t, time.December, rows[1].Month)
	assert.True(t, rows[1].MonthTotal.IsZero())
	assert.True(t, rows[1].RunningTotal.Equal(dec(150)))

	// Year boundary resets the running total.
	assert.Equal(t, Month{2024, time.January}, Month{rows[2].Year, rows[2].Month})
	assert.True(t, rows[2].RunningTotal.Equal(dec(75)))

	assert.True(t, rows[3].MonthTotal.Equal(dec(25)))
	assert.True(t, rows[3].RunningTotal.Equal(dec(100)))

	// Current month appears even with no invoices yet.
	assert.Equal(t, time.March, rows[4].Month)
	assert.True(t, rows[4].MonthTotal.IsZero())
	assert.True(t, rows[4].RunningTotal.Equal(dec(100)))
}

func TestMonthlyInvoiceTotals_RunningTotalIsPrefixSumWithinYear(t *testing.T) {
	invoices := []sales.Invoice{
		{InvoiceID: 1, CustomerID: "c1", Amount: dec(10), CreatedAt: date(2024, time.January, 1)},
		{InvoiceID: 2, CustomerID: "c1", Amount: dec(20), CreatedAt: date(2024, time.February, 1)},
		{InvoiceID: 3, CustomerID: "c1", Amount: dec(30), CreatedAt: date(2024, time.April, 1)},
	}
	rows := MonthlyInvoiceTotals(invoices, date(2024, time.April, 30))

	prefix := make(map[int]decimal.Decimal)
	for _, r := range rows {
		prefix[r.Year] = prefix[r.Year].Add(r.MonthTotal)
		assert.True(t, r.RunningTotal.Equal(prefix[r.Year]),
			"running total for %04d-%02d must equal the within-year prefix sum", r.Year, int(r.Month))
	}
}

func TestMonthlyInvoiceTotals_Empty(t *testing.T) {
	assert.Nil(t, MonthlyInvoiceTotals(nil, date(2024, time.March, 1)))
}

func TestMonthlyInvoiceTable(t *testing.T) {
	rows := []MonthlyInvoiceRow{{Year: 2024, Month: time.February, MonthTotal: dec(25), RunningTotal: dec(100)}}
	table := MonthlyInvoiceTable(rows)
	assert.Equal(t, []string{"Invoice Year", "Invoice Month", "Invoice Amount", "YTD Invoice Amount"}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"2024", "2", "25.00", "100.00"}, table.Rows[0])
}
