package reports

import (
	"sort"

	"github.com/crestline-data/revlens/pkg/db/models/sales"
	"github.com/shopspring/decimal"
)

// FirstInvoiceRow pairs a customer's credit limit with the amount of their
// chronologically first invoice. FirstInvoiceAmount is nil when the
// customer has no invoices at all; a zero-amount invoice yields an explicit
// zero, which must stay distinguishable from nil.
type FirstInvoiceRow struct {
	CustomerName       string
	CreditLimit        decimal.Decimal
	FirstInvoiceAmount *decimal.Decimal
}

// FirstInvoices lists every customer with the amount of their earliest
// invoice by creation timestamp. When two invoices share the identical
// earliest timestamp, the lowest invoice ID wins; the source data leaves
// this unspecified, so the rule is pinned here for determinism.
// Output is ordered by customer name, then customer ID.
func FirstInvoices(customers []sales.Customer, invoices []sales.Invoice) []FirstInvoiceRow {
	first := make(map[string]sales.Invoice)
	for _, inv := range invoices {
		best, ok := first[inv.CustomerID]
		if !ok {
			first[inv.CustomerID] = inv
			continue
		}
		if inv.CreatedAt.Before(best.CreatedAt) ||
			(inv.CreatedAt.Equal(best.CreatedAt) && inv.InvoiceID < best.InvoiceID) {
			first[inv.CustomerID] = inv
		}
	}

	ordered := make([]sales.Customer, len(customers))
	copy(ordered, customers)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Name != ordered[j].Name {
			return ordered[i].Name < ordered[j].Name
		}
		return ordered[i].CustomerID < ordered[j].CustomerID
	})

	rows := make([]FirstInvoiceRow, 0, len(ordered))
	for _, c := range ordered {
		row := FirstInvoiceRow{
			CustomerName: c.Name,
			CreditLimit:  c.CreditLimit,
		}
		if inv, ok := first[c.CustomerID]; ok {
			amount := inv.Amount
			row.FirstInvoiceAmount = &amount
		}
		rows = append(rows, row)
	}

	return rows
}

// FirstInvoicesTable renders the listing; customers without invoices get an
// empty cell, not "0.00".
func FirstInvoicesTable(rows []FirstInvoiceRow) *Table {
	t := &Table{
		Name:    "customer_first_invoice",
		Columns: []string{"Customer Name", "Credit Limit", "Amount of First Invoice"},
	}
	for _, r := range rows {
		amount := ""
		if r.FirstInvoiceAmount != nil {
			amount = r.FirstInvoiceAmount.StringFixed(2)
		}
		t.Rows = append(t.Rows, []string{r.CustomerName, r.CreditLimit.StringFixed(2), amount})
	}
	return t
}
