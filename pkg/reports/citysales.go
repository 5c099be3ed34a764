package reports

import (
	"sort"

	"github.com/crestline-data/revlens/pkg/db/models/sales"
	"github.com/shopspring/decimal"
)

// CitySalesRow is one city's invoice total.
type CitySalesRow struct {
	City  string
	Total decimal.Decimal
}

// CityThreshold is the fixed cutoff for the thresholded rollup.
var CityThreshold = decimal.NewFromInt(100000)

// CitySales rolls invoice amounts up by customer city. Customers define the
// city universe (outer-join semantics): a city whose customers have no
// invoices still appears with a zero total. Invoices without a known
// customer have no city and are dropped.
//
// Cities are keyed by bare name, so same-named cities in different regions
// sum together. That conflation comes from the source data and is kept.
//
// Sorted by total descending, then city ascending for a stable tie-break.
func CitySales(customers []sales.Customer, invoices []sales.Invoice) []CitySalesRow {
	cityByCustomer := make(map[string]string, len(customers))
	totals := make(map[string]decimal.Decimal)
	for _, c := range customers {
		cityByCustomer[c.CustomerID] = c.City
		if _, ok := totals[c.City]; !ok {
			totals[c.City] = decimal.Zero
		}
	}

	for _, inv := range invoices {
		city, ok := cityByCustomer[inv.CustomerID]
		if !ok {
			continue
		}
		totals[city] = totals[city].Add(inv.Amount)
	}

	rows := make([]CitySalesRow, 0, len(totals))
	for city, total := range totals {
		rows = append(rows, CitySalesRow{City: city, Total: total})
	}

	sort.Slice(rows, func(i, j int) bool {
		if cmp := rows[i].Total.Cmp(rows[j].Total); cmp != 0 {
			return cmp > 0
		}
		return rows[i].City < rows[j].City
	})

	return rows
}

// CitySalesOver filters the rollup to cities whose total exceeds the
// threshold. The filter applies after aggregation, so same-named cities are
// summed together before the comparison.
func CitySalesOver(customers []sales.Customer, invoices []sales.Invoice, threshold decimal.Decimal) []CitySalesRow {
	all := CitySales(customers, invoices)

	rows := make([]CitySalesRow, 0, len(all))
	for _, r := range all {
		if r.Total.GreaterThan(threshold) {
			rows = append(rows, r)
		}
	}
	return rows
}

// CitySalesTable renders a rollup with the report's column names.
func CitySalesTable(name string, rows []CitySalesRow) *Table {
	t := &Table{
		Name:    name,
		Columns: []string{"City", "Total Sales"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.City, r.Total.StringFixed(2)})
	}
	return t
}
