package reports

import (
	"strconv"
	"time"

	"github.com/crestline-data/revlens/pkg/db/models/sales"
)

// ActiveCountRow is one point of the daily active-subscriber time series.
type ActiveCountRow struct {
	Date  time.Time
	Count int
}

// activeOn reports whether the subscription interval contains the given
// date under the half-open rule: the subscription started on or before the
// date, and either has no end or ends strictly after the start of the date.
// An end landing exactly at midnight of the date means inactive on it.
func activeOn(s sales.Subscription, day time.Time) bool {
	if Day(s.StartAt).After(day) {
		return false
	}
	return s.EndAt == nil || s.EndAt.After(day)
}

// ActiveCount returns the number of distinct customers with at least one
// subscription active on the as-of date. Overlapping subscriptions for the
// same customer count once.
func ActiveCount(subs []sales.Subscription, asOf time.Time) int {
	day := Day(asOf)

	seen := make(map[string]struct{})
	for _, s := range subs {
		if activeOn(s, day) {
			seen[s.CustomerID] = struct{}{}
		}
	}
	return len(seen)
}

// ActiveSeries evaluates the distinct active-customer count for every date
// in the spine. The spine, not the subscription data, drives row
// enumeration, so dates with zero active customers still appear.
func ActiveSeries(subs []sales.Subscription, spine []time.Time) []ActiveCountRow {
	rows := make([]ActiveCountRow, 0, len(spine))
	for _, day := range spine {
		rows = append(rows, ActiveCountRow{Date: day, Count: ActiveCount(subs, day)})
	}
	return rows
}

// ActiveSeriesTable renders the time series with the report's column names.
func ActiveSeriesTable(rows []ActiveCountRow) *Table {
	t := &Table{
		Name:    "daily_active_customers",
		Columns: []string{"Date", "Count of Customers"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.Date.Format("2006-01-02"), strconv.Itoa(r.Count)})
	}
	return t
}

// ActiveCountTable renders the point-in-time count as a one-row table.
func ActiveCountTable(asOf time.Time, count int) *Table {
	return &Table{
		Name:    "active_customers",
		Columns: []string{"Date", "Count of Customers"},
		Rows:    [][]string{{Day(asOf).Format("2006-01-02"), strconv.Itoa(count)}},
	}
}
