package reports

import (
	"fmt"
	"sort"
	"time"

	"github.com/crestline-data/revlens/pkg/db/models/sales"
	"github.com/shopspring/decimal"
)

// ReconcileConfig carries the qualification rules and time handling for the
// order-to-invoice reconciliation.
//
// Zone is the reporting time zone; order timestamps arrive in UTC and every
// day/month bucket is computed after conversion. Empty Brands/Countries
// slices qualify everything; Channels defaults to both feeds.
type ReconcileConfig struct {
	Zone      *time.Location
	Policy    PolicyTable
	Channels  []string
	Brands    []string
	Countries []string
	Now       time.Time
}

// DefaultReconcileConfig returns the production reconciliation setup:
// reporting zone Europe/Amsterdam, the feed's historical classification
// policy, both channels, and no brand/country restriction.
func DefaultReconcileConfig(now time.Time) (ReconcileConfig, error) {
	zone, err := time.LoadLocation("Europe/Amsterdam")
	if err != nil {
		return ReconcileConfig{}, fmt.Errorf("load reporting zone: %w", err)
	}
	return ReconcileConfig{
		Zone:     zone,
		Policy:   DefaultSettlementPolicy(zone),
		Channels: []string{sales.ChannelWebshop, sales.ChannelMarketplace},
		Now:      now,
	}, nil
}

// VarianceRow is one reconciled order line. Expected is what should have
// been recognized (demand − backlog + returned), Actual is what the
// settlements recognized, Variance is Actual − Expected. DayVariance and
// MonthVariance aggregate variance across all lines sharing the order date
// or month, computed before the output filter so they reflect the true
// defect magnitude.
type VarianceRow struct {
	OrderHeader string
	LineItem    uint32
	OrderedAt   time.Time
	Channel     string
	Brand       string
	Country     string

	Demand    decimal.Decimal
	Backlog   decimal.Decimal
	Delivered decimal.Decimal
	Returned  decimal.Decimal

	Expected decimal.Decimal
	Actual   decimal.Decimal
	Variance decimal.Decimal

	DayVariance   decimal.Decimal
	MonthVariance decimal.Decimal
}

type lineKey struct {
	OrderHeader string
	LineItem    uint32
}

// settlementAgg collapses the many settlement rows of one order line.
// Net sums every qualifying row's value; Delivered and Returned split that
// by transaction type.
type settlementAgg struct {
	Net       decimal.Decimal
	Delivered decimal.Decimal
	Returned  decimal.Decimal
}

// Reconcile runs the order-to-invoice variance pipeline:
//
//  1. normalize and qualify order lines from both channels, converting
//     order timestamps to the reporting zone;
//  2. normalize and qualify settlement rows, classifying their channel via
//     the date-ranged policy table;
//  3. pre-aggregate settlements to order-header/line grain (fan-out guard);
//  4. left-outer join orders to the aggregates and compute per-line
//     expected, actual, and variance;
//  5. compute same-day and same-month variance sums over the full row set;
//  6. keep only the trailing twelve months with non-zero variance;
//  7. sort by monthly, daily, then row variance magnitude, descending.
func Reconcile(orders []sales.OrderLine, settlements []sales.Settlement, cfg ReconcileConfig) []VarianceRow {
	qualified := normalizeOrders(orders, cfg)
	aggs := aggregateSettlements(normalizeSettlements(settlements, cfg))

	// Outer join: order lines with no settlements still produce a row with
	// zero-valued aggregates.
	rows := make([]VarianceRow, 0, len(qualified))
	for _, o := range qualified {
		agg := aggs[lineKey{OrderHeader: o.OrderHeader, LineItem: o.LineItem}]

		expected := o.Demand.Sub(o.Backlog).Add(agg.Returned)
		actual := agg.Net

		rows = append(rows, VarianceRow{
			OrderHeader: o.OrderHeader,
			LineItem:    o.LineItem,
			OrderedAt:   o.OrderedAt,
			Channel:     o.Channel,
			Brand:       o.Brand,
			Country:     o.Country,
			Demand:      o.Demand,
			Backlog:     o.Backlog,
			Delivered:   agg.Delivered,
			Returned:    agg.Returned,
			Expected:    expected,
			Actual:      actual,
			Variance:    actual.Sub(expected),
		})
	}

	// Window sums over the FULL row set, before any filtering, so the
	// daily/monthly aggregates reflect every defective line of that bucket.
	byDay := make(map[time.Time]decimal.Decimal)
	byMonth := make(map[Month]decimal.Decimal)
	for _, r := range rows {
		day := Day(r.OrderedAt)
		byDay[day] = byDay[day].Add(r.Variance)
		month := MonthOf(r.OrderedAt)
		byMonth[month] = byMonth[month].Add(r.Variance)
	}
	for i := range rows {
		rows[i].DayVariance = byDay[Day(rows[i].OrderedAt)]
		rows[i].MonthVariance = byMonth[MonthOf(rows[i].OrderedAt)]
	}

	// Trailing twelve months relative to "now" in the reporting zone; rows
	// with zero variance reconcile cleanly and would only dilute the
	// remediation list.
	windowStart := cfg.Now.In(cfg.Zone).AddDate(-1, 0, 0)
	out := rows[:0]
	for _, r := range rows {
		if r.OrderedAt.Before(windowStart) || r.Variance.IsZero() {
			continue
		}
		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool {
		if cmp := out[i].MonthVariance.Abs().Cmp(out[j].MonthVariance.Abs()); cmp != 0 {
			return cmp > 0
		}
		if cmp := out[i].DayVariance.Abs().Cmp(out[j].DayVariance.Abs()); cmp != 0 {
			return cmp > 0
		}
		if cmp := out[i].Variance.Abs().Cmp(out[j].Variance.Abs()); cmp != 0 {
			return cmp > 0
		}
		if out[i].OrderHeader != out[j].OrderHeader {
			return out[i].OrderHeader < out[j].OrderHeader
		}
		return out[i].LineItem < out[j].LineItem
	})

	return out
}

// normalizeOrders unifies both channel feeds into one relation at
// header/line grain: timestamps move to the reporting zone and
// non-qualifying channel/brand/country/transaction-type lines drop out.
// Only sale lines qualify; return and test order lines are not demand.
func normalizeOrders(orders []sales.OrderLine, cfg ReconcileConfig) []sales.OrderLine {
	channels := toSet(cfg.Channels)
	brands := toSet(cfg.Brands)
	countries := toSet(cfg.Countries)

	out := make([]sales.OrderLine, 0, len(orders))
	for _, o := range orders {
		if o.TransactionType != sales.TxnTypeSale {
			continue
		}
		if !memberOrAll(channels, o.Channel) ||
			!memberOrAll(brands, o.Brand) ||
			!memberOrAll(countries, o.Country) {
			continue
		}
		o.OrderedAt = o.OrderedAt.In(cfg.Zone)
		out = append(out, o)
	}
	return out
}

// normalizeSettlements unifies both settlement feeds, resolving each row's
// channel through the policy table and dropping non-qualifying rows. Sale
// and return rows both qualify; anything else (adjustments, tests) drops.
func normalizeSettlements(settlements []sales.Settlement, cfg ReconcileConfig) []sales.Settlement {
	channels := toSet(cfg.Channels)
	brands := toSet(cfg.Brands)
	countries := toSet(cfg.Countries)

	out := make([]sales.Settlement, 0, len(settlements))
	for _, s := range settlements {
		if s.TransactionType != sales.TxnTypeSale && s.TransactionType != sales.TxnTypeReturn {
			continue
		}
		s.Channel = ClassifySettlementChannel(s, cfg.Policy)
		if !memberOrAll(channels, s.Channel) ||
			!memberOrAll(brands, s.Brand) ||
			!memberOrAll(countries, s.Country) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// aggregateSettlements collapses settlement rows to order-header/line
// grain. One order line maps to zero, one, or many settlement rows;
// skipping this step and joining detail rows straight onto orders would
// multiply order-level figures (fan-out).
func aggregateSettlements(settlements []sales.Settlement) map[lineKey]settlementAgg {
	aggs := make(map[lineKey]settlementAgg)
	for _, s := range settlements {
		key := lineKey{OrderHeader: s.OrderHeader, LineItem: s.LineItem}
		agg := aggs[key]
		agg.Net = agg.Net.Add(s.NetValue)
		switch s.TransactionType {
		case sales.TxnTypeSale:
			agg.Delivered = agg.Delivered.Add(s.NetValue)
		case sales.TxnTypeReturn:
			agg.Returned = agg.Returned.Add(s.NetValue)
		}
		aggs[key] = agg
	}
	return aggs
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// memberOrAll treats a nil set as "qualify everything".
func memberOrAll(set map[string]struct{}, v string) bool {
	if set == nil {
		return true
	}
	_, ok := set[v]
	return ok
}

// ReconcileTable renders the variance ranking with the report's column names.
func ReconcileTable(rows []VarianceRow) *Table {
	t := &Table{
		Name: "order_invoice_variance",
		Columns: []string{
			"Order Header", "Line Item", "Order Date", "Channel", "Brand", "Country",
			"Demand Value", "Backlog Value", "Delivered Value", "Returned Value",
			"Expected Net Value", "Actual Net Value", "Variance",
			"Daily Variance", "Monthly Variance",
		},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.OrderHeader,
			fmt.Sprintf("%d", r.LineItem),
			r.OrderedAt.Format("2006-01-02"),
			r.Channel,
			r.Brand,
			r.Country,
			r.Demand.StringFixed(2),
			r.Backlog.StringFixed(2),
			r.Delivered.StringFixed(2),
			r.Returned.StringFixed(2),
			r.Expected.StringFixed(2),
			r.Actual.StringFixed(2),
			r.Variance.StringFixed(2),
			r.DayVariance.StringFixed(2),
			r.MonthVariance.StringFixed(2),
		})
	}
	return t
}
