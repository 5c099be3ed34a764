package reports

import (
	"testing"
	"time"

	"github.com/crestline-data/revlens/pkg/db/models/sales"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sub(customerID string, start time.Time, end *time.Time) sales.Subscription {
	return sales.Subscription{CustomerID: customerID, StartAt: start, EndAt: end}
}

func ptr(t time.Time) *time.Time { return &t }

func TestActiveCount_HalfOpenInterval(t *testing.T) {
	end := date(2024, time.January, 10)

	tests := []struct {
		name string
		asOf time.Time
		want int
	}{
		{name: "before_start", asOf: date(2023, time.December, 31), want: 0},
		{name: "on_start_date", asOf: date(2024, time.January, 1), want: 1},
		{name: "mid_interval", asOf: date(2024, time.January, 9), want: 1},
		{name: "end_at_midnight_of_date_is_inactive", asOf: date(2024, time.January, 10), want: 0},
		{name: "after_end", asOf: date(2024, time.January, 11), want: 0},
	}

	subs := []sales.Subscription{sub("c1", date(2024, time.January, 1), &end)}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ActiveCount(subs, tt.asOf))
		})
	}
}

func TestActiveCount_NilEndMeansStillActive(t *testing.T) {
	subs := []sales.Subscription{sub("c1", date(2020, time.June, 1), nil)}
	assert.Equal(t, 1, ActiveCount(subs, date(2024, time.January, 1)))
}

func TestActiveCount_OverlappingSubscriptionsCountOnce(t *testing.T) {
	subs := []sales.Subscription{
		sub("c1", date(2024, time.January, 1), nil),
		sub("c1", date(2024, time.January, 5), nil),
		sub("c2", date(2024, time.January, 3), nil),
	}
	assert.Equal(t, 2, ActiveCount(subs, date(2024, time.January, 6)))
}

func TestActiveCount_IntradayStartCountsOnStartDate(t *testing.T) {
	// A subscription starting at 14:00 is active on that calendar date.
	start := time.Date(2024, time.January, 1, 14, 0, 0, 0, time.UTC)
	subs := []sales.Subscription{sub("c1", start, nil)}
	assert.Equal(t, 1, ActiveCount(subs, date(2024, time.January, 1)))
}

func TestActiveSeries_SpineDrivesEnumeration(t *testing.T) {
	end := date(2024, time.January, 3)
	subs := []sales.Subscription{
		sub("c1", date(2024, time.January, 1), &end),
		sub("c2", date(2024, time.January, 5), nil),
	}
	now := date(2024, time.January, 6)

	spine := subscriptionSpine(subs, now)
	rows := ActiveSeries(subs, spine)

	// Every date from the earliest start through now appears exactly once,
	// including the zero-activity gap on Jan 3-4.
	require.Len(t, rows, 6)
	counts := make(map[string]int)
	for _, r := range rows {
		counts[r.Date.Format("2006-01-02")] = r.Count
	}
	assert.Equal(t, 1, counts["2024-01-01"])
	assert.Equal(t, 1, counts["2024-01-02"])
	assert.Equal(t, 0, counts["2024-01-03"])
	assert.Equal(t, 0, counts["2024-01-04"])
	assert.Equal(t, 1, counts["2024-01-05"])
	assert.Equal(t, 1, counts["2024-01-06"])
}

func TestActiveSeriesTable(t *testing.T) {
	rows := []ActiveCountRow{{Date: date(2024, time.January, 1), Count: 3}}
	table := ActiveSeriesTable(rows)
	assert.Equal(t, []string{"Date", "Count of Customers"}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"2024-01-01", "3"}, table.Rows[0])
}
