package reports

import (
	"fmt"
	"time"
)

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateSpine returns the gap-free sequence of dates from `from` through the
// resolved upper bound, inclusive. A nil `until` resolves to `now`, and an
// `until` past `now` is clamped to `now`, so open-ended reporting windows
// never enumerate meaningless future dates.
func DateSpine(from time.Time, until *time.Time, now time.Time) []time.Time {
	start := Day(from)
	end := Day(now)
	if until != nil && until.Before(now) {
		end = Day(*until)
	}

	if end.Before(start) {
		return nil
	}

	var spine []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		spine = append(spine, d)
	}
	return spine
}

// Month is a calendar month bucket.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month bucket containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Next returns the following calendar month.
func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

// After reports whether m is a later month than other.
func (m Month) After(other Month) bool {
	if m.Year != other.Year {
		return m.Year > other.Year
	}
	return m.Month > other.Month
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// MonthSpine returns the gap-free sequence of month buckets from `from`
// through `through`, inclusive.
func MonthSpine(from, through Month) []Month {
	if from.After(through) {
		return nil
	}

	var spine []Month
	for m := from; !m.After(through); m = m.Next() {
		spine = append(spine, m)
	}
	return spine
}
