package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateSpine(t *testing.T) {
	now := time.Date(2024, time.March, 10, 15, 30, 0, 0, time.UTC)

	t.Run("nil_until_resolves_to_now", func(t *testing.T) {
		spine := DateSpine(date(2024, time.March, 8), nil, now)
		require.Len(t, spine, 3)
		assert.Equal(t, date(2024, time.March, 8), spine[0])
		assert.Equal(t, date(2024, time.March, 10), spine[2])
	})

	t.Run("future_until_clamps_to_now", func(t *testing.T) {
		until := date(2030, time.January, 1)
		spine := DateSpine(date(2024, time.March, 9), &until, now)
		require.Len(t, spine, 2)
		assert.Equal(t, date(2024, time.March, 10), spine[1])
	})

	t.Run("past_until_is_respected", func(t *testing.T) {
		until := date(2024, time.March, 9)
		spine := DateSpine(date(2024, time.March, 8), &until, now)
		require.Len(t, spine, 2)
		assert.Equal(t, date(2024, time.March, 9), spine[1])
	})

	t.Run("gap_free_and_unique", func(t *testing.T) {
		spine := DateSpine(date(2024, time.February, 25), nil, now)
		seen := make(map[time.Time]bool)
		for i, d := range spine {
			assert.False(t, seen[d], "date %v appears twice", d)
			seen[d] = true
			if i > 0 {
				assert.Equal(t, spine[i-1].AddDate(0, 0, 1), d, "spine has a gap at %v", d)
			}
		}
	})

	t.Run("from_after_now_yields_nothing", func(t *testing.T) {
		assert.Nil(t, DateSpine(date(2025, time.January, 1), nil, now))
	})
}

func TestMonthSpine(t *testing.T) {
	spine := MonthSpine(Month{2023, time.November}, Month{2024, time.February})
	require.Len(t, spine, 4)
	assert.Equal(t, Month{2023, time.November}, spine[0])
	assert.Equal(t, Month{2023, time.December}, spine[1])
	assert.Equal(t, Month{2024, time.January}, spine[2])
	assert.Equal(t, Month{2024, time.February}, spine[3])

	assert.Nil(t, MonthSpine(Month{2024, time.March}, Month{2024, time.February}))
}

func TestMonthNextAndAfter(t *testing.T) {
	assert.Equal(t, Month{2024, time.January}, Month{2023, time.December}.Next())
	assert.True(t, Month{2024, time.January}.After(Month{2023, time.December}))
	assert.False(t, Month{2024, time.January}.After(Month{2024, time.January}))
	assert.Equal(t, "2024-03", Month{2024, time.March}.String())
}
