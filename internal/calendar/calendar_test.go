package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(2024, time.January))
	assert.Equal(t, 29, DaysInMonth(2024, time.February)) // leap year
	assert.Equal(t, 28, DaysInMonth(2023, time.February))
	assert.Equal(t, 28, DaysInMonth(2100, time.February)) // century, not leap
	assert.Equal(t, 30, DaysInMonth(2024, time.September))
	assert.Equal(t, 31, DaysInMonth(2024, time.December))
}

func TestFirstWeekdayOffset(t *testing.T) {
	// 2024-01-01 is a Monday, 2024-09-01 is a Sunday.
	assert.Equal(t, 0, FirstWeekdayOffset(2024, time.January))
	assert.Equal(t, 6, FirstWeekdayOffset(2024, time.September))
	// 2024-02-01 is a Thursday.
	assert.Equal(t, 3, FirstWeekdayOffset(2024, time.February))
}

func TestMonthGrid(t *testing.T) {
	for year := 2020; year <= 2026; year++ {
		for month := time.January; month <= time.December; month++ {
			grid := MonthGrid(year, month)
			offset := FirstWeekdayOffset(year, month)
			days := DaysInMonth(year, month)
			assert.Len(t, grid, offset+days)
			for i := 0; i < offset; i++ {
				assert.Zero(t, grid[i])
			}
			for d := 1; d <= days; d++ {
				assert.Equal(t, d, grid[offset+d-1])
			}
		}
	}
}

func TestAddMonths_Rollover(t *testing.T) {
	y, m := AddMonths(2024, time.January, -1)
	assert.Equal(t, 2023, y)
	assert.Equal(t, time.December, m)

	y, m = AddMonths(2024, time.December, 1)
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.January, m)

	y, m = AddMonths(2024, time.June, 19)
	assert.Equal(t, 2026, y)
	assert.Equal(t, time.January, m)
}

func TestQuickDate(t *testing.T) {
	// 2024-09-04 is a Wednesday.
	wed := time.Date(2024, time.September, 4, 12, 0, 0, 0, time.Local)

	assert.Equal(t, "2024-09-05", QuickDate(Tomorrow, wed))
	assert.Equal(t, "2024-09-07", QuickDate(Weekend, wed))  // next Saturday
	assert.Equal(t, "2024-09-16", QuickDate(NextWeek, wed)) // next Monday at least 7 days out

	// On a Saturday the weekend shortcut stays on today.
	sat := time.Date(2024, time.September, 7, 9, 0, 0, 0, time.Local)
	assert.Equal(t, "2024-09-07", QuickDate(Weekend, sat))

	// On a Monday the next-week shortcut lands exactly seven days out.
	mon := time.Date(2024, time.September, 2, 9, 0, 0, 0, time.Local)
	assert.Equal(t, "2024-09-09", QuickDate(NextWeek, mon))

	// Month rollover.
	eom := time.Date(2024, time.September, 30, 23, 0, 0, 0, time.Local)
	assert.Equal(t, "2024-10-01", QuickDate(Tomorrow, eom))
}
