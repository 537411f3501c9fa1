// Package calendar provides the pure date math behind the date picker:
// month grids with a Monday-start week, month navigation and the
// quick-select date shortcuts. All dates are local; formatting a date in
// UTC can land on the wrong day for users east or west of it.
package calendar

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// DaysInMonth returns the number of days in the given month. Day zero of
// the following month normalizes to the last day of this one, which makes
// leap years fall out of the time package.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// FirstWeekdayOffset returns the weekday of the first day of the month as a
// 0-6 offset into a Monday-start week: Monday 0 .. Sunday 6.
func FirstWeekdayOffset(year int, month time.Month) int {
	wd := time.Date(year, month, 1, 0, 0, 0, 0, time.Local).Weekday()
	if wd == time.Sunday {
		return 6
	}
	return int(wd) - 1
}

// MonthGrid returns the cells of a 7-column month grid: one zero cell per
// leading blank, then 1..DaysInMonth in order.
func MonthGrid(year int, month time.Month) []int {
	offset := FirstWeekdayOffset(year, month)
	days := DaysInMonth(year, month)
	grid := make([]int, 0, offset+days)
	for i := 0; i < offset; i++ {
		grid = append(grid, 0)
	}
	for d := 1; d <= days; d++ {
		grid = append(grid, d)
	}
	return grid
}

// AddMonths moves a (year, month) pair by delta months, rolling over year
// boundaries in either direction.
func AddMonths(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month+time.Month(delta), 1, 0, 0, 0, 0, time.Local)
	return t.Year(), t.Month()
}

// Format renders a time as a local calendar date string.
func Format(t time.Time) string {
	return t.Format(DateLayout)
}

// Quick identifies a quick-select date shortcut.
type Quick int

const (
	// Tomorrow is today plus one day.
	Tomorrow Quick = iota
	// Weekend is the next Saturday (today if today is Saturday).
	Weekend
	// NextWeek is the next Monday at least seven days out.
	NextWeek
)

// QuickDate resolves a shortcut relative to now, as a local date string.
func QuickDate(kind Quick, now time.Time) string {
	switch kind {
	case Tomorrow:
		return Format(now.AddDate(0, 0, 1))
	case Weekend:
		days := (int(time.Saturday) - int(now.Weekday()) + 7) % 7
		return Format(now.AddDate(0, 0, days))
	case NextWeek:
		days := (int(time.Monday)-int(now.Weekday())+7)%7 + 7
		return Format(now.AddDate(0, 0, days))
	}
	return Format(now)
}
