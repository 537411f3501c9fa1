// Package repeat builds custom repeat rules from form input. Invalid form
// values are clamped to the nearest valid value rather than rejected, so a
// half-filled rule always confirms to something usable.
package repeat

import (
	"fmt"
	"slices"

	"github.com/acampos/foco/internal/model"
)

// ToggleWeekday adds the weekday index to the set if absent and removes it
// if present. The result is kept sorted ascending with no duplicates.
// Indices outside 0-6 are ignored.
func ToggleWeekday(weekdays []int, idx int) []int {
	if idx < 0 || idx > 6 {
		return weekdays
	}
	if i := slices.Index(weekdays, idx); i >= 0 {
		return slices.Delete(slices.Clone(weekdays), i, i+1)
	}
	out := append(slices.Clone(weekdays), idx)
	slices.Sort(out)
	return out
}

// Confirm finalizes a rule being edited. The interval and the after-count
// are clamped to at least 1; the weekday set is sorted and deduplicated.
// The caller is expected to set the owning task's repeat kind to
// model.RepeatCustom alongside the returned rule.
func Confirm(rule model.CustomRepeat) model.CustomRepeat {
	out := rule.Clone()
	if out.Every < 1 {
		out.Every = 1
	}
	if out.Unit == "" {
		out.Unit = model.UnitWeek
	}
	if out.End.Type == "" {
		out.End.Type = model.EndNever
	}
	if out.End.Type == model.EndAfter && out.End.Count < 1 {
		out.End.Count = 1
	}
	if len(out.Weekdays) > 0 {
		slices.Sort(out.Weekdays)
		out.Weekdays = slices.Compact(out.Weekdays)
	}
	return out
}

var unitLabels = map[model.Unit]string{
	model.UnitDay:   "day",
	model.UnitWeek:  "week",
	model.UnitMonth: "month",
	model.UnitYear:  "year",
}

var weekdayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Describe renders a rule as a short human-readable summary for display,
// e.g. "every 2 weeks on Mon, Fri until 2025-01-01".
func Describe(rule model.CustomRepeat) string {
	unit := unitLabels[rule.Unit]
	if unit == "" {
		unit = string(rule.Unit)
	}
	s := "every " + unit
	if rule.Every > 1 {
		s = fmt.Sprintf("every %d %ss", rule.Every, unit)
	}
	if rule.Unit == model.UnitWeek && len(rule.Weekdays) > 0 {
		s += " on "
		for i, wd := range rule.Weekdays {
			if i > 0 {
				s += ", "
			}
			if wd >= 0 && wd < 7 {
				s += weekdayLabels[wd]
			}
		}
	}
	switch rule.End.Type {
	case model.EndOn:
		if rule.End.Date != "" {
			s += " until " + rule.End.Date
		}
	case model.EndAfter:
		s += fmt.Sprintf(", %d times", rule.End.Count)
	}
	return s
}
