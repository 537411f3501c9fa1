package repeat

import (
	"testing"

	"github.com/acampos/foco/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestToggleWeekday(t *testing.T) {
	var days []int
	days = ToggleWeekday(days, 3)
	assert.Equal(t, []int{3}, days)

	days = ToggleWeekday(days, 1)
	assert.Equal(t, []int{1, 3}, days)

	days = ToggleWeekday(days, 6)
	assert.Equal(t, []int{1, 3, 6}, days)

	// Toggling an existing index removes it.
	days = ToggleWeekday(days, 3)
	assert.Equal(t, []int{1, 6}, days)

	// Out-of-range indices are ignored.
	assert.Equal(t, []int{1, 6}, ToggleWeekday(days, 7))
	assert.Equal(t, []int{1, 6}, ToggleWeekday(days, -1))
}

func TestToggleWeekday_DoesNotMutateInput(t *testing.T) {
	in := []int{2, 4}
	_ = ToggleWeekday(in, 0)
	_ = ToggleWeekday(in, 2)
	assert.Equal(t, []int{2, 4}, in)
}

func TestConfirm_ClampsInterval(t *testing.T) {
	got := Confirm(model.CustomRepeat{Every: 0, Unit: model.UnitWeek})
	assert.Equal(t, 1, got.Every)

	got = Confirm(model.CustomRepeat{Every: -5, Unit: model.UnitDay})
	assert.Equal(t, 1, got.Every)

	got = Confirm(model.CustomRepeat{Every: 3, Unit: model.UnitMonth})
	assert.Equal(t, 3, got.Every)
}

func TestConfirm_ClampsAfterCount(t *testing.T) {
	got := Confirm(model.CustomRepeat{
		Every: 1,
		Unit:  model.UnitWeek,
		End:   model.RepeatEnd{Type: model.EndAfter, Count: 0},
	})
	assert.Equal(t, 1, got.End.Count)

	// Count on a non-after end condition is left alone.
	got = Confirm(model.CustomRepeat{
		Every: 1,
		Unit:  model.UnitWeek,
		End:   model.RepeatEnd{Type: model.EndNever},
	})
	assert.Zero(t, got.End.Count)
}

func TestConfirm_Defaults(t *testing.T) {
	got := Confirm(model.CustomRepeat{})
	assert.Equal(t, 1, got.Every)
	assert.Equal(t, model.UnitWeek, got.Unit)
	assert.Equal(t, model.EndNever, got.End.Type)
}

func TestConfirm_SortsWeekdays(t *testing.T) {
	got := Confirm(model.CustomRepeat{
		Every:    1,
		Unit:     model.UnitWeek,
		Weekdays: []int{5, 1, 5, 3},
	})
	assert.Equal(t, []int{1, 3, 5}, got.Weekdays)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "every week", Describe(model.CustomRepeat{Every: 1, Unit: model.UnitWeek}))
	assert.Equal(t, "every 2 weeks on Mon, Fri",
		Describe(model.CustomRepeat{Every: 2, Unit: model.UnitWeek, Weekdays: []int{1, 5}}))
	assert.Equal(t, "every month until 2025-01-01",
		Describe(model.CustomRepeat{Every: 1, Unit: model.UnitMonth, End: model.RepeatEnd{Type: model.EndOn, Date: "2025-01-01"}}))
	assert.Equal(t, "every 3 days, 10 times",
		Describe(model.CustomRepeat{Every: 3, Unit: model.UnitDay, End: model.RepeatEnd{Type: model.EndAfter, Count: 10}}))
}
