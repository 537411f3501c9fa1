package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClone_IsDeep(t *testing.T) {
	orig := Task{
		ID:   "t1",
		Text: "Pack bags",
		CustomRepeat: &CustomRepeat{
			Every:    1,
			Unit:     UnitWeek,
			Weekdays: []int{1, 3},
		},
		Subtasks: []Subtask{{ID: "s1", Text: "passport"}},
	}

	c := orig.Clone()
	c.Subtasks[0].Completed = true
	c.CustomRepeat.Weekdays[0] = 6

	assert.False(t, orig.Subtasks[0].Completed)
	assert.Equal(t, 1, orig.CustomRepeat.Weekdays[0])
}

func TestWithSubtaskHelpers(t *testing.T) {
	task := Task{ID: "t1", Subtasks: []Subtask{
		{ID: "s1", Text: "one"},
		{ID: "s2", Text: "two"},
	}}

	toggled := task.WithSubtaskToggled("s2")
	assert.True(t, toggled.Subtasks[1].Completed)
	assert.False(t, task.Subtasks[1].Completed, "original untouched")

	added := task.WithSubtaskAdded(Subtask{ID: "s3", Text: "three"})
	require.Len(t, added.Subtasks, 3)
	require.Len(t, task.Subtasks, 2)

	removed := task.WithSubtaskRemoved("s1")
	require.Len(t, removed.Subtasks, 1)
	assert.Equal(t, "s2", removed.Subtasks[0].ID)
}

func TestDateHelpers(t *testing.T) {
	today := time.Now().Format("2006-01-02")

	assert.True(t, Task{Date: today}.IsDueToday())
	assert.False(t, Task{}.IsDueToday())
	assert.True(t, Task{Date: "2000-01-01"}.IsOverdue())
	assert.False(t, Task{Date: "2000-01-01", Completed: true}.IsOverdue())
	assert.False(t, Task{Date: "2999-01-01"}.IsOverdue())

	assert.True(t, Task{Date: today}.HasDate())
	assert.False(t, Task{}.HasDate())
}

func TestColor(t *testing.T) {
	assert.True(t, ColorTeal.Valid())
	assert.False(t, Color("mauve").Valid())
	assert.Equal(t, "245", Color("mauve").ANSI(), "unknown colors render gray")
	assert.NotEmpty(t, ColorOrange.ANSI())
}
