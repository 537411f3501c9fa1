package model

import "time"

// Task represents a single task owned by the task store. Subtasks live only
// inside their parent task; they are created, toggled and deleted by building
// a new subtask slice and persisting the whole task.
type Task struct {
	ID           string        `json:"id"`
	Text         string        `json:"text"`
	Completed    bool          `json:"completed"`
	Color        Color         `json:"color"`
	CategoryID   string        `json:"category_id,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	Date         string        `json:"date,omitempty"` // YYYY-MM-DD, local
	Time         string        `json:"time,omitempty"` // HH:MM
	Repeat       Repeat        `json:"repeat,omitempty"`
	CustomRepeat *CustomRepeat `json:"custom_repeat,omitempty"`
	Description  string        `json:"description,omitempty"`
	Subtasks     []Subtask     `json:"subtasks,omitempty"`
}

// Subtask is a checklist entry inside a task. It has no independent lifecycle.
type Subtask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Clone returns a deep copy, safe to keep as a rollback snapshot.
func (t Task) Clone() Task {
	c := t
	if t.CustomRepeat != nil {
		cr := t.CustomRepeat.Clone()
		c.CustomRepeat = &cr
	}
	if t.Subtasks != nil {
		c.Subtasks = make([]Subtask, len(t.Subtasks))
		copy(c.Subtasks, t.Subtasks)
	}
	return c
}

// HasDate reports whether the task is anchored to a calendar date. Time,
// repeat and custom repeat are meaningless without one.
func (t Task) HasDate() bool {
	return t.Date != ""
}

// IsDueToday returns true if the task's date is today.
func (t Task) IsDueToday() bool {
	if t.Date == "" {
		return false
	}
	return t.Date == time.Now().Format("2006-01-02")
}

// IsOverdue returns true if the task is past its date and not completed.
func (t Task) IsOverdue() bool {
	if t.Date == "" || t.Completed {
		return false
	}
	return t.Date < time.Now().Format("2006-01-02")
}

// IsRecurring reports whether any repeat rule is set.
func (t Task) IsRecurring() bool {
	return t.Repeat != "" && t.Repeat != RepeatNone
}

// WithSubtaskToggled returns a copy of the task with the given subtask's
// completed flag flipped.
func (t Task) WithSubtaskToggled(subtaskID string) Task {
	c := t.Clone()
	for i := range c.Subtasks {
		if c.Subtasks[i].ID == subtaskID {
			c.Subtasks[i].Completed = !c.Subtasks[i].Completed
			break
		}
	}
	return c
}

// WithSubtaskAdded returns a copy of the task with a new subtask appended.
func (t Task) WithSubtaskAdded(sub Subtask) Task {
	c := t.Clone()
	c.Subtasks = append(c.Subtasks, sub)
	return c
}

// WithSubtaskRemoved returns a copy of the task without the given subtask.
func (t Task) WithSubtaskRemoved(subtaskID string) Task {
	c := t.Clone()
	out := c.Subtasks[:0]
	for _, st := range c.Subtasks {
		if st.ID != subtaskID {
			out = append(out, st)
		}
	}
	c.Subtasks = out
	return c
}
