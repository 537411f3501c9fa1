package model

// Repeat is the repeat kind stored on a task. The rule is never expanded
// into concrete occurrences; it is only stored and displayed.
type Repeat string

const (
	RepeatNone    Repeat = "none"
	RepeatDaily   Repeat = "daily"
	RepeatWeekly  Repeat = "weekly"
	RepeatMonthly Repeat = "monthly"
	RepeatCustom  Repeat = "custom"
)

// Unit is the interval unit of a custom repeat rule.
type Unit string

const (
	UnitDay   Unit = "day"
	UnitWeek  Unit = "week"
	UnitMonth Unit = "month"
	UnitYear  Unit = "year"
)

// EndType describes when a custom repeat rule stops applying.
type EndType string

const (
	EndNever EndType = "never"
	EndOn    EndType = "on"    // requires End.Date
	EndAfter EndType = "after" // requires End.Count
)

// CustomRepeat is a user-built repeat rule: every N units, optionally
// restricted to a weekday set (week unit only), with an end condition.
// It is present on a task iff the task's repeat kind is RepeatCustom.
type CustomRepeat struct {
	Every    int       `json:"every"`
	Unit     Unit      `json:"unit"`
	Weekdays []int     `json:"weekdays,omitempty"` // 0-6, only consulted for UnitWeek
	End      RepeatEnd `json:"end"`
}

// RepeatEnd is the end condition of a custom repeat rule.
type RepeatEnd struct {
	Type  EndType `json:"type"`
	Date  string  `json:"date,omitempty"`
	Count int     `json:"count,omitempty"`
}

// Clone returns a deep copy of the rule.
func (r CustomRepeat) Clone() CustomRepeat {
	c := r
	if r.Weekdays != nil {
		c.Weekdays = make([]int, len(r.Weekdays))
		copy(c.Weekdays, r.Weekdays)
	}
	return c
}
