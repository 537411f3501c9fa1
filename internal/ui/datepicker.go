package ui

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/acampos/foco/internal/calendar"
)

var (
	dayStyle      = lipgloss.NewStyle().Width(4).Align(lipgloss.Right)
	todayStyle    = dayStyle.Foreground(lipgloss.Color("39"))
	selectedStyle = dayStyle.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("170"))
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// datePicker is a month-grid date selector with an optional time field.
// day 0 means "no date selected".
type datePicker struct {
	year      int
	month     time.Month
	day       int
	timeInput textinput.Model
	timeFocus bool
}

func newDatePicker(date, timeOfDay string) datePicker {
	ti := textinput.New()
	ti.Placeholder = "HH:MM"
	ti.CharLimit = 5
	ti.Width = 7
	ti.Validate = func(s string) error {
		for _, r := range s {
			if !unicode.IsDigit(r) && r != ':' {
				return fmt.Errorf("HH:MM only")
			}
		}
		return nil
	}
	ti.SetValue(timeOfDay)

	now := time.Now()
	d := datePicker{year: now.Year(), month: now.Month(), timeInput: ti}
	if t, err := time.ParseInLocation(calendar.DateLayout, date, time.Local); err == nil {
		d.year, d.month, d.day = t.Year(), t.Month(), t.Day()
	}
	return d
}

// Date returns the selected date, or "" when no day is selected.
func (d datePicker) Date() string {
	if d.day == 0 {
		return ""
	}
	return calendar.Format(time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.Local))
}

// Time returns the time-of-day field; it is only meaningful with a date.
func (d datePicker) Time() string {
	if d.day == 0 {
		return ""
	}
	v := strings.TrimSpace(d.timeInput.Value())
	if v == "" {
		return ""
	}
	if _, err := time.Parse("15:04", v); err != nil {
		return ""
	}
	return v
}

func (d *datePicker) moveDay(delta int) {
	if d.day == 0 {
		now := time.Now()
		if now.Year() == d.year && now.Month() == d.month {
			d.day = now.Day()
		} else {
			d.day = 1
		}
		return
	}
	d.day += delta
	d.clampDay()
}

func (d *datePicker) moveMonth(delta int) {
	d.year, d.month = calendar.AddMonths(d.year, d.month, delta)
	d.clampDay()
}

func (d *datePicker) clampDay() {
	days := calendar.DaysInMonth(d.year, d.month)
	if d.day > days {
		d.day = days
	}
	if d.day < 1 {
		d.day = 1
	}
}

func (d *datePicker) quick(kind calendar.Quick) {
	t, err := time.ParseInLocation(calendar.DateLayout, calendar.QuickDate(kind, time.Now()), time.Local)
	if err != nil {
		return
	}
	d.year, d.month, d.day = t.Year(), t.Month(), t.Day()
}

func (d *datePicker) clear() {
	d.day = 0
	d.timeInput.SetValue("")
}

func (d datePicker) Update(msg tea.Msg) (datePicker, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "tab" {
			d.timeFocus = !d.timeFocus
			if d.timeFocus {
				cmd := d.timeInput.Focus()
				return d, cmd
			}
			d.timeInput.Blur()
			return d, nil
		}
		if d.timeFocus {
			var cmd tea.Cmd
			d.timeInput, cmd = d.timeInput.Update(msg)
			return d, cmd
		}
		switch keyMsg.String() {
		case "left", "h":
			d.moveDay(-1)
		case "right", "l":
			d.moveDay(1)
		case "up", "k":
			d.moveDay(-7)
		case "down", "j":
			d.moveDay(7)
		case "[":
			d.moveMonth(-1)
		case "]":
			d.moveMonth(1)
		case "t":
			d.quick(calendar.Tomorrow)
		case "w":
			d.quick(calendar.Weekend)
		case "n":
			d.quick(calendar.NextWeek)
		case "c":
			d.clear()
		}
	}
	return d, nil
}

func (d datePicker) View() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %d\n", d.month, d.year))
	b.WriteString(headerStyle.Render("  Mo  Tu  We  Th  Fr  Sa  Su"))
	b.WriteString("\n")

	today := time.Now()
	for i, cell := range calendar.MonthGrid(d.year, d.month) {
		if i > 0 && i%7 == 0 {
			b.WriteString("\n")
		}
		switch {
		case cell == 0:
			b.WriteString(dayStyle.Render(""))
		case cell == d.day:
			b.WriteString(selectedStyle.Render(fmt.Sprintf("%d", cell)))
		case today.Year() == d.year && today.Month() == d.month && today.Day() == cell:
			b.WriteString(todayStyle.Render(fmt.Sprintf("%d", cell)))
		default:
			b.WriteString(dayStyle.Render(fmt.Sprintf("%d", cell)))
		}
	}

	b.WriteString("\n\ntime: " + d.timeInput.View())
	if d.day == 0 {
		b.WriteString("\n" + headerStyle.Render("(no date)"))
	}
	return b.String()
}
