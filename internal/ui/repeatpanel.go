package ui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/acampos/foco/internal/model"
	"github.com/acampos/foco/internal/repeat"
)

type repeatRow int

const (
	rowKind repeatRow = iota
	rowEvery
	rowUnit
	rowWeekdays
	rowEnd
	rowEndValue
)

var (
	repeatKinds  = []model.Repeat{model.RepeatNone, model.RepeatDaily, model.RepeatWeekly, model.RepeatMonthly, model.RepeatCustom}
	repeatUnits  = []model.Unit{model.UnitDay, model.UnitWeek, model.UnitMonth, model.UnitYear}
	endTypes     = []model.EndType{model.EndNever, model.EndOn, model.EndAfter}
	weekdayNames = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}
)

// storedWeekday maps a Monday-first display column to the stored weekday
// index, which counts 0=Sunday like the rest of the rule model.
func storedWeekday(col int) int {
	return (col + 1) % 7
}

// repeatPanel edits a task's repeat rule. The simple kinds need no extra
// input; picking custom unlocks the interval, weekday and end rows.
type repeatPanel struct {
	kind       model.Repeat
	rule       model.CustomRepeat
	row        repeatRow
	weekCursor int
	everyInput textinput.Model
	endInput   textinput.Model
}

func newRepeatPanel(kind model.Repeat, rule *model.CustomRepeat) repeatPanel {
	every := textinput.New()
	every.CharLimit = 3
	every.Width = 5
	every.Validate = func(s string) error {
		for _, r := range s {
			if !unicode.IsDigit(r) {
				return fmt.Errorf("digits only")
			}
		}
		return nil
	}

	end := textinput.New()
	end.CharLimit = 10
	end.Width = 12

	p := repeatPanel{
		kind:       model.RepeatNone,
		rule:       model.CustomRepeat{Every: 1, Unit: model.UnitWeek, End: model.RepeatEnd{Type: model.EndNever}},
		everyInput: every,
		endInput:   end,
	}
	if kind != "" {
		p.kind = kind
	}
	if rule != nil {
		p.rule = rule.Clone()
	}
	p.everyInput.SetValue(strconv.Itoa(p.rule.Every))
	p.syncEndInput()
	return p
}

// Confirm resolves the panel into the kind plus, for custom, the clamped
// rule. Out-of-range values are clamped rather than rejected.
func (p repeatPanel) Confirm() (model.Repeat, *model.CustomRepeat) {
	if p.kind != model.RepeatCustom {
		return p.kind, nil
	}
	rule := p.rule.Clone()
	rule.Every, _ = strconv.Atoi(strings.TrimSpace(p.everyInput.Value()))
	switch rule.End.Type {
	case model.EndOn:
		rule.End.Date = strings.TrimSpace(p.endInput.Value())
	case model.EndAfter:
		rule.End.Count, _ = strconv.Atoi(strings.TrimSpace(p.endInput.Value()))
	}
	rule = repeat.Confirm(rule)
	return model.RepeatCustom, &rule
}

func (p *repeatPanel) syncEndInput() {
	switch p.rule.End.Type {
	case model.EndOn:
		p.endInput.Placeholder = "YYYY-MM-DD"
		p.endInput.SetValue(p.rule.End.Date)
	case model.EndAfter:
		p.endInput.Placeholder = "count"
		if p.rule.End.Count > 0 {
			p.endInput.SetValue(strconv.Itoa(p.rule.End.Count))
		} else {
			p.endInput.SetValue("")
		}
	default:
		p.endInput.SetValue("")
	}
}

func cycle[T comparable](options []T, current T, delta int) T {
	for i, v := range options {
		if v == current {
			return options[((i+delta)%len(options)+len(options))%len(options)]
		}
	}
	return options[0]
}

func (p *repeatPanel) nextRow(delta int) {
	rows := []repeatRow{rowKind}
	if p.kind == model.RepeatCustom {
		rows = append(rows, rowEvery, rowUnit)
		if p.rule.Unit == model.UnitWeek {
			rows = append(rows, rowWeekdays)
		}
		rows = append(rows, rowEnd)
		if p.rule.End.Type != model.EndNever {
			rows = append(rows, rowEndValue)
		}
	}
	idx := 0
	for i, r := range rows {
		if r == p.row {
			idx = i
			break
		}
	}
	idx = ((idx+delta)%len(rows) + len(rows)) % len(rows)
	p.row = rows[idx]
	p.everyInput.Blur()
	p.endInput.Blur()
	switch p.row {
	case rowEvery:
		p.everyInput.Focus()
	case rowEndValue:
		p.endInput.Focus()
	}
}

func (p repeatPanel) Update(msg tea.Msg) (repeatPanel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch keyMsg.String() {
	case "up", "shift+tab":
		p.nextRow(-1)
		return p, nil
	case "down", "tab":
		p.nextRow(1)
		return p, nil
	}

	switch p.row {
	case rowKind:
		switch keyMsg.String() {
		case "left", "h":
			p.kind = cycle(repeatKinds, p.kind, -1)
		case "right", "l":
			p.kind = cycle(repeatKinds, p.kind, 1)
		}
	case rowEvery:
		var cmd tea.Cmd
		p.everyInput, cmd = p.everyInput.Update(msg)
		return p, cmd
	case rowUnit:
		switch keyMsg.String() {
		case "left", "h":
			p.rule.Unit = cycle(repeatUnits, p.rule.Unit, -1)
		case "right", "l":
			p.rule.Unit = cycle(repeatUnits, p.rule.Unit, 1)
		}
	case rowWeekdays:
		switch keyMsg.String() {
		case "left", "h":
			if p.weekCursor > 0 {
				p.weekCursor--
			}
		case "right", "l":
			if p.weekCursor < 6 {
				p.weekCursor++
			}
		case " ", "x":
			p.rule.Weekdays = repeat.ToggleWeekday(p.rule.Weekdays, storedWeekday(p.weekCursor))
		}
	case rowEnd:
		switch keyMsg.String() {
		case "left", "h":
			p.rule.End.Type = cycle(endTypes, p.rule.End.Type, -1)
			p.syncEndInput()
		case "right", "l":
			p.rule.End.Type = cycle(endTypes, p.rule.End.Type, 1)
			p.syncEndInput()
		}
	case rowEndValue:
		var cmd tea.Cmd
		p.endInput, cmd = p.endInput.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p repeatPanel) View() string {
	marker := func(r repeatRow) string {
		if p.row == r {
			return "> "
		}
		return "  "
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%srepeat: %s\n", marker(rowKind), p.kind))
	if p.kind != model.RepeatCustom {
		return b.String()
	}

	b.WriteString(fmt.Sprintf("%severy:  %s\n", marker(rowEvery), p.everyInput.View()))
	b.WriteString(fmt.Sprintf("%sunit:   %s\n", marker(rowUnit), p.rule.Unit))

	if p.rule.Unit == model.UnitWeek {
		boxes := make([]string, len(weekdayNames))
		selected := make(map[int]bool, len(p.rule.Weekdays))
		for _, wd := range p.rule.Weekdays {
			selected[wd] = true
		}
		for i, name := range weekdayNames {
			box := " "
			if selected[storedWeekday(i)] {
				box = "x"
			}
			cell := fmt.Sprintf("[%s]%s", box, name)
			if p.row == rowWeekdays && i == p.weekCursor {
				cell = confirmStyle.Render(cell)
			}
			boxes[i] = cell
		}
		b.WriteString(fmt.Sprintf("%sdays:   %s\n", marker(rowWeekdays), strings.Join(boxes, " ")))
	}

	b.WriteString(fmt.Sprintf("%send:    %s\n", marker(rowEnd), p.rule.End.Type))
	if p.rule.End.Type != model.EndNever {
		b.WriteString(fmt.Sprintf("%svalue:  %s\n", marker(rowEndValue), p.endInput.View()))
	}

	_, preview := p.Confirm()
	if preview != nil {
		b.WriteString("\n" + statusStyle.Render(repeat.Describe(*preview)))
	}
	return b.String()
}
