package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/acampos/foco/internal/model"
)

// TaskItem wraps model.Task to satisfy the list.DefaultItem interface.
// Category name and color are resolved when the list is built so the
// item can render a badge without a registry lookup.
type TaskItem struct {
	Task          model.Task
	CategoryName  string
	CategoryColor model.Color
}

func (i TaskItem) Title() string {
	check := "[ ]"
	if i.Task.Completed {
		check = "[x]"
	}
	dot := lipgloss.NewStyle().
		Foreground(lipgloss.Color(i.Task.Color.ANSI())).
		Render("●")
	dueMark := ""
	if i.Task.IsOverdue() {
		dueMark = "⚠️ "
	} else if i.Task.IsDueToday() {
		dueMark = "📅 "
	}
	repeatMark := ""
	if i.Task.IsRecurring() {
		repeatMark = " ↻"
	}
	badge := ""
	if i.CategoryName != "" {
		badge = " " + lipgloss.NewStyle().
			Foreground(lipgloss.Color(i.CategoryColor.ANSI())).
			Render("["+i.CategoryName+"]")
	}
	return fmt.Sprintf("%s %s %s%s%s%s", check, dot, dueMark, i.Task.Text, repeatMark, badge)
}

func (i TaskItem) Description() string {
	return ""
}

func (i TaskItem) FilterValue() string {
	return i.Task.Text
}
