package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/acampos/foco/internal/model"
)

// categoryPicker assigns a category to a task. Cursor position 0 is the
// "(none)" entry, then one row per category, then the new-category row.
type categoryPicker struct {
	cats     []model.Category
	cursor   int
	creating bool
	input    textinput.Model
	colorIdx int
}

func newCategoryPicker(cats []model.Category) categoryPicker {
	in := textinput.New()
	in.Placeholder = "New category name..."
	in.CharLimit = 32
	return categoryPicker{cats: cats, input: in}
}

func (p *categoryPicker) SetCategories(cats []model.Category) {
	p.cats = cats
	if p.cursor > len(cats)+1 {
		p.cursor = len(cats) + 1
	}
}

// SelectedID returns the category under the cursor, or "" for "(none)".
// ok is false on the new-category row.
func (p categoryPicker) SelectedID() (string, bool) {
	if p.cursor == 0 {
		return "", true
	}
	if p.cursor <= len(p.cats) {
		return p.cats[p.cursor-1].ID, true
	}
	return "", false
}

func (p categoryPicker) onNewRow() bool {
	return p.cursor == len(p.cats)+1
}

func (p categoryPicker) newColor() model.Color {
	return model.Colors[p.colorIdx%len(model.Colors)]
}

func (p categoryPicker) Update(msg tea.Msg) (categoryPicker, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	if p.creating {
		switch keyMsg.String() {
		case "left":
			p.colorIdx = (p.colorIdx + len(model.Colors) - 1) % len(model.Colors)
			return p, nil
		case "right":
			p.colorIdx = (p.colorIdx + 1) % len(model.Colors)
			return p, nil
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}

	switch keyMsg.String() {
	case "j", "down":
		if p.cursor < len(p.cats)+1 {
			p.cursor++
		}
	case "k", "up":
		if p.cursor > 0 {
			p.cursor--
		}
	}
	return p, nil
}

func (p categoryPicker) View() string {
	var lines []string
	rows := make([]string, 0, len(p.cats)+2)
	rows = append(rows, "(none)")
	for _, c := range p.cats {
		rows = append(rows, lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Color.ANSI())).
			Render("● "+c.Name))
	}
	rows = append(rows, "+ New category...")

	for i, row := range rows {
		cursor := "  "
		if i == p.cursor {
			cursor = "> "
		}
		lines = append(lines, cursor+row)
	}

	content := strings.Join(lines, "\n")
	if p.creating {
		swatch := lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.newColor().ANSI())).
			Render("● " + string(p.newColor()))
		content += "\n\n" + p.input.View() + "\n" + statusStyle.Render("←/→ color: ") + swatch
	}
	return content
}
