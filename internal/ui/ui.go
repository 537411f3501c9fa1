package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/acampos/foco/internal/model"
	"github.com/acampos/foco/internal/repeat"
	"github.com/acampos/foco/internal/store"
)

type appState int

const (
	stateList appState = iota
	stateAdd
	stateConfirm
	stateDetail
	stateEditDesc
	stateDate
	stateRepeat
	stateCategory
)

var (
	appStyle     = lipgloss.NewStyle().Padding(1, 2)
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	confirmStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	detailStyle  = lipgloss.NewStyle().
			Padding(1, 2).
			BorderLeft(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241"))
	descBoxStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241"))
)

type extraKeyMap struct {
	Add      key.Binding
	Toggle   key.Binding
	Delete   key.Binding
	Detail   key.Binding
	Date     key.Binding
	Repeat   key.Binding
	Category key.Binding
	EditDesc key.Binding
	SubAdd   key.Binding
	Yank     key.Binding
}

func newExtraKeyMap() extraKeyMap {
	return extraKeyMap{
		Add: key.NewBinding(
			key.WithKeys("a", "n"),
			key.WithHelp("a/n", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", "x"),
			key.WithHelp("enter/x", "toggle"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Detail: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "subtasks"),
		),
		Date: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "date"),
		),
		Repeat: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "repeat"),
		),
		Category: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "category"),
		),
		EditDesc: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit desc"),
		),
		SubAdd: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sub-task"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yank"),
		),
	}
}

// Model is the top-level BubbleTea model for the foco TUI.
type Model struct {
	state        appState
	list         list.Model
	input        textinput.Model
	descInput    textarea.Model
	datePicker   datePicker
	repeatPanel  repeatPanel
	catPicker    categoryPicker
	store        *store.Store
	keys         extraKeyMap
	defaultColor model.Color
	subTarget    string // task id receiving the subtask in stateAdd
	subCursor    int
	status       string
	err          error
	width        int
	height       int
}

type tasksLoadedMsg []TaskItem
type refreshMsg struct{}
type errMsg struct{ error }

// NewModel creates a new TUI model over the store.
func NewModel(s *store.Store, defaultColor model.Color) Model {
	ti := textinput.New()
	ti.Placeholder = "Task text..."
	ti.CharLimit = 256

	keys := newExtraKeyMap()

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetHeight(1)
	delegate.SetSpacing(0)
	l := list.New(nil, delegate, 0, 0)
	l.Title = "foco"
	l.Styles.Title = titleStyle
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("task", "tasks")
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Delete, keys.Detail, keys.Date, keys.Repeat, keys.Category}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Delete, keys.Detail, keys.Date, keys.Repeat, keys.Category, keys.EditDesc, keys.SubAdd, keys.Yank}
	}

	ta := textarea.New()
	ta.Placeholder = "Task description..."
	ta.CharLimit = 4096

	if !defaultColor.Valid() {
		defaultColor = model.ColorBlue
	}

	return Model{
		state:        stateList,
		list:         l,
		input:        ti,
		descInput:    ta,
		store:        s,
		keys:         keys,
		defaultColor: defaultColor,
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadTasks
}

// loadTasks snapshots the store into list items, resolving category
// badges up front.
func (m Model) loadTasks() tea.Msg {
	cats := make(map[string]model.Category)
	for _, c := range m.store.Categories() {
		cats[c.ID] = c
	}
	tasks := m.store.Tasks()
	items := make([]TaskItem, len(tasks))
	for i, t := range tasks {
		item := TaskItem{Task: t}
		if c, ok := cats[t.CategoryID]; ok {
			item.CategoryName = c.Name
			item.CategoryColor = c.Color
		}
		items[i] = item
	}
	return tasksLoadedMsg(items)
}

// mutate runs one store operation off the update loop. The store applies
// the change locally before the backend round-trip, so the refresh after
// the command reflects either the confirmed or the rolled-back state.
func (m Model) mutate(fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(context.Background()); err != nil {
			return errMsg{err}
		}
		return refreshMsg{}
	}
}

func (m Model) selectedTask() (model.Task, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.Task{}, false
	}
	// Re-read from the store: the list item may predate a recent mutation.
	if t, ok := m.store.Task(item.Task.ID); ok {
		return t, true
	}
	return model.Task{}, false
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := appStyle.GetFrameSize()
		contentWidth := msg.Width - h
		leftWidth := contentWidth * 60 / 100
		rightWidth := contentWidth - leftWidth
		m.list.SetSize(leftWidth, msg.Height-v)
		m.descInput.SetWidth(rightWidth - 6)
		m.descInput.SetHeight(msg.Height - v - 10)
		return m, nil

	case tasksLoadedMsg:
		items := make([]list.Item, len(msg))
		for i, it := range msg {
			items[i] = it
		}
		m.list.SetItems(items)
		if m.state == stateCategory {
			m.catPicker.SetCategories(m.store.Categories())
		}
		return m, nil

	case refreshMsg:
		m.err = nil
		return m, m.loadTasks

	case errMsg:
		m.err = msg.error
		m.status = ""
		// Reload so a rolled-back change disappears from the list.
		return m, m.loadTasks
	}

	switch m.state {
	case stateList:
		return m.updateList(msg)
	case stateAdd:
		return m.updateAdd(msg)
	case stateConfirm:
		return m.updateConfirm(msg)
	case stateDetail:
		return m.updateDetail(msg)
	case stateEditDesc:
		return m.updateEditDesc(msg)
	case stateDate:
		return m.updateDate(msg)
	case stateRepeat:
		return m.updateRepeat(msg)
	case stateCategory:
		return m.updateCategory(msg)
	}

	return m, nil
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
		switch keyMsg.String() {
		case "a", "n":
			m.state = stateAdd
			m.subTarget = ""
			m.input.Reset()
			cmd := m.input.Focus()
			return m, cmd
		case "enter", "x":
			if task, ok := m.selectedTask(); ok {
				id := task.ID
				return m, m.mutate(func(ctx context.Context) error {
					return m.store.ToggleTask(ctx, id)
				})
			}
		case "d":
			if _, ok := m.selectedTask(); ok {
				m.state = stateConfirm
				return m, nil
			}
		case "v":
			if task, ok := m.selectedTask(); ok {
				m.store.Select(task.ID)
				m.state = stateDetail
				m.subCursor = 0
				return m, nil
			}
		case "s":
			if task, ok := m.selectedTask(); ok {
				m.state = stateAdd
				m.subTarget = task.ID
				m.input.Reset()
				cmd := m.input.Focus()
				return m, cmd
			}
		case "D":
			if task, ok := m.selectedTask(); ok {
				m.store.Select(task.ID)
				m.state = stateDate
				m.datePicker = newDatePicker(task.Date, task.Time)
				return m, nil
			}
		case "r":
			if task, ok := m.selectedTask(); ok {
				m.store.Select(task.ID)
				m.state = stateRepeat
				m.repeatPanel = newRepeatPanel(task.Repeat, task.CustomRepeat)
				return m, nil
			}
		case "T":
			if task, ok := m.selectedTask(); ok {
				m.store.Select(task.ID)
				m.state = stateCategory
				m.catPicker = newCategoryPicker(m.store.Categories())
				return m, nil
			}
		case "e":
			if task, ok := m.selectedTask(); ok {
				m.store.Select(task.ID)
				m.state = stateEditDesc
				m.descInput.Reset()
				m.descInput.SetValue(task.Description)
				cmd := m.descInput.Focus()
				return m, cmd
			}
		case "y":
			if task, ok := m.selectedTask(); ok {
				if err := clipboard.WriteAll(task.Text); err != nil {
					m.err = err
				} else {
					m.status = "copied"
				}
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			target := m.subTarget
			m.state = stateList
			m.subTarget = ""
			if text == "" {
				return m, nil
			}
			if target != "" {
				return m, m.mutate(func(ctx context.Context) error {
					return m.store.AddSubtask(ctx, target, text)
				})
			}
			fields := model.Task{Text: text, Color: m.defaultColor}
			return m, m.mutate(func(ctx context.Context) error {
				_, err := m.store.AddTask(ctx, fields)
				return err
			})
		case "esc":
			m.state = stateList
			m.subTarget = ""
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "y":
			m.state = stateList
			if task, ok := m.selectedTask(); ok {
				id := task.ID
				return m, m.mutate(func(ctx context.Context) error {
					return m.store.DeleteTask(ctx, id)
				})
			}
			return m, nil
		case "n", "esc":
			m.state = stateList
			return m, nil
		}
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	task, ok := m.store.Selected()
	if !ok {
		m.state = stateList
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "j", "down":
			if m.subCursor < len(task.Subtasks)-1 {
				m.subCursor++
			}
		case "k", "up":
			if m.subCursor > 0 {
				m.subCursor--
			}
		case " ", "x", "enter":
			if m.subCursor < len(task.Subtasks) {
				subID := task.Subtasks[m.subCursor].ID
				return m, m.mutate(func(ctx context.Context) error {
					return m.store.ToggleSubtask(ctx, task.ID, subID)
				})
			}
		case "a", "s":
			m.state = stateAdd
			m.subTarget = task.ID
			m.input.Reset()
			cmd := m.input.Focus()
			return m, cmd
		case "d":
			if m.subCursor < len(task.Subtasks) {
				subID := task.Subtasks[m.subCursor].ID
				if m.subCursor > 0 {
					m.subCursor--
				}
				return m, m.mutate(func(ctx context.Context) error {
					return m.store.DeleteSubtask(ctx, task.ID, subID)
				})
			}
		case "y":
			if err := clipboard.WriteAll(task.Text); err != nil {
				m.err = err
			} else {
				m.status = "copied"
			}
		case "esc":
			m.state = stateList
			m.store.ClearSelection()
		}
	}
	return m, nil
}

func (m Model) updateEditDesc(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = stateList
			if task, ok := m.store.Selected(); ok {
				task.Description = m.descInput.Value()
				return m, m.mutate(func(ctx context.Context) error {
					return m.store.UpdateTask(ctx, task)
				})
			}
			return m, nil
		case "ctrl+c":
			m.state = stateList
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.descInput, cmd = m.descInput.Update(msg)
	return m, cmd
}

func (m Model) updateDate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.state = stateList
			if task, ok := m.store.Selected(); ok {
				task.Date = m.datePicker.Date()
				task.Time = m.datePicker.Time()
				return m, m.mutate(func(ctx context.Context) error {
					return m.store.UpdateTask(ctx, task)
				})
			}
			return m, nil
		case "esc":
			m.state = stateList
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.datePicker, cmd = m.datePicker.Update(msg)
	return m, cmd
}

func (m Model) updateRepeat(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.state = stateList
			if task, ok := m.store.Selected(); ok {
				task.Repeat, task.CustomRepeat = m.repeatPanel.Confirm()
				return m, m.mutate(func(ctx context.Context) error {
					return m.store.UpdateTask(ctx, task)
				})
			}
			return m, nil
		case "esc":
			m.state = stateList
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.repeatPanel, cmd = m.repeatPanel.Update(msg)
	return m, cmd
}

func (m Model) updateCategory(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.catPicker.creating {
			switch keyMsg.String() {
			case "enter":
				name := strings.TrimSpace(m.catPicker.input.Value())
				if name != "" {
					// Category creation waits for the backend; the id is
					// usable as soon as this returns.
					cat, err := m.store.AddCategory(context.Background(), name, m.catPicker.newColor())
					if err != nil {
						m.err = err
					} else {
						m.catPicker.SetCategories(m.store.Categories())
						m.catPicker.cursor = indexOfCategory(m.catPicker.cats, cat.ID) + 1
					}
				}
				m.catPicker.creating = false
				m.catPicker.input.Reset()
				return m, nil
			case "esc":
				m.catPicker.creating = false
				m.catPicker.input.Reset()
				return m, nil
			}
			var cmd tea.Cmd
			m.catPicker, cmd = m.catPicker.Update(msg)
			return m, cmd
		}

		switch keyMsg.String() {
		case "enter", " ":
			if m.catPicker.onNewRow() {
				m.catPicker.creating = true
				cmd := m.catPicker.input.Focus()
				return m, cmd
			}
			id, _ := m.catPicker.SelectedID()
			m.state = stateList
			if task, ok := m.store.Selected(); ok {
				task.CategoryID = id
				return m, m.mutate(func(ctx context.Context) error {
					return m.store.UpdateTask(ctx, task)
				})
			}
			return m, nil
		case "x":
			if id, ok := m.catPicker.SelectedID(); ok && id != "" {
				return m, m.mutate(func(ctx context.Context) error {
					return m.store.DeleteCategory(ctx, id)
				})
			}
		case "esc":
			m.state = stateList
			return m, m.loadTasks
		}
	}

	var cmd tea.Cmd
	m.catPicker, cmd = m.catPicker.Update(msg)
	return m, cmd
}

func indexOfCategory(cats []model.Category, id string) int {
	for i, c := range cats {
		if c.ID == id {
			return i
		}
	}
	return 0
}

func (m Model) renderDetail() string {
	var task model.Task
	if m.state == stateDetail {
		t, ok := m.store.Selected()
		if !ok {
			return ""
		}
		task = t
	} else {
		t, ok := m.selectedTask()
		if !ok {
			return ""
		}
		task = t
	}

	dot := lipgloss.NewStyle().
		Foreground(lipgloss.Color(task.Color.ANSI())).
		Render("●")

	descContent := statusStyle.Render("(no description)")
	if task.Description != "" {
		descContent = task.Description
	}
	desc := descBoxStyle.Render(descContent)

	catLine := ""
	if c, ok := m.store.Category(task.CategoryID); ok {
		badge := lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Color.ANSI())).
			Bold(true).
			Render("[" + c.Name + "]")
		catLine = "\ncategory: " + badge
	}

	dueLine := ""
	if task.HasDate() {
		label := "due: " + task.Date
		if task.Time != "" {
			label += " " + task.Time
		}
		if task.IsOverdue() {
			label = errorStyle.Render("⚠️ " + label)
		} else if task.IsDueToday() {
			label = "📅 " + label
		}
		dueLine = "\n" + label
	}

	repeatLine := ""
	switch {
	case task.Repeat == model.RepeatCustom && task.CustomRepeat != nil:
		repeatLine = "\nrepeat: " + repeat.Describe(*task.CustomRepeat)
	case task.IsRecurring():
		repeatLine = "\nrepeat: " + string(task.Repeat)
	}

	subLines := ""
	if len(task.Subtasks) > 0 {
		var b strings.Builder
		b.WriteString("\n\nsubtasks:")
		for i, sub := range task.Subtasks {
			check := "[ ]"
			if sub.Completed {
				check = "[x]"
			}
			line := fmt.Sprintf("  %s %s", check, sub.Text)
			if m.state == stateDetail && i == m.subCursor {
				line = confirmStyle.Render("> ") + line[2:]
			}
			b.WriteString("\n" + line)
		}
		subLines = b.String()
	}

	hints := "v: subtasks  e: edit desc  T: category"
	if m.state == stateDetail {
		hints = "j/k: move  space: toggle  a: add  d: delete  esc: back"
	}

	return fmt.Sprintf("%s %s%s%s%s%s\n\ncreated: %s\n\n%s",
		dot,
		task.Text,
		catLine,
		dueLine,
		repeatLine,
		subLines+"\n\n"+desc,
		task.CreatedAt.Format("2006-01-02 15:04"),
		statusStyle.Render(hints),
	)
}

func (m Model) View() string {
	var errView string
	if m.err != nil {
		errView = "\n" + errorStyle.Render("Error: "+m.err.Error()) + "\n"
	} else if m.status != "" {
		errView = "\n" + statusStyle.Render(m.status) + "\n"
	}

	if m.store.State() == store.StateLoading {
		return appStyle.Render(titleStyle.Render("foco") + "\n\nloading..." + errView)
	}

	switch m.state {
	case stateAdd:
		header := "New Task"
		if m.subTarget != "" {
			header = "New Subtask"
		}
		return appStyle.Render(
			titleStyle.Render(header) + "\n\n" +
				m.input.View() + "\n\n" +
				statusStyle.Render("enter: save • esc: cancel") +
				errView,
		)
	case stateConfirm:
		task, _ := m.selectedTask()
		return appStyle.Render(
			confirmStyle.Render("Delete Task?") + "\n\n" +
				"  " + task.Text + "\n\n" +
				statusStyle.Render("y: delete • n/esc: cancel") +
				errView,
		)
	case stateDate:
		return appStyle.Render(
			titleStyle.Render("Due Date") + "\n\n" +
				m.datePicker.View() + "\n\n" +
				statusStyle.Render("h/j/k/l: move • [/]: month • t/w/n: quick • c: clear • tab: time • enter: save • esc: cancel") +
				errView,
		)
	case stateRepeat:
		return appStyle.Render(
			titleStyle.Render("Repeat") + "\n\n" +
				m.repeatPanel.View() + "\n\n" +
				statusStyle.Render("j/k: row • h/l: change • space: toggle day • enter: save • esc: cancel") +
				errView,
		)
	case stateCategory:
		return appStyle.Render(
			titleStyle.Render("Category") + "\n\n" +
				m.catPicker.View() + "\n\n" +
				statusStyle.Render("j/k: navigate • enter: assign • x: delete • esc: back") +
				errView,
		)
	case stateEditDesc:
		return appStyle.Render(
			titleStyle.Render("Edit Description") + "\n\n" +
				m.descInput.View() + "\n\n" +
				statusStyle.Render("esc: save • ctrl+c: cancel") +
				errView,
		)
	default:
		h, v := appStyle.GetFrameSize()
		contentWidth := m.width - h
		contentHeight := m.height - v
		rightWidth := contentWidth - contentWidth*60/100

		leftPane := m.list.View()
		rightPane := detailStyle.
			Width(rightWidth).
			Height(contentHeight).
			Render(m.renderDetail())
		content := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
		return appStyle.Render(content + errView)
	}
}
