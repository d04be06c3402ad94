package tasklist

import (
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasks/internal/engine"
	"github.com/nhle/tasks/internal/model"
	"github.com/nhle/tasks/internal/theme"
)

// Model is the main task list view component. It only renders the
// engine's view-model; intents are raised by the root model.
type Model struct {
	list          list.Model
	showDoneTasks bool
	loaded        bool
	total         int
	width         int
	height        int
}

// New creates a new task list model.
func New(width, height int) Model {
	delegate := TaskDelegate{now: time.Now}
	l := list.New([]list.Item{}, delegate, width, height)
	l.SetShowTitle(false)
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("task", "tasks")

	return Model{
		list:          l,
		showDoneTasks: true,
		width:         width,
		height:        height,
	}
}

// SetView replaces the displayed tasks with the snapshot's visible tasks,
// keeping the cursor on the same task when it is still visible.
func (m *Model) SetView(vm engine.ViewModel) tea.Cmd {
	selectedID := ""
	if t, ok := m.SelectedTask(); ok {
		selectedID = t.ID
	}

	items := make([]list.Item, len(vm.VisibleTasks))
	cursor := -1
	for i, task := range vm.VisibleTasks {
		items[i] = TaskItem{Task: task}
		if task.ID == selectedID {
			cursor = i
		}
	}

	m.showDoneTasks = vm.ShowDoneTasks
	m.loaded = vm.Loaded
	m.total = vm.Total

	cmd := m.list.SetItems(items)
	if cursor >= 0 {
		m.list.Select(cursor)
	}
	return cmd
}

// SelectedTask returns the task under the cursor.
func (m Model) SelectedTask() (model.Task, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.Task{}, false
	}
	return item.Task, true
}

// Update forwards navigation messages to the list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the task list view.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}
	return m.list.View()
}

// renderEmptyState shows guidance text when no tasks are visible.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	switch {
	case !m.loaded:
		return style.Render("Loading tasks...")
	case !m.showDoneTasks && m.total > 0:
		return style.Render("All tasks are done.\nPress h to show completed tasks.")
	default:
		return style.Render("Nothing due.\n\nPress n to add a task.")
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
}
