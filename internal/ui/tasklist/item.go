package tasklist

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/tasks/internal/model"
	"github.com/nhle/tasks/internal/theme"
)

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Description }

// TaskDelegate implements list.ItemDelegate for rendering tasks.
type TaskDelegate struct {
	now func() time.Time
}

// Height returns the number of lines each item takes.
func (d TaskDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d TaskDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d TaskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single task line.
func (d TaskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}
	fmt.Fprint(w, renderTask(ti.Task, index == m.Index(), d.now()))
}

// renderTask draws one task: marker, description, date and completion time.
func renderTask(task model.Task, selected bool, now time.Time) string {
	marker := "○"
	if task.IsDone() {
		marker = "✓"
	}
	marker = theme.CheckStyle(task.IsDone()).Render(marker)

	desc := task.Description
	if task.IsDone() {
		desc = theme.DoneStyle.Render(desc)
	}

	line := fmt.Sprintf("%s %s", marker, desc)

	if !task.EstimatedAt.IsZero() {
		line += theme.DueDateStyle.Render("  " + DateLabel(task.EstimatedAt, now))
	}
	if task.IsOverdue(now) {
		line += theme.OverdueStyle.Render(" OVERDUE")
	}
	if task.IsDone() {
		line += theme.DueDateStyle.Render("  done " + task.DoneAt.Local().Format("Jan 02 15:04"))
	}

	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

// DateLabel formats a due date relative to now: "today", "tomorrow",
// a weekday within the next week, otherwise "Mon, 2 Jan".
func DateLabel(t, now time.Time) string {
	t = t.In(now.Location())
	day := func(x time.Time) time.Time {
		y, m, d := x.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, x.Location())
	}
	diff := int(math.Round(day(t).Sub(day(now)).Hours() / 24))

	switch {
	case diff == 0:
		return "today"
	case diff == 1:
		return "tomorrow"
	case diff == -1:
		return "yesterday"
	case diff > 1 && diff < 7:
		return t.Format("Monday")
	default:
		return t.Format("Mon, 2 Jan")
	}
}
