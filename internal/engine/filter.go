package engine

import "github.com/nhle/tasks/internal/model"

// ComputeVisible returns the tasks to display. With showDone it is a copy of
// tasks; otherwise only pending tasks are kept. Order is preserved and the
// input is never modified.
func ComputeVisible(tasks []model.Task, showDone bool) []model.Task {
	visible := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if showDone || t.DoneAt == nil {
			visible = append(visible, t)
		}
	}
	return visible
}
