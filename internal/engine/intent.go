package engine

import "time"

// Intent is a user request handed to Engine.Dispatch.
type Intent interface {
	intent()
}

// ToggleFilterIntent flips whether completed tasks are shown.
type ToggleFilterIntent struct{}

// ToggleTaskIntent flips the done state of a task on the server.
type ToggleTaskIntent struct {
	ID string
}

// AddTaskIntent creates a task.
type AddTaskIntent struct {
	Description string
	EstimatedAt time.Time
}

// DeleteTaskIntent removes a task.
type DeleteTaskIntent struct {
	ID string
}

// OpenAddTaskIntent shows the add-task surface.
type OpenAddTaskIntent struct{}

// CancelAddTaskIntent hides the add-task surface without creating anything.
type CancelAddTaskIntent struct{}

// ReloadIntent fetches the tasks due within DaysAhead days.
type ReloadIntent struct {
	DaysAhead int
}

func (ToggleFilterIntent) intent()  {}
func (ToggleTaskIntent) intent()    {}
func (AddTaskIntent) intent()       {}
func (DeleteTaskIntent) intent()    {}
func (OpenAddTaskIntent) intent()   {}
func (CancelAddTaskIntent) intent() {}
func (ReloadIntent) intent()        {}
