package model

import "time"

// Task is a single to-do item as reported by the remote task service.
type Task struct {
	// ID is the server-assigned identifier. It is opaque to the client.
	ID string `json:"id"`

	// Description is the non-empty, trimmed text of the item.
	Description string `json:"description"`

	// EstimatedAt is the target due date. It is fixed at creation.
	EstimatedAt time.Time `json:"estimated_at"`

	// DoneAt is nil while the task is pending and holds the completion
	// instant once it is done.
	DoneAt *time.Time `json:"done_at,omitempty"`
}

// IsDone reports whether the task has been completed.
func (t Task) IsDone() bool {
	return t.DoneAt != nil
}

// IsOverdue reports whether a pending task's estimated date lies before
// the calendar day of now.
func (t Task) IsOverdue(now time.Time) bool {
	if t.IsDone() || t.EstimatedAt.IsZero() {
		return false
	}
	y, m, d := now.Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return t.EstimatedAt.Before(startOfDay)
}
