package model

// ViewPreference is the user's persisted choice of whether completed tasks
// are shown in the list.
type ViewPreference struct {
	ShowDoneTasks bool `json:"showDoneTasks"`
}

// DefaultViewPreference returns the preference used when nothing has been
// stored yet.
func DefaultViewPreference() ViewPreference {
	return ViewPreference{ShowDoneTasks: true}
}
