package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/nhle/tasks/internal/model"
)

// preferenceKey is the settings key holding the serialized view preference.
const preferenceKey = "taskState"

// Preferences persists the view preference as a single JSON document.
type Preferences struct {
	store  Store
	logger *slog.Logger
}

// NewPreferences creates a preference store on top of s.
func NewPreferences(s Store, logger *slog.Logger) *Preferences {
	return &Preferences{store: s, logger: logger}
}

// Load returns the stored preference. The boolean is false when nothing is
// stored or the stored value cannot be parsed; read failures are logged and
// treated the same way.
func (p *Preferences) Load(ctx context.Context) (model.ViewPreference, bool) {
	raw, err := p.store.GetSetting(ctx, preferenceKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			p.logger.Warn("loading view preference", "error", err)
		}
		return model.DefaultViewPreference(), false
	}

	// Decode into a pointer field so that a document lacking the key is
	// not mistaken for an explicit false.
	var doc struct {
		ShowDoneTasks *bool `json:"showDoneTasks"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil || doc.ShowDoneTasks == nil {
		p.logger.Warn("discarding unparsable view preference", "value", raw, "error", err)
		return model.DefaultViewPreference(), false
	}

	return model.ViewPreference{ShowDoneTasks: *doc.ShowDoneTasks}, true
}

// Save writes pref, replacing any previous value.
func (p *Preferences) Save(ctx context.Context, pref model.ViewPreference) error {
	data, err := json.Marshal(pref)
	if err != nil {
		return err
	}
	return p.store.PutSetting(ctx, preferenceKey, string(data))
}

// Reset removes the stored preference so the next Load yields the default.
func (p *Preferences) Reset(ctx context.Context) error {
	return p.store.DeleteSetting(ctx, preferenceKey)
}
