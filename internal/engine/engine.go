// Package engine owns the task collection, the view preference and the
// visible subset derived from them. The presentation layer reads immutable
// ViewModel snapshots and sends intents; it never touches the state directly.
package engine

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/nhle/tasks/internal/model"
	"github.com/nhle/tasks/internal/source"
)

// PreferenceStore persists the view preference.
type PreferenceStore interface {
	// Load returns the stored preference, or false when none is usable.
	Load(ctx context.Context) (model.ViewPreference, bool)
	Save(ctx context.Context, pref model.ViewPreference) error
}

// ViewModel is a read-only snapshot of the engine state.
type ViewModel struct {
	VisibleTasks  []model.Task
	ShowDoneTasks bool
	AddTaskOpen   bool

	// DaysAhead is the horizon of the collection currently held.
	DaysAhead int

	// Boundary is the due-date limit of the last successful reload.
	Boundary time.Time

	// Loaded is false until the first reload succeeds.
	Loaded bool

	// Loading is true while at least one reload is in flight.
	Loading bool

	// Total is the size of the full collection, hidden tasks included.
	Total int
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now as the source of the current moment.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithDaysAhead sets the horizon used by Initialize.
func WithDaysAhead(days int) Option {
	return func(e *Engine) { e.daysAhead = max(days, 0) }
}

// Engine is the single mutator of the task list state. Its methods are safe
// to call from the goroutines bubbletea runs commands on; the lock is never
// held across a gateway or store call.
type Engine struct {
	gateway source.Gateway
	prefs   PreferenceStore
	logger  *slog.Logger
	now     func() time.Time

	// saveMu serializes preference writes so the last write carries the
	// latest value.
	saveMu sync.Mutex

	mu          sync.Mutex
	tasks       []model.Task
	visible     []model.Task
	pref        model.ViewPreference
	addTaskOpen bool
	daysAhead   int
	boundary    time.Time
	loaded      bool
	reloadSeq   uint64
	inflight    int
}

// New creates an engine with the default preference and an empty collection.
func New(gateway source.Gateway, prefs PreferenceStore, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		gateway: gateway,
		prefs:   prefs,
		logger:  logger,
		now:     time.Now,
		pref:    model.DefaultViewPreference(),
		visible: []model.Task{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Snapshot returns the current view-model.
func (e *Engine) Snapshot() ViewModel {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() ViewModel {
	visible := make([]model.Task, len(e.visible))
	copy(visible, e.visible)
	return ViewModel{
		VisibleTasks:  visible,
		ShowDoneTasks: e.pref.ShowDoneTasks,
		AddTaskOpen:   e.addTaskOpen,
		DaysAhead:     e.daysAhead,
		Boundary:      e.boundary,
		Loaded:        e.loaded,
		Loading:       e.inflight > 0,
		Total:         len(e.tasks),
	}
}

// Collection returns a copy of the full task collection.
func (e *Engine) Collection() []model.Task {
	e.mu.Lock()
	defer e.mu.Unlock()
	tasks := make([]model.Task, len(e.tasks))
	copy(tasks, e.tasks)
	return tasks
}

// Dispatch applies intent and returns the resulting snapshot together with
// the notice of a failed intent (nil on success).
func (e *Engine) Dispatch(ctx context.Context, intent Intent) (ViewModel, *Notice) {
	var notice *Notice

	switch in := intent.(type) {
	case ToggleFilterIntent:
		e.ToggleFilter(ctx)
	case ToggleTaskIntent:
		notice = e.ToggleTask(ctx, in.ID)
	case AddTaskIntent:
		notice = e.AddTask(ctx, in.Description, in.EstimatedAt)
	case DeleteTaskIntent:
		notice = e.DeleteTask(ctx, in.ID)
	case OpenAddTaskIntent:
		e.OpenAddTask()
	case CancelAddTaskIntent:
		e.CancelAddTask()
	case ReloadIntent:
		notice = e.Reload(ctx, in.DaysAhead)
	default:
		e.logger.Warn("ignoring unknown intent", "intent", intent)
	}

	return e.Snapshot(), notice
}

// Initialize loads the stored preference and then reloads the configured
// horizon.
func (e *Engine) Initialize(ctx context.Context) *Notice {
	e.LoadPreference(ctx)
	return e.Reload(ctx, e.currentDaysAhead())
}

// LoadPreference replaces the view preference with the stored one, or with
// the default when none is stored.
func (e *Engine) LoadPreference(ctx context.Context) {
	pref, ok := e.prefs.Load(ctx)
	if !ok {
		e.logger.Debug("no stored view preference, using default")
		pref = model.DefaultViewPreference()
	}

	e.mu.Lock()
	e.pref = pref
	e.recomputeLocked()
	e.mu.Unlock()
}

// Reload fetches the tasks due up to the end of the day daysAhead days from
// now and replaces the collection with them. On failure the collection is
// left untouched. A response is discarded when a newer reload started after
// it was requested.
func (e *Engine) Reload(ctx context.Context, daysAhead int) *Notice {
	daysAhead = max(daysAhead, 0)

	e.mu.Lock()
	e.reloadSeq++
	seq := e.reloadSeq
	e.inflight++
	boundary := model.Boundary(e.now(), daysAhead)
	e.mu.Unlock()

	tasks, err := e.gateway.ListTasks(ctx, boundary)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.inflight--

	if err != nil {
		e.logger.Warn("reloading tasks", "days_ahead", daysAhead, "error", err)
		return remoteNotice(err)
	}
	if seq != e.reloadSeq {
		e.logger.Debug("discarding stale reload", "seq", seq, "latest", e.reloadSeq)
		return nil
	}

	e.tasks = tasks
	e.daysAhead = daysAhead
	e.boundary = boundary
	e.loaded = true
	e.recomputeLocked()
	return nil
}

// ToggleFilter flips the view preference, recomputes the visible tasks and
// persists the new preference. Persistence errors are logged only.
func (e *Engine) ToggleFilter(ctx context.Context) {
	e.mu.Lock()
	e.pref.ShowDoneTasks = !e.pref.ShowDoneTasks
	e.recomputeLocked()
	e.mu.Unlock()

	e.savePreference(ctx)
}

// ToggleTask asks the server to flip the task's done state and reloads on
// success. Nothing changes locally before the server confirms.
func (e *Engine) ToggleTask(ctx context.Context, id string) *Notice {
	if err := e.gateway.ToggleTask(ctx, id); err != nil {
		e.logger.Warn("toggling task", "id", id, "error", err)
		return remoteNotice(err)
	}
	return e.Reload(ctx, e.currentDaysAhead())
}

// AddTask creates a task with the trimmed description. A blank description
// is rejected without a network call. On success the add-task surface is
// closed and the list reloaded; on failure it stays open.
func (e *Engine) AddTask(ctx context.Context, description string, estimatedAt time.Time) *Notice {
	description = strings.TrimSpace(description)
	if description == "" {
		return validationNotice()
	}

	if err := e.gateway.CreateTask(ctx, description, estimatedAt); err != nil {
		e.logger.Warn("creating task", "error", err)
		return remoteNotice(err)
	}

	e.mu.Lock()
	e.addTaskOpen = false
	days := e.daysAhead
	e.mu.Unlock()

	return e.Reload(ctx, days)
}

// DeleteTask removes the task on the server and reloads on success.
func (e *Engine) DeleteTask(ctx context.Context, id string) *Notice {
	if err := e.gateway.DeleteTask(ctx, id); err != nil {
		e.logger.Warn("deleting task", "id", id, "error", err)
		return remoteNotice(err)
	}
	return e.Reload(ctx, e.currentDaysAhead())
}

// OpenAddTask shows the add-task surface.
func (e *Engine) OpenAddTask() {
	e.mu.Lock()
	e.addTaskOpen = true
	e.mu.Unlock()
}

// CancelAddTask hides the add-task surface.
func (e *Engine) CancelAddTask() {
	e.mu.Lock()
	e.addTaskOpen = false
	e.mu.Unlock()
}

func (e *Engine) currentDaysAhead() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.daysAhead
}

// recomputeLocked rebuilds the visible tasks from scratch. e.mu must be held.
func (e *Engine) recomputeLocked() {
	e.visible = ComputeVisible(e.tasks, e.pref.ShowDoneTasks)
}

// savePreference writes the current preference.
func (e *Engine) savePreference(ctx context.Context) {
	e.saveMu.Lock()
	defer e.saveMu.Unlock()

	e.mu.Lock()
	pref := e.pref
	e.mu.Unlock()

	if err := e.prefs.Save(ctx, pref); err != nil {
		e.logger.Warn("saving view preference", "error", err)
	}
}
