package sync

import (
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SyncState represents the current state of the task list synchronization.
type SyncState int

const (
	SyncIdle SyncState = iota
	SyncRunning
	SyncError
)

// SyncStatus holds the outcome of the most recent reload.
type SyncStatus struct {
	State    SyncState
	LastSync time.Time
	Error    error
}

// RefreshTickMsg is a tea.Msg asking the application to reload the current
// horizon. Generation identifies the Start call that scheduled it.
type RefreshTickMsg struct {
	Generation int
}

// Refresher schedules periodic reloads and tracks sync status. It does not
// reload by itself; the application dispatches a reload for each tick and
// reports the result back through MarkRunning and MarkDone.
type Refresher struct {
	interval time.Duration
	now      func() time.Time

	mu         gosync.Mutex
	running    bool
	generation int
	status     SyncStatus
}

// New creates a Refresher. A non-positive interval disables ticking; status
// tracking still works.
func New(interval time.Duration) *Refresher {
	return &Refresher{interval: interval, now: time.Now}
}

// Enabled reports whether periodic reloads are configured.
func (r *Refresher) Enabled() bool {
	return r.interval > 0
}

// Start returns a tea.Cmd that delivers the first RefreshTickMsg after one
// interval. It returns nil when disabled or already started.
func (r *Refresher) Start() tea.Cmd {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.Enabled() || r.running {
		return nil
	}
	r.running = true
	r.generation++
	return r.tick(r.generation)
}

// Stop halts ticking. Ticks already scheduled are ignored by Next.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.running = false
}

// Next returns the command scheduling the tick after msg, or nil when the
// refresher was stopped or restarted since msg was scheduled.
func (r *Refresher) Next(msg RefreshTickMsg) tea.Cmd {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running || msg.Generation != r.generation {
		return nil
	}
	return r.tick(r.generation)
}

// Current reports whether msg belongs to the active schedule.
func (r *Refresher) Current(msg RefreshTickMsg) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running && msg.Generation == r.generation
}

func (r *Refresher) tick(generation int) tea.Cmd {
	return tea.Tick(r.interval, func(time.Time) tea.Msg {
		return RefreshTickMsg{Generation: generation}
	})
}

// MarkRunning records that a reload started.
func (r *Refresher) MarkRunning() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status.State = SyncRunning
}

// MarkDone records the outcome of a reload.
func (r *Refresher) MarkDone(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		r.status.State = SyncError
		r.status.Error = err
		return
	}
	r.status = SyncStatus{State: SyncIdle, LastSync: r.now()}
}

// Status returns the current sync status.
func (r *Refresher) Status() SyncStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}
