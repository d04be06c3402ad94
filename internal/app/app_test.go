package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/tasks/internal/engine"
	"github.com/nhle/tasks/internal/logging"
	"github.com/nhle/tasks/internal/model"
	"github.com/nhle/tasks/internal/source"
	appsync "github.com/nhle/tasks/internal/sync"
	"github.com/nhle/tasks/internal/ui/addtask"
)

type stubGateway struct {
	mu        sync.Mutex
	tasks     []model.Task
	listErr   error
	lastDue   time.Time
	toggled   []string
	deleted   []string
	created   []string
	listCalls int
}

func (g *stubGateway) ListTasks(_ context.Context, maxDueDate time.Time) ([]model.Task, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listCalls++
	g.lastDue = maxDueDate
	if g.listErr != nil {
		return nil, g.listErr
	}
	out := make([]model.Task, len(g.tasks))
	copy(out, g.tasks)
	return out, nil
}

func (g *stubGateway) CreateTask(_ context.Context, description string, estimatedAt time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.created = append(g.created, description)
	g.tasks = append(g.tasks, model.Task{ID: "new", Description: description, EstimatedAt: estimatedAt})
	return nil
}

func (g *stubGateway) ToggleTask(_ context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.toggled = append(g.toggled, id)
	return nil
}

func (g *stubGateway) DeleteTask(_ context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deleted = append(g.deleted, id)
	return nil
}

type stubPrefs struct{}

func (stubPrefs) Load(context.Context) (model.ViewPreference, bool) {
	return model.ViewPreference{}, false
}

func (stubPrefs) Save(context.Context, model.ViewPreference) error { return nil }

var fixedNow = time.Date(2026, 10, 16, 10, 0, 0, 0, time.Local)

func newTestModel(t *testing.T, gw *stubGateway) Model {
	t.Helper()
	eng := engine.New(gw, stubPrefs{}, logging.Discard(), engine.WithClock(func() time.Time { return fixedNow }))
	m := New(eng, appsync.New(0), logging.Discard())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model)
}

// run executes cmd and feeds the resulting engine message back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	res, ok := msg.(engineResultMsg)
	require.True(t, ok, "expected engineResultMsg, got %T", msg)
	next, _ := m.Update(res)
	return next.(Model)
}

func press(m Model, s string) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(Model), cmd
}

func TestInitLoadsToday(t *testing.T) {
	gw := &stubGateway{tasks: []model.Task{{ID: "1", Description: "Buy milk", EstimatedAt: fixedNow}}}
	m := newTestModel(t, gw)

	m = run(t, m, m.initialize())

	assert.True(t, m.vm.Loaded)
	assert.True(t, m.vm.ShowDoneTasks)
	assert.Len(t, m.vm.VisibleTasks, 1)
	assert.Equal(t, model.Boundary(fixedNow, 0), gw.lastDue)
	assert.Equal(t, appsync.SyncIdle, m.refresher.Status().State)
	assert.Contains(t, m.View(), "Buy milk")
}

func TestReloadFailureShowsNotice(t *testing.T) {
	gw := &stubGateway{listErr: &source.Failure{Kind: source.FailureServer, Status: 500, Message: "boom"}}
	m := newTestModel(t, gw)

	m = run(t, m, m.initialize())

	require.NotNil(t, m.notice)
	assert.Equal(t, engine.NoticeRemote, m.notice.Kind)
	assert.Equal(t, "boom", m.notice.Message)
	assert.Equal(t, appsync.SyncError, m.refresher.Status().State)
	assert.Contains(t, m.View(), "boom")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, next.(Model).notice)
}

func TestHorizonKeyReloadsWeek(t *testing.T) {
	gw := &stubGateway{}
	m := newTestModel(t, gw)
	m = run(t, m, m.initialize())

	m, cmd := press(m, "3")
	m = run(t, m, cmd)

	assert.Equal(t, 7, m.vm.DaysAhead)
	assert.Equal(t, model.Boundary(fixedNow, 7), gw.lastDue)
	assert.Contains(t, m.headerTitle(), "This week")
}

func TestToggleAndDeleteUseSelectedTask(t *testing.T) {
	gw := &stubGateway{tasks: []model.Task{{ID: "42", Description: "Walk", EstimatedAt: fixedNow}}}
	m := newTestModel(t, gw)
	m = run(t, m, m.initialize())

	m, cmd := press(m, "x")
	m = run(t, m, cmd)
	_, cmd = press(m, "d")
	run(t, m, cmd)

	assert.Equal(t, []string{"42"}, gw.toggled)
	assert.Equal(t, []string{"42"}, gw.deleted)
}

func TestFilterKeyHidesDoneTasks(t *testing.T) {
	doneAt := fixedNow
	gw := &stubGateway{tasks: []model.Task{
		{ID: "1", Description: "Open"},
		{ID: "2", Description: "Closed", DoneAt: &doneAt},
	}}
	m := newTestModel(t, gw)
	m = run(t, m, m.initialize())
	require.Len(t, m.vm.VisibleTasks, 2)

	m, cmd := press(m, "h")
	m = run(t, m, cmd)

	assert.False(t, m.vm.ShowDoneTasks)
	require.Len(t, m.vm.VisibleTasks, 1)
	assert.Equal(t, "1", m.vm.VisibleTasks[0].ID)
}

func TestAddTaskFlow(t *testing.T) {
	gw := &stubGateway{}
	m := newTestModel(t, gw)
	m = run(t, m, m.initialize())

	m, cmd := press(m, "n")
	m = run(t, m, cmd)
	require.True(t, m.vm.AddTaskOpen)
	require.True(t, m.addForm.Active())

	// Blank descriptions are rejected and the form stays open.
	next, cmd := m.Update(addtask.SubmitMsg{Description: "   ", EstimatedAt: fixedNow})
	m = run(t, next.(Model), cmd)
	require.NotNil(t, m.notice)
	assert.Equal(t, engine.NoticeValidation, m.notice.Kind)
	assert.True(t, errors.Is(m.notice, engine.ErrDescriptionRequired))
	assert.True(t, m.addForm.Active())
	assert.Empty(t, gw.created)

	next, cmd = m.Update(addtask.SubmitMsg{Description: " Buy milk ", EstimatedAt: fixedNow})
	m = run(t, next.(Model), cmd)
	assert.Nil(t, m.notice)
	assert.False(t, m.vm.AddTaskOpen)
	assert.False(t, m.addForm.Active())
	assert.Equal(t, []string{"Buy milk"}, gw.created)
	assert.Len(t, m.vm.VisibleTasks, 1)
}

func TestAddTaskCancel(t *testing.T) {
	m := newTestModel(t, &stubGateway{})
	m = run(t, m, m.initialize())

	m, cmd := press(m, "n")
	m = run(t, m, cmd)
	next, cmd := m.Update(addtask.CancelMsg{})
	m = run(t, next.(Model), cmd)

	assert.False(t, m.vm.AddTaskOpen)
	assert.False(t, m.addForm.Active())
}

func TestExecuteCommand(t *testing.T) {
	gw := &stubGateway{}
	m := newTestModel(t, gw)
	m = run(t, m, m.initialize())

	m = run(t, m, m.executeCommand("month"))
	assert.Equal(t, 30, m.vm.DaysAhead)

	m = run(t, m, m.executeCommand("5"))
	assert.Equal(t, 5, m.vm.DaysAhead)

	assert.Nil(t, m.executeCommand("bogus"))
}

func TestStaleTickIgnored(t *testing.T) {
	m := newTestModel(t, &stubGateway{})

	next, cmd := m.Update(appsync.RefreshTickMsg{Generation: 99})
	assert.Nil(t, cmd)
	assert.Equal(t, m.vm, next.(Model).vm)
}
