package engine

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/nhle/tasks/internal/model"
	"github.com/nhle/tasks/internal/source"
)

// fakeGateway is an in-memory task service. Toggle and delete mutate the
// server-side list, which the engine only sees after a reload.
type fakeGateway struct {
	mu     sync.Mutex
	tasks  []model.Task
	nextID int
	now    time.Time

	listErr   error
	createErr error
	toggleErr error
	deleteErr error

	// listHook, when set, replaces the list behaviour.
	listHook func(boundary time.Time) ([]model.Task, error)

	listCalls   int
	boundaries  []time.Time
	createCalls []createCall
	toggleCalls []string
	deleteCalls []string
}

type createCall struct {
	description string
	estimatedAt time.Time
}

var _ source.Gateway = (*fakeGateway)(nil)

func (g *fakeGateway) ListTasks(ctx context.Context, boundary time.Time) ([]model.Task, error) {
	g.mu.Lock()
	g.listCalls++
	g.boundaries = append(g.boundaries, boundary)
	hook := g.listHook
	err := g.listErr
	tasks := make([]model.Task, len(g.tasks))
	copy(tasks, g.tasks)
	g.mu.Unlock()

	if hook != nil {
		return hook(boundary)
	}
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (g *fakeGateway) CreateTask(ctx context.Context, description string, estimatedAt time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.createCalls = append(g.createCalls, createCall{description, estimatedAt})
	if g.createErr != nil {
		return g.createErr
	}
	g.nextID++
	g.tasks = append(g.tasks, model.Task{
		ID:          "new-" + strconv.Itoa(g.nextID),
		Description: description,
		EstimatedAt: estimatedAt,
	})
	return nil
}

func (g *fakeGateway) ToggleTask(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.toggleCalls = append(g.toggleCalls, id)
	if g.toggleErr != nil {
		return g.toggleErr
	}
	for i := range g.tasks {
		if g.tasks[i].ID != id {
			continue
		}
		if g.tasks[i].DoneAt == nil {
			doneAt := g.now
			g.tasks[i].DoneAt = &doneAt
		} else {
			g.tasks[i].DoneAt = nil
		}
		return nil
	}
	return &source.Failure{Kind: source.FailureServer, Op: "toggle task", Status: 404, Message: "Task not found"}
}

func (g *fakeGateway) DeleteTask(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deleteCalls = append(g.deleteCalls, id)
	if g.deleteErr != nil {
		return g.deleteErr
	}
	for i := range g.tasks {
		if g.tasks[i].ID == id {
			g.tasks = append(g.tasks[:i], g.tasks[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakePrefs is an in-memory PreferenceStore.
type fakePrefs struct {
	mu      sync.Mutex
	stored  *model.ViewPreference
	saveErr error
	saves   []model.ViewPreference
}

func (p *fakePrefs) Load(ctx context.Context) (model.ViewPreference, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stored == nil {
		return model.ViewPreference{}, false
	}
	return *p.stored, true
}

func (p *fakePrefs) Save(ctx context.Context, pref model.ViewPreference) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saves = append(p.saves, pref)
	if p.saveErr != nil {
		return p.saveErr
	}
	p.stored = &pref
	return nil
}

var errConnRefused = errors.New("connection refused")

func transportFailure() error {
	return &source.Failure{Kind: source.FailureTransport, Op: "test", Err: errConnRefused}
}
