package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/tasks/internal/engine"
	"github.com/nhle/tasks/internal/keys"
	"github.com/nhle/tasks/internal/model"
	appsync "github.com/nhle/tasks/internal/sync"
	"github.com/nhle/tasks/internal/ui"
	"github.com/nhle/tasks/internal/ui/addtask"
	"github.com/nhle/tasks/internal/ui/command"
	helpview "github.com/nhle/tasks/internal/ui/help"
	"github.com/nhle/tasks/internal/ui/tasklist"
)

// engineResultMsg carries the snapshot produced by an intent, or by the
// initial load, back to the UI goroutine.
type engineResultMsg struct {
	intent engine.Intent
	view   engine.ViewModel
	notice *engine.Notice
	reload bool
}

// ViewState represents the current active overlay.
type ViewState int

const (
	ViewList ViewState = iota
	ViewHelp
	ViewCommand
)

// Model is the root Bubble Tea model. It renders engine snapshots and turns
// key presses into engine intents; all state changes go through the engine.
type Model struct {
	engine      *engine.Engine
	refresher   *appsync.Refresher
	logger      *slog.Logger
	currentView ViewState
	layout      ui.Layout
	keys        *keys.KeyMap
	taskList    tasklist.Model
	addForm     addtask.Model
	helpView    helpview.Model
	commandView command.Model
	vm          engine.ViewModel
	notice      *engine.Notice
	ready       bool
}

// New creates the root application model.
func New(eng *engine.Engine, refresher *appsync.Refresher, logger *slog.Logger) Model {
	km := keys.DefaultKeyMap()
	return Model{
		engine:      eng,
		refresher:   refresher,
		logger:      logger,
		currentView: ViewList,
		keys:        km,
		taskList:    tasklist.New(80, 24),
		addForm:     addtask.New(80, 24),
		helpView:    helpview.New(km, 80, 24),
		commandView: command.New(80, 24),
		vm:          eng.Snapshot(),
	}
}

// Init loads the preference and the first horizon, and starts periodic
// refresh when configured.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.initialize(),
		m.refresher.Start(),
	)
}

func (m Model) initialize() tea.Cmd {
	eng := m.engine
	m.refresher.MarkRunning()
	return func() tea.Msg {
		notice := eng.Initialize(context.Background())
		return engineResultMsg{view: eng.Snapshot(), notice: notice, reload: true}
	}
}

// dispatch returns a command applying intent on the engine.
func (m Model) dispatch(intent engine.Intent) tea.Cmd {
	eng := m.engine
	return func() tea.Msg {
		vm, notice := eng.Dispatch(context.Background(), intent)
		_, reload := intent.(engine.ReloadIntent)
		return engineResultMsg{intent: intent, view: vm, notice: notice, reload: reload}
	}
}

// reload dispatches a reload of the given horizon.
func (m Model) reload(daysAhead int) tea.Cmd {
	m.refresher.MarkRunning()
	return m.dispatch(engine.ReloadIntent{DaysAhead: daysAhead})
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.taskList.SetSize(contentWidth, contentHeight)
		m.addForm.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		if m.addForm.Active() {
			var cmd tea.Cmd
			m.addForm, cmd = m.addForm.Update(msg)
			return m, cmd
		}
		return m, nil

	case engineResultMsg:
		return m.applyResult(msg)

	case appsync.RefreshTickMsg:
		if !m.refresher.Current(msg) {
			return m, nil
		}
		return m, tea.Batch(m.reload(m.vm.DaysAhead), m.refresher.Next(msg))

	case addtask.SubmitMsg:
		return m, m.dispatch(engine.AddTaskIntent{
			Description: msg.Description,
			EstimatedAt: msg.EstimatedAt,
		})

	case addtask.CancelMsg:
		return m, m.dispatch(engine.CancelAddTaskIntent{})

	case command.CommandMsg:
		m.currentView = ViewList
		m.commandView.Blur()
		return m, m.executeCommand(string(msg))

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.refresher.Stop()
			return m, tea.Quit
		}
		if m.addForm.Active() {
			var cmd tea.Cmd
			m.addForm, cmd = m.addForm.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)
	}

	return m.updateActiveView(msg)
}

// applyResult installs a new snapshot and reconciles the form and the notice
// with it.
func (m Model) applyResult(msg engineResultMsg) (tea.Model, tea.Cmd) {
	m.vm = msg.view
	cmds := []tea.Cmd{m.taskList.SetView(msg.view)}

	if msg.reload {
		if msg.notice != nil {
			m.refresher.MarkDone(msg.notice)
		} else {
			m.refresher.MarkDone(nil)
		}
	}

	if msg.notice != nil {
		m.notice = msg.notice
		m.logger.Debug("intent failed", "title", msg.notice.Title, "message", msg.notice.Message)
	} else if msg.intent != nil {
		m.notice = nil
	}

	switch {
	case msg.view.AddTaskOpen && !m.addForm.Active():
		cmds = append(cmds, m.addForm.Start())
	case msg.view.AddTaskOpen && msg.notice != nil:
		if _, ok := msg.intent.(engine.AddTaskIntent); ok {
			cmds = append(cmds, m.addForm.Resume())
		}
	case !msg.view.AddTaskOpen && m.addForm.Active():
		m.addForm.Close()
	}

	return m, tea.Batch(cmds...)
}

// handleKey processes key presses outside the add-task form.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.currentView {
	case ViewHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Back, m.keys.Quit) {
			m.currentView = ViewList
		}
		return m, nil

	case ViewCommand:
		if key.Matches(msg, m.keys.Back) {
			m.currentView = ViewList
			m.commandView.Blur()
			return m, nil
		}
		return m.updateActiveView(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.refresher.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.currentView = ViewHelp
		return m, nil

	case key.Matches(msg, m.keys.Command):
		m.currentView = ViewCommand
		return m, m.commandView.Focus()

	case key.Matches(msg, m.keys.Back):
		m.notice = nil
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if task, ok := m.taskList.SelectedTask(); ok {
			return m, m.dispatch(engine.ToggleTaskIntent{ID: task.ID})
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if task, ok := m.taskList.SelectedTask(); ok {
			return m, m.dispatch(engine.DeleteTaskIntent{ID: task.ID})
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		return m, m.dispatch(engine.OpenAddTaskIntent{})

	case key.Matches(msg, m.keys.Filter):
		return m, m.dispatch(engine.ToggleFilterIntent{})

	case key.Matches(msg, m.keys.Refresh):
		return m, m.reload(m.vm.DaysAhead)

	case key.Matches(msg, m.keys.Today):
		return m, m.reload(model.HorizonToday.DaysAhead())

	case key.Matches(msg, m.keys.Tomorrow):
		return m, m.reload(model.HorizonTomorrow.DaysAhead())

	case key.Matches(msg, m.keys.Week):
		return m, m.reload(model.HorizonWeek.DaysAhead())

	case key.Matches(msg, m.keys.Month):
		return m, m.reload(model.HorizonMonth.DaysAhead())
	}

	return m.updateActiveView(msg)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case m.addForm.Active():
		m.addForm, cmd = m.addForm.Update(msg)
	case m.currentView == ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case m.currentView == ViewList:
		m.taskList, cmd = m.taskList.Update(msg)
	}

	return m, cmd
}

// executeCommand handles a command string from the command palette.
func (m Model) executeCommand(cmd string) tea.Cmd {
	switch cmd {
	case "refresh", "sync":
		return m.reload(m.vm.DaysAhead)
	case "quit", "q":
		m.refresher.Stop()
		return tea.Quit
	case "new", "add":
		return m.dispatch(engine.OpenAddTaskIntent{})
	case "filter", "done":
		return m.dispatch(engine.ToggleFilterIntent{})
	}

	if h, err := model.ParseHorizon(cmd); err == nil {
		return m.reload(h.DaysAhead())
	}
	m.logger.Debug("unknown command", "command", cmd)
	return nil
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader(m.headerTitle(), m.syncStatus())
	content := m.renderContent()

	var statusBar string
	if m.notice != nil {
		statusBar = m.layout.RenderErrorBar(fmt.Sprintf("%s: %s  (esc dismiss)", m.notice.Title, m.notice.Message))
	} else {
		statusBar = m.layout.RenderStatusBar(m.keyHints())
	}

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch {
	case m.addForm.Active():
		return m.addForm.View()
	case m.currentView == ViewHelp:
		return m.helpView.View()
	case m.currentView == ViewCommand:
		return m.commandView.View()
	default:
		return m.taskList.View()
	}
}

func (m Model) headerTitle() string {
	title := model.Horizon(m.vm.DaysAhead).Title()
	if m.vm.Loaded {
		title += " · until " + m.vm.Boundary.Format("Mon 2 Jan")
	}
	return title
}

// syncStatus returns a short string describing the reload state.
func (m Model) syncStatus() string {
	status := m.refresher.Status()
	switch {
	case status.State == appsync.SyncRunning || m.vm.Loading:
		return "syncing..."
	case status.State == appsync.SyncError:
		return "⚠ offline"
	case !status.LastSync.IsZero():
		return fmt.Sprintf("%d/%d · synced %s", len(m.vm.VisibleTasks), m.vm.Total, status.LastSync.Format("15:04"))
	default:
		return ""
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch {
	case m.addForm.Active():
		return "enter submit | tab next field | esc cancel"
	case m.currentView == ViewHelp:
		return "? close help | esc back"
	case m.currentView == ViewCommand:
		return "enter execute | tab complete | esc back"
	default:
		return m.helpView.ShortView()
	}
}
