package addtask

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasks/internal/theme"
)

const dateLayout = "2006-01-02"

// SubmitMsg is dispatched when the user submits the form.
type SubmitMsg struct {
	Description string
	EstimatedAt time.Time
}

// CancelMsg is dispatched when the user dismisses the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	description string
	date        string
}

// Model is the Bubble Tea model for the add-task form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	now    func() time.Time

	// submitted is set once SubmitMsg was emitted; the form is inert until
	// Start or Resume.
	submitted bool
	width  int
	height int
}

// New creates a new add-task form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		now:    time.Now,
		width:  width,
		height: height,
	}
}

// Start clears the fields and builds a fresh form. The date defaults to today.
func (m *Model) Start() tea.Cmd {
	m.fb.description = ""
	m.fb.date = m.now().Format(dateLayout)
	m.submitted = false
	m.form = m.buildForm()
	return m.form.Init()
}

// Resume rebuilds the form with the values last entered, so a rejected
// submission can be corrected.
func (m *Model) Resume() tea.Cmd {
	m.submitted = false
	m.form = m.buildForm()
	return m.form.Init()
}

// Active reports whether a form is being shown.
func (m Model) Active() bool {
	return m.form != nil
}

// Close drops the form.
func (m *Model) Close() {
	m.form = nil
	m.submitted = false
}

// Update handles messages for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil || m.submitted {
		return m, nil
	}

	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.submitted = true
		return m, m.handleSubmit()
	case huh.StateAborted:
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("New Task") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// buildForm leaves the description unvalidated; an empty description is
// rejected by the engine, which reports it as a notice.
func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Description").
				Placeholder("What needs to be done?").
				Value(&m.fb.description),
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.fb.date).
				Validate(validateOptionalDate),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight()).WithShowHelp(false)
}

func (m Model) handleSubmit() tea.Cmd {
	msg := SubmitMsg{
		Description: m.fb.description,
		EstimatedAt: parseDate(m.fb.date, m.now()),
	}
	return func() tea.Msg { return msg }
}

// parseDate reads a YYYY-MM-DD date as local midnight, falling back to today.
func parseDate(s string, now time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s != "" {
		if t, err := time.ParseInLocation(dateLayout, s, now.Location()); err == nil {
			return t
		}
	}
	y, mo, d := now.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, now.Location())
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 8 {
		h = 8
	}
	return h
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}
