// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/framescope/internal/adapters/driving/tui/styles"
)

// Mode selects what the input line is used for.
type Mode int

const (
	// ModeQuery edits the search query or image reference.
	ModeQuery Mode = iota
	// ModeCommand edits a ":" command line.
	ModeCommand
)

// QueryInput wraps a bubbles textinput shared by the query and the command line.
type QueryInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	mode      Mode
	label     string
	query     string
	width     int
}

// NewQueryInput creates a new query input component.
func NewQueryInput(s *styles.Styles) *QueryInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Describe the frame..."
	ti.Focus()
	ti.CharLimit = 2048
	ti.Width = 50

	return &QueryInput{
		textinput: ti,
		styles:    s,
		mode:      ModeQuery,
		label:     "Search",
		width:     50,
	}
}

// Init initialises the query input.
func (q *QueryInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (q *QueryInput) Update(msg tea.Msg) (*QueryInput, tea.Cmd) {
	var cmd tea.Cmd
	q.textinput, cmd = q.textinput.Update(msg)
	return q, cmd
}

// View renders the query input.
func (q *QueryInput) View() string {
	label := q.styles.Title.Render(q.label + ": ")
	if q.mode == ModeCommand {
		label = q.styles.Subtitle.Render(":")
	}
	field := q.styles.InputField.Render(q.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Mode returns the current input mode.
func (q *QueryInput) Mode() Mode {
	return q.mode
}

// StartCommand switches to the command line, keeping the query for later.
func (q *QueryInput) StartCommand() tea.Cmd {
	if q.mode == ModeQuery {
		q.query = q.textinput.Value()
	}
	q.mode = ModeCommand
	q.textinput.Placeholder = "filter video=L01_V001 s2t=\"...\" in=00:10 out=01:00"
	q.textinput.SetValue("")
	return q.textinput.Focus()
}

// EndCommand returns to the query, restoring what was typed before.
func (q *QueryInput) EndCommand() {
	if q.mode != ModeCommand {
		return
	}
	q.mode = ModeQuery
	q.textinput.Placeholder = "Describe the frame..."
	q.textinput.SetValue(q.query)
	q.textinput.CursorEnd()
}

// SetLabel sets the prompt shown before the query.
func (q *QueryInput) SetLabel(label string) {
	q.label = label
}

// Label returns the prompt shown before the query.
func (q *QueryInput) Label() string {
	return q.label
}

// SetPlaceholder sets the placeholder shown in query mode.
func (q *QueryInput) SetPlaceholder(placeholder string) {
	if q.mode == ModeQuery {
		q.textinput.Placeholder = placeholder
	}
}

// Value returns the current input value.
func (q *QueryInput) Value() string {
	return q.textinput.Value()
}

// SetValue sets the input value.
func (q *QueryInput) SetValue(value string) {
	q.textinput.SetValue(value)
	q.textinput.CursorEnd()
}

// Focus sets focus on the input.
func (q *QueryInput) Focus() tea.Cmd {
	return q.textinput.Focus()
}

// Blur removes focus from the input.
func (q *QueryInput) Blur() {
	q.textinput.Blur()
}

// Focused returns whether the input is focused.
func (q *QueryInput) Focused() bool {
	return q.textinput.Focused()
}

// SetWidth sets the width of the input.
func (q *QueryInput) SetWidth(width int) {
	q.width = width
	inputWidth := width - lipgloss.Width(q.label) - 10
	if inputWidth < 20 {
		inputWidth = 20
	}
	q.textinput.Width = inputWidth
}

// Width returns the current width.
func (q *QueryInput) Width() int {
	return q.width
}

// Reset clears the input.
func (q *QueryInput) Reset() {
	q.textinput.Reset()
}
