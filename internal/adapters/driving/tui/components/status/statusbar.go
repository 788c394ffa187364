// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/framescope/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/framescope/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/framescope/internal/core/domain"
)

// State is what the bar is reporting.
type State string

const (
	StateReady     State = "ready"
	StateSearching State = "searching"
	StateError     State = "error"
	StateResults   State = "results"
)

// Bar shows the busy spinner, the last outcome, the frame count and page,
// and key hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	spinner spinner.Model
	state   State
	message string
	frames  int
	page    domain.PageInfo
	width   int
}

// NewBar creates a status bar. Nil arguments use the defaults.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New(spinner.WithSpinner(spinner.MiniDot))
	sp.Style = lipgloss.NewStyle().Foreground(s.Theme().Spinner)

	return &Bar{
		styles:  s,
		keymap:  km,
		spinner: sp,
		state:   StateReady,
		width:   80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update advances the spinner while a request is in flight.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	tick, ok := msg.(spinner.TickMsg)
	if !ok || s.state != StateSearching {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(tick)
	return s, cmd
}

// StartBusy switches to the searching state and returns the spinner tick.
func (s *Bar) StartBusy(message string) tea.Cmd {
	s.state = StateSearching
	s.message = message
	return s.spinner.Tick
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.outcome()
	right := s.styles.Muted.Render(keymap.Hints(s.hints()))

	gap := max(1, s.width-lipgloss.Width(left)-lipgloss.Width(right))
	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (s *Bar) outcome() string {
	switch s.state {
	case StateSearching:
		text := s.message
		if text == "" {
			text = "Searching..."
		}
		return s.spinner.View() + " " + s.styles.Muted.Render(text)
	case StateError:
		return s.styles.Error.Render("Error: " + s.message)
	}

	var parts []string
	if s.frames > 0 {
		parts = append(parts, s.styles.Normal.Render(s.counter()))
	}
	if s.message != "" {
		parts = append(parts, s.styles.Success.Render(s.message))
	}
	if len(parts) == 0 {
		return s.styles.Muted.Render("Ready")
	}
	return strings.Join(parts, s.styles.Muted.Render(" · "))
}

func (s *Bar) counter() string {
	text := fmt.Sprintf("%d frames", s.frames)
	if s.page.TotalPages > 1 {
		text += fmt.Sprintf(" · page %d/%d", s.page.Page, s.page.TotalPages)
	}
	return text
}

func (s *Bar) hints() []key.Binding {
	if s.state == StateResults && s.frames > 0 {
		return s.keymap.ResultsHelp()
	}
	return s.keymap.ShortHelp()
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the outcome text.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the outcome text.
func (s *Bar) Message() string {
	return s.message
}

// SetError switches to the error state with err's text.
func (s *Bar) SetError(err error) {
	s.state = StateError
	s.message = err.Error()
}

// SetPage records the number of rendered frames and the active page.
func (s *Bar) SetPage(frames int, page domain.PageInfo) {
	s.frames = frames
	s.page = page
}

// Frames returns the number of rendered frames.
func (s *Bar) Frames() int {
	return s.frames
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}
