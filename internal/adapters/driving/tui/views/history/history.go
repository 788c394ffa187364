// Package history provides the search history picker for the TUI.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/custodia-labs/framescope/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/framescope/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/framescope/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/framescope/internal/core/domain"
	"github.com/custodia-labs/framescope/internal/core/ports/driving"
)

// View lists the session's searches, newest first.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	history driving.HistoryService
	ctx     context.Context

	entries  []domain.SearchContext
	selected int
	err      error

	width  int
	height int
}

// NewView creates a new history view.
func NewView(s *styles.Styles, km *keymap.KeyMap, history driving.HistoryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:  s,
		keymap:  km,
		history: history,
		ctx:     context.Background(),
		width:   80,
		height:  24,
	}
}

// WithContext sets the context for history calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the entries.
func (v *View) Init() tea.Cmd {
	ctx := v.ctx
	history := v.history
	return func() tea.Msg {
		entries, err := history.Entries(ctx)
		return messages.HistoryLoaded{Entries: entries, Err: err}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case messages.HistoryLoaded:
		v.entries = msg.Entries
		v.err = msg.Err
		v.selected = min(v.selected, max(0, len(v.entries)-1))
	case messages.HistoryCleared:
		v.err = msg.Err
		if msg.Err == nil {
			v.entries = nil
			v.selected = 0
		}
	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Back) || keyStr == "q":
		return v, changeView(messages.ViewSearch)

	case keymap.Matches(keyStr, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}

	case keymap.Matches(keyStr, v.keymap.Down):
		if v.selected < len(v.entries)-1 {
			v.selected++
		}

	case keymap.Matches(keyStr, v.keymap.Open):
		if len(v.entries) == 0 {
			return v, nil
		}
		index := v.selected
		return v, tea.Batch(
			changeView(messages.ViewSearch),
			func() tea.Msg { return messages.ReplayRequested{Index: index} },
		)

	case keymap.Matches(keyStr, v.keymap.Clear):
		ctx := v.ctx
		history := v.history
		return v, func() tea.Msg {
			return messages.HistoryCleared{Err: history.Clear(ctx)}
		}
	}
	return v, nil
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg { return messages.ViewChanged{View: view} }
}

// View renders the picker.
func (v *View) View() string {
	lines := []string{v.styles.Title.Render("History"), ""}

	switch {
	case v.err != nil:
		lines = append(lines, v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
	case len(v.entries) == 0:
		lines = append(lines, v.styles.Muted.Render("No searches yet"))
	default:
		width := max(20, v.width-4)
		for i, entry := range v.entries {
			label := runewidth.Truncate(entry.Label(), width, "…")
			if i == v.selected {
				lines = append(lines, v.styles.Selected.Render("> "+label))
			} else {
				lines = append(lines, v.styles.Normal.Render("  "+label))
			}
		}
	}

	lines = append(lines, "", v.styles.Help.Render("[enter] replay  [D] clear  [esc] back"))
	return strings.Join(lines, "\n")
}

// Entries returns the loaded entries.
func (v *View) Entries() []domain.SearchContext {
	return v.entries
}

// Selected returns the highlighted entry's position.
func (v *View) Selected() int {
	return v.selected
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
