// Package detail provides the frame detail overlay with its neighbour strip.
package detail

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/custodia-labs/framescope/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/framescope/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/framescope/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/framescope/internal/core/domain"
	"github.com/custodia-labs/framescope/internal/core/ports/driving"
)

// View shows the frame under the navigator's cursor and the strip of
// neighbouring frames. The navigator owns the frame list and cursor.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	navigator driving.NeighborNavigator
	ctx       context.Context

	width  int
	height int
}

// NewView creates a new detail view.
func NewView(s *styles.Styles, km *keymap.KeyMap, navigator driving.NeighborNavigator) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:    s,
		keymap:    km,
		navigator: navigator,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for neighbour fetches and submissions.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Open shows frame and returns the command that loads its neighbours.
func (v *View) Open(frame domain.FrameRecord) tea.Cmd {
	gen := v.navigator.Open(frame)
	ctx := v.ctx
	nav := v.navigator
	return func() tea.Msg {
		nav.Load(ctx, gen)
		return messages.NeighborsLoaded{Gen: gen}
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles keys while the overlay is open.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil
	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keyStr == "esc" || keyStr == "q":
		v.navigator.Close()
		return v, changeView(messages.ViewSearch)

	case keymap.Matches(keyStr, v.keymap.PrevPage) || keyStr == "h":
		v.navigator.Navigate(-1)

	case keymap.Matches(keyStr, v.keymap.NextPage) || keyStr == "l":
		v.navigator.Navigate(1)

	case keyStr == "home" || keyStr == "g":
		v.navigator.Select(0)

	case keyStr == "end" || keyStr == "G":
		v.navigator.Select(len(v.navigator.Frames()) - 1)

	case keymap.Matches(keyStr, v.keymap.Commit):
		return v, tea.Batch(v.commit(), changeView(messages.ViewSearch))

	case keymap.Matches(keyStr, v.keymap.Scroll):
		frame, ok := v.navigator.Current()
		if !ok {
			return v, nil
		}
		v.navigator.Close()
		return v, tea.Batch(
			changeView(messages.ViewSearch),
			func() tea.Msg { return messages.ScrollRequested{Frame: frame} },
		)

	case keymap.Matches(keyStr, v.keymap.Exclude):
		frame, ok := v.navigator.Current()
		if !ok {
			return v, nil
		}
		return v, func() tea.Msg { return messages.ExcludeRequested{Frame: frame} }
	}
	return v, nil
}

// commit fills the submission from the current frame; the navigator closes.
func (v *View) commit() tea.Cmd {
	ctx := v.ctx
	nav := v.navigator
	return func() tea.Msg {
		sub, err := nav.CommitToSubmission(ctx)
		return messages.SubmissionFilled{Submission: sub, Err: err}
	}
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg { return messages.ViewChanged{View: view} }
}

// View renders the overlay.
func (v *View) View() string {
	frame, ok := v.navigator.Current()
	if !ok {
		return v.styles.Muted.Render("No frame selected")
	}

	inner := max(20, v.width-6)
	lines := []string{
		v.styles.Title.Render(fmt.Sprintf("%s  #%s  %s", frame.BaseVideoName(), frame.FrameNumberText(), frame.Timecode())),
	}
	if frame.Index >= 0 {
		lines = append(lines, v.styles.Muted.Render(fmt.Sprintf("Result %d · score %s", frame.Index, styles.FormatScore(float64(frame.Score)))))
	}
	if frame.FramePath != "" {
		lines = append(lines, v.styles.Muted.Render(runewidth.Truncate(frame.FramePath, inner, "…")))
	}
	if frame.RelatedEndFrame > 0 {
		lines = append(lines, v.styles.Muted.Render(fmt.Sprintf("Shot frames %.0f-%.0f", float64(frame.RelatedStartFrame), float64(frame.RelatedEndFrame))))
	}

	if len(frame.Objects) > 0 {
		lines = append(lines, "", v.styles.Subtitle.Render("Objects"), v.renderObjects(frame.Objects, inner))
	}
	if transcript := frame.Transcript(); transcript != "" {
		lines = append(lines, "", v.styles.Subtitle.Render("Transcript"),
			v.styles.Normal.Width(inner).Render(transcript))
	}

	switch {
	case v.navigator.State() == domain.NavigatorLoading:
		lines = append(lines, "", v.styles.Muted.Render("Loading neighbouring frames..."))
	case v.navigator.StripVisible():
		lines = append(lines, "", v.renderStrip(inner))
	}

	lines = append(lines, "", v.styles.Help.Render(runewidth.Truncate(keymap.Hints(v.keymap.DetailHelp()), inner, "…")))

	return v.styles.Overlay.Width(inner + 2).Render(strings.Join(lines, "\n"))
}

func (v *View) renderObjects(objects domain.ObjectList, width int) string {
	parts := make([]string, 0, len(objects))
	for _, obj := range objects {
		style := lipgloss.NewStyle().Foreground(styles.ObjectColor(obj.Object))
		parts = append(parts, style.Render(fmt.Sprintf("%s %.2f", obj.Object, obj.Conf)))
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(parts, "  "))
}

// renderStrip lays out the neighbour ids, windowed around the cursor.
func (v *View) renderStrip(width int) string {
	frames := v.navigator.Frames()
	cursor := v.navigator.Cursor()

	const slot = 8
	visible := max(1, width/slot)
	start := max(0, cursor-visible/2)
	end := min(len(frames), start+visible)
	start = max(0, end-visible)

	items := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		label := runewidth.Truncate(frames[i].FrameNumberText(), slot-2, "")
		if i == cursor {
			items = append(items, v.styles.Selected.Render("["+label+"]"))
		} else {
			items = append(items, v.styles.Muted.Render(" "+label+" "))
		}
	}
	position := v.styles.Muted.Render(fmt.Sprintf("%d/%d", cursor+1, len(frames)))
	return strings.Join(items, "") + "  " + position
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
