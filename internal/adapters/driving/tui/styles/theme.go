// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"fmt"
	"hash/fnv"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the TUI palette.
type Theme struct {
	Accent  lipgloss.Color // titles, selected cells
	Spinner lipgloss.Color // busy indicator, detail overlay
	Text    lipgloss.Color
	Dim     lipgloss.Color // hints, empty scenes, timecodes
	Good    lipgloss.Color
	Bad     lipgloss.Color
	Frame   lipgloss.Color // cell and input borders
	Bar     lipgloss.Color // status bar background
}

// DefaultTheme returns the dark palette.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:  lipgloss.Color("#89B4FA"),
		Spinner: lipgloss.Color("#F5C2E7"),
		Text:    lipgloss.Color("#CDD6F4"),
		Dim:     lipgloss.Color("#7F849C"),
		Good:    lipgloss.Color("#A6E3A1"),
		Bad:     lipgloss.Color("#F38BA8"),
		Frame:   lipgloss.Color("#585B70"),
		Bar:     lipgloss.Color("#11111B"),
	}
}

// Styles holds the lipgloss styles shared by the views.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Help     lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Border     lipgloss.Style

	// Grid and temporal table cells.
	Cell         lipgloss.Style
	SelectedCell lipgloss.Style
	EmptyCell    lipgloss.Style

	// Overlay frames the detail view.
	Overlay lipgloss.Style
}

// NewStyles builds the styles for theme, using the default theme when nil.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	boxed := func(b lipgloss.Border, c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().BorderStyle(b).BorderForeground(c).Padding(0, 1)
	}

	return &Styles{
		theme:    theme,
		Title:    fg(theme.Accent).Bold(true),
		Subtitle: fg(theme.Text).Bold(true).Underline(true),
		Normal:   fg(theme.Text),
		Muted:    fg(theme.Dim),
		Selected: fg(theme.Bar).Background(theme.Accent).Bold(true),
		Error:    fg(theme.Bad),
		Success:  fg(theme.Good),
		Help:     fg(theme.Dim).Italic(true),

		InputField: boxed(lipgloss.RoundedBorder(), theme.Frame),
		StatusBar:  fg(theme.Dim).Background(theme.Bar).Padding(0, 1),
		Border:     lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(theme.Frame),

		Cell:         boxed(lipgloss.NormalBorder(), theme.Frame),
		SelectedCell: boxed(lipgloss.ThickBorder(), theme.Accent),
		EmptyCell:    boxed(lipgloss.HiddenBorder(), theme.Frame).Foreground(theme.Dim),

		Overlay: boxed(lipgloss.DoubleBorder(), theme.Spinner),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// objectPalette holds the colours assigned to detected object names.
var objectPalette = []lipgloss.Color{
	"#F38BA8", "#FAB387", "#F9E2AF", "#A6E3A1", "#94E2D5",
	"#89DCEB", "#74C7EC", "#89B4FA", "#B4BEFE", "#CBA6F7",
	"#F5C2E7", "#EBA0AC",
}

// ObjectColor returns the colour for an object name. The same name always
// maps to the same colour.
func ObjectColor(name string) lipgloss.Color {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return objectPalette[h.Sum32()%uint32(len(objectPalette))]
}

// FormatScore renders a similarity score with four decimals.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.4f", score)
}
