package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/framescope/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/framescope/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/framescope/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/framescope/internal/adapters/driving/tui/views/detail"
	"github.com/custodia-labs/framescope/internal/adapters/driving/tui/views/history"
	"github.com/custodia-labs/framescope/internal/adapters/driving/tui/views/search"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	// searchView owns the query line, results and status bar.
	searchView *search.View

	// detailView is the frame overlay with the neighbour strip.
	detailView *detail.View

	// historyView is the search history picker.
	historyView *history.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has received its first window size.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	searchView, err := search.NewView(s, km, search.Services{
		Search:     ports.Search,
		History:    ports.History,
		Filter:     ports.Filter,
		Results:    ports.Results,
		Navigator:  ports.Navigator,
		Submission: ports.Submission,
		Settings:   ports.Settings,
	})
	if err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		searchView:  searchView,
		detailView:  detail.NewView(s, km, ports.Navigator),
		historyView: history.NewView(s, km, ports.History),
		currentView: messages.ViewSearch,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.detailView.WithContext(ctx)
	a.historyView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("framescope"),
		a.searchView.Init(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message router
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewDetail:
			a.detailView, cmd = a.detailView.Update(msg)
		case messages.ViewHistory:
			a.historyView, cmd = a.historyView.Update(msg)
		case messages.ViewHelp:
			switch msg.String() {
			case "esc", "?", "q":
				a.currentView = messages.ViewSearch
			}
		default:
			a.searchView, cmd = a.searchView.Update(msg)
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewHistory {
			return a, a.historyView.Init()
		}
		return a, nil

	case messages.FrameOpened:
		a.currentView = messages.ViewDetail
		return a, a.detailView.Open(msg.Frame)

	case messages.NeighborsLoaded:
		// The navigator already holds the frames; the next render shows them.
		return a, nil

	case messages.HistoryLoaded, messages.HistoryCleared:
		a.historyView, cmd = a.historyView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Service completions, spinner ticks and status updates belong to the
	// search view whichever view is showing.
	a.searchView, cmd = a.searchView.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewDetail:
		return a.detailView.View()
	case messages.ViewHistory:
		return a.historyView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.searchView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Query line:
  enter       Search
  :           Command mode
  esc         Leave the query line

Results:
  j/k, ↑/↓    Move selection
  ←/→         Previous / next page
  enter       Open frame with neighbours
  x           Exclude frame
  s           Scroll around frame
  r           Rerank by colour
  p           Replay previous search
  h           History
  m / T / t   Cycle model / toggle temporal / toggle query type
  ctrl+s      Send pending submission

Frame detail:
  ←/→, h/l    Move along the neighbour strip
  c           Commit frame to submission
  s           Scroll around frame
  esc         Close

Commands:
  :filter video=A,B s2t=word in=mm:ss out=mm:ss
  :filter reset    :reset    :videos [batches]
  :model NAME      :type text|image    :k N    :page N
  :translate on|off    :set KEY VALUE    :unexclude I
  :rerank    :submit    :history    :q

[esc] back`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// SearchView returns the search view.
func (a *App) SearchView() *search.View {
	return a.searchView
}

// Query returns the current query text.
func (a *App) Query() string {
	return a.searchView.Query()
}

// Err returns the last error shown by the search view.
func (a *App) Err() error {
	return a.searchView.Err()
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height)
	a.detailView.SetDimensions(width, height)
	a.historyView.SetDimensions(width, height)
}
