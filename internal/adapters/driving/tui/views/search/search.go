// Package search provides the main search view for the TUI.
package search

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/framescope/internal/adapters/driving/imageref"
	"github.com/custodia-labs/framescope/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/framescope/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/framescope/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/framescope/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/framescope/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/framescope/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/framescope/internal/core/domain"
	"github.com/custodia-labs/framescope/internal/core/ports/driving"
)

// Services are the driving ports the search view calls.
type Services struct {
	Search     driving.SearchService
	History    driving.HistoryService
	Filter     driving.FilterService
	Results    driving.ResultsView
	Navigator  driving.NeighborNavigator
	Submission driving.SubmissionService
	Settings   driving.SettingsService
}

// View is the query line, the result grid or table, and the status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.ResultList
	statusbar *status.Bar

	svc Services
	ctx context.Context

	// form holds the query type, model, and knobs for the next search.
	form domain.SearchRequest

	width      int
	height     int
	ready      bool
	busy       bool
	err        error
	focusInput bool
}

// NewView creates a new search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, svc Services) (*View, error) {
	if svc.Search == nil {
		return nil, ErrNoSearchService
	}
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	defaults := domain.DefaultAppSettings()
	v := &View{
		styles:    s,
		keymap:    km,
		input:     input.NewQueryInput(s),
		list:      list.NewResultList(s),
		statusbar: status.NewBar(s, km),
		svc:       svc,
		ctx:       context.Background(),
		form: domain.SearchRequest{
			Type:          domain.QueryText,
			Model:         defaults.Query.Model,
			Settings:      defaults.Query.Settings,
			AutoTranslate: defaults.Query.AutoTranslate,
		},
		width:      80,
		height:     24,
		focusInput: true,
	}
	if svc.Results != nil {
		v.list.SetRenderCache(svc.Results.CachedRender)
	}
	if svc.Settings != nil {
		if settings, err := svc.Settings.Get(); err == nil {
			v.form.Model = settings.Query.Model
			v.ApplySettings(settings)
		}
	}
	v.updateLabel()
	return v, nil
}

// WithContext sets the context for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// ApplySettings takes the query knobs and page size from settings. The
// selected model is left alone so a reload does not undo the user's choice.
func (v *View) ApplySettings(settings *domain.AppSettings) {
	v.form.Settings = settings.Query.Settings
	v.form.AutoTranslate = settings.Query.AutoTranslate
	if v.svc.Results != nil {
		v.svc.Results.SetResultsPerPage(settings.View.ResultsPerPage)
		v.refreshList()
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		v.ready = true
		return v, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		v.statusbar, cmd = v.statusbar.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.RerankCompleted:
		v.busy = false
		if v.fail(msg.Err) {
			return v, nil
		}
		v.refreshList()
		v.statusbar.SetState(status.StateResults)
		v.statusbar.SetMessage("Reranked by colour")
		return v, nil

	case messages.ReplayRequested:
		return v, v.replay(msg.Index)

	case messages.ReplayCompleted:
		v.busy = false
		if v.fail(msg.Err) {
			return v, nil
		}
		v.form = msg.Form
		v.input.SetValue(msg.Form.Query)
		v.updateLabel()
		v.refreshList()
		v.statusbar.SetState(status.StateResults)
		v.statusbar.SetMessage("Replayed " + domain.TruncateQuery(msg.Form.Query))
		return v, nil

	case messages.ScrollRequested:
		return v, v.scroll(msg.Frame)

	case messages.ExcludeRequested:
		return v, v.exclude(msg.Frame)

	case messages.ExclusionChanged:
		if v.fail(msg.Err) {
			return v, nil
		}
		name := msg.Frame.BaseVideoName() + "/" + msg.Frame.KeyframeID
		if msg.Added {
			v.statusbar.SetMessage("Excluded " + name)
		} else {
			v.statusbar.SetMessage(name + " already excluded")
		}
		return v, nil

	case messages.SubmissionFilled:
		if v.fail(msg.Err) {
			return v, nil
		}
		sub := msg.Submission
		v.statusbar.SetState(status.StateResults)
		v.statusbar.SetMessage(fmt.Sprintf("Submission ready: %s at %dms (ctrl+s to send)", sub.MediaItem, sub.StartMS))
		return v, nil

	case messages.SubmissionCompleted:
		v.busy = false
		if v.fail(msg.Err) {
			return v, nil
		}
		verdict := "INCORRECT"
		if msg.Result.Correct() {
			verdict = "CORRECT"
		}
		v.statusbar.SetState(status.StateResults)
		v.statusbar.SetMessage(strings.TrimSpace(verdict + " " + msg.Result.Description))
		return v, nil

	case messages.VideosLoaded:
		v.busy = false
		if v.fail(msg.Err) {
			return v, nil
		}
		v.statusbar.SetState(status.StateResults)
		v.statusbar.SetMessage(fmt.Sprintf("%d videos loaded", len(msg.Names)))
		return v, nil

	case messages.SettingsReloaded:
		if v.fail(msg.Err) {
			return v, nil
		}
		v.ApplySettings(msg.Settings)
		v.statusbar.SetMessage("Settings reloaded")
		return v, nil

	case messages.StatusChanged:
		v.statusbar.SetMessage(msg.Text)
		return v, nil

	case messages.ErrorOccurred:
		v.busy = false
		v.fail(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

// fail shows err in the status bar and reports whether there was one.
// Superseded searches are dropped without a message.
func (v *View) fail(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, domain.ErrStaleResponse) {
		return true
	}
	v.err = err
	v.statusbar.SetError(err)
	return true
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// The busy overlay blocks input until the request finishes.
	if v.busy {
		return v, nil
	}
	if v.focusInput {
		return v.handleInputKey(msg)
	}
	return v.handleResultsKey(msg)
}

func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEsc:
		if v.input.Mode() == input.ModeCommand {
			v.input.EndCommand()
			return v, nil
		}
		v.focusInput = false
		v.input.Blur()
		return v, nil

	case tea.KeyEnter:
		if v.input.Mode() == input.ModeCommand {
			line := v.input.Value()
			v.input.EndCommand()
			return v, v.runCommand(line)
		}
		v.focusInput = false
		v.input.Blur()
		return v, v.performSearch()
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleResultsKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	km := v.keymap

	switch {
	case keymap.Matches(keyStr, km.Quit):
		return v, tea.Quit

	case keymap.Matches(keyStr, km.Focus):
		v.focusInput = true
		return v, v.input.Focus()

	case keymap.Matches(keyStr, km.Command):
		v.focusInput = true
		return v, v.input.StartCommand()

	case keymap.Matches(keyStr, km.Help):
		return v, changeView(messages.ViewHelp)

	case keymap.Matches(keyStr, km.History):
		return v, changeView(messages.ViewHistory)

	case keymap.Matches(keyStr, km.Up), keymap.Matches(keyStr, km.Down):
		v.list, _ = v.list.Update(msg)
		return v, nil

	case keymap.Matches(keyStr, km.PrevPage), keymap.Matches(keyStr, km.NextPage):
		if v.svc.Results != nil && v.svc.Results.HandleKey(keyStr, v.modalOpen(), false) {
			v.refreshList()
		}
		return v, nil

	case keymap.Matches(keyStr, km.Open):
		frame, ok := v.list.SelectedFrame()
		if !ok {
			return v, nil
		}
		return v, func() tea.Msg { return messages.FrameOpened{Frame: frame} }

	case keymap.Matches(keyStr, km.Exclude):
		if frame, ok := v.list.SelectedFrame(); ok {
			return v, v.exclude(frame)
		}

	case keymap.Matches(keyStr, km.Scroll):
		if frame, ok := v.list.SelectedFrame(); ok {
			return v, v.scroll(frame)
		}

	case keymap.Matches(keyStr, km.Rerank):
		return v, v.rerank()

	case keymap.Matches(keyStr, km.Previous):
		return v, v.replay(0)

	case keymap.Matches(keyStr, km.Model):
		v.cycleModel()

	case keymap.Matches(keyStr, km.Temporal):
		if v.form.Model.IsTemporal() {
			v.form.Model = v.form.Model.Base()
		} else {
			v.form.Model = v.form.Model.Temporal()
		}
		v.updateLabel()

	case keymap.Matches(keyStr, km.QueryType):
		if v.form.Type == domain.QueryImage {
			v.form.Type = domain.QueryText
		} else {
			v.form.Type = domain.QueryImage
		}
		v.updateLabel()

	case keymap.Matches(keyStr, km.Send):
		return v, v.sendSubmission()
	}
	return v, nil
}

func (v *View) modalOpen() bool {
	return v.svc.Navigator != nil && v.svc.Navigator.State().ModalOpen()
}

// cycleModel steps through the base models, keeping the temporal variant.
func (v *View) cycleModel() {
	models := domain.BaseModels()
	i := slices.Index(models, v.form.Model.Base())
	next := models[(i+1)%len(models)]
	if v.form.Model.IsTemporal() {
		next = next.Temporal()
	}
	v.form.Model = next
	v.updateLabel()
}

func (v *View) updateLabel() {
	kind := "Text"
	placeholder := "Describe the frame..."
	if v.form.Type == domain.QueryImage {
		kind = "Image"
		placeholder = "Image URL or local file..."
	}
	v.input.SetLabel(kind + " " + v.form.Model.Display())
	v.input.SetPlaceholder(placeholder)
	v.input.SetWidth(v.width)
}

// busyCmd raises the overlay and starts the spinner alongside cmd.
func (v *View) busyCmd(text string, cmd tea.Cmd) tea.Cmd {
	v.busy = true
	v.err = nil
	return tea.Batch(v.statusbar.StartBusy(text), cmd)
}

// performSearch submits the query line with the current form.
func (v *View) performSearch() tea.Cmd {
	req := v.form
	value := strings.TrimSpace(v.input.Value())
	ctx := v.ctx
	svc := v.svc

	return v.busyCmd("Searching...", func() tea.Msg {
		if req.Type == domain.QueryImage {
			ref, err := imageref.Resolve(value)
			if err != nil {
				return messages.SearchCompleted{Err: err}
			}
			req.ImagePath = ref
		} else {
			req.Query = value
		}
		if svc.Filter != nil {
			filters, err := svc.Filter.Filters(ctx)
			if err != nil {
				return messages.SearchCompleted{Err: err}
			}
			req.Filters = filters
		}
		entry, err := svc.Search.Submit(ctx, req)
		return messages.SearchCompleted{Entry: entry, Err: err}
	})
}

func (v *View) scroll(frame domain.FrameRecord) tea.Cmd {
	model := v.form.Model.Base()
	settings := v.form.Settings
	ctx := v.ctx
	search := v.svc.Search

	return v.busyCmd("Scrolling "+frame.BaseVideoName()+"...", func() tea.Msg {
		entry, err := search.ScrollAround(ctx, frame, model, settings)
		return messages.SearchCompleted{Entry: entry, Err: err}
	})
}

func (v *View) rerank() tea.Cmd {
	ctx := v.ctx
	search := v.svc.Search
	return v.busyCmd("Reranking...", func() tea.Msg {
		rs, err := search.RerankColor(ctx)
		return messages.RerankCompleted{Results: rs, Err: err}
	})
}

func (v *View) replay(i int) tea.Cmd {
	form := v.form
	form.Query = strings.TrimSpace(v.input.Value())
	ctx := v.ctx
	search := v.svc.Search
	return func() tea.Msg {
		out, err := search.Replay(ctx, i, form)
		return messages.ReplayCompleted{Form: out, Err: err}
	}
}

func (v *View) exclude(frame domain.FrameRecord) tea.Cmd {
	if v.svc.Filter == nil {
		return nil
	}
	ctx := v.ctx
	filter := v.svc.Filter
	return func() tea.Msg {
		added, err := filter.Exclude(ctx, frame)
		return messages.ExclusionChanged{Frame: frame, Added: added, Err: err}
	}
}

func (v *View) sendSubmission() tea.Cmd {
	if v.svc.Submission == nil {
		return nil
	}
	sub, ok := v.svc.Submission.Pending()
	if !ok {
		v.statusbar.SetMessage("Nothing to submit: open a frame and press c")
		return nil
	}
	ctx := v.ctx
	submissions := v.svc.Submission
	return v.busyCmd("Submitting...", func() tea.Msg {
		result, err := submissions.Submit(ctx, *sub)
		return messages.SubmissionCompleted{Result: result, Err: err}
	})
}

func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	v.busy = false
	if v.fail(msg.Err) {
		return
	}
	v.refreshList()
	v.statusbar.SetState(status.StateResults)
	if msg.Entry != nil {
		v.statusbar.SetMessage(msg.Entry.Summary())
	}
}

// refreshList redraws the list from the results view state.
func (v *View) refreshList() {
	results := v.svc.Results
	if results == nil {
		return
	}
	info := results.PageInfo()
	if results.Mode() == domain.ViewTable {
		v.list.SetTable(results.VisibleRows(), info)
	} else {
		v.list.SetGrid(results.PageRecords(), info)
	}
	v.statusbar.SetPage(results.Results().Len(), info)
}

// runCommand executes one ":" command line.
func (v *View) runCommand(line string) tea.Cmd {
	cmd, err := ParseCommand(line)
	if err != nil {
		return errorCmd(err)
	}

	if v.svc.Filter == nil && slices.Contains([]string{"filter", "reset", "videos", "unexclude"}, cmd.Name) {
		return errorCmd(fmt.Errorf("%w: filters are not available", domain.ErrInvalidInput))
	}

	ctx := v.ctx
	switch cmd.Name {
	case "":
		return nil

	case "filter":
		return v.applyFilter(cmd)

	case "reset":
		filter := v.svc.Filter
		return func() tea.Msg {
			if err := filter.Reset(ctx); err != nil {
				return messages.ErrorOccurred{Err: err}
			}
			return messages.StatusChanged{Text: "Filters cleared"}
		}

	case "videos":
		batches := cmd.Args
		if len(batches) == 0 {
			batches = []string{"0"}
		}
		filter := v.svc.Filter
		return v.busyCmd("Loading videos...", func() tea.Msg {
			names, err := filter.LoadVideoNames(ctx, batches)
			return messages.VideosLoaded{Names: names, Err: err}
		})

	case "unexclude":
		if len(cmd.Args) != 1 {
			return errorCmd(fmt.Errorf("%w: usage: unexclude <position>", domain.ErrInvalidInput))
		}
		i, err := strconv.Atoi(cmd.Args[0])
		if err != nil {
			return errorCmd(fmt.Errorf("%w: position must be a number", domain.ErrInvalidInput))
		}
		filter := v.svc.Filter
		return func() tea.Msg {
			if err := filter.RemoveExcluded(ctx, i); err != nil {
				return messages.ErrorOccurred{Err: err}
			}
			return messages.StatusChanged{Text: fmt.Sprintf("Removed exclusion %d", i)}
		}

	case "model":
		if len(cmd.Args) != 1 {
			return errorCmd(fmt.Errorf("%w: usage: model <name>", domain.ErrInvalidInput))
		}
		model := domain.Model(strings.ToUpper(cmd.Args[0]))
		if !model.IsValid() {
			return errorCmd(fmt.Errorf("%w: unknown model %q", domain.ErrInvalidInput, cmd.Args[0]))
		}
		v.form.Model = model
		v.updateLabel()
		return nil

	case "type":
		if len(cmd.Args) != 1 {
			return errorCmd(fmt.Errorf("%w: usage: type text|image", domain.ErrInvalidInput))
		}
		qt := domain.QueryType(strings.ToLower(cmd.Args[0]))
		if !qt.IsSelectable() {
			return errorCmd(fmt.Errorf("%w: query type must be text or image", domain.ErrInvalidInput))
		}
		v.form.Type = qt
		v.updateLabel()
		return nil

	case "k":
		if len(cmd.Args) != 1 {
			return errorCmd(fmt.Errorf("%w: usage: k <count>", domain.ErrInvalidInput))
		}
		k, err := strconv.Atoi(cmd.Args[0])
		if err != nil || k < 1 {
			return errorCmd(fmt.Errorf("%w: k must be a positive integer", domain.ErrInvalidInput))
		}
		v.form.Settings.K = k
		v.statusbar.SetMessage(fmt.Sprintf("k = %d", k))
		return nil

	case "page":
		if len(cmd.Args) != 1 || v.svc.Results == nil {
			return errorCmd(fmt.Errorf("%w: usage: page <n>", domain.ErrInvalidInput))
		}
		n, err := strconv.Atoi(cmd.Args[0])
		if err != nil {
			return errorCmd(fmt.Errorf("%w: page must be a number", domain.ErrInvalidInput))
		}
		v.svc.Results.DisplayPage(n)
		v.refreshList()
		return nil

	case "translate":
		on := len(cmd.Args) == 0 || cmd.Args[0] == "on"
		v.form.AutoTranslate = on
		if on {
			v.statusbar.SetMessage("Auto-translate on")
		} else {
			v.statusbar.SetMessage("Auto-translate off")
		}
		return nil

	case "set":
		if len(cmd.Args) != 2 || v.svc.Settings == nil {
			return errorCmd(fmt.Errorf("%w: usage: set <key> <value>", domain.ErrInvalidInput))
		}
		settings := v.svc.Settings
		key, value := cmd.Args[0], cmd.Args[1]
		return func() tea.Msg {
			if err := settings.Set(key, value); err != nil {
				return messages.ErrorOccurred{Err: err}
			}
			updated, err := settings.Get()
			return messages.SettingsReloaded{Settings: updated, Err: err}
		}

	case "rerank":
		return v.rerank()

	case "submit":
		return v.sendSubmission()

	case "history":
		return changeView(messages.ViewHistory)

	case "q", "quit":
		return tea.Quit
	}
	return errorCmd(fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Name))
}

// applyFilter handles `filter video=a,b s2t="..." in=mm:ss out=mm:ss`.
// Options left out keep their current value.
func (v *View) applyFilter(cmd Command) tea.Cmd {
	if slices.Contains(cmd.Args, "reset") {
		return v.runCommand("reset")
	}
	timeIn, hasIn := cmd.Option("in", "time_in")
	timeOut, hasOut := cmd.Option("out", "time_out")
	for _, t := range []string{timeIn, timeOut} {
		if err := validTime(t); err != nil {
			return errorCmd(err)
		}
	}
	ctx := v.ctx
	filter := v.svc.Filter
	return func() tea.Msg {
		current, err := filter.Filters(ctx)
		if err != nil {
			return messages.ErrorOccurred{Err: err}
		}
		if videos, ok := cmd.Option("video", "videos"); ok {
			filter.SetVideos(splitList(videos))
		}
		if s2t, ok := cmd.Option("s2t"); ok {
			filter.SetS2T(s2t)
		}
		if hasIn || hasOut {
			if !hasIn {
				timeIn = current.TimeIn
			}
			if !hasOut {
				timeOut = current.TimeOut
			}
			filter.SetTimeRange(timeIn, timeOut)
		}
		updated, err := filter.Filters(ctx)
		if err != nil {
			return messages.ErrorOccurred{Err: err}
		}
		return messages.StatusChanged{Text: describeFilters(updated)}
	}
}

// describeFilters summarises the active filters for the status bar.
func describeFilters(f domain.Filters) string {
	var parts []string
	if len(f.Videos) > 0 {
		parts = append(parts, "videos="+f.VideoFilter())
	}
	if f.S2T != "" {
		parts = append(parts, fmt.Sprintf("s2t=%q", f.S2T))
	}
	if f.TimeIn != "" || f.TimeOut != "" {
		parts = append(parts, fmt.Sprintf("time=%s-%s", f.TimeIn, f.TimeOut))
	}
	if len(f.Excluded) > 0 {
		parts = append(parts, fmt.Sprintf("excluded=%d", len(f.Excluded)))
	}
	if len(parts) == 0 {
		return "No filters"
	}
	return "Filters: " + strings.Join(parts, " ")
}

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg { return messages.ErrorOccurred{Err: err} }
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg { return messages.ViewChanged{View: view} }
}

// View renders the search view.
func (v *View) View() string {
	header := v.styles.Title.Render("framescope")
	if prev := v.previousQuery(); prev != "" {
		header += v.styles.Muted.Render("  previous: " + prev)
	}

	body := v.list.View()
	if v.busy {
		box := v.styles.Overlay.Render(v.styles.Normal.Render("Working..."))
		body = lipgloss.Place(v.width, max(3, lipgloss.Height(body)), lipgloss.Center, lipgloss.Center, box)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		v.input.View(),
		"",
		body,
		"",
		v.statusbar.View(),
	)
}

func (v *View) previousQuery() string {
	if v.svc.History == nil {
		return ""
	}
	return v.svc.History.PreviousQuery()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
	v.list.SetDimensions(width, max(1, height-8))
	v.statusbar.SetWidth(width)
}

// Reset clears the query line and refocuses it.
func (v *View) Reset() {
	v.input.Reset()
	v.focusInput = true
	v.input.Focus()
	v.err = nil
}

// Form returns the query form.
func (v *View) Form() domain.SearchRequest {
	return v.form
}

// Query returns the text in the query line.
func (v *View) Query() string {
	return v.input.Value()
}

// Busy reports whether a request is in flight.
func (v *View) Busy() bool {
	return v.busy
}

// Err returns the last error shown.
func (v *View) Err() error {
	return v.err
}

// InputFocused reports whether keys go to the query line.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// List returns the result list component.
func (v *View) List() *list.ResultList {
	return v.list
}

// StatusBar returns the status bar component.
func (v *View) StatusBar() *status.Bar {
	return v.statusbar
}
