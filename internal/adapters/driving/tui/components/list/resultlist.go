// Package list provides result display components for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/custodia-labs/framescope/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/framescope/internal/core/domain"
)

const (
	cellWidth  = 22
	videoWidth = 14
)

// RenderCache memoises a record's cell body.
type RenderCache func(rec domain.FrameRecord, render func(domain.FrameRecord) string) string

// ResultList displays one page of results, either as a grid of frames or as
// a temporal table with one row per video and one column per scene.
type ResultList struct {
	styles *styles.Styles
	pager  paginator.Model
	cache  RenderCache

	mode    domain.ViewMode
	records []domain.FrameRecord
	rows    []domain.TemporalRow
	scenes  int

	// items is every selectable frame on the page in reading order.
	items    []domain.FrameRecord
	selected int

	width  int
	height int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	pager := paginator.New()
	pager.Type = paginator.Arabic

	return &ResultList{
		styles: s,
		pager:  pager,
		width:  80,
		height: 20,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles selection keys. Paging is owned by the results view state.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// SetRenderCache installs the cell cache used by the grid.
func (r *ResultList) SetRenderCache(cache RenderCache) {
	r.cache = cache
}

// SetGrid shows a page of flat results.
func (r *ResultList) SetGrid(records []domain.FrameRecord, info domain.PageInfo) {
	r.mode = domain.ViewGrid
	r.records = records
	r.rows = nil
	r.scenes = 0
	r.items = append([]domain.FrameRecord(nil), records...)
	r.setPage(info)
}

// SetTable shows a page of temporal rows.
func (r *ResultList) SetTable(rows []domain.TemporalRow, info domain.PageInfo) {
	r.mode = domain.ViewTable
	r.records = nil
	r.rows = rows
	r.scenes = 0
	r.items = nil
	for _, row := range rows {
		r.scenes = max(r.scenes, len(row.Cells))
		for _, cell := range row.Cells {
			if cell != nil {
				r.items = append(r.items, *cell)
			}
		}
	}
	r.setPage(info)
}

func (r *ResultList) setPage(info domain.PageInfo) {
	r.selected = 0
	r.pager.PerPage = max(1, info.PageSize)
	r.pager.TotalPages = max(1, info.TotalPages)
	r.pager.Page = max(0, info.Page-1)
}

// Clear removes all results.
func (r *ResultList) Clear() {
	r.SetGrid(nil, domain.PageInfo{Page: 1, TotalPages: 1})
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.items) == 0 {
		return r.styles.Muted.Render("No results")
	}

	var body string
	if r.mode == domain.ViewTable {
		body = r.viewTable()
	} else {
		body = r.viewGrid()
	}
	footer := r.styles.Muted.Render("Page " + r.pager.View())
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

// Columns returns how many grid cells fit across the current width.
func (r *ResultList) Columns() int {
	return max(1, r.width/(cellWidth+4))
}

func (r *ResultList) viewGrid() string {
	cols := r.Columns()
	lines := make([]string, 0, len(r.records)/cols+1)
	for start := 0; start < len(r.records); start += cols {
		end := min(start+cols, len(r.records))
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cells = append(cells, r.renderCell(i, r.records[i]))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(lines, "\n")
}

func (r *ResultList) renderCell(pos int, rec domain.FrameRecord) string {
	body := cellBody(rec)
	if r.cache != nil {
		body = r.cache(rec, cellBody)
	}
	style := r.styles.Cell
	if pos == r.selected {
		style = r.styles.SelectedCell
	}
	return style.Width(cellWidth).Render(body)
}

// cellBody is the three-line text of one grid cell.
func cellBody(rec domain.FrameRecord) string {
	title := fmt.Sprintf("[%d] %s", rec.Index, rec.BaseVideoName())
	position := fmt.Sprintf("#%s %s", rec.FrameNumberText(), rec.Timecode())
	return strings.Join([]string{
		runewidth.Truncate(title, cellWidth, "…"),
		runewidth.Truncate(position, cellWidth, "…"),
		styles.FormatScore(float64(rec.Score)),
	}, "\n")
}

func (r *ResultList) viewTable() string {
	header := make([]string, 0, r.scenes+1)
	header = append(header, r.styles.Subtitle.Render(runewidth.FillRight("Video", videoWidth)))
	for i := range r.scenes {
		header = append(header, r.styles.Subtitle.Render(runewidth.FillRight(fmt.Sprintf("Scene %d", i+1), cellWidth+2)))
	}

	lines := []string{strings.Join(header, " ")}
	pos := 0
	for _, row := range r.rows {
		cells := make([]string, 0, len(row.Cells)+1)
		video := runewidth.Truncate(strings.TrimSuffix(row.VideoName, domain.VideoExtension), videoWidth, "…")
		cells = append(cells, r.styles.Normal.Render(runewidth.FillRight(video, videoWidth)))
		for _, cell := range row.Cells {
			if cell == nil {
				cells = append(cells, r.styles.EmptyCell.Render(runewidth.FillRight("·", cellWidth)))
				continue
			}
			text := runewidth.FillRight(runewidth.Truncate(
				fmt.Sprintf("[%d] #%s %s", cell.Index, cell.FrameNumberText(), cell.Timecode()),
				cellWidth, "…"), cellWidth)
			if pos == r.selected {
				cells = append(cells, r.styles.Selected.Render(" "+text+" "))
			} else {
				cells = append(cells, r.styles.Normal.Render(" "+text+" "))
			}
			pos++
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return strings.Join(lines, "\n")
}

// Mode returns whether a grid or a table is shown.
func (r *ResultList) Mode() domain.ViewMode {
	return r.mode
}

// Items returns the selectable frames in reading order.
func (r *ResultList) Items() []domain.FrameRecord {
	return r.items
}

// Selected returns the position of the selected frame.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected position.
func (r *ResultList) SetSelected(pos int) {
	if pos >= 0 && pos < len(r.items) {
		r.selected = pos
	}
}

// SelectedFrame returns the selected frame.
func (r *ResultList) SelectedFrame() (domain.FrameRecord, bool) {
	if r.selected < 0 || r.selected >= len(r.items) {
		return domain.FrameRecord{}, false
	}
	return r.items[r.selected], true
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.items)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *ResultList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *ResultList) Height() int {
	return r.height
}

// Count returns the number of selectable frames.
func (r *ResultList) Count() int {
	return len(r.items)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.items) == 0
}
