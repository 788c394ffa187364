package services

import (
	"sync"

	"github.com/custodia-labs/framescope/internal/core/domain"
	"github.com/custodia-labs/framescope/internal/core/ports/driving"
	"github.com/custodia-labs/framescope/internal/logger"
)

// Ensure ResultsView implements the interface.
var _ driving.ResultsView = (*ResultsView)(nil)

// Navigation keys understood by the paginators.
const (
	KeyPrevPage = "left"
	KeyNextPage = "right"
)

// viewState is shared by both paginators. Exactly one paginator is active,
// selected by mode.
type viewState struct {
	mode domain.ViewMode
	size int
}

// GridPaginator pages a flat list of records. Every operation is a no-op
// while the view is in table mode. It is not safe for concurrent use.
type GridPaginator struct {
	shared  *viewState
	records []domain.FrameRecord
	page    int
	cache   map[string]string
}

func newGridPaginator(shared *viewState) *GridPaginator {
	return &GridPaginator{shared: shared, page: 1, cache: make(map[string]string)}
}

func (g *GridPaginator) active() bool {
	return g.shared.mode == domain.ViewGrid
}

// SetResults resets to page 1 and wipes the render cache.
func (g *GridPaginator) SetResults(records []domain.FrameRecord) {
	g.records = records
	g.page = 1
	g.cache = make(map[string]string)
}

// Info describes the current position.
func (g *GridPaginator) Info() domain.PageInfo {
	return domain.PageInfo{
		Page:       g.page,
		PageSize:   g.shared.size,
		Total:      len(g.records),
		TotalPages: domain.TotalPages(len(g.records), g.shared.size),
	}
}

// DisplayPage jumps to page n, clamped to the valid range.
func (g *GridPaginator) DisplayPage(n int) {
	if !g.active() {
		return
	}
	g.page = clampPage(n, len(g.records), g.shared.size)
}

// Page returns the records of the current page.
func (g *GridPaginator) Page() []domain.FrameRecord {
	if !g.active() {
		return nil
	}
	start, end := g.Info().Bounds()
	return g.records[start:end]
}

// Next advances one page.
func (g *GridPaginator) Next() bool {
	if !g.active() || g.page >= domain.TotalPages(len(g.records), g.shared.size) {
		return false
	}
	g.page++
	return true
}

// Prev goes back one page.
func (g *GridPaginator) Prev() bool {
	if !g.active() || g.page <= 1 {
		return false
	}
	g.page--
	return true
}

// Resize clamps the current page after a page size change.
func (g *GridPaginator) Resize() {
	if !g.active() {
		return
	}
	g.page = clampPage(g.page, len(g.records), g.shared.size)
}

// HandleKey pages on arrow keys unless the detail overlay is open, the view
// is in table mode, or an input has focus.
func (g *GridPaginator) HandleKey(key string, modalOpen, inputFocused bool) bool {
	if modalOpen || !g.active() || inputFocused {
		return false
	}
	return handlePageKey(key, g.Prev, g.Next)
}

// Render returns the cached rendering of rec, calling render on a miss.
func (g *GridPaginator) Render(rec domain.FrameRecord, render func(domain.FrameRecord) string) string {
	key := rec.CacheKey()
	if out, ok := g.cache[key]; ok {
		return out
	}
	out := render(rec)
	g.cache[key] = out
	return out
}

// TemporalPaginator pages the rows of a temporal table by toggling row
// visibility. Every operation is a no-op unless the view is in table mode.
// It is not safe for concurrent use.
type TemporalPaginator struct {
	shared  *viewState
	rows    []domain.TemporalRow
	visible []bool
	page    int
}

func newTemporalPaginator(shared *viewState) *TemporalPaginator {
	return &TemporalPaginator{shared: shared, page: 1}
}

func (p *TemporalPaginator) active() bool {
	return p.shared.mode == domain.ViewTable
}

// SetTemporalResults captures the rows, resets to page 1, and shows it.
func (p *TemporalPaginator) SetTemporalResults(rows []domain.TemporalRow) {
	p.rows = rows
	p.visible = make([]bool, len(rows))
	p.page = 1
	p.show()
}

// Info describes the current position.
func (p *TemporalPaginator) Info() domain.PageInfo {
	return domain.PageInfo{
		Page:       p.page,
		PageSize:   p.shared.size,
		Total:      len(p.rows),
		TotalPages: domain.TotalPages(len(p.rows), p.shared.size),
	}
}

// DisplayPage jumps to page n, clamped to the valid range.
func (p *TemporalPaginator) DisplayPage(n int) {
	if !p.active() {
		return
	}
	p.page = clampPage(n, len(p.rows), p.shared.size)
	p.show()
}

// Next advances one page.
func (p *TemporalPaginator) Next() bool {
	if !p.active() || p.page >= domain.TotalPages(len(p.rows), p.shared.size) {
		return false
	}
	p.page++
	p.show()
	return true
}

// Prev goes back one page.
func (p *TemporalPaginator) Prev() bool {
	if !p.active() || p.page <= 1 {
		return false
	}
	p.page--
	p.show()
	return true
}

// Resize clamps the current page after a page size change.
func (p *TemporalPaginator) Resize() {
	if !p.active() {
		return
	}
	p.page = clampPage(p.page, len(p.rows), p.shared.size)
	p.show()
}

// HandleKey pages on arrow keys unless the detail overlay is open, an input
// has focus, or the view is in grid mode.
func (p *TemporalPaginator) HandleKey(key string, modalOpen, inputFocused bool) bool {
	if modalOpen || inputFocused || !p.active() {
		return false
	}
	return handlePageKey(key, p.Prev, p.Next)
}

// RowVisible reports whether row i is on the current page.
func (p *TemporalPaginator) RowVisible(i int) bool {
	return i >= 0 && i < len(p.visible) && p.visible[i]
}

// VisibleRows returns the rows on the current page.
func (p *TemporalPaginator) VisibleRows() []domain.TemporalRow {
	if !p.active() {
		return nil
	}
	var out []domain.TemporalRow
	for i, row := range p.rows {
		if p.visible[i] {
			out = append(out, row)
		}
	}
	return out
}

func (p *TemporalPaginator) show() {
	start, end := p.Info().Bounds()
	for i := range p.visible {
		p.visible[i] = i >= start && i < end
	}
}

// ResultsView owns the installed result set, the view mode, and the page
// size shared by its two paginators.
type ResultsView struct {
	mu       sync.Mutex
	results  domain.ResultSet
	shared   *viewState
	grid     *GridPaginator
	temporal *TemporalPaginator
}

// NewResultsView creates a results view with the given page size.
func NewResultsView(resultsPerPage int) *ResultsView {
	if resultsPerPage < 1 {
		resultsPerPage = domain.DefaultResultsPerPage
	}
	shared := &viewState{mode: domain.ViewGrid, size: resultsPerPage}
	return &ResultsView{
		results:  domain.EmptyResultSet(),
		shared:   shared,
		grid:     newGridPaginator(shared),
		temporal: newTemporalPaginator(shared),
	}
}

// SetResults installs rs. Temporal sets switch to table mode and hand the
// page controls to the temporal paginator; anything else uses the grid.
func (v *ResultsView) SetResults(rs domain.ResultSet) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.results = rs
	if rs.Shape == domain.ShapeTemporal {
		v.shared.mode = domain.ViewTable
		v.grid.SetResults(nil)
		v.temporal.SetTemporalResults(rs.Rows)
	} else {
		v.shared.mode = domain.ViewGrid
		v.temporal.SetTemporalResults(nil)
		v.grid.SetResults(rs.Records)
	}
	logger.Debug("results: installed %s set (%d records), %s mode", rs.Shape, rs.Len(), v.shared.mode)
}

// Results returns the installed result set.
func (v *ResultsView) Results() domain.ResultSet {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.results
}

// Record returns the record at a result index.
func (v *ResultsView) Record(index int) (domain.FrameRecord, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.results.Record(index)
}

// Mode returns the active view mode.
func (v *ResultsView) Mode() domain.ViewMode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.shared.mode
}

// PageInfo describes the active paginator's position.
func (v *ResultsView) PageInfo() domain.PageInfo {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.shared.mode == domain.ViewTable {
		return v.temporal.Info()
	}
	return v.grid.Info()
}

// PageRecords returns the grid page's records.
func (v *ResultsView) PageRecords() []domain.FrameRecord {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.grid.Page()
}

// VisibleRows returns the temporal rows on the current page.
func (v *ResultsView) VisibleRows() []domain.TemporalRow {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.temporal.VisibleRows()
}

// DisplayPage jumps the active paginator to page n.
func (v *ResultsView) DisplayPage(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.grid.DisplayPage(n)
	v.temporal.DisplayPage(n)
}

// NextPage advances the active paginator.
func (v *ResultsView) NextPage() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.grid.Next() || v.temporal.Next()
}

// PrevPage goes back one page on the active paginator.
func (v *ResultsView) PrevPage() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.grid.Prev() || v.temporal.Prev()
}

// HandleKey offers the key to both paginators; at most one acts on it.
func (v *ResultsView) HandleKey(key string, modalOpen, inputFocused bool) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	gridMoved := v.grid.HandleKey(key, modalOpen, inputFocused)
	temporalMoved := v.temporal.HandleKey(key, modalOpen, inputFocused)
	return gridMoved || temporalMoved
}

// ResultsPerPage returns the shared page size.
func (v *ResultsView) ResultsPerPage() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.shared.size
}

// SetResultsPerPage changes the shared page size. Each paginator clamps its
// own page; the inactive one picks the size up on its next result set.
func (v *ResultsView) SetResultsPerPage(n int) {
	if n < 1 {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.shared.size = n
	v.grid.Resize()
	v.temporal.Resize()
}

// CachedRender returns the cached rendering of rec, calling render on a miss.
func (v *ResultsView) CachedRender(rec domain.FrameRecord, render func(domain.FrameRecord) string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.grid.Render(rec, render)
}

// RowVisible reports whether temporal row i is on the current page.
func (v *ResultsView) RowVisible(i int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.temporal.RowVisible(i)
}

func clampPage(page, total, size int) int {
	last := domain.TotalPages(total, size)
	if page > last {
		page = last
	}
	if page < 1 {
		page = 1
	}
	return page
}

func handlePageKey(key string, prev, next func() bool) bool {
	switch key {
	case KeyPrevPage:
		return prev()
	case KeyNextPage:
		return next()
	default:
		return false
	}
}
