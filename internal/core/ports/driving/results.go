package driving

import "github.com/custodia-labs/framescope/internal/core/domain"

// ResultsView owns the rendered result set, the view mode, and the page
// size shared by the grid and temporal paginators.
type ResultsView interface {
	// SetResults installs a result set, selects the view mode from its
	// shape, and resets the active paginator to page 1.
	SetResults(rs domain.ResultSet)

	// Results returns the installed result set.
	Results() domain.ResultSet

	// Record returns the record at a result index (currentVideos).
	Record(index int) (domain.FrameRecord, bool)

	// Mode returns the active view mode.
	Mode() domain.ViewMode

	// PageInfo describes the active paginator's position.
	PageInfo() domain.PageInfo

	// PageRecords returns the grid page's records. Empty in table mode.
	PageRecords() []domain.FrameRecord

	// VisibleRows returns the temporal rows on the current page. Empty in grid mode.
	VisibleRows() []domain.TemporalRow

	// DisplayPage jumps the active paginator to page n.
	DisplayPage(n int)

	// NextPage advances the active paginator. Returns false at the last page.
	NextPage() bool

	// PrevPage goes back one page. Returns false at the first page.
	PrevPage() bool

	// HandleKey routes a navigation key to the paginators.
	// Returns true if a page change happened.
	HandleKey(key string, modalOpen, inputFocused bool) bool

	// ResultsPerPage returns the shared page size.
	ResultsPerPage() int

	// SetResultsPerPage changes the shared page size and clamps the active page.
	SetResultsPerPage(n int)

	// CachedRender returns the cached rendering of rec, calling render on a miss.
	// The cache is wiped whenever a new result set is installed.
	CachedRender(rec domain.FrameRecord, render func(domain.FrameRecord) string) string
}
