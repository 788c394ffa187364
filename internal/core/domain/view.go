package domain

// ViewMode selects which paginator owns the shared page controls.
type ViewMode int

// View modes.
const (
	// ViewGrid pages a flat list of frames.
	ViewGrid ViewMode = iota

	// ViewTable pages the rows of a temporal table.
	ViewTable
)

// String returns the string representation.
func (m ViewMode) String() string {
	if m == ViewTable {
		return "table"
	}
	return "grid"
}

// PageInfo describes the active paginator's position.
type PageInfo struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// TotalPages returns max(1, ceil(total/size)).
func TotalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// PrevDisabled reports whether there is no previous page.
func (p PageInfo) PrevDisabled() bool {
	return p.Page <= 1
}

// NextDisabled reports whether there is no next page.
func (p PageInfo) NextDisabled() bool {
	return p.Page >= p.TotalPages
}

// Bounds returns the half-open item range [start, end) of the page.
func (p PageInfo) Bounds() (start, end int) {
	start = (p.Page - 1) * p.PageSize
	if start > p.Total {
		start = p.Total
	}
	end = start + p.PageSize
	if end > p.Total {
		end = p.Total
	}
	return start, end
}

// NavigatorState is the detail overlay's lifecycle state.
type NavigatorState int

// Navigator states. Loading and Displaying both count as modal-open.
const (
	// NavigatorIdle means the overlay is closed.
	NavigatorIdle NavigatorState = iota

	// NavigatorLoading shows the focal frame while neighbours are fetched.
	NavigatorLoading

	// NavigatorDisplaying shows the frame list, with or without the neighbour strip.
	NavigatorDisplaying
)

// String returns the string representation.
func (s NavigatorState) String() string {
	switch s {
	case NavigatorLoading:
		return "loading"
	case NavigatorDisplaying:
		return "displaying"
	default:
		return "idle"
	}
}

// ModalOpen reports whether the overlay captures navigation keys.
func (s NavigatorState) ModalOpen() bool {
	return s != NavigatorIdle
}
