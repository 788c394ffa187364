// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/framescope/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSearch is the query input and results view.
	ViewSearch ViewType = iota
	// ViewDetail is the frame detail and neighbour overlay.
	ViewDetail
	// ViewHistory is the history picker.
	ViewHistory
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewDetail:
		return "detail"
	case ViewHistory:
		return "history"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// SearchCompleted carries a finished search or scroll back to the model.
type SearchCompleted struct {
	Entry *domain.SearchContext
	Err   error
}

// RerankCompleted carries the colour-reranked result set.
type RerankCompleted struct {
	Results domain.ResultSet
	Err     error
}

// FrameOpened asks for the detail view of a frame.
type FrameOpened struct {
	Frame domain.FrameRecord
}

// NeighborsLoaded signals that the navigator finished loading for an open.
type NeighborsLoaded struct {
	Gen uint64
}

// ScrollRequested asks for a scroll search around a frame.
type ScrollRequested struct {
	Frame domain.FrameRecord
}

// ExcludeRequested asks to add a frame to the skip list.
type ExcludeRequested struct {
	Frame domain.FrameRecord
}

// ExclusionChanged signals that a frame was added to the skip list.
type ExclusionChanged struct {
	Frame domain.FrameRecord
	Added bool
	Err   error
}

// HistoryLoaded carries the history entries for the picker.
type HistoryLoaded struct {
	Entries []domain.SearchContext
	Err     error
}

// HistoryCleared signals the history was emptied.
type HistoryCleared struct {
	Err error
}

// ReplayRequested asks to replay a history entry.
type ReplayRequested struct {
	Index int
}

// ReplayCompleted carries the query form rehydrated from a history entry.
type ReplayCompleted struct {
	Form domain.SearchRequest
	Err  error
}

// SubmissionFilled carries the submission filled from the detail view.
type SubmissionFilled struct {
	Submission *domain.Submission
	Err        error
}

// SubmissionCompleted carries the evaluation server's verdict.
type SubmissionCompleted struct {
	Result *domain.SubmissionResult
	Err    error
}

// VideosLoaded carries the video names of the requested batches.
type VideosLoaded struct {
	Names []string
	Err   error
}

// SettingsReloaded is sent after the config file changed on disk.
type SettingsReloaded struct {
	Settings *domain.AppSettings
	Err      error
}

// StatusChanged replaces the status bar message.
type StatusChanged struct {
	Text string
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
