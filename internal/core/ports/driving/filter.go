package driving

import (
	"context"

	"github.com/custodia-labs/framescope/internal/core/domain"
)

// FilterService holds the filter panel state sent with every search.
type FilterService interface {
	// Exclude adds a result frame to the exclusion list.
	// Returns false if it was already excluded.
	Exclude(ctx context.Context, rec domain.FrameRecord) (bool, error)

	// RemoveExcluded removes the exclusion at position i.
	RemoveExcluded(ctx context.Context, i int) error

	// Excluded returns the exclusion list in insertion order.
	Excluded(ctx context.Context) ([]domain.ExcludedFrame, error)

	// SetVideos selects the videos to search within.
	SetVideos(videos []string)

	// SetS2T sets the transcript filter.
	SetS2T(s2t string)

	// SetTimeRange sets the "mm:ss" bounds used by scroll searches.
	SetTimeRange(timeIn, timeOut string)

	// Reset clears every filter, the exclusion list, and the loaded video names.
	Reset(ctx context.Context) error

	// Filters returns a snapshot of the current filters.
	Filters(ctx context.Context) (domain.Filters, error)

	// Restore rehydrates the filters from a history record.
	Restore(ctx context.Context, filters domain.ContextFilters) error

	// LoadVideoNames fetches the selectable video names for the given batches.
	LoadVideoNames(ctx context.Context, batches []string) ([]string, error)

	// VideoNames returns the last loaded video names.
	VideoNames() []string
}
