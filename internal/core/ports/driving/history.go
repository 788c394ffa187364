package driving

import (
	"context"

	"github.com/custodia-labs/framescope/internal/core/domain"
)

// HistoryService manages the session's search history.
type HistoryService interface {
	// Record prepends an entry, truncates to domain.MaxHistory, and persists.
	Record(ctx context.Context, entry domain.SearchContext) error

	// Entries returns the history, most recent first.
	Entries(ctx context.Context) ([]domain.SearchContext, error)

	// Get returns the entry at position i.
	Get(ctx context.Context, i int) (*domain.SearchContext, error)

	// Latest returns the most recent entry.
	Latest(ctx context.Context) (*domain.SearchContext, error)

	// Clear empties the history and blanks the previous-query label.
	Clear(ctx context.Context) error

	// PreviousQuery returns the truncated label of the last recorded query.
	PreviousQuery() string
}
