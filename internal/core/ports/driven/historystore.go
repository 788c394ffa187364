package driven

import (
	"context"

	"github.com/custodia-labs/framescope/internal/core/domain"
)

// HistoryStore persists the search history of one session.
// Entries are stored most-recent-first exactly as given.
type HistoryStore interface {
	// Load returns the stored entries. A session with no history returns an empty slice.
	Load(ctx context.Context) ([]domain.SearchContext, error)

	// Save replaces the stored entries.
	Save(ctx context.Context, entries []domain.SearchContext) error

	// Clear removes the session's history.
	Clear(ctx context.Context) error
}
