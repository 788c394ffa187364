package driven

import (
	"context"

	"github.com/custodia-labs/framescope/internal/core/domain"
)

// ExclusionStore holds the frames excluded from subsequent searches.
// Identity is ExcludedFrame.Key; insertion order is preserved.
type ExclusionStore interface {
	// Add appends the frame unless an equal key is already present.
	// Returns true if the frame was added.
	Add(ctx context.Context, frame domain.ExcludedFrame) (bool, error)

	// RemoveAt removes the entry at position i.
	RemoveAt(ctx context.Context, i int) error

	// List returns the entries in insertion order.
	List(ctx context.Context) ([]domain.ExcludedFrame, error)

	// Replace swaps the whole list, dropping duplicate keys.
	Replace(ctx context.Context, frames []domain.ExcludedFrame) error

	// Clear removes all entries.
	Clear(ctx context.Context) error
}
