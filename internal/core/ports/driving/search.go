package driving

import (
	"context"

	"github.com/custodia-labs/framescope/internal/core/domain"
)

// SearchService coordinates a search from form to rendered, recorded results.
type SearchService interface {
	// Submit routes, dispatches, normalises, installs, and records a search.
	// A response superseded by a later Submit returns domain.ErrStaleResponse
	// and changes nothing.
	Submit(ctx context.Context, req domain.SearchRequest) (*domain.SearchContext, error)

	// ScrollAround searches the shot containing frame.
	ScrollAround(ctx context.Context, frame domain.FrameRecord, model domain.Model, settings domain.SearchSettings) (*domain.SearchContext, error)

	// RerankColor reorders the current results by colour and installs them as a flat set.
	RerankColor(ctx context.Context) (domain.ResultSet, error)

	// Replay re-renders history entry i without a network call and returns
	// the query form rehydrated from it. form is the form's current state.
	Replay(ctx context.Context, i int, form domain.SearchRequest) (domain.SearchRequest, error)

	// Busy reports whether a blocking operation is in flight.
	Busy() bool
}
