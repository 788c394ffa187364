package driving

import (
	"encoding/json"

	"github.com/custodia-labs/framescope/internal/core/domain"
)

// QueryRouter turns a query form into a dispatchable request.
type QueryRouter interface {
	// Route applies the routing rules and builds the endpoint and form.
	// Returns domain.ErrNoRoute or domain.ErrImageRequired without dispatching.
	Route(req domain.SearchRequest) (*domain.RoutedQuery, error)

	// ScrollAround builds a scroll query over the shot containing frame.
	ScrollAround(frame domain.FrameRecord, model domain.Model, settings domain.SearchSettings) (*domain.RoutedQuery, error)
}

// ResultNormalizer classifies a hub payload into a tagged result set.
type ResultNormalizer interface {
	// Normalize never fails; unrecognised payloads yield an empty result set.
	Normalize(payload json.RawMessage) domain.ResultSet
}
