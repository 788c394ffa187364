package domain

import "strings"

// TemporalPrefix marks a model variant that may split multi-sentence text
// into a temporal (multi-scene) query.
const TemporalPrefix = "TEMPORAL_"

// Model identifies a retrieval model on the hub.
type Model string

// Available retrieval models.
const (
	// ModelMeta is the MetaCLIP model.
	ModelMeta Model = "META"

	// ModelMetaV2 is the MetaCLIP v2 model.
	ModelMetaV2 Model = "META_V2"

	// ModelSiglipV2 is the SigLIP v2 model.
	ModelSiglipV2 Model = "SIGLIP_V2"
)

// BaseModels lists the models the hub serves, in menu order.
func BaseModels() []Model {
	return []Model{ModelMetaV2, ModelSiglipV2, ModelMeta}
}

// IsTemporal reports whether the model carries the temporal prefix.
func (m Model) IsTemporal() bool {
	return strings.HasPrefix(string(m), TemporalPrefix)
}

// Base returns the model without the temporal prefix.
func (m Model) Base() Model {
	return Model(strings.TrimPrefix(string(m), TemporalPrefix))
}

// Temporal returns the temporal-prefixed variant of the model.
func (m Model) Temporal() Model {
	if m.IsTemporal() {
		return m
	}
	return Model(TemporalPrefix + string(m))
}

// IsValid returns true if the base model is recognised.
func (m Model) IsValid() bool {
	switch m.Base() {
	case ModelMeta, ModelMetaV2, ModelSiglipV2:
		return true
	default:
		return false
	}
}

// Display returns the short label used in history entries ("TEMPORAL_" becomes "T-").
func (m Model) Display() string {
	return strings.Replace(string(m), TemporalPrefix, "T-", 1)
}

// String returns the string representation.
func (m Model) String() string {
	return string(m)
}

// QueryType is the kind of search to perform.
type QueryType string

// Available query types.
const (
	// QueryText searches by a natural-language description.
	QueryText QueryType = "text"

	// QueryImage searches by example image.
	QueryImage QueryType = "image"

	// QueryTemporal searches for a sequence of scenes, one per sentence.
	QueryTemporal QueryType = "temporal"

	// QueryScroll browses frames by filters only.
	QueryScroll QueryType = "scroll"
)

// IsValid returns true if the query type is recognised.
func (q QueryType) IsValid() bool {
	switch q {
	case QueryText, QueryImage, QueryTemporal, QueryScroll:
		return true
	default:
		return false
	}
}

// IsSelectable reports whether the type can be picked directly in the query form.
// Temporal and scroll are derived by routing.
func (q QueryType) IsSelectable() bool {
	return q == QueryText || q == QueryImage
}

// String returns the string representation.
func (q QueryType) String() string {
	return string(q)
}

// SearchRequest is a query as submitted by the user, before routing.
type SearchRequest struct {
	// Query is the free text. May be empty for scroll searches.
	Query string

	// Type is the selected query type.
	Type QueryType

	// Model is the selected model, possibly temporal-prefixed.
	Model Model

	// ImagePath is a data: URI or an image URL for image queries.
	ImagePath string

	// Filters narrows the search.
	Filters Filters

	// Settings carries k and the return flags.
	Settings SearchSettings

	// AutoTranslate translates a non-empty text query to English before routing.
	AutoTranslate bool
}

// RoutedQuery is the outcome of routing: everything needed to dispatch.
type RoutedQuery struct {
	// Endpoint is the hub path, e.g. "hub/siglip_v2_text_search".
	Endpoint string

	// Type is the effective query type after routing rules.
	Type QueryType

	// Model is the effective model after routing rules.
	Model Model

	// Form holds the multipart form fields.
	Form map[string]string
}
