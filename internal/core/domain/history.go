package domain

import (
	"fmt"
	"time"
)

// MaxHistory is the number of searches kept per session.
const MaxHistory = 20

// Truncation bounds for history labels.
const (
	labelMaxLen  = 40
	labelHeadLen = 15
	labelTailLen = 20
)

// SearchContext is an immutable snapshot of one completed search.
// Replaying it restores the form and re-renders Results without a network call.
type SearchContext struct {
	// ID uniquely identifies the entry.
	ID string `json:"id"`

	// Timestamp is when the search completed.
	Timestamp time.Time `json:"timestamp"`

	// Query is the submitted text ("" for scroll searches).
	Query string `json:"query"`

	// QueryType is the effective query type after routing.
	QueryType QueryType `json:"queryType"`

	// Model is the model selected in the form (may be temporal-prefixed).
	Model Model `json:"model"`

	// Filters is the flat filter record sent with the query.
	Filters ContextFilters `json:"filters"`

	// Settings are the knobs sent with the query.
	Settings SearchSettings `json:"settings"`

	// Results is the normalised result set as rendered.
	Results ResultSet `json:"results"`
}

// TruncateQuery shortens queries longer than 40 characters to the first 15,
// "...", and the last 20.
func TruncateQuery(query string) string {
	runes := []rune(query)
	if len(runes) <= labelMaxLen {
		return query
	}
	return string(runes[:labelHeadLen]) + "..." + string(runes[len(runes)-labelTailLen:])
}

// Summary returns the descriptive part of the entry's label.
func (c SearchContext) Summary() string {
	if c.QueryType != QueryScroll {
		return TruncateQuery(c.Query)
	}
	video := orDefault(c.Filters.VideoFilter, "unknown video")
	timeIn := orDefault(c.Filters.TimeIn, "?")
	timeOut := orDefault(c.Filters.TimeOut, "?")
	return fmt.Sprintf("[Scroll] %s (%s-%s)", video, timeIn, timeOut)
}

// Label returns the full history entry label: "[time] summary (model)".
func (c SearchContext) Label() string {
	when := "Unknown time"
	if !c.Timestamp.IsZero() {
		when = c.Timestamp.Local().Format(time.TimeOnly)
	}
	model := "Unknown model"
	if c.Model != "" {
		model = c.Model.Display()
	}
	return fmt.Sprintf("[%s] %s (%s)", when, c.Summary(), model)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
