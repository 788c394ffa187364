// Package tui provides an interactive terminal user interface for framescope.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/framescope/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search submits queries, scrolls and reranks.
	Search driving.SearchService

	// History records and replays past searches.
	History driving.HistoryService

	// Filter holds video, transcript, time range and exclusion filters.
	Filter driving.FilterService

	// Results pages and renders the current result set.
	Results driving.ResultsView

	// Navigator drives the neighbour strip of the detail overlay.
	Navigator driving.NeighborNavigator

	// Submission sends the committed frame to the evaluation server.
	Submission driving.SubmissionService

	// Settings reads and updates application settings.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(
	search driving.SearchService,
	history driving.HistoryService,
	filter driving.FilterService,
	results driving.ResultsView,
	navigator driving.NeighborNavigator,
) *Ports {
	return &Ports{
		Search:    search,
		History:   history,
		Filter:    filter,
		Results:   results,
		Navigator: navigator,
	}
}

// Validate ensures all required ports are set.
// Submission and Settings are optional.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.History == nil {
		return ErrMissingHistoryService
	}
	if p.Filter == nil {
		return ErrMissingFilterService
	}
	if p.Results == nil {
		return ErrMissingResultsView
	}
	if p.Navigator == nil {
		return ErrMissingNavigator
	}
	return nil
}
