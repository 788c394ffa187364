package mcp

import (
	"github.com/custodia-labs/framescope/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search submits frame and scroll searches.
	Search driving.SearchService

	// History backs the history:// resources.
	History driving.HistoryService

	// Filter supplies the excluded frames sent with every search.
	Filter driving.FilterService

	// Navigator fetches neighbouring frames.
	Navigator driving.NeighborNavigator

	// Settings supplies the default model and query knobs.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Only Search is required; the rest switch individual features on.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
