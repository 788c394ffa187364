package tui

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("tui: search service is required")

// ErrMissingHistoryService is returned when the history service is not provided.
var ErrMissingHistoryService = errors.New("tui: history service is required")

// ErrMissingFilterService is returned when the filter service is not provided.
var ErrMissingFilterService = errors.New("tui: filter service is required")

// ErrMissingResultsView is returned when the results view is not provided.
var ErrMissingResultsView = errors.New("tui: results view is required")

// ErrMissingNavigator is returned when the neighbour navigator is not provided.
var ErrMissingNavigator = errors.New("tui: neighbour navigator is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
