package search

import "errors"

// Error definitions for the search view.
var (
	// ErrNoSearchService indicates that no search service was provided.
	ErrNoSearchService = errors.New("search service is required")

	// ErrUnknownCommand is returned for command lines with an unrecognised verb.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrBadTime is returned for filter times not written as mm:ss or hh:mm:ss.
	ErrBadTime = errors.New("time must be mm:ss or hh:mm:ss")
)
