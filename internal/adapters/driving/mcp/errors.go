// Package mcp provides an MCP (Model Context Protocol) server adapter for framescope.
// It lets AI assistants search the keyframe hub and read the search history.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrNavigatorUnavailable is returned by the neighbors tool without a navigator.
var ErrNavigatorUnavailable = errors.New("mcp: neighbour navigator is not configured")
