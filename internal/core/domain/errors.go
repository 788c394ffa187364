package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Routing Errors.

	// ErrNoRoute indicates there is no endpoint for the (model, query type) pair.
	// The query is never dispatched.
	ErrNoRoute = errors.New("no endpoint for model and query type")

	// ErrImageRequired indicates an image query was submitted without an image.
	ErrImageRequired = errors.New("please select an image first")

	// ErrInvalidFPS indicates a frame could not be converted to a timestamp.
	ErrInvalidFPS = errors.New("frame has no usable fps")

	// Result Errors.

	// ErrUnrecognizedShape indicates the hub payload matched no known result shape.
	// It is logged and rendered as "no results", never surfaced as a failure.
	ErrUnrecognizedShape = errors.New("unrecognized result shape")

	// ErrNoResults indicates an operation needs a non-empty result set.
	ErrNoResults = errors.New("no results to operate on")

	// ErrStaleResponse indicates a response arrived for a superseded request.
	ErrStaleResponse = errors.New("stale response discarded")

	// Collaborator Errors.

	// ErrTranslation indicates automatic query translation failed.
	// The search is aborted before dispatch.
	ErrTranslation = errors.New("translation failed")

	// ErrHubUnavailable indicates the hub backend is not configured.
	ErrHubUnavailable = errors.New("hub backend unavailable")

	// ErrBusy indicates another blocking operation is already running.
	ErrBusy = errors.New("another operation is in progress")
)
