// Package domain defines the core entities for framescope.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - FrameRecord: One keyframe hit returned by the hub
//   - ResultSet: A tagged flat or temporal result collection
//   - SearchRequest / RoutedQuery: A query before and after routing
//   - SearchContext: An immutable history snapshot of one search
//   - ExcludedFrame: A frame the user asked the hub to skip
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
