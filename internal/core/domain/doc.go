// Package domain defines the core business entities for snapfind.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A report stored in the full-text index, keyed by path
//   - SearchHit: A ranked match with a human-readable snippet
//   - Image: The picture a search query is composed from
//   - IndexReport: The outcome of one indexing pass
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
