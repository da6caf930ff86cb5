// Package domain defines the core types for pdfdesk.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ImageRef: An image file found by the enumerator
//   - PageSize / Placement: The page-fit computation
//   - Result: The typed outcome of one operation
//   - Session: The selection state of the interactive shell
//   - HistoryEntry: A persisted record of a Result
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
