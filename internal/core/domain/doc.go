// Package domain defines the core business entities for omnisync.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Article: A saved article fetched from the remote library
//   - Highlight: A highlighted passage within an article
//   - AppSettings: User-editable sync and render configuration
//   - SyncState: The persisted incremental-sync cursor and guard
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
