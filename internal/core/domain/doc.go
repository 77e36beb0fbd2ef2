// Package domain defines the core business entities for titlescan.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawRecord: Loosely-typed search result from the land registry
//   - Document: A normalised recorded instrument
//   - Category: The semantic bucket a Document belongs to
//   - ExtractedData: Fields recovered from an instrument's text
//   - ChainEntry, Match, Flag, Summary: Derived analysis entities
//   - TitlePackage: The complete result of one search
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
