// Package domain defines the core business entities for tdsprep.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawDocument: A markdown file or forum post as read from disk
//   - Document: The normalised form of a RawDocument
//   - Chunk: A bounded span of text with metadata, the unit of retrieval
//   - PipelineOptions: The single options structure for a pipeline run
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
