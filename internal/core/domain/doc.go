// Package domain defines the core business entities for legalchunk.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A classified legal document ready for chunking
//   - Chunk: A retrieval unit carved out of a document
//   - Classification: The detected document type and its adaptive parameters
//   - ChunkingResult: The wire-level result handed back to callers
//   - RunSummary: A statistics-only record of one chunking call
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
