// Package domain defines the core business entities for vitae.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: a stored career artifact (résumé, letter, job posting, report)
//   - DocumentType: the closed set of artifact kinds
//   - Snapshot: the vectors and documents of one retrieval run
//   - Evaluation: precision, recall and F1 of a recommendation
//   - RawDocument: opaque bytes before text extraction
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
