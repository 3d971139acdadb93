package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// Store lookups report absence with nil values instead; this error is
	// reserved for services that must turn absence into a failure.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidDocumentType indicates a type outside the DocumentType enumeration.
	ErrInvalidDocumentType = errors.New("invalid document type")

	// ErrMissingContent indicates a document carries neither raw nor structured text.
	ErrMissingContent = errors.New("document has no content")

	// ErrUnsupportedType indicates no normaliser handles the given MIME type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrNoResume indicates there is no stored résumé to work with.
	ErrNoResume = errors.New("no resume stored")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrGeneratorUnavailable indicates the text generation service is not configured.
	// Tailoring is disabled without it.
	ErrGeneratorUnavailable = errors.New("text generator unavailable")

	// ErrSnapshotNotFound indicates no snapshot has been written yet.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)
