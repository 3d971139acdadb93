package driven

import (
	"context"

	"github.com/custodia-labs/vitae/internal/core/domain"
)

// DocumentStore persists career documents.
// Backed by SQLite; it is the single source of truth for all artifacts.
//
// Absence is not an error: lookups that find nothing return nil values
// (or found=false) with a nil error.
type DocumentStore interface {
	// Save upserts a document by ID and returns the ID. When the document
	// has text but no embedding, the embedding is computed before writing.
	Save(ctx context.Context, doc *domain.Document) (string, error)

	// GetByID retrieves a document, or nil when no document has that ID.
	GetByID(ctx context.Context, id string) (*domain.Document, error)

	// GetByType returns all documents of a type, most recently uploaded first.
	GetByType(ctx context.Context, docType domain.DocumentType) ([]domain.Document, error)

	// GetLatestResume returns the text of the most recently uploaded résumé.
	// found is false when no résumé is stored.
	GetLatestResume(ctx context.Context) (text string, found bool, err error)

	// GetByGroup returns the generation set with the given group ID, ordered by type.
	GetByGroup(ctx context.Context, groupID string) ([]domain.Document, error)

	// ListGroupIDs returns every distinct group ID.
	ListGroupIDs(ctx context.Context) ([]string, error)

	// Delete permanently removes a document. Returns false when nothing was removed.
	Delete(ctx context.Context, id string) (bool, error)
}
