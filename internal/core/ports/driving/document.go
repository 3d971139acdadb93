package driving

import (
	"context"

	"github.com/custodia-labs/vitae/internal/core/domain"
)

// UploadRequest describes a file handed to the store.
type UploadRequest struct {
	// Path is the file to read. Ignored when Content is set.
	Path string

	// Content is the file body. Optional.
	Content []byte

	// MIMEType overrides detection from the file extension. Optional.
	MIMEType string

	// Type is the document type to store it as.
	Type domain.DocumentType

	// GroupID attaches the document to an existing generation set. Optional.
	GroupID string
}

// CreateRequest describes a document built from text rather than a file.
type CreateRequest struct {
	Type              domain.DocumentType
	RawContent        string
	StructuredContent string
	GroupID           string
}

// DocumentService manages stored career documents.
type DocumentService interface {
	// Upload extracts text from a file and stores it as a new document.
	Upload(ctx context.Context, req UploadRequest) (*domain.Document, error)

	// Create stores a new document from text.
	Create(ctx context.Context, req CreateRequest) (*domain.Document, error)

	// Get retrieves a document by ID, or nil when absent.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// ListByType returns documents of a type, newest first.
	ListByType(ctx context.Context, docType domain.DocumentType) ([]domain.Document, error)

	// LatestResume returns the text of the newest résumé.
	LatestResume(ctx context.Context) (string, bool, error)

	// Group returns a generation set ordered by type.
	Group(ctx context.Context, groupID string) ([]domain.Document, error)

	// Groups returns all group IDs.
	Groups(ctx context.Context) ([]string, error)

	// Delete removes a document permanently.
	Delete(ctx context.Context, id string) (bool, error)
}
