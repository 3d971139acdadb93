package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/vitae/internal/core/domain"
	"github.com/custodia-labs/vitae/internal/core/ports/driven"
	"github.com/custodia-labs/vitae/internal/core/ports/driving"
	"github.com/custodia-labs/vitae/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// NewDocument builds a fully formed document with a fresh ID and the
// current UTC time. It rejects unknown types and documents without text.
func NewDocument(docType domain.DocumentType, rawContent, structuredContent, groupID string) (*domain.Document, error) {
	if !docType.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDocumentType, docType)
	}
	if strings.TrimSpace(rawContent) == "" && strings.TrimSpace(structuredContent) == "" {
		return nil, domain.ErrMissingContent
	}
	return &domain.Document{
		ID:                uuid.New().String(),
		Type:              docType,
		RawContent:        rawContent,
		StructuredContent: structuredContent,
		UploadedAt:        time.Now().UTC(),
		GroupID:           groupID,
	}, nil
}

// NewGroupID mints an identifier for a new generation set.
// Group IDs are never reused across workflow runs.
func NewGroupID() string {
	return uuid.New().String()
}

// DocumentService manages stored career documents.
type DocumentService struct {
	store    driven.DocumentStore
	registry driven.NormaliserRegistry
}

// NewDocumentService creates a new document service.
// registry may be nil, in which case Upload is unavailable.
func NewDocumentService(store driven.DocumentStore, registry driven.NormaliserRegistry) *DocumentService {
	return &DocumentService{
		store:    store,
		registry: registry,
	}
}

// Upload extracts the text of a file and stores it as a new document.
// RawContent holds the extracted text and StructuredContent its trimmed form.
func (s *DocumentService) Upload(ctx context.Context, req driving.UploadRequest) (*domain.Document, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("%w: no normalisers registered", domain.ErrUnsupportedType)
	}
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDocumentType, req.Type)
	}

	content := req.Content
	if content == nil {
		if req.Path == "" {
			return nil, fmt.Errorf("%w: path or content is required", domain.ErrInvalidInput)
		}
		data, err := os.ReadFile(req.Path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", req.Path, err)
		}
		content = data
	}

	text, err := s.registry.Normalise(ctx, &domain.RawDocument{
		URI:      req.Path,
		MIMEType: req.MIMEType,
		Content:  content,
	})
	if err != nil {
		return nil, err
	}

	doc, err := NewDocument(req.Type, text, strings.TrimSpace(text), req.GroupID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", displayName(req.Path), err)
	}
	if _, err := s.store.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("saving document: %w", err)
	}
	logger.Info("Stored %s %s from %s (%d chars)", doc.Type, doc.ID, displayName(req.Path), len(text))
	return doc, nil
}

// Create stores a new document built from text.
func (s *DocumentService) Create(ctx context.Context, req driving.CreateRequest) (*domain.Document, error) {
	doc, err := NewDocument(req.Type, req.RawContent, req.StructuredContent, req.GroupID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("saving document: %w", err)
	}
	return doc, nil
}

// Get retrieves a document by ID, or nil when absent.
func (s *DocumentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	return s.store.GetByID(ctx, id)
}

// ListByType returns documents of a type, newest first.
func (s *DocumentService) ListByType(ctx context.Context, docType domain.DocumentType) ([]domain.Document, error) {
	if !docType.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDocumentType, docType)
	}
	return s.store.GetByType(ctx, docType)
}

// LatestResume returns the text of the newest résumé.
func (s *DocumentService) LatestResume(ctx context.Context) (string, bool, error) {
	return s.store.GetLatestResume(ctx)
}

// Group returns a generation set ordered by type.
func (s *DocumentService) Group(ctx context.Context, groupID string) ([]domain.Document, error) {
	if strings.TrimSpace(groupID) == "" {
		return nil, fmt.Errorf("%w: group id is required", domain.ErrInvalidInput)
	}
	return s.store.GetByGroup(ctx, groupID)
}

// Groups returns all group IDs.
func (s *DocumentService) Groups(ctx context.Context) ([]string, error) {
	return s.store.ListGroupIDs(ctx)
}

// Delete removes a document permanently.
func (s *DocumentService) Delete(ctx context.Context, id string) (bool, error) {
	return s.store.Delete(ctx, id)
}

func displayName(path string) string {
	if path == "" {
		return "content"
	}
	return path
}
