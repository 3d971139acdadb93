package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/vitae/internal/core/domain"
	"github.com/custodia-labs/vitae/internal/core/pipeline"
	"github.com/custodia-labs/vitae/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// It follows the SQLite store's ordering and embedding-on-write rules.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	seq       map[string]int
	next      int
	embedder  driven.Embedder
}

// NewDocumentStore creates a new in-memory document store. embedder may be nil.
func NewDocumentStore(embedder driven.Embedder) *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.Document),
		seq:       make(map[string]int),
		embedder:  embedder,
	}
}

// Save upserts a document, computing a missing embedding first.
func (s *DocumentStore) Save(ctx context.Context, doc *domain.Document) (string, error) {
	if err := doc.Validate(); err != nil {
		return "", err
	}
	if doc.Embedding == nil && doc.HasText() && s.embedder != nil {
		doc.Embedding = pipeline.Embed(ctx, s.embedder, doc.ID, doc.Text())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *doc
	stored.Embedding = append([]float32(nil), doc.Embedding...)
	if len(stored.Embedding) == 0 {
		stored.Embedding = nil
	}
	if existing, ok := s.documents[doc.ID]; ok {
		stored.Type = existing.Type
		stored.UploadedAt = existing.UploadedAt
	} else {
		s.next++
		s.seq[doc.ID] = s.next
	}
	s.documents[doc.ID] = stored
	return doc.ID, nil
}

// GetByID retrieves a document, or nil when absent.
func (s *DocumentStore) GetByID(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

// GetByType returns documents of a type, newest first.
func (s *DocumentStore) GetByType(_ context.Context, docType domain.DocumentType) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.newestFirst(func(d *domain.Document) bool { return d.Type == docType }), nil
}

// GetLatestResume returns the text of the newest résumé.
func (s *DocumentStore) GetLatestResume(_ context.Context) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resumes := s.newestFirst(func(d *domain.Document) bool { return d.Type == domain.DocumentTypeResume })
	if len(resumes) == 0 {
		return "", false, nil
	}
	if strings.TrimSpace(resumes[0].StructuredContent) != "" {
		return resumes[0].StructuredContent, true, nil
	}
	return resumes[0].RawContent, true, nil
}

// GetByGroup returns a generation set ordered by type.
func (s *DocumentStore) GetByGroup(_ context.Context, groupID string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := s.newestFirst(func(d *domain.Document) bool { return d.GroupID == groupID })
	// Oldest first within a type.
	for i, j := 0, len(docs)-1; i < j; i, j = i+1, j-1 {
		docs[i], docs[j] = docs[j], docs[i]
	}
	domain.SortGenerationSet(docs)
	return docs, nil
}

// ListGroupIDs returns every group ID, most recently active group first.
func (s *DocumentStore) ListGroupIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := s.newestFirst(func(d *domain.Document) bool { return d.GroupID != "" })

	seen := make(map[string]bool)
	var ids []string
	for i := range docs {
		if !seen[docs[i].GroupID] {
			seen[docs[i].GroupID] = true
			ids = append(ids, docs[i].GroupID)
		}
	}
	return ids, nil
}

// Delete removes a document.
func (s *DocumentStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return false, nil
	}
	delete(s.documents, id)
	delete(s.seq, id)
	return true, nil
}

// newestFirst returns matching documents by upload time descending, then
// insertion order descending. Caller must hold the lock.
func (s *DocumentStore) newestFirst(match func(*domain.Document) bool) []domain.Document {
	docs := []domain.Document{}
	for _, doc := range s.documents {
		if match(&doc) {
			docs = append(docs, doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].UploadedAt.Equal(docs[j].UploadedAt) {
			return docs[i].UploadedAt.After(docs[j].UploadedAt)
		}
		return s.seq[docs[i].ID] > s.seq[docs[j].ID]
	})
	return docs
}
