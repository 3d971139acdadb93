package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/vitae/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/vitae/internal/core/domain"
	"github.com/custodia-labs/vitae/internal/core/ports/driving"
	"github.com/custodia-labs/vitae/internal/normalisers"
)

func newDocumentService(t *testing.T) (*DocumentService, *memory.DocumentStore, *vocabEmbedder) {
	t.Helper()
	embedder := &vocabEmbedder{}
	store := memory.NewDocumentStore(embedder)
	return NewDocumentService(store, normalisers.DefaultRegistry()), store, embedder
}

func TestNewDocument(t *testing.T) {
	before := time.Now().UTC()

	doc, err := NewDocument(domain.DocumentTypeResume, "raw", "structured", "g1")
	require.NoError(t, err)

	_, err = uuid.Parse(doc.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.DocumentTypeResume, doc.Type)
	assert.Equal(t, "raw", doc.RawContent)
	assert.Equal(t, "structured", doc.StructuredContent)
	assert.Equal(t, "g1", doc.GroupID)
	assert.Equal(t, time.UTC, doc.UploadedAt.Location())
	assert.False(t, doc.UploadedAt.Before(before))
	assert.Nil(t, doc.Embedding)
	assert.NoError(t, doc.Validate())
}

func TestNewDocument_Errors(t *testing.T) {
	_, err := NewDocument("PORTFOLIO", "text", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidDocumentType)

	_, err = NewDocument(domain.DocumentTypeResume, "  ", "\n", "")
	assert.ErrorIs(t, err, domain.ErrMissingContent)
}

func TestNewGroupID_IsFresh(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewGroupID()
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestDocumentService_Create(t *testing.T) {
	svc, store, embedder := newDocumentService(t)
	ctx := context.Background()

	doc := createDoc(t, svc, domain.DocumentTypeResume, "Python developer", "")

	assert.Equal(t, 1, embedder.calls)
	stored, err := store.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Python developer", stored.StructuredContent)
	assert.NotEmpty(t, stored.Embedding)
}

func TestDocumentService_Create_RejectsInvalid(t *testing.T) {
	svc, _, _ := newDocumentService(t)

	_, err := svc.Create(context.Background(), driving.CreateRequest{Type: "CV", StructuredContent: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidDocumentType)

	_, err = svc.Create(context.Background(), driving.CreateRequest{Type: domain.DocumentTypeResume})
	assert.ErrorIs(t, err, domain.ErrMissingContent)
}

func TestDocumentService_Upload_FromPath(t *testing.T) {
	svc, _, _ := newDocumentService(t)
	path := filepath.Join(t.TempDir(), "cv.md")
	require.NoError(t, os.WriteFile(path, []byte("# Jane Doe\n\n**Python** developer\n"), 0o600))

	doc, err := svc.Upload(context.Background(), driving.UploadRequest{
		Path: path,
		Type: domain.DocumentTypeResume,
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe\nPython developer", doc.RawContent)
	assert.Equal(t, "Jane Doe\nPython developer", doc.StructuredContent)
	assert.NotEmpty(t, doc.Embedding)
}

func TestDocumentService_Upload_FromContent(t *testing.T) {
	svc, _, _ := newDocumentService(t)

	doc, err := svc.Upload(context.Background(), driving.UploadRequest{
		Content:  []byte("<p>Senior Java developer</p>"),
		MIMEType: "text/html",
		Type:     domain.DocumentTypeJobDescription,
		GroupID:  "g7",
	})
	require.NoError(t, err)

	assert.Equal(t, "Senior Java developer", doc.StructuredContent)
	assert.Equal(t, "g7", doc.GroupID)
}

func TestDocumentService_Upload_Errors(t *testing.T) {
	svc, _, _ := newDocumentService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     driving.UploadRequest
		wantErr error
	}{
		{"invalid type", driving.UploadRequest{Content: []byte("x"), Type: "CV"}, domain.ErrInvalidDocumentType},
		{"no input", driving.UploadRequest{Type: domain.DocumentTypeResume}, domain.ErrInvalidInput},
		{"unsupported", driving.UploadRequest{Content: []byte{0x89}, MIMEType: "image/png", Type: domain.DocumentTypeResume}, domain.ErrUnsupportedType},
		{"empty text", driving.UploadRequest{Content: []byte("   "), MIMEType: "text/plain", Type: domain.DocumentTypeResume}, domain.ErrMissingContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upload(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := svc.Upload(ctx, driving.UploadRequest{
			Path: filepath.Join(t.TempDir(), "missing.txt"),
			Type: domain.DocumentTypeResume,
		})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("no registry", func(t *testing.T) {
		bare := NewDocumentService(memory.NewDocumentStore(nil), nil)
		_, err := bare.Upload(ctx, driving.UploadRequest{Content: []byte("x"), Type: domain.DocumentTypeResume})
		assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	})
}

func TestDocumentService_Queries(t *testing.T) {
	svc, _, _ := newDocumentService(t)
	ctx := context.Background()

	text, found, err := svc.LatestResume(ctx)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, text)

	first := createDoc(t, svc, domain.DocumentTypeResume, "first résumé", "")
	second := createDoc(t, svc, domain.DocumentTypeResume, "second résumé", "")
	createDoc(t, svc, domain.DocumentTypeCoverLetter, "letter", "")

	resumes, err := svc.ListByType(ctx, domain.DocumentTypeResume)
	require.NoError(t, err)
	require.Len(t, resumes, 2)
	assert.Equal(t, second.ID, resumes[0].ID)
	assert.Equal(t, first.ID, resumes[1].ID)

	text, found, err = svc.LatestResume(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "second résumé", text)

	_, err = svc.ListByType(ctx, "CV")
	assert.ErrorIs(t, err, domain.ErrInvalidDocumentType)

	got, err := svc.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	missing, err := svc.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDocumentService_Groups(t *testing.T) {
	svc, _, _ := newDocumentService(t)
	ctx := context.Background()

	createDoc(t, svc, domain.DocumentTypeJobDescription, "Job", "g1")
	createDoc(t, svc, domain.DocumentTypeCoverLetter, "Letter", "g1")
	createDoc(t, svc, domain.DocumentTypeResume, "CV", "g1")
	createDoc(t, svc, domain.DocumentTypeResume, "Ungrouped", "")

	group, err := svc.Group(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, group, 3)
	assert.Equal(t, domain.DocumentTypeResume, group[0].Type)
	assert.Equal(t, domain.DocumentTypeCoverLetter, group[1].Type)
	assert.Equal(t, domain.DocumentTypeJobDescription, group[2].Type)

	ids, err := svc.Groups(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"g1"}, ids)

	_, err = svc.Group(ctx, " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentService_Delete(t *testing.T) {
	svc, _, _ := newDocumentService(t)
	ctx := context.Background()
	doc := createDoc(t, svc, domain.DocumentTypeResume, "CV", "")

	deleted, err := svc.Delete(ctx, doc.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(ctx, doc.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
