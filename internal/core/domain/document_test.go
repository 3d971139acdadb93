package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentType_IsValid(t *testing.T) {
	for _, dt := range AllDocumentTypes() {
		assert.True(t, dt.IsValid(), dt)
	}
	assert.False(t, DocumentType("").IsValid())
	assert.False(t, DocumentType("resume").IsValid(), "types are case sensitive")
	assert.False(t, DocumentType("INVOICE").IsValid())
}

func TestDocumentType_Rank(t *testing.T) {
	assert.Equal(t, 0, DocumentTypeResume.Rank())
	assert.Equal(t, 2, DocumentTypeJobDescription.Rank())
	assert.Equal(t, 5, DocumentTypeOther.Rank())
	assert.Equal(t, -1, DocumentType("bogus").Rank())
}

func TestParseDocumentType(t *testing.T) {
	tests := []struct {
		input    string
		expected DocumentType
	}{
		{"resume", DocumentTypeResume},
		{"RESUME", DocumentTypeResume},
		{" cover-letter ", DocumentTypeCoverLetter},
		{"job description", DocumentTypeJobDescription},
		{"reference_letter", DocumentTypeReferenceLetter},
		{"Certification", DocumentTypeCertification},
		{"other", DocumentTypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDocumentType(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseDocumentType_Invalid(t *testing.T) {
	_, err := ParseDocumentType("invoice")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDocumentType)
}

func TestDocumentType_Description(t *testing.T) {
	assert.Equal(t, "Cover letter", DocumentTypeCoverLetter.Description())
	assert.Equal(t, "Unknown", DocumentType("x").Description())
}

func TestDocument_Validate(t *testing.T) {
	now := time.Now()

	valid := &Document{ID: "doc-1", Type: DocumentTypeResume, UploadedAt: now}
	assert.NoError(t, valid.Validate())

	var nilDoc *Document
	assert.ErrorIs(t, nilDoc.Validate(), ErrInvalidInput)

	noID := &Document{Type: DocumentTypeResume, UploadedAt: now}
	assert.ErrorIs(t, noID.Validate(), ErrInvalidInput)

	badType := &Document{ID: "doc-1", Type: "LETTER", UploadedAt: now}
	assert.ErrorIs(t, badType.Validate(), ErrInvalidDocumentType)

	noTime := &Document{ID: "doc-1", Type: DocumentTypeResume}
	assert.ErrorIs(t, noTime.Validate(), ErrInvalidInput)
}

func TestDocument_Text(t *testing.T) {
	doc := Document{RawContent: "Raw  Text", StructuredContent: "raw text"}
	assert.Equal(t, "raw text", doc.Text())

	doc.StructuredContent = "   "
	assert.Equal(t, "Raw  Text", doc.Text())
	assert.True(t, doc.HasText())

	empty := Document{}
	assert.False(t, empty.HasText())
}

func TestDocument_Embedding(t *testing.T) {
	doc := Document{Embedding: []float32{0.1, 0.2}}
	assert.True(t, doc.HasEmbedding())

	doc.ClearEmbedding()
	assert.False(t, doc.HasEmbedding())
	assert.Nil(t, doc.Embedding)
}

func TestSortGenerationSet(t *testing.T) {
	docs := []Document{
		{ID: "report", Type: DocumentTypeOther},
		{ID: "letter", Type: DocumentTypeCoverLetter},
		{ID: "job", Type: DocumentTypeJobDescription},
		{ID: "cv-a", Type: DocumentTypeResume},
		{ID: "cv-b", Type: DocumentTypeResume},
	}

	SortGenerationSet(docs)

	ids := make([]string, len(docs))
	for i := range docs {
		ids[i] = docs[i].ID
	}
	assert.Equal(t, []string{"cv-a", "cv-b", "letter", "job", "report"}, ids)
}

func TestSnapshot_Len(t *testing.T) {
	var nilSnap *Snapshot
	assert.Equal(t, 0, nilSnap.Len())

	snap := &Snapshot{Documents: []Document{{ID: "a"}, {ID: "b"}}}
	assert.Equal(t, 2, snap.Len())
}
