package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DocumentType identifies the kind of career artifact a Document holds.
type DocumentType string

// Available document types. The declaration order is the order of
// documents within a generation set.
const (
	// DocumentTypeResume is a résumé / CV.
	DocumentTypeResume DocumentType = "RESUME"

	// DocumentTypeCoverLetter is a motivation or cover letter.
	DocumentTypeCoverLetter DocumentType = "COVER_LETTER"

	// DocumentTypeJobDescription is a job posting.
	DocumentTypeJobDescription DocumentType = "JOB_DESCRIPTION"

	// DocumentTypeReferenceLetter is a letter of reference.
	DocumentTypeReferenceLetter DocumentType = "REFERENCE_LETTER"

	// DocumentTypeCertification is a certificate or diploma.
	DocumentTypeCertification DocumentType = "CERTIFICATION"

	// DocumentTypeOther covers derived reports (e.g. a skills gap report).
	DocumentTypeOther DocumentType = "OTHER"
)

// AllDocumentTypes returns every document type in generation-set order.
func AllDocumentTypes() []DocumentType {
	return []DocumentType{
		DocumentTypeResume,
		DocumentTypeCoverLetter,
		DocumentTypeJobDescription,
		DocumentTypeReferenceLetter,
		DocumentTypeCertification,
		DocumentTypeOther,
	}
}

// IsValid returns true if the document type is recognised.
func (t DocumentType) IsValid() bool {
	return t.Rank() >= 0
}

// Rank returns the position of the type within a generation set,
// or -1 for unknown types.
func (t DocumentType) Rank() int {
	for i, known := range AllDocumentTypes() {
		if t == known {
			return i
		}
	}
	return -1
}

// String returns the string representation.
func (t DocumentType) String() string {
	return string(t)
}

// Description returns a human-readable description of the type.
func (t DocumentType) Description() string {
	switch t {
	case DocumentTypeResume:
		return "Résumé"
	case DocumentTypeCoverLetter:
		return "Cover letter"
	case DocumentTypeJobDescription:
		return "Job description"
	case DocumentTypeReferenceLetter:
		return "Reference letter"
	case DocumentTypeCertification:
		return "Certification"
	case DocumentTypeOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// ParseDocumentType converts user input such as "resume", "cover-letter" or
// "JOB_DESCRIPTION" into a DocumentType.
func ParseDocumentType(s string) (DocumentType, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	t := DocumentType(norm)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDocumentType, s)
	}
	return t, nil
}

// Document is the unit of storage: one career artifact with its text,
// timestamp, optional generation group and optional embedding.
type Document struct {
	// ID is the unique identifier for the document. Immutable.
	ID string `json:"id"`

	// Type is the artifact kind. Immutable.
	Type DocumentType `json:"type"`

	// RawContent is the original extracted text, before normalisation.
	RawContent string `json:"raw_content,omitempty"`

	// StructuredContent is the canonical text used for display and embedding.
	StructuredContent string `json:"structured_content,omitempty"`

	// UploadedAt is when the document was created. Set once.
	UploadedAt time.Time `json:"uploaded_at"`

	// GroupID links the documents produced by one workflow run.
	// Empty means ungrouped.
	GroupID string `json:"group_id,omitempty"`

	// Embedding is the vector representation of Text().
	// Nil means not yet embedded.
	Embedding []float32 `json:"embedding,omitempty"`
}

// Validate reports programming errors in a document handed to a store.
func (d *Document) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: nil document", ErrInvalidInput)
	}
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("%w: document id is required", ErrInvalidInput)
	}
	if !d.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDocumentType, d.Type)
	}
	if d.UploadedAt.IsZero() {
		return fmt.Errorf("%w: document %s has no upload time", ErrInvalidInput, d.ID)
	}
	return nil
}

// Text returns the text used for comparison: the structured content,
// falling back to the raw content.
func (d *Document) Text() string {
	if strings.TrimSpace(d.StructuredContent) != "" {
		return d.StructuredContent
	}
	return d.RawContent
}

// HasText reports whether the document has anything to embed.
func (d *Document) HasText() bool {
	return strings.TrimSpace(d.Text()) != ""
}

// HasEmbedding reports whether an embedding has been computed.
func (d *Document) HasEmbedding() bool {
	return len(d.Embedding) > 0
}

// ClearEmbedding drops the embedding so the next save recomputes it.
func (d *Document) ClearEmbedding() {
	d.Embedding = nil
}

// SortGenerationSet orders a generation set by type rank, keeping the
// relative order of documents with the same type.
func SortGenerationSet(docs []Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Type.Rank() < docs[j].Type.Rank()
	})
}
