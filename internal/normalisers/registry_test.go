package normalisers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/vitae/internal/core/domain"
)

// stubNormaliser returns a fixed text for one MIME type.
type stubNormaliser struct {
	mimeType string
	priority int
	text     string
	err      error
}

func (s *stubNormaliser) SupportedMIMETypes() []string { return []string{s.mimeType} }
func (s *stubNormaliser) Priority() int                { return s.priority }
func (s *stubNormaliser) Normalise(_ context.Context, _ *domain.RawDocument) (string, error) {
	return s.text, s.err
}

func TestDetectMIMEType(t *testing.T) {
	tests := []struct {
		name string
		raw  domain.RawDocument
		want string
	}{
		{"explicit", domain.RawDocument{MIMEType: "application/pdf", URI: "x.txt"}, "application/pdf"},
		{"parameters stripped", domain.RawDocument{MIMEType: "Text/HTML; charset=utf-8"}, "text/html"},
		{"markdown extension", domain.RawDocument{URI: "/home/me/cv.md"}, "text/markdown"},
		{"upper case extension", domain.RawDocument{URI: "CV.PDF"}, "application/pdf"},
		{"docx extension", domain.RawDocument{URI: "cv.docx"}, "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"unknown extension", domain.RawDocument{URI: "notes.xyz"}, "text/plain"},
		{"no uri", domain.RawDocument{}, "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectMIMEType(&tt.raw))
		})
	}
}

func TestRegistry_PicksHighestPriority(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubNormaliser{mimeType: "text/plain", priority: 5, text: "fallback"})
	r.Register(&stubNormaliser{mimeType: "text/plain", priority: 60, text: "specific"})

	got, err := r.Normalise(context.Background(), &domain.RawDocument{MIMEType: "text/plain"})
	require.NoError(t, err)
	assert.Equal(t, "specific", got)
}

func TestRegistry_Unsupported(t *testing.T) {
	r := NewRegistry()

	_, err := r.Normalise(context.Background(), &domain.RawDocument{MIMEType: "image/png", URI: "photo.png"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestRegistry_WrapsNormaliserError(t *testing.T) {
	boom := errors.New("boom")
	r := NewRegistry()
	r.Register(&stubNormaliser{mimeType: "application/pdf", priority: 50, err: boom})

	_, err := r.Normalise(context.Background(), &domain.RawDocument{URI: "cv.pdf"})
	assert.ErrorIs(t, err, boom)
}

func TestRegistry_NilDocument(t *testing.T) {
	_, err := DefaultRegistry().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	types := r.SupportedMIMETypes()
	assert.Contains(t, types, "text/plain")
	assert.Contains(t, types, "text/markdown")
	assert.Contains(t, types, "text/html")
	assert.Contains(t, types, "application/pdf")
	assert.IsNonDecreasing(t, types)

	tests := []struct {
		name    string
		uri     string
		content string
		want    string
	}{
		{"plain text", "cv.txt", "Python developer\r\n", "Python developer\n"},
		{"markdown", "cv.md", "# Jane\n\n**Java** developer\n", "Jane\nJava developer"},
		{"html", "job.html", "<p>Go &amp; Rust</p>", "Go & Rust"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Normalise(context.Background(), &domain.RawDocument{URI: tt.uri, Content: []byte(tt.content)})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
