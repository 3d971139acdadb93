package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/vitae/internal/core/domain"
)

// createTestDOCX creates a minimal DOCX file in memory.
func createTestDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	contentTypes, err := w.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = contentTypes.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`))
	require.NoError(t, err)

	if documentXML != "" {
		doc, err := w.Create("word/document.xml")
		require.NoError(t, err)
		_, err = doc.Write([]byte(documentXML))
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return buf.Bytes()
}

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

func TestSupportedMIMETypes(t *testing.T) {
	mimeTypes := New().SupportedMIMETypes()

	assert.Contains(t, mimeTypes, "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	assert.Len(t, mimeTypes, 1)
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 50, New().Priority())
}

func TestNormalise_NilDocument(t *testing.T) {
	_, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalise_InvalidZip(t *testing.T) {
	_, err := New().Normalise(context.Background(), &domain.RawDocument{Content: []byte("not a zip")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalise_MalformedXML(t *testing.T) {
	content := createTestDOCX(t, `<w:document `+wordNS+`><w:body><w:p>`)

	_, err := New().Normalise(context.Background(), &domain.RawDocument{Content: content})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalise(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "paragraphs",
			body: `<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p><w:p><w:r><w:t>Go engineer</w:t></w:r></w:p>`,
			want: "Jane Doe\nGo engineer",
		},
		{
			name: "multiple runs",
			body: `<w:p><w:r><w:t xml:space="preserve">Senior </w:t></w:r><w:r><w:t>Python</w:t></w:r></w:p>`,
			want: "Senior Python",
		},
		{
			name: "tables and tabs",
			body: `<w:tbl><w:tr><w:tc><w:p><w:r><w:t>2019</w:t><w:tab/><w:t>Acme</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`,
			want: "2019\tAcme",
		},
		{
			name: "empty paragraphs dropped",
			body: `<w:p/><w:p><w:r><w:t>Skills</w:t></w:r></w:p><w:p></w:p>`,
			want: "Skills",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := createTestDOCX(t, `<?xml version="1.0" encoding="UTF-8"?><w:document `+wordNS+`><w:body>`+tt.body+`</w:body></w:document>`)

			got, err := New().Normalise(context.Background(), &domain.RawDocument{Content: content})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalise_MissingDocumentPart(t *testing.T) {
	got, err := New().Normalise(context.Background(), &domain.RawDocument{Content: createTestDOCX(t, "")})
	require.NoError(t, err)
	assert.Empty(t, got)
}
