package pipeline

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/custodia-labs/vitae/internal/core/domain"
)

// Clean returns copies of docs whose StructuredContent holds the normalised
// comparison text. RawContent is left untouched and the input slice is not
// modified.
func Clean(docs []domain.Document) []domain.Document {
	cleaned := make([]domain.Document, len(docs))
	for i := range docs {
		cleaned[i] = docs[i]
		cleaned[i].StructuredContent = NormaliseText(docs[i].Text())
	}
	return cleaned
}

// NormaliseText case-folds text and collapses every run of whitespace into
// a single space.
func NormaliseText(text string) string {
	folded := cases.Fold().String(text)
	return strings.Join(strings.Fields(folded), " ")
}
