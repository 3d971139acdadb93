package pipeline

import (
	"context"

	"github.com/custodia-labs/vitae/internal/core/domain"
	"github.com/custodia-labs/vitae/internal/core/ports/driven"
	"github.com/custodia-labs/vitae/internal/logger"
)

// Matrix holds one embedding per row. Rows may be empty when the embedding
// of the corresponding document failed.
type Matrix [][]float32

// Ingest embeds each document's text with one Embedder call per document.
// The returned matrix is aligned with the returned documents: vectors[i]
// is derived from docs[i]. Documents whose embedding fails keep an empty row.
func Ingest(ctx context.Context, embedder driven.Embedder, docs []domain.Document) (Matrix, []domain.Document) {
	vectors := make(Matrix, len(docs))
	failed := 0
	for i := range docs {
		vectors[i] = Embed(ctx, embedder, docs[i].ID, docs[i].Text())
		if len(vectors[i]) == 0 {
			failed++
		}
	}
	logger.Debug("Ingested %d documents (%d without embedding)", len(docs), failed)
	return vectors, docs
}
