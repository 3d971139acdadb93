package pipeline

import (
	"context"
	"math"
	"sort"

	"github.com/custodia-labs/vitae/internal/core/domain"
	"github.com/custodia-labs/vitae/internal/core/ports/driven"
)

// Predict returns the k documents most similar to query. See Rank.
func Predict(
	ctx context.Context, embedder driven.Embedder, query string, vectors Matrix, docs []domain.Document, k int,
) []domain.Document {
	ranked := Rank(ctx, embedder, query, vectors, docs, k)
	out := make([]domain.Document, len(ranked))
	for i := range ranked {
		out[i] = ranked[i].Document
	}
	return out
}

// Rank embeds query, L2-normalises it and every row of vectors, and scores
// each document by the dot product of the normalised vectors. The k best
// documents are returned highest score first; equal scores keep input order.
//
// k is clamped to [0, len(docs)]. Rows that are empty, zero-norm or of a
// different dimension than the query score 0, as does everything when the
// query itself cannot be embedded.
func Rank(
	ctx context.Context, embedder driven.Embedder, query string, vectors Matrix, docs []domain.Document, k int,
) []domain.RankedDocument {
	k = clampK(k, len(docs))
	if k == 0 {
		return []domain.RankedDocument{}
	}

	q := l2Normalise(Embed(ctx, embedder, "query", query))

	ranked := make([]domain.RankedDocument, len(docs))
	for i := range docs {
		var row []float32
		if i < len(vectors) {
			row = vectors[i]
		}
		ranked[i] = domain.RankedDocument{
			Document: docs[i],
			Score:    dot(q, l2Normalise(row)),
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked[:k]
}

// CosineSimilarity computes the cosine of the angle between a and b.
// Returns 0 for empty, zero-norm or mismatched vectors.
func CosineSimilarity(a, b []float32) float64 {
	return dot(l2Normalise(a), l2Normalise(b))
}

func clampK(k, n int) int {
	if k < 0 {
		return 0
	}
	if k > n {
		return n
	}
	return k
}

// l2Normalise returns v scaled to unit length, or nil when v has no length.
func l2Normalise(v []float32) []float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	norm := math.Sqrt(sum)
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return nil
	}

	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x) / norm
	}
	return out
}

func dot(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
