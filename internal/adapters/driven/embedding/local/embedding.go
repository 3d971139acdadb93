// Package local provides an offline embedding service based on feature hashing.
//
// Each term of the text is hashed with xxhash into one of a fixed number of
// buckets, giving a bag-of-words vector without a vocabulary or a model
// download. Texts that share terms get a high cosine similarity; synonyms do
// not. It is the default provider so that recommendations work out of the box.
package local

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"

	"github.com/custodia-labs/vitae/internal/core/pipeline"
	"github.com/custodia-labs/vitae/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultDimensions = 512
	ModelName         = "hashing-bow"
)

// stopWords are dropped before hashing.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "by": {},
	"for": {}, "from": {}, "in": {}, "is": {}, "it": {}, "of": {}, "on": {}, "or": {},
	"our": {}, "that": {}, "the": {}, "this": {}, "to": {}, "we": {}, "with": {},
	"you": {}, "your": {},
}

// Config holds configuration for the local embedding service.
type Config struct {
	// Dimensions is the number of hash buckets (default: 512).
	Dimensions int
}

// EmbeddingService generates feature-hashed bag-of-words embeddings.
type EmbeddingService struct {
	dimensions int
}

// NewEmbeddingService creates a new local embedding service.
func NewEmbeddingService(cfg Config) *EmbeddingService {
	if cfg.Dimensions <= 0 {
		cfg.Dimensions = DefaultDimensions
	}
	return &EmbeddingService{dimensions: cfg.Dimensions}
}

// Embed returns the L2-normalised term-frequency vector of text.
// Term counts are damped with 1+log(tf) so one repeated word cannot dominate.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	terms := Tokenize(text)
	if len(terms) == 0 {
		return nil, fmt.Errorf("local: no terms to embed")
	}

	counts := make(map[int]float64, len(terms))
	for _, term := range terms {
		counts[int(xxhash.Sum64String(term)%uint64(s.dimensions))]++
	}

	vec := make([]float32, s.dimensions)
	var norm float64
	for idx, tf := range counts {
		w := 1 + math.Log(tf)
		vec[idx] = float32(w)
		norm += w * w
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec, nil
}

// Tokenize case-folds text and splits it into terms of letters and digits,
// dropping stop words and single characters.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(pipeline.NormaliseText(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})

	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) < 2 {
			continue
		}
		if _, stop := stopWords[f]; stop {
			continue
		}
		terms = append(terms, f)
	}
	return terms
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return ModelName
}

// Ping always succeeds; there is nothing to reach.
func (s *EmbeddingService) Ping(_ context.Context) error {
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}
