// Package cache provides an in-memory LRU decorator for embedding services.
package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/custodia-labs/vitae/internal/core/ports/driven"
	"github.com/custodia-labs/vitae/internal/logger"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// EmbeddingService caches the embeddings of another service, keyed by model
// and text hash. Entries expire after the configured TTL.
type EmbeddingService struct {
	next  driven.EmbeddingService
	cache *expirable.LRU[string, []float32]
}

// Wrap returns next with an LRU cache in front of it.
// next is returned unchanged when size or ttl is not positive.
func Wrap(next driven.EmbeddingService, size int, ttl time.Duration) driven.EmbeddingService {
	if next == nil || size <= 0 || ttl <= 0 {
		return next
	}
	return &EmbeddingService{
		next:  next,
		cache: expirable.NewLRU[string, []float32](size, nil, ttl),
	}
}

// Embed returns a cached embedding or computes and stores a new one.
// Errors are not cached.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	key := s.key(text)
	if cached, ok := s.cache.Get(key); ok {
		logger.Debug("Embedding cache hit (%d chars)", len(text))
		return clone(cached), nil
	}

	vec, err := s.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(vec) > 0 {
		s.cache.Add(key, clone(vec))
	}
	return vec, nil
}

// Len returns the number of cached embeddings.
func (s *EmbeddingService) Len() int {
	return s.cache.Len()
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.next.Dimensions()
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return s.next.ModelName()
}

// Ping checks the wrapped service.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

// Close purges the cache and closes the wrapped service.
func (s *EmbeddingService) Close() error {
	s.cache.Purge()
	return s.next.Close()
}

func (s *EmbeddingService) key(text string) string {
	return s.next.ModelName() + ":" + strconv.FormatUint(xxhash.Sum64String(text), 16)
}

func clone(values []float32) []float32 {
	out := make([]float32, len(values))
	copy(out, values)
	return out
}
