package pipeline

import (
	"context"
	"strings"

	"github.com/custodia-labs/vitae/internal/core/ports/driven"
	"github.com/custodia-labs/vitae/internal/logger"
)

// Embed returns the embedding of text, or nil when the embedder is missing
// or fails. It never returns an error: a failed embedding only means the
// document cannot rank. label identifies the text in logs (a document ID or
// "query"); the text body itself is never logged.
func Embed(ctx context.Context, embedder driven.Embedder, label, text string) []float32 {
	if strings.TrimSpace(text) == "" {
		logger.Debug("Skipping embedding for %s: no text", label)
		return nil
	}
	if embedder == nil {
		logger.Error("embedding %s (%d chars): no embedding service configured", label, len(text))
		return nil
	}

	vec, err := embedder.Embed(ctx, text)
	if err != nil {
		logger.Error("embedding %s (%d chars) failed: %v", label, len(text), err)
		return nil
	}
	if len(vec) == 0 {
		logger.Warn("Embedding %s (%d chars) returned an empty vector", label, len(text))
		return nil
	}
	return vec
}
