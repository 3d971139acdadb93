package driven

import "context"

// Embedder is the single capability the retrieval pipeline needs:
// turning text into a fixed-length vector. The pipeline never inspects
// which backend sits behind it.
type Embedder interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)
}

// EmbeddingService is an Embedder with lifecycle management.
//
// Implementations may include:
//   - Local feature hashing (offline, deterministic)
//   - Ollama (nomic-embed-text, all-minilm)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
type EmbeddingService interface {
	Embedder

	// Dimensions returns the embedding vector size (e.g., 384, 768, 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
