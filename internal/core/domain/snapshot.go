package domain

import "time"

// Snapshot is the fitted retrieval state of one pipeline run: the vector
// matrix and the documents it was built from, aligned by position.
// It is derived data and can always be regenerated from the store.
type Snapshot struct {
	// CreatedAt is when the run finished.
	CreatedAt time.Time `json:"created_at"`

	// Model names the embedding model that produced the vectors.
	Model string `json:"model,omitempty"`

	// Embeddings holds one row per document. Rows may be empty when the
	// embedding of that document failed.
	Embeddings [][]float32 `json:"embeddings"`

	// Documents holds the full documents, so the snapshot can be read
	// without querying the store.
	Documents []Document `json:"documents"`
}

// Len returns the number of documents in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Documents)
}
