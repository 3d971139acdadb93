package pipeline

import (
	"context"
	"strings"
	"unicode"

	"github.com/stretchr/testify/mock"

	"github.com/custodia-labs/vitae/internal/core/domain"
)

// vocabEmbedder is a deterministic bag-of-words embedder over a fixed
// vocabulary. Words outside the vocabulary are ignored.
type vocabEmbedder struct {
	vocab map[string]int
	calls int
}

func newVocabEmbedder(words ...string) *vocabEmbedder {
	vocab := make(map[string]int, len(words))
	for i, w := range words {
		vocab[w] = i
	}
	return &vocabEmbedder{vocab: vocab}
}

func (e *vocabEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.calls++
	vec := make([]float32, len(e.vocab))
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, tok := range tokens {
		if idx, ok := e.vocab[tok]; ok {
			vec[idx]++
		}
	}
	return vec, nil
}

var techVocab = []string{
	"python", "django", "rest", "api", "web", "developer",
	"java", "spring", "boot", "microservices",
}

// mockEmbedder is a testify mock of driven.Embedder.
type mockEmbedder struct {
	mock.Mock
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

func resumeDoc(id, text string) domain.Document {
	return domain.Document{
		ID:                id,
		Type:              domain.DocumentTypeResume,
		RawContent:        text,
		StructuredContent: text,
	}
}
