package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/vitae/internal/core/domain"
	"github.com/custodia-labs/vitae/internal/core/pipeline"
	"github.com/custodia-labs/vitae/internal/core/ports/driven"
	"github.com/custodia-labs/vitae/internal/core/ports/driving"
)

var testVocab = []string{"python", "java", "django", "spring", "developer", "experience", "looking", "for", "a", "with"}

// vocabEmbedder counts vocabulary words, giving predictable cosine scores.
type vocabEmbedder struct {
	calls int
	fail  bool
}

var _ driven.EmbeddingService = (*vocabEmbedder)(nil)

func (e *vocabEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.calls++
	if e.fail {
		return nil, errors.New("embedding backend down")
	}
	vec := make([]float32, len(testVocab))
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,;:!?")
		for i, v := range testVocab {
			if word == v {
				vec[i]++
			}
		}
	}
	return vec, nil
}

func (e *vocabEmbedder) Dimensions() int              { return len(testVocab) }
func (e *vocabEmbedder) ModelName() string            { return "vocab-test" }
func (e *vocabEmbedder) Ping(_ context.Context) error { return nil }
func (e *vocabEmbedder) Close() error                 { return nil }

// mockGenerator is a testify mock of driven.TextGenerator.
type mockGenerator struct {
	mock.Mock
}

var _ driven.TextGenerator = (*mockGenerator)(nil)

func (m *mockGenerator) Generate(ctx context.Context, jobDescription, requirements string) (string, error) {
	args := m.Called(ctx, jobDescription, requirements)
	return args.String(0), args.Error(1)
}

func (m *mockGenerator) ModelName() string            { return "mock-llm" }
func (m *mockGenerator) Ping(_ context.Context) error { return nil }
func (m *mockGenerator) Close() error                 { return nil }

// mockSnapshotStore is a testify mock of driven.SnapshotStore.
type mockSnapshotStore struct {
	mock.Mock
}

var _ driven.SnapshotStore = (*mockSnapshotStore)(nil)

func (m *mockSnapshotStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	return m.Called(ctx, snap).Error(0)
}

func (m *mockSnapshotStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	args := m.Called(ctx)
	snap, _ := args.Get(0).(*domain.Snapshot)
	return snap, args.Error(1)
}

func (m *mockSnapshotStore) Path() string { return "/tmp/mock-snapshot.json" }

// failingTrainer always fails to fit.
type failingTrainer struct{}

func (failingTrainer) Train(_ context.Context, _ pipeline.Matrix) (pipeline.Matrix, error) {
	return nil, errors.New("singular matrix")
}

// createDoc stores a document through the service and fails the test on error.
func createDoc(t *testing.T, svc *DocumentService, docType domain.DocumentType, text, groupID string) *domain.Document {
	t.Helper()
	doc, err := svc.Create(context.Background(), driving.CreateRequest{
		Type:              docType,
		StructuredContent: text,
		GroupID:           groupID,
	})
	require.NoError(t, err)
	return doc
}
