package local

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/vitae/internal/core/pipeline"
)

func TestNewEmbeddingService_Defaults(t *testing.T) {
	svc := NewEmbeddingService(Config{})

	assert.Equal(t, DefaultDimensions, svc.Dimensions())
	assert.Equal(t, "hashing-bow", svc.ModelName())
	assert.NoError(t, svc.Ping(context.Background()))
	assert.NoError(t, svc.Close())
}

func TestTokenize(t *testing.T) {
	assert.Equal(t,
		[]string{"senior", "c++", "developer", "go", "c#"},
		Tokenize("A Senior C++ developer, with Go & C#!"))
	assert.Empty(t, Tokenize("  the a of  "))
}

func TestEmbed_Deterministic(t *testing.T) {
	svc := NewEmbeddingService(Config{Dimensions: 64})
	ctx := context.Background()

	a, err := svc.Embed(ctx, "Python Django REST API")
	require.NoError(t, err)
	b, err := svc.Embed(ctx, "python   django rest api")
	require.NoError(t, err)

	require.Len(t, a, 64)
	assert.Equal(t, a, b)
	assert.InDelta(t, 1.0, pipeline.CosineSimilarity(a, a), 1e-6)
}

func TestEmbed_SharedTermsScoreHigher(t *testing.T) {
	svc := NewEmbeddingService(Config{})
	ctx := context.Background()

	query, err := svc.Embed(ctx, "Looking for a Python developer with web experience")
	require.NoError(t, err)
	python, err := svc.Embed(ctx, "Python developer building Django web applications")
	require.NoError(t, err)
	java, err := svc.Embed(ctx, "Java Spring Boot microservices")
	require.NoError(t, err)

	assert.Greater(t, pipeline.CosineSimilarity(query, python), pipeline.CosineSimilarity(query, java))
}

func TestEmbed_NoTerms(t *testing.T) {
	_, err := NewEmbeddingService(Config{}).Embed(context.Background(), "the and of")
	assert.Error(t, err)
}

func TestEmbed_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEmbeddingService(Config{}).Embed(ctx, "python")
	assert.ErrorIs(t, err, context.Canceled)
}
