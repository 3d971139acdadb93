package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/vitae/internal/adapters/driven/llm"
)

func TestNewTextGenerator_RequiresAPIKey(t *testing.T) {
	_, err := NewTextGenerator(Config{})
	assert.Error(t, err)
}

func TestNewTextGenerator_Defaults(t *testing.T) {
	g, err := NewTextGenerator(Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, g.ModelName())
	assert.NoError(t, g.Close())
}

func TestGenerate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body.Model)
		if assert.Len(t, body.Messages, 2) {
			assert.Equal(t, "system", body.Messages[0].Role)
			assert.Equal(t, llm.SystemPrompt, body.Messages[0].Content)
			assert.Equal(t, "user", body.Messages[1].Role)
			assert.Contains(t, body.Messages[1].Content, "Go engineer")
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "finish_reason": "stop",
				"message": {"role": "assistant", "content": " Dear hiring team "}}]
		}`))
	}))
	defer server.Close()

	g, err := NewTextGenerator(Config{APIKey: "test-key", BaseURL: server.URL + "/v1", MaxRetries: -1})
	require.NoError(t, err)

	text, err := g.Generate(context.Background(), "Go engineer", "Ten years of Go")
	require.NoError(t, err)
	assert.Equal(t, "Dear hiring team", text)
}

func TestGenerate_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "chatcmpl-1", "object": "chat.completion", "choices": []}`))
	}))
	defer server.Close()

	g, err := NewTextGenerator(Config{APIKey: "k", BaseURL: server.URL + "/v1", MaxRetries: -1})
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "jd", "cv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestGenerate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "Incorrect API key", "type": "invalid_request_error"}}`))
	}))
	defer server.Close()

	g, err := NewTextGenerator(Config{APIKey: "bad", BaseURL: server.URL + "/v1", MaxRetries: -1})
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "jd", "cv")
	assert.Error(t, err)
}
