package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"prepos_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerator_NoKey(t *testing.T) {
	gen, err := NewGenerator(context.Background(), config.AIConfig{Provider: "gemini"}, nil)
	require.NoError(t, err)
	assert.Nil(t, gen)
}

func TestNewGenerator_UnknownProvider(t *testing.T) {
	_, err := NewGenerator(context.Background(), config.AIConfig{Provider: "llama", APIKey: "k"}, nil)
	assert.Error(t, err)
}

func TestGeminiGenerator_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/test-model:generateContent" {
			http.Error(w, "unexpected path "+r.URL.Path, http.StatusNotFound)
			return
		}
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "  stay consistent  "}}}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	gen, err := NewGenerator(context.Background(), config.AIConfig{
		Provider: "gemini",
		APIKey:   "test",
		Model:    "test-model",
		BaseURL:  server.URL,
	}, server.Client())
	require.NoError(t, err)
	assert.Equal(t, "gemini", gen.Name())

	text, err := gen.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "stay consistent", text)
}

func TestGeminiGenerator_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":500,"message":"internal","status":"INTERNAL"}}`))
	}))
	defer server.Close()

	gen, err := NewGeminiGenerator(context.Background(), config.AIConfig{
		APIKey:  "test",
		Model:   "test-model",
		BaseURL: server.URL,
	}, server.Client())
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), "prompt")
	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, "gemini", providerErr.Provider)
}

func TestOpenAIGenerator_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-test", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, "plan my week", req.Messages[1].Content)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"plan\":\"x\"}"}}]}`))
	}))
	defer server.Close()

	gen, err := NewGenerator(context.Background(), config.AIConfig{
		Provider: "openai",
		APIKey:   "secret",
		Model:    "gpt-test",
		BaseURL:  server.URL + "/",
	}, server.Client())
	require.NoError(t, err)

	text, err := gen.Generate(context.Background(), "plan my week")
	require.NoError(t, err)
	assert.Equal(t, `{"plan":"x"}`, text)
}

func TestOpenAIGenerator_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer bad":
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"message":"invalid key"}}`))
		default:
			w.Write([]byte(`{"choices":[]}`))
		}
	}))
	defer server.Close()

	bad := NewOpenAIGenerator(config.AIConfig{APIKey: "bad", BaseURL: server.URL}, server.Client())
	_, err := bad.Generate(context.Background(), "x")
	assert.ErrorContains(t, err, "status 401")

	empty := NewOpenAIGenerator(config.AIConfig{APIKey: "ok", BaseURL: server.URL}, server.Client())
	_, err = empty.Generate(context.Background(), "x")
	assert.ErrorContains(t, err, "no choices")
}
