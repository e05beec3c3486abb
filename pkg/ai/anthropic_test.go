package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnthropicGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-key", r.Header.Get("x-api-key"))
		require.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var payload anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Len(t, payload.Messages, 1)
		require.Equal(t, "user", payload.Messages[0].Role)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content": [{"type": "text", "text": "{\"score\": 7}"}]}`))
	}))
	defer server.Close()

	generator, err := NewAnthropicGenerator(AnthropicConfig{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	result, err := generator.Generate(context.Background(), "Evaluate this answer.")
	require.NoError(t, err)
	require.JSONEq(t, `{"score": 7}`, result)
}

func TestAnthropicGenerateAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"type": "rate_limit_error", "message": "slow down"}}`))
	}))
	defer server.Close()

	generator, err := NewAnthropicGenerator(AnthropicConfig{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = generator.Generate(context.Background(), "prompt")
	require.Error(t, err)
	require.Contains(t, err.Error(), "slow down")
}

func TestAnthropicGenerateNoTextBlocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content": []}`))
	}))
	defer server.Close()

	generator, err := NewAnthropicGenerator(AnthropicConfig{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = generator.Generate(context.Background(), "prompt")
	require.Error(t, err)
}

func TestAnthropicRequiresAPIKey(t *testing.T) {
	_, err := NewAnthropicGenerator(AnthropicConfig{})
	require.Error(t, err)
}
