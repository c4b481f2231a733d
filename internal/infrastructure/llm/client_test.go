package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainllm "github.com/janhq/mirror-server/internal/domain/llm"
)

func TestCompleteSendsSystemAndPrompt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gemini-2.5-flash", req.Model)
		if assert.Len(t, req.Messages, 2) {
			assert.Equal(t, "system", req.Messages[0].Role)
			assert.Equal(t, "be kind", req.Messages[0].Content)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "cmpl-1",
			"object":  "chat.completion",
			"choices": []map[string]any{{"index": 0, "message": map[string]any{"role": "assistant", "content": "  breathe  "}}},
		})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Model: "gemini-2.5-flash", Timeout: time.Second}, zerolog.Nop())
	out, err := client.Complete(context.Background(), domainllm.Request{System: "be kind", Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "breathe", out)
}

func TestCompleteRejectsEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cmpl-2","object":"chat.completion","choices":[]}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Model: "m"}, zerolog.Nop())
	_, err := client.Complete(context.Background(), domainllm.Request{Prompt: "hi"})
	assert.ErrorIs(t, err, domainllm.ErrEmptyCompletion)
}
