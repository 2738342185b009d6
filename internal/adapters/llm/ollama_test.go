package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicehire/interview-api/internal/domain"
)

func TestOllamaGenerate(t *testing.T) {
	var got ollamaRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "Tell me about your last project."})
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, "llama3")
	reply, err := client.Generate(context.Background(), "You are an interviewer.", "I build APIs.")

	require.NoError(t, err)
	assert.Equal(t, "Tell me about your last project.", reply)
	assert.Equal(t, "llama3", got.Model)
	assert.Equal(t, "You are an interviewer.\n\nUser: I build APIs.\nAI:", got.Prompt)
	assert.False(t, got.Stream)
}

func TestOllamaGenerateNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, "llama3")
	_, err := client.Generate(context.Background(), "sys", "user")

	require.ErrorIs(t, err, domain.ErrBackendUnavailable)
}

func TestOllamaGenerateTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewOllamaClient(srv.URL, "llama3")
	_, err := client.Generate(context.Background(), "sys", "user")

	require.ErrorIs(t, err, domain.ErrBackendUnavailable)
}

func TestOllamaGenerateEmptyCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"response": ""})
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, "llama3")
	_, err := client.Generate(context.Background(), "sys", "user")

	require.ErrorIs(t, err, domain.ErrBackendUnavailable)
}
