package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/voicehire/interview-api/internal/domain"
)

// OllamaClient implements domain.LLMBackend against an Ollama server's
// /api/generate endpoint. The system prompt and user prompt are flattened
// into a single completion prompt; the server keeps no state between calls.
type OllamaClient struct {
	baseURL string
	model   string
	http    *http.Client
}

func NewOllamaClient(baseURL, model string) *OllamaClient {
	return &OllamaClient{
		baseURL: baseURL,
		model:   model,
		// Per-call deadlines come from the caller's context.
		http: &http.Client{},
	}
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

// Generate implements domain.LLMBackend. Transport errors, non-2xx statuses
// and empty completions all surface as domain.ErrBackendUnavailable.
func (c *OllamaClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	body, err := json.Marshal(ollamaRequest{
		Model:  c.model,
		Prompt: fmt.Sprintf("%s\n\nUser: %s\nAI:", systemPrompt, userPrompt),
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("encode ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: ollama returned status %d", domain.ErrBackendUnavailable, res.StatusCode)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read ollama response: %v", domain.ErrBackendUnavailable, err)
	}

	var out ollamaResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("%w: decode ollama response: %v", domain.ErrBackendUnavailable, err)
	}
	if out.Response == "" {
		return "", fmt.Errorf("%w: ollama returned empty completion", domain.ErrBackendUnavailable)
	}

	return out.Response, nil
}
