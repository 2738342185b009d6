package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/voicehire/interview-api/internal/domain"
)

// GeminiClient implements domain.LLMBackend on Vertex AI (Gemini) for
// deployments that prefer a managed backend over a local Ollama server.
type GeminiClient struct {
	client    *genai.Client
	modelName string
}

func NewGeminiClient(ctx context.Context, projectID, location, modelName string) (*GeminiClient, error) {
	if projectID == "" || location == "" {
		return nil, fmt.Errorf("gcp project and location are required for the gemini backend")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Vertex AI client: %w", err)
	}

	return &GeminiClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// Generate implements domain.LLMBackend using Vertex AI.
func (g *GeminiClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	temp := float32(0.7)
	topP := float32(0.9)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       &temp,
		TopP:              &topP,
		MaxOutputTokens:   int32(8192),
	}

	contents := []*genai.Content{
		genai.NewContentFromText(userPrompt, genai.RoleUser),
	}

	res, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("%w: vertex generate content: %v", domain.ErrBackendUnavailable, err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("%w: vertex returned empty text", domain.ErrBackendUnavailable)
	}

	return text, nil
}
