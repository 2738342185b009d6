package llm

import (
	"context"
	"fmt"
	"strings"
)

// MockLLM is a canned backend for tests and local development. It answers
// interview prompts with a fixed follow-up question and evaluation prompts
// with a small valid JSON object, so the whole lifecycle works offline.
type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if strings.Contains(userPrompt, "Evaluate the following interview transcript") {
		return `{"rating": 7, "strengths": ["Clear communication"], "weaknesses": ["Few concrete examples"],` +
			` "suggestions": ["Quantify your impact"], "recommended_roles": ["Backend Engineer"]}`, nil
	}
	return fmt.Sprintf("I see. You mentioned %q. Could you tell me more about the technical challenges involved?", userPrompt), nil
}
