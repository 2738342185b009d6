package interview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicehire/interview-api/internal/domain"
)

func TestBuildSystemPromptEmbedsResume(t *testing.T) {
	resume := &domain.ResumeSummary{RawText: "10 years of Go and distributed systems"}

	prompt := BuildSystemPrompt(resume)

	assert.Contains(t, prompt, "10 years of Go and distributed systems")
	assert.Contains(t, prompt, "professional IT HR interviewer")
	assert.Contains(t, prompt, "This concludes our interview. Thank you.")
}

func TestBuildSystemPromptCapsResumeLength(t *testing.T) {
	long := strings.Repeat("x", 5000)

	prompt := BuildSystemPrompt(&domain.ResumeSummary{RawText: long})

	require.NotContains(t, prompt, strings.Repeat("x", maxResumeContextChars+1))
	assert.Contains(t, prompt, strings.Repeat("x", maxResumeContextChars))
}

func TestBuildSystemPromptWithoutResumeText(t *testing.T) {
	assert.Contains(t, BuildSystemPrompt(nil), "General candidate")
	assert.Contains(t, BuildSystemPrompt(&domain.ResumeSummary{RawText: "   "}), "General candidate")
}

func TestBuildGreeting(t *testing.T) {
	g := BuildGreeting("Ada", "Go, Kubernetes")
	assert.Contains(t, g, "Hello Ada.")
	assert.Contains(t, g, "Go, Kubernetes")
	assert.Contains(t, g, "walk me through your most relevant professional experience")

	fallback := BuildGreeting("", "")
	assert.Contains(t, fallback, "Hello there.")
	assert.Contains(t, fallback, "software development")
}

func TestJoinTranscript(t *testing.T) {
	turns := []*domain.Turn{
		{Role: domain.RoleAI, Text: "Tell me about your last project.", Seq: 1},
		{Role: domain.RoleCandidate, Text: "I led a team of 5 engineers.", Seq: 2},
	}

	got := JoinTranscript(turns)

	assert.Equal(t, "AI: Tell me about your last project.\nCandidate: I led a team of 5 engineers.", got)
}
