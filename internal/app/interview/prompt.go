package interview

import (
	"fmt"
	"strings"

	"github.com/voicehire/interview-api/internal/domain"
)

// maxResumeContextChars caps how much resume text is embedded in the system
// prompt, to bound LLM context cost.
const maxResumeContextChars = 2000

const systemPromptTemplate = `You are a professional IT HR interviewer.
Conduct a realistic voice interview.
Here is the candidate's resume summary: %s

Rules:
1. Ask one clear question at a time.
2. Ask technical and behavioral questions based on the resume.
3. Be professional and strict.
4. Conclude the interview after about 6-8 exchanges by saying 'This concludes our interview. Thank you.'
`

const evaluationSystemPrompt = `You are an expert HR analyst.`

const evaluationPromptTemplate = `Evaluate the following interview transcript:
%s

Provide a JSON object with:
- rating (integer 1-10)
- strengths (list of strings)
- weaknesses (list of strings)
- suggestions (list of strings)
- recommended_roles (list of strings)
`

// BuildSystemPrompt builds the interviewer persona prompt from the candidate's
// resume. The resume text is truncated, never reformatted: the backend sees
// exactly what the parser produced.
func BuildSystemPrompt(resume *domain.ResumeSummary) string {
	text := "General candidate"
	if resume != nil && strings.TrimSpace(resume.RawText) != "" {
		text = resume.RawText
		if len(text) > maxResumeContextChars {
			text = text[:maxResumeContextChars]
		}
	}
	return fmt.Sprintf(systemPromptTemplate, text)
}

// BuildGreeting builds the opening AI turn for a new interview.
func BuildGreeting(name, skills string) string {
	if name == "" {
		name = "there"
	}
	if skills == "" {
		skills = "software development"
	}
	return fmt.Sprintf(
		"Hello %s. I'm your interviewer. I've reviewed your resume and noticed your background in %s. "+
			"Let's get started. Could you walk me through your most relevant professional experience?",
		name, skills,
	)
}

// BuildEvaluationPrompt wraps the drained transcript in the analyst
// instructions. Use EvaluationSystemPrompt as the system prompt for the call.
func BuildEvaluationPrompt(transcript string) string {
	return fmt.Sprintf(evaluationPromptTemplate, transcript)
}

// EvaluationSystemPrompt returns the analyst persona used for the final
// evaluation call.
func EvaluationSystemPrompt() string {
	return evaluationSystemPrompt
}

// JoinTranscript flattens ordered turns into the single context string fed to
// the evaluator, one "role: text" line per turn.
func JoinTranscript(turns []*domain.Turn) string {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		lines = append(lines, string(t.Role)+": "+t.Text)
	}
	return strings.Join(lines, "\n")
}
