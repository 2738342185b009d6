package interview

import (
	"encoding/json"
	"strings"

	"github.com/voicehire/interview-api/internal/domain"
)

// evaluationPayload mirrors the JSON shape the analyst prompt asks for.
// Pointer fields distinguish "absent" from "present but empty" so a completion
// missing a required field falls back instead of half-filling the record.
type evaluationPayload struct {
	Rating           *int      `json:"rating"`
	Strengths        *[]string `json:"strengths"`
	Weaknesses       *[]string `json:"weaknesses"`
	Suggestions      *[]string `json:"suggestions"`
	RecommendedRoles *[]string `json:"recommended_roles"`
}

// DefaultEvaluation is returned whenever the model's output cannot be parsed
// into a valid evaluation. The session must always complete with some
// evaluation; availability is deliberately preferred over correctness here.
func DefaultEvaluation() domain.Evaluation {
	return domain.Evaluation{
		Rating:           5,
		Strengths:        []string{"Communication"},
		Weaknesses:       []string{"Unclear"},
		Suggestions:      []string{"Practice more"},
		RecommendedRoles: []string{"Junior Developer"},
	}
}

// ExtractEvaluation parses a loosely-structured completion into an Evaluation.
// It takes the span between the first '{' and the last '}' and validates it
// against the expected schema. On any failure (no braces, malformed JSON,
// missing fields, wrong types, rating outside 1-10) it returns
// DefaultEvaluation. It never fails.
func ExtractEvaluation(text string) domain.Evaluation {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return DefaultEvaluation()
	}

	var payload evaluationPayload
	if err := json.Unmarshal([]byte(text[start:end+1]), &payload); err != nil {
		return DefaultEvaluation()
	}
	if payload.Rating == nil || payload.Strengths == nil || payload.Weaknesses == nil ||
		payload.Suggestions == nil || payload.RecommendedRoles == nil {
		return DefaultEvaluation()
	}
	if *payload.Rating < 1 || *payload.Rating > 10 {
		return DefaultEvaluation()
	}

	return domain.Evaluation{
		Rating:           *payload.Rating,
		Strengths:        *payload.Strengths,
		Weaknesses:       *payload.Weaknesses,
		Suggestions:      *payload.Suggestions,
		RecommendedRoles: *payload.RecommendedRoles,
	}
}
