package domain

import "context"

// LLMBackend defines how the core application talks to a text-generation
// service. One prompt in, one raw completion out; no state between calls.
// Implementations must wrap transport failures and non-success responses in
// ErrBackendUnavailable. Callers get no guarantee the completion is
// well-formed JSON or free of extraneous prose.
type LLMBackend interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// TranscriptMemory is the append-only, per-session conversational memory.
// Appends assign a monotonic per-session sequence number and must be durable
// before returning. Retrieval filters by exact session id only.
type TranscriptMemory interface {
	Append(ctx context.Context, sessionID SessionID, role Role, text string) (*Turn, error)
	TurnsFor(ctx context.Context, sessionID SessionID) ([]*Turn, error)
	// Drop removes a session's turns en masse once the session ends.
	// Durable implementations may retain them for audit and report success.
	Drop(ctx context.Context, sessionID SessionID) error
}

// ResumeStore defines resume persistence. LatestFor returns nil (no error)
// when the candidate has no resume on file.
type ResumeStore interface {
	SaveResume(ctx context.Context, resume *ResumeSummary) error
	LatestFor(ctx context.Context, candidateID CandidateID) (*ResumeSummary, error)
}

// InterviewStore defines interview record persistence. Records are created
// when a session starts and completed with the evaluation when it ends.
type InterviewStore interface {
	CreateInterview(ctx context.Context, rec *InterviewRecord) error
	CompleteInterview(ctx context.Context, id InterviewID, eval *Evaluation, endedAt Timestamp) error
	ListByCandidate(ctx context.Context, candidateID CandidateID, limit int) ([]*InterviewRecord, error)
}

// SpeechToText transcribes candidate audio into text.
type SpeechToText interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// TextToSpeech synthesizes a reply and returns a reference (URL path) to the
// produced audio resource.
type TextToSpeech interface {
	Synthesize(ctx context.Context, text string) (string, error)
}

// AuthProvider resolves a bearer credential to a candidate identity.
// Returns ErrUnauthenticated when the credential is not recognized.
type AuthProvider interface {
	Identify(ctx context.Context, credential string) (*Identity, error)
}
