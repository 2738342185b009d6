package domain

import "time"

// Session is one candidate's active interview, from Start to End.
// There is at most one active session per candidate at any time.
type Session struct {
	ID          SessionID
	InterviewID InterviewID
	CandidateID CandidateID
	State       SessionState
	CreatedAt   Timestamp
}

// Turn is a single utterance appended to a session's transcript.
// Immutable once written; ordered by Seq within a session.
type Turn struct {
	ID        TurnID
	SessionID SessionID
	Role      Role
	Text      string
	Seq       int
	CreatedAt Timestamp
}

// Evaluation is the structured scoring record produced once per session at End.
type Evaluation struct {
	Rating           int      `json:"rating"`
	Strengths        []string `json:"strengths"`
	Weaknesses       []string `json:"weaknesses"`
	Suggestions      []string `json:"suggestions"`
	RecommendedRoles []string `json:"recommended_roles"`
}

// ResumeSummary is the pre-parsed resume supplied by the resume collaborator.
// The orchestrator reads it but never writes it.
type ResumeSummary struct {
	ID          string
	CandidateID CandidateID
	RawText     string
	Skills      string
	Education   string
	Experience  string
	Projects    string
	UploadedAt  time.Time
}

// InterviewRecord is the persisted row for one interview. It is created when
// the session starts and completed with the evaluation when it ends, so
// abandoned interviews stay visible.
type InterviewRecord struct {
	ID          InterviewID
	CandidateID CandidateID
	Rating      int
	Strengths   []string
	Weaknesses  []string
	Suggestions []string
	Roles       []string
	StartedAt   time.Time
	EndedAt     *time.Time
}

// InterviewSummary is the history view of a completed interview.
type InterviewSummary struct {
	ID             InterviewID
	Date           time.Time
	Rating         int
	Feedback       string
	JobSuggestions []string
}

// Identity is the authenticated caller as resolved by the auth collaborator.
type Identity struct {
	CandidateID CandidateID
	Name        string
}
