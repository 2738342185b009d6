package domain

import "time"

type SessionID string
type CandidateID string
type TurnID string
type InterviewID string

type Role string

const (
	RoleAI        Role = "AI"
	RoleCandidate Role = "Candidate"
)

type SessionState string

const (
	StateActive SessionState = "active"
	StateEnded  SessionState = "ended"
)

type Timestamp = time.Time
