package domain

import "errors"

// Sentinel error kinds surfaced to callers. These allow errors.Is from the
// transport layer without depending on adapter internals.
var (
	// ErrResumeRequired means an interview cannot start because the candidate
	// has no resume on file.
	ErrResumeRequired = errors.New("resume required")

	// ErrNoActiveSession means the candidate has no active interview session.
	ErrNoActiveSession = errors.New("no active interview session")

	// ErrBackendUnavailable means the text-generation backend failed at the
	// transport level or returned an unusable response.
	ErrBackendUnavailable = errors.New("llm backend unavailable")

	// ErrUnauthenticated means the caller's credential could not be resolved
	// to a candidate identity.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrSessionNotFound is returned by stores when a session id is unknown.
	ErrSessionNotFound = errors.New("session not found")
)
