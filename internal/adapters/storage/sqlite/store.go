// Package sqlite provides the durable storage backend. Uses
// ncruces/go-sqlite3/driver which exposes a database/sql interface without
// CGO.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/voicehire/interview-api/internal/domain"
)

// Store implements domain.ResumeStore, domain.InterviewStore and
// domain.TranscriptMemory on a single SQLite database.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS resumes (
    id TEXT PRIMARY KEY,
    candidate_id TEXT NOT NULL,
    raw_text TEXT NOT NULL,
    skills TEXT,
    education TEXT,
    experience TEXT,
    projects TEXT,
    uploaded_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_resumes_candidate ON resumes(candidate_id, uploaded_at);

CREATE TABLE IF NOT EXISTS interviews (
    id TEXT PRIMARY KEY,
    candidate_id TEXT NOT NULL,
    rating INTEGER NOT NULL DEFAULT 0,
    strengths TEXT NOT NULL DEFAULT '',
    weaknesses TEXT NOT NULL DEFAULT '',
    suggestions TEXT NOT NULL DEFAULT '',
    job_roles TEXT NOT NULL DEFAULT '',
    started_at INTEGER NOT NULL,
    ended_at INTEGER
);
CREATE INDEX IF NOT EXISTS idx_interviews_candidate ON interviews(candidate_id, started_at);

CREATE TABLE IF NOT EXISTS turns (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    role TEXT NOT NULL,
    text TEXT NOT NULL,
    seq INTEGER NOT NULL,
    created_at INTEGER NOT NULL,
    UNIQUE (session_id, seq)
);
CREATE INDEX IF NOT EXISTS idx_turns_session ON turns(session_id, seq);
`

// NewStore opens (or creates) the database at the given DSN.
// Use ":memory:" for tests.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ─────────────────────────────────────────
// ResumeStore implementation
// ─────────────────────────────────────────

func (s *Store) SaveResume(ctx context.Context, resume *domain.ResumeSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if resume.ID == "" {
		resume.ID = uuid.NewString()
	}
	if resume.UploadedAt.IsZero() {
		resume.UploadedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO resumes (id, candidate_id, raw_text, skills, education, experience, projects, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, resume.ID, string(resume.CandidateID), resume.RawText, resume.Skills,
		resume.Education, resume.Experience, resume.Projects, resume.UploadedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("sqlite SaveResume: %w", err)
	}
	return nil
}

func (s *Store) LatestFor(ctx context.Context, candidateID domain.CandidateID) (*domain.ResumeSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, raw_text, skills, education, experience, projects, uploaded_at
		FROM resumes WHERE candidate_id = ?
		ORDER BY uploaded_at DESC LIMIT 1
	`, string(candidateID))

	var r domain.ResumeSummary
	var uploadedAt int64
	err := row.Scan(&r.ID, &r.RawText, &r.Skills, &r.Education, &r.Experience, &r.Projects, &uploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite LatestFor: %w", err)
	}

	r.CandidateID = candidateID
	r.UploadedAt = time.Unix(0, uploadedAt)
	return &r, nil
}

// ─────────────────────────────────────────
// InterviewStore implementation
// ─────────────────────────────────────────

func (s *Store) CreateInterview(ctx context.Context, rec *domain.InterviewRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO interviews (id, candidate_id, started_at)
		VALUES (?, ?, ?)
	`, string(rec.ID), string(rec.CandidateID), rec.StartedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("sqlite CreateInterview: %w", err)
	}
	return nil
}

func (s *Store) CompleteInterview(ctx context.Context, id domain.InterviewID, eval *domain.Evaluation, endedAt domain.Timestamp) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE interviews
		SET rating = ?, strengths = ?, weaknesses = ?, suggestions = ?, job_roles = ?, ended_at = ?
		WHERE id = ?
	`, eval.Rating, joinList(eval.Strengths), joinList(eval.Weaknesses),
		joinList(eval.Suggestions), joinList(eval.RecommendedRoles), endedAt.UnixNano(), string(id))
	if err != nil {
		return fmt.Errorf("sqlite CompleteInterview: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("sqlite CompleteInterview: interview %s not found", id)
	}
	return nil
}

func (s *Store) ListByCandidate(ctx context.Context, candidateID domain.CandidateID, limit int) ([]*domain.InterviewRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := `
		SELECT id, rating, strengths, weaknesses, suggestions, job_roles, started_at, ended_at
		FROM interviews WHERE candidate_id = ?
		ORDER BY started_at DESC
	`
	args := []any{string(candidateID)}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite ListByCandidate: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*domain.InterviewRecord
	for rows.Next() {
		var rec domain.InterviewRecord
		var strengths, weaknesses, suggestions, roles string
		var startedAt int64
		var endedAt sql.NullInt64
		if err := rows.Scan(&rec.ID, &rec.Rating, &strengths, &weaknesses,
			&suggestions, &roles, &startedAt, &endedAt); err != nil {
			return nil, fmt.Errorf("sqlite ListByCandidate scan: %w", err)
		}
		rec.CandidateID = candidateID
		rec.Strengths = splitList(strengths)
		rec.Weaknesses = splitList(weaknesses)
		rec.Suggestions = splitList(suggestions)
		rec.Roles = splitList(roles)
		rec.StartedAt = time.Unix(0, startedAt)
		if endedAt.Valid {
			t := time.Unix(0, endedAt.Int64)
			rec.EndedAt = &t
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// ─────────────────────────────────────────
// TranscriptMemory implementation
// ─────────────────────────────────────────

// Append assigns the next sequence number and commits the turn in one
// transaction, so the turn is durable before the call returns.
func (s *Store) Append(ctx context.Context, sessionID domain.SessionID, role domain.Role, text string) (*domain.Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqlite Append begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var seq int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM turns WHERE session_id = ?`,
		string(sessionID)).Scan(&seq); err != nil {
		return nil, fmt.Errorf("sqlite Append next seq: %w", err)
	}

	turn := &domain.Turn{
		ID:        domain.TurnID(uuid.NewString()),
		SessionID: sessionID,
		Role:      role,
		Text:      text,
		Seq:       seq,
		CreatedAt: time.Now(),
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO turns (id, session_id, role, text, seq, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, string(turn.ID), string(sessionID), string(role), text, seq, turn.CreatedAt.UnixNano()); err != nil {
		return nil, fmt.Errorf("sqlite Append insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqlite Append commit: %w", err)
	}
	return turn, nil
}

func (s *Store) TurnsFor(ctx context.Context, sessionID domain.SessionID) ([]*domain.Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, role, text, seq, created_at
		FROM turns WHERE session_id = ? ORDER BY seq ASC
	`, string(sessionID))
	if err != nil {
		return nil, fmt.Errorf("sqlite TurnsFor: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []*domain.Turn{}
	for rows.Next() {
		var t domain.Turn
		var createdAt int64
		if err := rows.Scan(&t.ID, &t.Role, &t.Text, &t.Seq, &createdAt); err != nil {
			return nil, fmt.Errorf("sqlite TurnsFor scan: %w", err)
		}
		t.SessionID = sessionID
		t.CreatedAt = time.Unix(0, createdAt)
		out = append(out, &t)
	}
	return out, rows.Err()
}

// Drop keeps the turns: durable transcripts are retained for audit. The
// session id is simply never read again once the session ends.
func (s *Store) Drop(ctx context.Context, sessionID domain.SessionID) error {
	return nil
}

func joinList(list []string) string {
	return strings.Join(list, ", ")
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ", ")
}
