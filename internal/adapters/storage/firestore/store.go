package firestore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/voicehire/interview-api/internal/domain"
)

// Store implements domain.ResumeStore, domain.InterviewStore and
// domain.TranscriptMemory on Firestore, for deployments that want a managed
// backend instead of a local SQLite file.
type Store struct {
	client *firestore.Client

	// Sequence numbers are assigned in-process: the orchestrator is the
	// single writer for a session's transcript.
	seqMu sync.Mutex
	seq   map[domain.SessionID]int
}

func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{
		client: client,
		seq:    make(map[domain.SessionID]int),
	}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) resumesCol() *firestore.CollectionRef {
	return s.client.Collection("resumes")
}

func (s *Store) interviewsCol() *firestore.CollectionRef {
	return s.client.Collection("interviews")
}

func (s *Store) transcriptsCol(sessionID domain.SessionID) *firestore.CollectionRef {
	return s.client.Collection("transcripts").Doc(string(sessionID)).Collection("turns")
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type resumeDoc struct {
	CandidateID string    `firestore:"candidate_id"`
	RawText     string    `firestore:"raw_text"`
	Skills      string    `firestore:"skills"`
	Education   string    `firestore:"education"`
	Experience  string    `firestore:"experience"`
	Projects    string    `firestore:"projects"`
	UploadedAt  time.Time `firestore:"uploaded_at"`
}

type interviewDoc struct {
	CandidateID string     `firestore:"candidate_id"`
	Rating      int        `firestore:"rating"`
	Strengths   []string   `firestore:"strengths"`
	Weaknesses  []string   `firestore:"weaknesses"`
	Suggestions []string   `firestore:"suggestions"`
	JobRoles    []string   `firestore:"job_roles"`
	StartedAt   time.Time  `firestore:"started_at"`
	EndedAt     *time.Time `firestore:"ended_at"`
}

type turnDoc struct {
	SessionID string    `firestore:"session_id"`
	Role      string    `firestore:"role"`
	Text      string    `firestore:"text"`
	Seq       int       `firestore:"seq"`
	CreatedAt time.Time `firestore:"created_at"`
}

// ─────────────────────────────────────────
// ResumeStore implementation
// ─────────────────────────────────────────

func (s *Store) SaveResume(ctx context.Context, resume *domain.ResumeSummary) error {
	if resume.ID == "" {
		resume.ID = uuid.NewString()
	}
	if resume.UploadedAt.IsZero() {
		resume.UploadedAt = time.Now()
	}

	doc := resumeDoc{
		CandidateID: string(resume.CandidateID),
		RawText:     resume.RawText,
		Skills:      resume.Skills,
		Education:   resume.Education,
		Experience:  resume.Experience,
		Projects:    resume.Projects,
		UploadedAt:  resume.UploadedAt,
	}

	if _, err := s.resumesCol().Doc(resume.ID).Create(ctx, doc); err != nil {
		return fmt.Errorf("firestore SaveResume: %w", err)
	}
	return nil
}

func (s *Store) LatestFor(ctx context.Context, candidateID domain.CandidateID) (*domain.ResumeSummary, error) {
	q := s.resumesCol().
		Where("candidate_id", "==", string(candidateID)).
		OrderBy("uploaded_at", firestore.Desc).
		Limit(1)

	iter := q.Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("firestore LatestFor: %w", err)
	}

	var doc resumeDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decode resumeDoc: %w", err)
	}

	return &domain.ResumeSummary{
		ID:          snap.Ref.ID,
		CandidateID: candidateID,
		RawText:     doc.RawText,
		Skills:      doc.Skills,
		Education:   doc.Education,
		Experience:  doc.Experience,
		Projects:    doc.Projects,
		UploadedAt:  doc.UploadedAt,
	}, nil
}

// ─────────────────────────────────────────
// InterviewStore implementation
// ─────────────────────────────────────────

func (s *Store) CreateInterview(ctx context.Context, rec *domain.InterviewRecord) error {
	doc := interviewDoc{
		CandidateID: string(rec.CandidateID),
		StartedAt:   rec.StartedAt,
	}

	if _, err := s.interviewsCol().Doc(string(rec.ID)).Create(ctx, doc); err != nil {
		return fmt.Errorf("firestore CreateInterview: %w", err)
	}
	return nil
}

func (s *Store) CompleteInterview(ctx context.Context, id domain.InterviewID, eval *domain.Evaluation, endedAt domain.Timestamp) error {
	updates := map[string]interface{}{
		"rating":      eval.Rating,
		"strengths":   eval.Strengths,
		"weaknesses":  eval.Weaknesses,
		"suggestions": eval.Suggestions,
		"job_roles":   eval.RecommendedRoles,
		"ended_at":    endedAt,
	}

	_, err := s.interviewsCol().Doc(string(id)).Set(ctx, updates, firestore.MergeAll)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("interview %s not found", id)
		}
		return fmt.Errorf("firestore CompleteInterview: %w", err)
	}
	return nil
}

func (s *Store) ListByCandidate(ctx context.Context, candidateID domain.CandidateID, limit int) ([]*domain.InterviewRecord, error) {
	q := s.interviewsCol().
		Where("candidate_id", "==", string(candidateID)).
		OrderBy("started_at", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*domain.InterviewRecord
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore ListByCandidate: %w", err)
		}

		var doc interviewDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode interviewDoc: %w", err)
		}

		out = append(out, &domain.InterviewRecord{
			ID:          domain.InterviewID(snap.Ref.ID),
			CandidateID: candidateID,
			Rating:      doc.Rating,
			Strengths:   doc.Strengths,
			Weaknesses:  doc.Weaknesses,
			Suggestions: doc.Suggestions,
			Roles:       doc.JobRoles,
			StartedAt:   doc.StartedAt,
			EndedAt:     doc.EndedAt,
		})
	}
	return out, nil
}

// ─────────────────────────────────────────
// TranscriptMemory implementation
// ─────────────────────────────────────────

func (s *Store) Append(ctx context.Context, sessionID domain.SessionID, role domain.Role, text string) (*domain.Turn, error) {
	s.seqMu.Lock()
	s.seq[sessionID]++
	seq := s.seq[sessionID]
	s.seqMu.Unlock()

	turn := &domain.Turn{
		ID:        domain.TurnID(uuid.NewString()),
		SessionID: sessionID,
		Role:      role,
		Text:      text,
		Seq:       seq,
		CreatedAt: time.Now(),
	}

	doc := turnDoc{
		SessionID: string(sessionID),
		Role:      string(role),
		Text:      text,
		Seq:       seq,
		CreatedAt: turn.CreatedAt,
	}

	if _, err := s.transcriptsCol(sessionID).Doc(string(turn.ID)).Set(ctx, doc); err != nil {
		return nil, fmt.Errorf("firestore Append: %w", err)
	}
	return turn, nil
}

func (s *Store) TurnsFor(ctx context.Context, sessionID domain.SessionID) ([]*domain.Turn, error) {
	q := s.transcriptsCol(sessionID).OrderBy("seq", firestore.Asc)

	iter := q.Documents(ctx)
	defer iter.Stop()

	out := []*domain.Turn{}
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore TurnsFor: %w", err)
		}

		var doc turnDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode turnDoc: %w", err)
		}

		out = append(out, &domain.Turn{
			ID:        domain.TurnID(snap.Ref.ID),
			SessionID: sessionID,
			Role:      domain.Role(doc.Role),
			Text:      doc.Text,
			Seq:       doc.Seq,
			CreatedAt: doc.CreatedAt,
		})
	}
	return out, nil
}

// Drop retains turns for audit and only forgets the in-process counter.
func (s *Store) Drop(ctx context.Context, sessionID domain.SessionID) error {
	s.seqMu.Lock()
	delete(s.seq, sessionID)
	s.seqMu.Unlock()
	return nil
}
