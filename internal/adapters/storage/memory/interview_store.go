package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/voicehire/interview-api/internal/domain"
)

// InterviewStore keeps interview records in memory. NOT persistent; only
// suitable for development and tests.
type InterviewStore struct {
	mu          sync.RWMutex
	records     map[domain.InterviewID]*domain.InterviewRecord
	byCandidate map[domain.CandidateID][]domain.InterviewID
}

func NewInterviewStore() *InterviewStore {
	return &InterviewStore{
		records:     make(map[domain.InterviewID]*domain.InterviewRecord),
		byCandidate: make(map[domain.CandidateID][]domain.InterviewID),
	}
}

func (s *InterviewStore) CreateInterview(ctx context.Context, rec *domain.InterviewRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[rec.ID]; exists {
		return errors.New("interview already exists")
	}

	s.records[rec.ID] = rec
	s.byCandidate[rec.CandidateID] = append(s.byCandidate[rec.CandidateID], rec.ID)
	return nil
}

func (s *InterviewStore) CompleteInterview(ctx context.Context, id domain.InterviewID, eval *domain.Evaluation, endedAt domain.Timestamp) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return errors.New("interview not found")
	}

	rec.Rating = eval.Rating
	rec.Strengths = eval.Strengths
	rec.Weaknesses = eval.Weaknesses
	rec.Suggestions = eval.Suggestions
	rec.Roles = eval.RecommendedRoles
	rec.EndedAt = &endedAt
	return nil
}

// ListByCandidate returns up to limit records, newest first.
func (s *InterviewStore) ListByCandidate(ctx context.Context, candidateID domain.CandidateID, limit int) ([]*domain.InterviewRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byCandidate[candidateID]
	out := make([]*domain.InterviewRecord, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		if rec, ok := s.records[ids[i]]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}
