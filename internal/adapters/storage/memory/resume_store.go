package memory

import (
	"context"
	"sync"

	"github.com/voicehire/interview-api/internal/domain"
)

// ResumeStore keeps resume summaries in memory, newest last.
type ResumeStore struct {
	mu      sync.RWMutex
	resumes map[domain.CandidateID][]*domain.ResumeSummary
}

func NewResumeStore() *ResumeStore {
	return &ResumeStore{
		resumes: make(map[domain.CandidateID][]*domain.ResumeSummary),
	}
}

func (s *ResumeStore) SaveResume(ctx context.Context, resume *domain.ResumeSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resumes[resume.CandidateID] = append(s.resumes[resume.CandidateID], resume)
	return nil
}

// LatestFor returns the most recently saved resume, or nil when the candidate
// has none.
func (s *ResumeStore) LatestFor(ctx context.Context, candidateID domain.CandidateID) (*domain.ResumeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.resumes[candidateID]
	if len(list) == 0 {
		return nil, nil
	}
	return list[len(list)-1], nil
}
