package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/voicehire/interview-api/internal/domain"
)

// TranscriptStore is the in-memory implementation of domain.TranscriptMemory:
// a plain ordered append log keyed by session. Sequence numbers are assigned
// under the store lock, so concurrent appends to the same session never
// collide.
type TranscriptStore struct {
	mu    sync.RWMutex
	turns map[domain.SessionID][]*domain.Turn
}

func NewTranscriptStore() *TranscriptStore {
	return &TranscriptStore{
		turns: make(map[domain.SessionID][]*domain.Turn),
	}
}

func (s *TranscriptStore) Append(ctx context.Context, sessionID domain.SessionID, role domain.Role, text string) (*domain.Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	turn := &domain.Turn{
		ID:        domain.TurnID(uuid.NewString()),
		SessionID: sessionID,
		Role:      role,
		Text:      text,
		Seq:       len(s.turns[sessionID]) + 1,
		CreatedAt: time.Now(),
	}
	s.turns[sessionID] = append(s.turns[sessionID], turn)
	return turn, nil
}

// TurnsFor returns the session's turns in sequence order. Unknown sessions
// yield an empty slice, not an error.
func (s *TranscriptStore) TurnsFor(ctx context.Context, sessionID domain.SessionID) ([]*domain.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src := s.turns[sessionID]
	out := make([]*domain.Turn, len(src))
	copy(out, src)
	return out, nil
}

func (s *TranscriptStore) Drop(ctx context.Context, sessionID domain.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.turns, sessionID)
	return nil
}
