package interview

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/voicehire/interview-api/internal/domain"
	"github.com/voicehire/interview-api/internal/observability"
)

// Service is the interview session orchestrator. It owns the candidate ->
// active session index and sequences memory, prompting, generation, completion
// detection and evaluation into the session lifecycle.
//
// Concurrency: the index is guarded by mu; every active session carries its
// own lock, so operations for the same candidate are serialized while
// different candidates proceed independently. The backend call happens under
// the per-candidate lock, which preserves turn ordering without starving other
// candidates' sessions.
type Service struct {
	llm        domain.LLMBackend
	memory     domain.TranscriptMemory
	resumes    domain.ResumeStore
	interviews domain.InterviewStore
	genTimeout time.Duration
	now        func() time.Time

	mu     sync.Mutex
	active map[domain.CandidateID]*activeSession
}

type activeSession struct {
	mu      sync.Mutex
	session *domain.Session
	resume  *domain.ResumeSummary
}

const defaultGenTimeout = 60 * time.Second

func NewService(
	llm domain.LLMBackend,
	memory domain.TranscriptMemory,
	resumes domain.ResumeStore,
	interviews domain.InterviewStore,
	genTimeout time.Duration,
) *Service {
	if genTimeout <= 0 {
		genTimeout = defaultGenTimeout
	}
	return &Service{
		llm:        llm,
		memory:     memory,
		resumes:    resumes,
		interviews: interviews,
		genTimeout: genTimeout,
		now:        time.Now,
		active:     make(map[domain.CandidateID]*activeSession),
	}
}

type StartInput struct {
	CandidateID   domain.CandidateID
	CandidateName string
}

type StartOutput struct {
	SessionID domain.SessionID
	Greeting  string
}

// Start creates a fresh active session for the candidate and returns the
// opening greeting. A repeated Start silently replaces any prior active
// session, matching an idempotent-restart policy: the abandoned interview's
// record stays in the store, unrated.
func (s *Service) Start(ctx context.Context, in StartInput) (*StartOutput, error) {
	log := observability.LoggerFromContext(ctx).With("candidate_id", in.CandidateID)

	resume, err := s.resumes.LatestFor(ctx, in.CandidateID)
	if err != nil {
		log.Error("failed to load resume", "error", err)
		return nil, err
	}
	if resume == nil {
		return nil, domain.ErrResumeRequired
	}

	now := s.now()
	session := &domain.Session{
		ID:          domain.SessionID(uuid.NewString()),
		InterviewID: domain.InterviewID(uuid.NewString()),
		CandidateID: in.CandidateID,
		State:       domain.StateActive,
		CreatedAt:   now,
	}

	if err := s.interviews.CreateInterview(ctx, &domain.InterviewRecord{
		ID:          session.InterviewID,
		CandidateID: in.CandidateID,
		StartedAt:   now,
	}); err != nil {
		log.Error("failed to create interview record", "error", err)
		return nil, err
	}

	entry := &activeSession{session: session, resume: resume}
	entry.mu.Lock()

	s.mu.Lock()
	prior := s.active[in.CandidateID]
	s.active[in.CandidateID] = entry
	s.mu.Unlock()

	if prior != nil {
		log.Info("replacing prior active session", "prior_session_id", prior.session.ID)
	} else {
		observability.SessionStarted()
	}

	greeting := BuildGreeting(in.CandidateName, resume.Skills)
	_, err = s.memory.Append(ctx, session.ID, domain.RoleAI, greeting)
	entry.mu.Unlock()
	if err != nil {
		log.Error("failed to append greeting turn", "error", err)
		return nil, err
	}

	log.Info("interview started", "session_id", session.ID)

	return &StartOutput{SessionID: session.ID, Greeting: greeting}, nil
}

type TurnOutput struct {
	Reply   string
	IsFinal bool
}

// SubmitTurn records the candidate's utterance, asks the backend for the next
// interviewer reply and flags whether that reply concludes the interview.
// If the backend call fails the candidate turn stays recorded without an AI
// reply; there is no cross-step transaction.
func (s *Service) SubmitTurn(ctx context.Context, candidateID domain.CandidateID, utterance string) (*TurnOutput, error) {
	entry := s.lookup(candidateID)
	if entry == nil {
		return nil, domain.ErrNoActiveSession
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.session.State != domain.StateActive {
		return nil, domain.ErrNoActiveSession
	}

	log := observability.LoggerFromContext(ctx).With(
		"candidate_id", candidateID,
		"session_id", entry.session.ID,
	)

	if _, err := s.memory.Append(ctx, entry.session.ID, domain.RoleCandidate, utterance); err != nil {
		log.Error("failed to append candidate turn", "error", err)
		return nil, err
	}

	reply, err := s.generate(ctx, BuildSystemPrompt(entry.resume), utterance)
	if err != nil {
		log.Error("backend call failed", "error", err)
		return nil, err
	}

	if _, err := s.memory.Append(ctx, entry.session.ID, domain.RoleAI, reply); err != nil {
		log.Error("failed to append reply turn", "error", err)
		return nil, err
	}

	final := IsFinal(reply)
	log.Info("turn completed", "is_final", final)

	return &TurnOutput{Reply: reply, IsFinal: final}, nil
}

// End drains the transcript, produces the evaluation, persists it and retires
// the session. A backend or parse failure at this point still yields the
// default evaluation: End never leaves an interview without one.
func (s *Service) End(ctx context.Context, candidateID domain.CandidateID) (*domain.Evaluation, error) {
	entry := s.lookup(candidateID)
	if entry == nil {
		return nil, domain.ErrNoActiveSession
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.session.State != domain.StateActive {
		return nil, domain.ErrNoActiveSession
	}

	log := observability.LoggerFromContext(ctx).With(
		"candidate_id", candidateID,
		"session_id", entry.session.ID,
	)

	turns, err := s.memory.TurnsFor(ctx, entry.session.ID)
	if err != nil {
		log.Error("failed to load transcript", "error", err)
		return nil, err
	}

	var eval domain.Evaluation
	completion, err := s.generate(ctx, EvaluationSystemPrompt(), BuildEvaluationPrompt(JoinTranscript(turns)))
	if err != nil {
		log.Warn("evaluation call failed, using default evaluation", "error", err)
		eval = DefaultEvaluation()
	} else {
		eval = ExtractEvaluation(completion)
	}

	endedAt := s.now()
	if err := s.interviews.CompleteInterview(ctx, entry.session.InterviewID, &eval, endedAt); err != nil {
		log.Error("failed to persist evaluation", "error", err)
		return nil, err
	}

	if err := s.memory.Drop(ctx, entry.session.ID); err != nil {
		log.Warn("failed to drop transcript", "error", err)
	}

	entry.session.State = domain.StateEnded

	s.mu.Lock()
	if s.active[candidateID] == entry {
		delete(s.active, candidateID)
		observability.SessionEnded()
	}
	s.mu.Unlock()

	log.Info("interview ended", "rating", eval.Rating)

	return &eval, nil
}

const historyLimit = 50

// History lists the candidate's past interviews, newest first. Interviews
// that were started but never ended appear unrated, as the audit trail.
func (s *Service) History(ctx context.Context, candidateID domain.CandidateID) ([]*domain.InterviewSummary, error) {
	recs, err := s.interviews.ListByCandidate(ctx, candidateID, historyLimit)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.InterviewSummary, 0, len(recs))
	for _, rec := range recs {
		feedback := strings.Join(rec.Suggestions, ", ")
		if feedback == "" {
			feedback = "Interview session logged."
		}
		date := rec.StartedAt
		if rec.EndedAt != nil {
			date = *rec.EndedAt
		}
		out = append(out, &domain.InterviewSummary{
			ID:             rec.ID,
			Date:           date,
			Rating:         rec.Rating,
			Feedback:       feedback,
			JobSuggestions: rec.Roles,
		})
	}
	return out, nil
}

func (s *Service) lookup(candidateID domain.CandidateID) *activeSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active[candidateID]
}

// generate wraps the backend call with the bounded timeout and call metrics.
func (s *Service) generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	gctx, cancel := context.WithTimeout(ctx, s.genTimeout)
	defer cancel()

	start := time.Now()
	reply, err := s.llm.Generate(gctx, systemPrompt, userPrompt)
	if err != nil {
		observability.RecordLLMCall("error", time.Since(start))
		return "", err
	}
	observability.RecordLLMCall("ok", time.Since(start))
	return reply, nil
}
