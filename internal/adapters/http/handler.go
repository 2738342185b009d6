package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/voicehire/interview-api/internal/app/interview"
	"github.com/voicehire/interview-api/internal/domain"
	"github.com/voicehire/interview-api/internal/observability"
)

// maxAudioBytes bounds one uploaded voice turn.
const maxAudioBytes = 15 << 20

type Server struct {
	svc    *interview.Service
	resume domain.ResumeStore
	stt    domain.SpeechToText
	tts    domain.TextToSpeech
	auth   domain.AuthProvider
}

func NewServer(
	svc *interview.Service,
	resume domain.ResumeStore,
	stt domain.SpeechToText,
	tts domain.TextToSpeech,
	auth domain.AuthProvider,
	audioDir string,
) http.Handler {
	s := &Server{svc: svc, resume: resume, stt: stt, tts: tts, auth: auth}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /audio/", http.StripPrefix("/audio/", http.FileServer(http.Dir(audioDir))))

	authed := func(name string, h http.HandlerFunc) http.Handler {
		return withMetrics(name, s.withAuth(h))
	}
	mux.Handle("POST /resume", authed("resume", s.handleUploadResume))
	mux.Handle("POST /interview/start", authed("interview_start", s.handleStart))
	mux.Handle("POST /interview/voice", authed("interview_voice", s.handleVoice))
	mux.Handle("POST /interview/turn", authed("interview_turn", s.handleTurn))
	mux.Handle("POST /interview/end", authed("interview_end", s.handleEnd))
	mux.Handle("GET /history", authed("history", s.handleHistory))

	return chainMiddlewares(mux, withLogging, withCORS)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type resumeRequest struct {
	RawText    string `json:"raw_text"`
	Skills     string `json:"skills,omitempty"`
	Education  string `json:"education,omitempty"`
	Experience string `json:"experience,omitempty"`
	Projects   string `json:"projects,omitempty"`
}

type turnRequest struct {
	Text string `json:"text"`
}

type voiceResponse struct {
	Transcript     string `json:"transcript"`
	AudioURL       string `json:"audio_url"`
	IsLastQuestion bool   `json:"is_last_question"`
}

type historyItem struct {
	ID             string    `json:"id"`
	Date           time.Time `json:"date"`
	Rating         int       `json:"rating"`
	Feedback       string    `json:"feedback"`
	JobSuggestions []string  `json:"job_suggestions"`
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "online"})
}

func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())

	var req resumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.RawText) == "" {
		badRequest(w, "raw_text is required")
		return
	}

	err := s.resume.SaveResume(r.Context(), &domain.ResumeSummary{
		CandidateID: identity.CandidateID,
		RawText:     req.RawText,
		Skills:      req.Skills,
		Education:   req.Education,
		Experience:  req.Experience,
		Projects:    req.Projects,
		UploadedAt:  time.Now(),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Resume uploaded successfully"})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())

	out, err := s.svc.Start(r.Context(), interview.StartInput{
		CandidateID:   identity.CandidateID,
		CandidateName: identity.Name,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, voiceResponse{
		Transcript:     out.Greeting,
		AudioURL:       s.synthesize(r, out.Greeting),
		IsLastQuestion: false,
	})
}

func (s *Server) handleVoice(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())

	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		badRequest(w, "invalid multipart body")
		return
	}
	file, _, err := r.FormFile("audio")
	if err != nil {
		badRequest(w, "audio file is required")
		return
	}
	defer func() { _ = file.Close() }()

	audio, err := io.ReadAll(io.LimitReader(file, maxAudioBytes))
	if err != nil {
		badRequest(w, "failed to read audio")
		return
	}

	text, err := s.stt.Transcribe(r.Context(), audio)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out, err := s.svc.SubmitTurn(r.Context(), identity.CandidateID, text)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, voiceResponse{
		Transcript:     out.Reply,
		AudioURL:       s.synthesize(r, out.Reply),
		IsLastQuestion: out.IsFinal,
	})
}

func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())

	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		badRequest(w, "text is required")
		return
	}

	out, err := s.svc.SubmitTurn(r.Context(), identity.CandidateID, req.Text)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, voiceResponse{
		Transcript:     out.Reply,
		AudioURL:       s.synthesize(r, out.Reply),
		IsLastQuestion: out.IsFinal,
	})
}

func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())

	eval, err := s.svc.End(r.Context(), identity.CandidateID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, eval)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())

	summaries, err := s.svc.History(r.Context(), identity.CandidateID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]historyItem, 0, len(summaries))
	for _, sum := range summaries {
		out = append(out, historyItem{
			ID:             string(sum.ID),
			Date:           sum.Date,
			Rating:         sum.Rating,
			Feedback:       sum.Feedback,
			JobSuggestions: sum.JobSuggestions,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

// synthesize produces the audio resource for a reply. Synthesis failure is
// not fatal to the turn: the transcript still reaches the client.
func (s *Server) synthesize(r *http.Request, text string) string {
	url, err := s.tts.Synthesize(r.Context(), text)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Warn("speech synthesis failed", "error", err)
		return ""
	}
	return url
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

// writeError maps domain sentinels to HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrResumeRequired):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Please upload a resume first"})
	case errors.Is(err, domain.ErrNoActiveSession):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No active interview session found."})
	case errors.Is(err, domain.ErrBackendUnavailable):
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "interview backend unavailable"})
	case errors.Is(err, domain.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "could not validate credentials"})
	default:
		observability.LoggerFromContext(r.Context()).Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
