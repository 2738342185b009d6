package httpadapter_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicehire/interview-api/internal/adapters/auth"
	httpadapter "github.com/voicehire/interview-api/internal/adapters/http"
	"github.com/voicehire/interview-api/internal/adapters/llm"
	"github.com/voicehire/interview-api/internal/adapters/speech"
	memstore "github.com/voicehire/interview-api/internal/adapters/storage/memory"
	"github.com/voicehire/interview-api/internal/app/interview"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	memory := memstore.NewTranscriptStore()
	resumes := memstore.NewResumeStore()
	interviews := memstore.NewInterviewStore()

	svc := interview.NewService(llm.NewMockLLM(), memory, resumes, interviews, 0)

	return httpadapter.NewServer(svc, resumes, speech.NewMock(), speech.NewMock(), auth.NewStatic(nil, true), t.TempDir())
}

func doJSON(t *testing.T, srv http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer guest-token")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequiresAuthentication(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStartWithoutResume(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/interview/start", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "upload a resume")
}

func TestFullInterviewFlow(t *testing.T) {
	srv := newTestServer(t)

	// Upload resume
	w := doJSON(t, srv, http.MethodPost, "/resume", map[string]string{
		"raw_text": "Backend engineer with Go experience.",
		"skills":   "Go, Docker",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Start
	w = doJSON(t, srv, http.MethodPost, "/interview/start", nil)
	require.Equal(t, http.StatusOK, w.Code, "body=%s", w.Body.String())

	var started struct {
		Transcript     string `json:"transcript"`
		IsLastQuestion bool   `json:"is_last_question"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &started))
	assert.Contains(t, started.Transcript, "Go, Docker")
	assert.False(t, started.IsLastQuestion)

	// Text turn
	w = doJSON(t, srv, http.MethodPost, "/interview/turn", map[string]string{
		"text": "I led a team of 5 engineers...",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var turn struct {
		Transcript     string `json:"transcript"`
		IsLastQuestion bool   `json:"is_last_question"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &turn))
	assert.NotEmpty(t, turn.Transcript)
	assert.False(t, turn.IsLastQuestion)

	// Voice turn: the mock STT echoes the audio bytes as text.
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("audio", "turn.webm")
	require.NoError(t, err)
	_, err = part.Write([]byte("We shipped it on time."))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/interview/voice", &buf)
	req.Header.Set("Authorization", "Bearer guest-token")
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, "body=%s", rec.Body.String())

	// End
	w = doJSON(t, srv, http.MethodPost, "/interview/end", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var eval struct {
		Rating int `json:"rating"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &eval))
	assert.Equal(t, 7, eval.Rating)

	// History reflects the completed interview.
	w = doJSON(t, srv, http.MethodGet, "/history", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var history []struct {
		Rating int `json:"rating"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history, 1)
	assert.Equal(t, 7, history[0].Rating)
}

func TestTurnWithoutActiveSession(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/interview/turn", map[string]string{"text": "hello?"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No active interview session")
}

func TestTurnRejectsEmptyText(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/interview/turn", map[string]string{"text": "   "})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
