package httpadapter

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/voicehire/interview-api/internal/domain"
	"github.com/voicehire/interview-api/internal/observability"
)

type ctxKey string

const ctxKeyIdentity ctxKey = "identity"

// withAuth resolves the bearer credential and stores the identity in the
// request context. Unauthenticated requests never reach the handler.
func (s *Server) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		identity, err := s.auth.Identify(r.Context(), token)
		if err != nil {
			writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyIdentity, identity)))
	}
}

func identityFrom(ctx context.Context) *domain.Identity {
	identity, _ := ctx.Value(ctxKeyIdentity).(*domain.Identity)
	if identity == nil {
		// withAuth guarantees presence; this is a wiring bug, not user error.
		return &domain.Identity{}
	}
	return identity
}

// withLogging attaches a request id and logs every request.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := observability.WithRequestID(r.Context(), uuid.NewString())

		next.ServeHTTP(w, r.WithContext(ctx))

		observability.LoggerFromContext(ctx).Info("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	})
}

// withCORS adds basic CORS headers to allow calls from a web front-end.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withMetrics records request count and latency per logical endpoint.
func withMetrics(endpoint string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		observability.RecordHTTPRequest(endpoint, r.Method, strconv.Itoa(wrapped.status), time.Since(start))
	})
}

// statusRecorder captures the response status code for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// chainMiddlewares applies multiple middlewares in order.
func chainMiddlewares(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
