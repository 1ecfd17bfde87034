package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/counterbook/counterbook/internal/usecase"
)

// IdempotencyKeyHeader is the header name for idempotency keys.
const IdempotencyKeyHeader = "Idempotency-Key"

// IdempotencyMiddleware replays cached responses for repeated mutating
// requests carrying the same Idempotency-Key.
type IdempotencyMiddleware struct {
	store usecase.IdempotencyStore
	ttl   time.Duration
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware. Keys
// and their cached responses expire after ttl; a non-positive ttl falls
// back to usecase.IdempotencyKeyTTL.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore, ttl time.Duration) *IdempotencyMiddleware {
	if ttl <= 0 {
		ttl = usecase.IdempotencyKeyTTL
	}
	return &IdempotencyMiddleware{store: store, ttl: ttl}
}

// Wrap wraps an http.Handler with idempotency checking.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Only apply to mutating requests
		if r.Method != http.MethodPost && r.Method != http.MethodPut {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(IdempotencyKeyHeader)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}

		exists, cachedResponse, err := m.store.CheckAndSet(r.Context(), key, nil, m.ttl)
		if err != nil {
			http.Error(w, "idempotency check failed", http.StatusInternalServerError)
			return
		}

		if exists && cachedResponse != nil && string(cachedResponse) != "processing" {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Idempotency-Replay", "true")
			w.Write(cachedResponse)
			return
		}

		recorder := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(recorder, r)

		// Only successful outcomes are worth replaying; failures may be
		// retried with the same key.
		if recorder.statusCode >= 200 && recorder.statusCode < 300 {
			m.store.Update(r.Context(), key, recorder.body.Bytes(), m.ttl)
		}
	})
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
