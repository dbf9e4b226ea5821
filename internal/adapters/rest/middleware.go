package rest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Strum355/log"
	"github.com/google/uuid"
)

// authedFunc is a handler that runs only for a logged-in user.
type authedFunc func(w http.ResponseWriter, r *http.Request, userID int64)

// authed resolves the Bearer token and adds the user id to the request's
// log fields.
func (h *Handler) authed(next authedFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := h.svc.Authenticate(r.Context(), bearerToken(r))
		if err != nil {
			fail(w, r, err)
			return
		}
		ctx := withLogField(r.Context(), "user_id", userID)
		next(w, r.WithContext(ctx), userID)
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	// EventSource cannot set headers.
	return r.URL.Query().Get("token")
}

func (h *Handler) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hdr := w.Header()
		hdr.Set("Access-Control-Allow-Origin", h.corsOrigin)
		hdr.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		hdr.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		hdr.Add("Vary", "Origin")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRequestLog tags the request context with log fields and logs one
// line per request.
func (h *Handler) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := context.WithValue(r.Context(), log.Key, log.Fields{
			"request_id": uuid.NewString(),
			"method":     r.Method,
			"path":       r.URL.Path,
		})
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		r = r.WithContext(ctx)
		next.ServeHTTP(rec, r)

		ctx = withLogField(ctx, "status", rec.status)
		ctx = withLogField(ctx, "duration_ms", time.Since(start).Milliseconds())
		log.WithContext(ctx).Info("request handled")
	})
}

// withLogField returns ctx with key added to a copy of its log fields.
func withLogField(ctx context.Context, key string, value any) context.Context {
	fields := log.Fields{}
	if existing, ok := ctx.Value(log.Key).(log.Fields); ok {
		for k, v := range existing {
			fields[k] = v
		}
	}
	fields[key] = value
	return context.WithValue(ctx, log.Key, fields)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
