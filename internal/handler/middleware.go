package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/civreg/civreg/internal/service"
)

type contextKey string

const principalContextKey contextKey = "principal"

// Principal is the identity decoded from a verified bearer token.
type Principal struct {
	UserID int64
	Role   string
}

// PrincipalFromContext extracts the authenticated principal from the request
// context. Returns nil for unauthenticated requests.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalContextKey).(*Principal)
	return p
}

// RequireAuth is middleware that gates routes behind a valid bearer token.
// The token is read from "Authorization: Bearer <token>"; the Bearer prefix
// is mandatory on both sides of the wire. A missing token is rejected with
// 401, a present-but-invalid (expired, tampered, unparseable) token with 400.
// The gate has no opinion on roles; it only answers "is there a valid token".
func RequireAuth(tokens *service.TokenService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "Access denied")
			return
		}

		userID, role, err := tokens.Verify(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), principalContextKey, &Principal{UserID: userID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger logs every request with a generated request id, method, path,
// status and duration.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		slog.Info("request",
			"request_id", uuid.NewString(),
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// CORS answers preflight requests and allows cross-origin calls from the
// browser client. The original deployment served the SPA from a different
// origin than the API.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// SecurityHeaders sets conservative defaults on every response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")

		next.ServeHTTP(w, r)
	})
}
