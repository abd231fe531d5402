package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/travelease/travelease/internal/auth"
	"github.com/travelease/travelease/internal/metrics"
)

// AuthConfig holds dependencies for the auth middleware.
type AuthConfig struct {
	Verifier auth.Verifier
	Logger   *slog.Logger
	Metrics  metrics.Recorder
}

// RequireAuth returns a middleware that authenticates requests. It
// extracts the bearer credential, resolves it to a verified subject via
// the configured Verifier, and injects the identity into the request
// context. Every failure produces the same 401 body so callers cannot
// tell a missing credential from an expired or forged one.
func RequireAuth(cfg AuthConfig) func(http.Handler) http.Handler {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential := extractBearer(r)
			if credential == "" {
				logAuthFailure(cfg.Logger, r, "missing_credential")
				recorder.IncAuthFailure()
				writeAuthError(w)
				return
			}

			email, err := cfg.Verifier.Verify(r.Context(), credential)
			if err != nil {
				logAuthFailure(cfg.Logger, r, "verification_failed")
				recorder.IncAuthFailure()
				writeAuthError(w)
				return
			}

			ctx := auth.ContextWithIdentity(r.Context(), &auth.Identity{Email: email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearer pulls the credential from the Authorization header.
func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func logAuthFailure(logger *slog.Logger, r *http.Request, reason string) {
	logger.Warn("authentication failed",
		slog.String("reason", reason),
		slog.String("ip", r.RemoteAddr),
		slog.String("endpoint", r.Method+" "+r.URL.Path),
		slog.String("request_id", GetRequestID(r.Context())),
	)
}

// writeAuthError writes the uniform 401 response. The body never varies
// with the failure reason.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized access","code":"UNAUTHORIZED"}`))
}
