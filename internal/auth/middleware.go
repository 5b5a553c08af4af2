package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/sadiqful/tournament/internal/apperrors"
	"github.com/sadiqful/tournament/internal/httpx"
)

type contextKey string

const claimsKey contextKey = "auth.claims"

// TokenVerifier validates a bearer token and returns its claims
type TokenVerifier interface {
	VerifyToken(tokenString string) (*Claims, error)
}

// Middleware guards admin routes with bearer token verification
type Middleware struct {
	verifier TokenVerifier
}

// NewMiddleware creates a new auth middleware
func NewMiddleware(verifier TokenVerifier) *Middleware {
	return &Middleware{verifier: verifier}
}

// RequireAdmin rejects requests without a valid admin bearer token
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			httpx.WriteError(w, apperrors.Unauthorizedf("missing bearer token"))
			return
		}

		claims, err := m.verifier.VerifyToken(token)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

// ClaimsFromContext returns the verified claims set by RequireAdmin, if any
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}
