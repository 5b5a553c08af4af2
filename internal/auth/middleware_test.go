package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/sadiqful/tournament/internal/apperrors"
)

type fakeVerifier struct {
	claims *Claims
}

func (v *fakeVerifier) VerifyToken(token string) (*Claims, error) {
	if token != "valid-token" {
		return nil, apperrors.Unauthorizedf("invalid token")
	}
	return v.claims, nil
}

type MiddlewareSuite struct {
	suite.Suite
	mw   *Middleware
	next http.Handler
}

func TestMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareSuite))
}

func (s *MiddlewareSuite) SetupTest() {
	s.mw = NewMiddleware(&fakeVerifier{claims: &Claims{Email: "admin@example.com"}})
	s.next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		s.Require().True(ok)
		s.Equal("admin@example.com", claims.Email)
		w.WriteHeader(http.StatusNoContent)
	})
}

func (s *MiddlewareSuite) do(authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/admin/teams", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	s.mw.RequireAdmin(s.next).ServeHTTP(rec, req)
	return rec
}

func (s *MiddlewareSuite) TestRequireAdmin() {
	s.Run("passes a valid bearer token through with claims", func() {
		rec := s.do("Bearer valid-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("rejects a missing header", func() {
		rec := s.do("")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("rejects a non-bearer scheme", func() {
		rec := s.do("Basic dXNlcjpwYXNz")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("rejects an invalid token", func() {
		rec := s.do("Bearer bogus")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}
