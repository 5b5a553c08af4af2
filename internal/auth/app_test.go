package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/sadiqful/tournament/internal/apperrors"
	"github.com/sadiqful/tournament/internal/models"
)

// fakeAdminsRepo is an in-memory AdminsRepository.
type fakeAdminsRepo struct {
	admins map[string]*models.Admin
}

func newFakeAdminsRepo() *fakeAdminsRepo {
	return &fakeAdminsRepo{admins: make(map[string]*models.Admin)}
}

func (r *fakeAdminsRepo) GetAdminByEmail(_ context.Context, email string) (*models.Admin, error) {
	admin, ok := r.admins[email]
	if !ok {
		return nil, apperrors.NotFoundf("admin %q not found", email)
	}
	return admin, nil
}

func (r *fakeAdminsRepo) CreateAdmin(_ context.Context, email, passwordHash string) (*models.Admin, error) {
	admin := &models.Admin{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	r.admins[email] = admin
	return admin, nil
}

type AuthAppSuite struct {
	suite.Suite
	repo  *fakeAdminsRepo
	clock *clockwork.FakeClock
	app   *App
	ctx   context.Context
}

func TestAuthAppSuite(t *testing.T) {
	suite.Run(t, new(AuthAppSuite))
}

func (s *AuthAppSuite) SetupTest() {
	s.repo = newFakeAdminsRepo()
	s.clock = clockwork.NewFakeClock()
	s.app = NewApp(s.repo, "test-secret").WithClock(s.clock)
	s.ctx = context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	s.Require().NoError(err)
	s.repo.admins["admin@example.com"] = &models.Admin{
		ID:           uuid.New(),
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		IsActive:     true,
	}
}

func (s *AuthAppSuite) TestLogin() {
	s.Run("issues a verifiable token for valid credentials", func() {
		resp, err := s.app.Login(s.ctx, LoginRequest{Email: "admin@example.com", Password: "correct horse"})
		s.Require().NoError(err)
		s.Equal("Bearer", resp.TokenType)
		s.NotEmpty(resp.AccessToken)

		claims, err := s.app.VerifyToken(resp.AccessToken)
		s.Require().NoError(err)
		s.Equal("admin@example.com", claims.Email)
	})

	s.Run("email lookup is case-insensitive", func() {
		_, err := s.app.Login(s.ctx, LoginRequest{Email: "Admin@Example.COM", Password: "correct horse"})
		s.Require().NoError(err)
	})

	s.Run("rejects a wrong password", func() {
		_, err := s.app.Login(s.ctx, LoginRequest{Email: "admin@example.com", Password: "wrong"})
		s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	})

	s.Run("rejects an unknown email", func() {
		_, err := s.app.Login(s.ctx, LoginRequest{Email: "ghost@example.com", Password: "whatever"})
		s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	})

	s.Run("rejects an inactive admin", func() {
		s.repo.admins["admin@example.com"].IsActive = false
		defer func() { s.repo.admins["admin@example.com"].IsActive = true }()

		_, err := s.app.Login(s.ctx, LoginRequest{Email: "admin@example.com", Password: "correct horse"})
		s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	})

	s.Run("rejects missing credentials", func() {
		_, err := s.app.Login(s.ctx, LoginRequest{})
		s.Require().ErrorIs(err, apperrors.ErrValidation)
	})
}

func (s *AuthAppSuite) TestVerifyToken() {
	s.Run("rejects an expired token", func() {
		resp, err := s.app.Login(s.ctx, LoginRequest{Email: "admin@example.com", Password: "correct horse"})
		s.Require().NoError(err)

		s.clock.Advance(TokenTTL + time.Minute)
		_, err = s.app.VerifyToken(resp.AccessToken)
		s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	})

	s.Run("rejects a token signed with another secret", func() {
		other := NewApp(s.repo, "other-secret").WithClock(s.clock)
		resp, err := other.Login(s.ctx, LoginRequest{Email: "admin@example.com", Password: "correct horse"})
		s.Require().NoError(err)

		_, err = s.app.VerifyToken(resp.AccessToken)
		s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	})

	s.Run("rejects garbage", func() {
		_, err := s.app.VerifyToken("not.a.token")
		s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	})
}

func (s *AuthAppSuite) TestCreateAdmin() {
	s.Run("hashes the password", func() {
		admin, err := s.app.CreateAdmin(s.ctx, "new@example.com", "long enough password")
		s.Require().NoError(err)
		s.NotEqual("long enough password", admin.PasswordHash)
		s.NoError(bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("long enough password")))
	})

	s.Run("rejects a short password", func() {
		_, err := s.app.CreateAdmin(s.ctx, "weak@example.com", "short")
		s.Require().ErrorIs(err, apperrors.ErrValidation)
	})
}
