package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/sadiqful/tournament/internal/apperrors"
	"github.com/sadiqful/tournament/internal/models"
)

const (
	// TokenTTL is how long an issued admin token stays valid.
	TokenTTL = 24 * time.Hour

	bcryptCost = 12
)

// AdminsRepository defines the data access interface for auth operations
type AdminsRepository interface {
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
	CreateAdmin(ctx context.Context, email, passwordHash string) (*models.Admin, error)
}

// Claims is the JWT payload issued to admins.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// App implements admin authentication
type App struct {
	repo   AdminsRepository
	secret []byte
	clock  clockwork.Clock
}

// NewApp creates a new auth App
func NewApp(repo AdminsRepository, secret string) *App {
	return &App{repo: repo, secret: []byte(secret), clock: clockwork.NewRealClock()}
}

// WithClock overrides the clock used for token issuance and verification
func (a *App) WithClock(clock clockwork.Clock) *App {
	a.clock = clock
	return a
}

// Login verifies credentials and issues a signed bearer token
func (a *App) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return nil, apperrors.Validationf("email and password are required")
	}

	admin, err := a.repo.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorizedf("invalid credentials")
		}
		return nil, err
	}
	if !admin.IsActive {
		return nil, apperrors.Unauthorizedf("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		return nil, apperrors.Unauthorizedf("invalid credentials")
	}

	token, err := a.issueToken(admin)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	log.Info().Str("admin_id", admin.ID.String()).Msg("admin logged in")

	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(TokenTTL.Seconds()),
	}, nil
}

// CreateAdmin hashes the password and stores a new admin principal
func (a *App) CreateAdmin(ctx context.Context, email, password string) (*models.Admin, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, apperrors.Validationf("email is required")
	}
	if len(password) < 8 {
		return nil, apperrors.Validationf("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return a.repo.CreateAdmin(ctx, email, string(hash))
}

// VerifyToken parses and validates a bearer token, returning its claims
func (a *App) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithTimeFunc(a.clock.Now))
	if err != nil || !token.Valid {
		return nil, apperrors.Unauthorizedf("invalid token")
	}
	return claims, nil
}

func (a *App) issueToken(admin *models.Admin) (string, error) {
	now := a.clock.Now()
	claims := Claims{
		Email: admin.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// AdminID returns the subject claim parsed as a UUID
func (c *Claims) AdminID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}
