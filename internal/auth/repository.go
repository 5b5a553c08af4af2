package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sadiqful/tournament/internal/apperrors"
	"github.com/sadiqful/tournament/internal/models"
)

// Repository implements admin data access operations
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new auth repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetAdminByEmail retrieves an admin by email
func (r *Repository) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, is_active, created_at FROM admins WHERE email = $1`, email)

	var admin models.Admin
	err := row.Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.IsActive, &admin.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFoundf("admin %q not found", email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &admin, nil
}

// CreateAdmin stores a new admin with a pre-hashed password
func (r *Repository) CreateAdmin(ctx context.Context, email, passwordHash string) (*models.Admin, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO admins (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, email, password_hash, is_active, created_at`, email, passwordHash)

	var admin models.Admin
	err := row.Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.IsActive, &admin.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return &admin, nil
}
