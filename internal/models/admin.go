package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin is an authenticated operator principal. Admin-only domain operations
// are guarded at the HTTP boundary by a verified admin token.
type Admin struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
