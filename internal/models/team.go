package models

import (
	"time"

	"github.com/google/uuid"
)

// TeamStatus is the admin approval state of a registered team.
type TeamStatus string

const (
	TeamStatusPending  TeamStatus = "pending"
	TeamStatusApproved TeamStatus = "approved"
	TeamStatusRejected TeamStatus = "rejected"
)

// ValidTeamStatus reports whether s is a known team status.
func ValidTeamStatus(s TeamStatus) bool {
	switch s {
	case TeamStatusPending, TeamStatusApproved, TeamStatusRejected:
		return true
	}
	return false
}

// Team represents a registered tournament team.
type Team struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Coach           string     `json:"coach"`
	ContactEmail    string     `json:"contact_email"`
	ContactPhone    string     `json:"contact_phone"`
	Description     *string    `json:"description,omitempty"`
	Logo            *string    `json:"logo,omitempty"`
	Status          TeamStatus `json:"status"`
	PaymentComplete bool       `json:"payment_complete"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
