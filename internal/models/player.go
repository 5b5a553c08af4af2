package models

import (
	"time"

	"github.com/google/uuid"
)

// PlayerPosition is the on-pitch position of a roster player.
type PlayerPosition string

const (
	PositionGoalkeeper PlayerPosition = "goalkeeper"
	PositionDefender   PlayerPosition = "defender"
	PositionMidfielder PlayerPosition = "midfielder"
	PositionForward    PlayerPosition = "forward"
)

// ValidPlayerPosition reports whether p is a known position.
func ValidPlayerPosition(p PlayerPosition) bool {
	switch p {
	case PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionForward:
		return true
	}
	return false
}

// Roster constraints.
const (
	MaxRosterSize = 15
	MinPlayerAge  = 16
	MaxPlayerAge  = 45
)

// Player represents a roster member of a team. Jersey numbers are unique
// within the owning team only.
type Player struct {
	ID           uuid.UUID      `json:"id"`
	TeamID       uuid.UUID      `json:"team_id"`
	Name         string         `json:"name"`
	Age          int            `json:"age"`
	Position     PlayerPosition `json:"position"`
	JerseyNumber int            `json:"jersey_number"`
	Photo        *string        `json:"photo,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
