package models

import (
	"time"

	"github.com/google/uuid"
)

// MatchStatus is the lifecycle state of a fixture.
type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusLive      MatchStatus = "live"
	MatchStatusCompleted MatchStatus = "completed"
	MatchStatusCancelled MatchStatus = "cancelled"
)

// ValidMatchStatus reports whether s is a known match status.
func ValidMatchStatus(s MatchStatus) bool {
	switch s {
	case MatchStatusScheduled, MatchStatusLive, MatchStatusCompleted, MatchStatusCancelled:
		return true
	}
	return false
}

// MatchStage is the tournament phase a fixture belongs to.
type MatchStage string

const (
	StageGroup        MatchStage = "group_stage"
	StageRound16      MatchStage = "round_16"
	StageQuarterFinal MatchStage = "quarter_final"
	StageSemiFinal    MatchStage = "semi_final"
	StageFinal        MatchStage = "final"
)

// ValidMatchStage reports whether s is a known stage.
func ValidMatchStage(s MatchStage) bool {
	switch s {
	case StageGroup, StageRound16, StageQuarterFinal, StageSemiFinal, StageFinal:
		return true
	}
	return false
}

// Match represents a fixture between two approved teams. Scores stay nil
// until a result is recorded, which also completes the match.
type Match struct {
	ID        uuid.UUID   `json:"id"`
	TeamAID   uuid.UUID   `json:"team_a_id"`
	TeamBID   uuid.UUID   `json:"team_b_id"`
	MatchDate time.Time   `json:"match_date"`
	Venue     string      `json:"venue"`
	Stage     MatchStage  `json:"stage"`
	Status    MatchStatus `json:"status"`
	ScoreA    *int        `json:"score_a,omitempty"`
	ScoreB    *int        `json:"score_b,omitempty"`
	Notes     *string     `json:"notes,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
