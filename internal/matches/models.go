package matches

import (
	"time"

	"github.com/google/uuid"

	"github.com/sadiqful/tournament/internal/models"
)

// ScheduleMatchRequest represents the data needed to schedule a fixture
type ScheduleMatchRequest struct {
	TeamAID   uuid.UUID `json:"team_a_id"`
	TeamBID   uuid.UUID `json:"team_b_id"`
	MatchDate time.Time `json:"match_date"`
	Venue     string    `json:"venue"`
	Stage     string    `json:"stage"`
	Notes     *string   `json:"notes,omitempty"`
}

// UpdateMatchRequest represents the fields that can be patched on a fixture
type UpdateMatchRequest struct {
	TeamAID   *uuid.UUID `json:"team_a_id,omitempty"`
	TeamBID   *uuid.UUID `json:"team_b_id,omitempty"`
	MatchDate *time.Time `json:"match_date,omitempty"`
	Venue     *string    `json:"venue,omitempty"`
	Stage     *string    `json:"stage,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

// RecordResultRequest records a final score. Results are write-once.
type RecordResultRequest struct {
	ScoreA int     `json:"score_a"`
	ScoreB int     `json:"score_b"`
	Notes  *string `json:"notes,omitempty"`
}

// UpdateStatusRequest is a direct admin status override
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// MatchFilter represents filtering options for match queries
type MatchFilter struct {
	Status *models.MatchStatus
	Stage  *models.MatchStage
}

// MatchStats represents aggregate match counts
type MatchStats struct {
	Total    int               `json:"total"`
	ByStatus MatchStatusCounts `json:"by_status"`
	ByStage  MatchStageCounts  `json:"by_stage"`
}

// MatchStatusCounts breaks matches down by lifecycle status
type MatchStatusCounts struct {
	Scheduled int `json:"scheduled"`
	Live      int `json:"live"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

// MatchStageCounts breaks matches down by tournament stage
type MatchStageCounts struct {
	GroupStage   int `json:"group_stage"`
	Round16      int `json:"round_16"`
	QuarterFinal int `json:"quarter_final"`
	SemiFinal    int `json:"semi_final"`
	Final        int `json:"final"`
}
