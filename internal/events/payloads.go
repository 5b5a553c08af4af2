// Package events carries domain events over NATS JetStream. Matches publish
// lifecycle events consumed by the live feed; notifications travel the same
// stream and are consumed by the email worker.
package events

import (
	"time"

	"github.com/google/uuid"
)

// MatchEventType identifies a match lifecycle event.
type MatchEventType string

const (
	MatchScheduled      MatchEventType = "match_scheduled"
	MatchStatusChanged  MatchEventType = "match_status_changed"
	MatchResultRecorded MatchEventType = "match_result_recorded"
	MatchDeleted        MatchEventType = "match_deleted"
)

// MatchEvent is the payload broadcast for a fixture change.
type MatchEvent struct {
	EventID   uuid.UUID      `json:"event_id"`
	Type      MatchEventType `json:"type"`
	MatchID   uuid.UUID      `json:"match_id"`
	TeamAID   uuid.UUID      `json:"team_a_id"`
	TeamBID   uuid.UUID      `json:"team_b_id"`
	Status    string         `json:"status"`
	Stage     string         `json:"stage"`
	ScoreA    *int           `json:"score_a,omitempty"`
	ScoreB    *int           `json:"score_b,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}
