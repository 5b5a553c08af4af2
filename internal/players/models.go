package players

import "github.com/google/uuid"

// CreatePlayerRequest represents the data needed to add a roster player
type CreatePlayerRequest struct {
	TeamID       uuid.UUID `json:"team_id"`
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	Position     string    `json:"position"`
	JerseyNumber int       `json:"jersey_number"`
	Photo        *string   `json:"photo,omitempty"`
}

// BulkPlayerEntry is one player inside a bulk roster request
type BulkPlayerEntry struct {
	Name         string  `json:"name"`
	Age          int     `json:"age"`
	Position     string  `json:"position"`
	JerseyNumber int     `json:"jersey_number"`
	Photo        *string `json:"photo,omitempty"`
}

// CreateBulkPlayersRequest adds several players to one team at once
type CreateBulkPlayersRequest struct {
	TeamID  uuid.UUID         `json:"team_id"`
	Players []BulkPlayerEntry `json:"players"`
}

// UpdatePlayerRequest represents the data that can be updated for a player
type UpdatePlayerRequest struct {
	Name         *string `json:"name,omitempty"`
	Age          *int    `json:"age,omitempty"`
	Position     *string `json:"position,omitempty"`
	JerseyNumber *int    `json:"jersey_number,omitempty"`
	Photo        *string `json:"photo,omitempty"`
}

// PlayerStats represents aggregate player counts by position
type PlayerStats struct {
	Total       int `json:"total"`
	Goalkeepers int `json:"goalkeepers"`
	Defenders   int `json:"defenders"`
	Midfielders int `json:"midfielders"`
	Forwards    int `json:"forwards"`
}
