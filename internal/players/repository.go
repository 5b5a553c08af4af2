package players

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sadiqful/tournament/internal/apperrors"
	"github.com/sadiqful/tournament/internal/models"
)

const playerColumns = `id, team_id, name, age, position, jersey_number, photo, created_at, updated_at`

// Repository implements player data access operations
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new players repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreatePlayer adds a player to a team roster
func (r *Repository) CreatePlayer(ctx context.Context, req CreatePlayerRequest) (*models.Player, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO players (team_id, name, age, position, jersey_number, photo)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+playerColumns,
		req.TeamID, req.Name, req.Age, req.Position, req.JerseyNumber, req.Photo)

	player, err := scanPlayer(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

// GetPlayer retrieves a player by ID
func (r *Repository) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1`, id)

	player, err := scanPlayer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFoundf("player %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

// GetPlayerByTeamAndJersey retrieves the player wearing a jersey number in one team
func (r *Repository) GetPlayerByTeamAndJersey(ctx context.Context, teamID uuid.UUID, jerseyNumber int) (*models.Player, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+playerColumns+` FROM players WHERE team_id = $1 AND jersey_number = $2`,
		teamID, jerseyNumber)

	player, err := scanPlayer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFoundf("no player wears %d for team %s", jerseyNumber, teamID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player by jersey: %w", err)
	}
	return player, nil
}

// ListPlayersByTeam retrieves a team roster ordered by jersey number
func (r *Repository) ListPlayersByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Player, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+playerColumns+` FROM players WHERE team_id = $1 ORDER BY jersey_number ASC`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players by team: %w", err)
	}
	defer rows.Close()

	return collectPlayers(rows)
}

// ListPlayersOfApprovedTeams retrieves players whose team is approved
func (r *Repository) ListPlayersOfApprovedTeams(ctx context.Context) ([]models.Player, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.team_id, p.name, p.age, p.position, p.jersey_number, p.photo, p.created_at, p.updated_at
		FROM players p
		JOIN teams t ON t.id = p.team_id
		WHERE t.status = 'approved'
		ORDER BY p.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	return collectPlayers(rows)
}

// CountPlayersByTeam returns the current roster size of a team
func (r *Repository) CountPlayersByTeam(ctx context.Context, teamID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM players WHERE team_id = $1`, teamID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}

// UpdatePlayer applies a partial update to a player
func (r *Repository) UpdatePlayer(ctx context.Context, id uuid.UUID, req UpdatePlayerRequest) (*models.Player, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE players SET
			name = COALESCE($2, name),
			age = COALESCE($3, age),
			position = COALESCE($4, position),
			jersey_number = COALESCE($5, jersey_number),
			photo = COALESCE($6, photo),
			updated_at = now()
		WHERE id = $1
		RETURNING `+playerColumns,
		id, req.Name, req.Age, req.Position, req.JerseyNumber, req.Photo)

	player, err := scanPlayer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFoundf("player %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}
	return player, nil
}

// DeletePlayer removes a player from its roster
func (r *Repository) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFoundf("player %s not found", id)
	}
	return nil
}

// GetPlayerStats returns aggregate player counts by position
func (r *Repository) GetPlayerStats(ctx context.Context) (*PlayerStats, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT count(*),
			count(*) FILTER (WHERE position = 'goalkeeper'),
			count(*) FILTER (WHERE position = 'defender'),
			count(*) FILTER (WHERE position = 'midfielder'),
			count(*) FILTER (WHERE position = 'forward')
		FROM players`)

	var stats PlayerStats
	if err := row.Scan(&stats.Total, &stats.Goalkeepers, &stats.Defenders, &stats.Midfielders, &stats.Forwards); err != nil {
		return nil, fmt.Errorf("failed to get player stats: %w", err)
	}
	return &stats, nil
}

func scanPlayer(row pgx.Row) (*models.Player, error) {
	var p models.Player
	err := row.Scan(&p.ID, &p.TeamID, &p.Name, &p.Age, &p.Position,
		&p.JerseyNumber, &p.Photo, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPlayers(rows pgx.Rows) ([]models.Player, error) {
	var players []models.Player
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, *player)
	}
	return players, rows.Err()
}
