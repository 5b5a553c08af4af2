package teams

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

const teamColumns = `id, name, coach, contact_email, contact_phone, description, logo,
	status, payment_complete, created_at, updated_at`

// Repository implements team data access operations
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new teams repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateTeam creates a new team in pending/unpaid state
func (r *Repository) CreateTeam(ctx context.Context, req RegisterTeamRequest) (*models.Team, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO teams (name, coach, contact_email, contact_phone, description, logo)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+teamColumns,
		req.Name, req.Coach, req.ContactEmail, req.ContactPhone, req.Description, req.Logo)

	team, err := scanTeam(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

// GetTeam retrieves a team by ID
func (r *Repository) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = $1`, id)

	team, err := scanTeam(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFoundf("team %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}

// GetTeamByName retrieves a team by its unique name
func (r *Repository) GetTeamByName(ctx context.Context, name string) (*models.Team, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE name = $1`, name)

	team, err := scanTeam(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFoundf("team %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team by name: %w", err)
	}
	return team, nil
}

// ListTeams retrieves all teams, newest first
func (r *Repository) ListTeams(ctx context.Context) ([]models.Team, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+teamColumns+` FROM teams ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	return collectTeams(rows)
}

// ListTeamsByStatus retrieves teams with the given status in creation order
func (r *Repository) ListTeamsByStatus(ctx context.Context, status models.TeamStatus) ([]models.Team, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE status = $1 ORDER BY created_at ASC`, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams by status: %w", err)
	}
	defer rows.Close()

	return collectTeams(rows)
}

// UpdateTeamStatus sets the approval status of a team
func (r *Repository) UpdateTeamStatus(ctx context.Context, id uuid.UUID, status models.TeamStatus) (*models.Team, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE teams SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+teamColumns, id, status)

	team, err := scanTeam(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFoundf("team %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update team status: %w", err)
	}
	return team, nil
}

// DeleteTeam deletes a team by ID. Roster and payment rows cascade.
func (r *Repository) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFoundf("team %s not found", id)
	}
	return nil
}

// GetTeamStats returns aggregate team counts by status and payment state
func (r *Repository) GetTeamStats(ctx context.Context) (*TeamStats, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT count(*),
			count(*) FILTER (WHERE status = 'approved'),
			count(*) FILTER (WHERE status = 'pending'),
			count(*) FILTER (WHERE status = 'rejected'),
			count(*) FILTER (WHERE payment_complete)
		FROM teams`)

	var stats TeamStats
	if err := row.Scan(&stats.Total, &stats.Approved, &stats.Pending, &stats.Rejected, &stats.PaidTeams); err != nil {
		return nil, fmt.Errorf("failed to get team stats: %w", err)
	}
	return &stats, nil
}

func scanTeam(row pgx.Row) (*models.Team, error) {
	var t models.Team
	err := row.Scan(&t.ID, &t.Name, &t.Coach, &t.ContactEmail, &t.ContactPhone,
		&t.Description, &t.Logo, &t.Status, &t.PaymentComplete, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func collectTeams(rows pgx.Rows) ([]models.Team, error) {
	var teams []models.Team
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, *team)
	}
	return teams, rows.Err()
}
