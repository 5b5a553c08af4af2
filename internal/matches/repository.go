package matches

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

const matchColumns = `id, team_a_id, team_b_id, match_date, venue, stage, status,
	score_a, score_b, notes, created_at, updated_at`

// Repository implements match data access operations
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new matches repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateMatch creates a scheduled fixture
func (r *Repository) CreateMatch(ctx context.Context, req ScheduleMatchRequest) (*models.Match, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO matches (team_a_id, team_b_id, match_date, venue, stage, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+matchColumns,
		req.TeamAID, req.TeamBID, req.MatchDate, req.Venue, req.Stage, req.Notes)

	match, err := scanMatch(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return match, nil
}

// GetMatch retrieves a match by ID
func (r *Repository) GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id)

	match, err := scanMatch(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFoundf("match %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return match, nil
}

// ListMatches retrieves matches ordered by date, optionally filtered
func (r *Repository) ListMatches(ctx context.Context, filter MatchFilter) ([]models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE ($1::text IS NULL OR status = $1)
		AND ($2::text IS NULL OR stage = $2) ORDER BY match_date ASC`

	rows, err := r.pool.Query(ctx, query, filter.Status, filter.Stage)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	return collectMatches(rows)
}

// ListCompletedMatches retrieves completed matches, newest first
func (r *Repository) ListCompletedMatches(ctx context.Context) ([]models.Match, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE status = 'completed' ORDER BY match_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed matches: %w", err)
	}
	defer rows.Close()

	return collectMatches(rows)
}

// UpdateMatch applies a partial update to a fixture
func (r *Repository) UpdateMatch(ctx context.Context, id uuid.UUID, req UpdateMatchRequest) (*models.Match, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE matches SET
			team_a_id = COALESCE($2, team_a_id),
			team_b_id = COALESCE($3, team_b_id),
			match_date = COALESCE($4, match_date),
			venue = COALESCE($5, venue),
			stage = COALESCE($6, stage),
			notes = COALESCE($7, notes),
			updated_at = now()
		WHERE id = $1
		RETURNING `+matchColumns,
		id, req.TeamAID, req.TeamBID, req.MatchDate, req.Venue, req.Stage, req.Notes)

	match, err := scanMatch(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFoundf("match %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}
	return match, nil
}

// RecordResult sets the final score and completes the match. The update is
// guarded on status so a result can never be recorded twice: zero affected
// rows on an existing match means it completed concurrently.
func (r *Repository) RecordResult(ctx context.Context, id uuid.UUID, req RecordResultRequest) (*models.Match, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE matches SET
			score_a = $2,
			score_b = $3,
			notes = COALESCE($4, notes),
			status = 'completed',
			updated_at = now()
		WHERE id = $1 AND status <> 'completed'
		RETURNING `+matchColumns,
		id, req.ScoreA, req.ScoreB, req.Notes)

	match, err := scanMatch(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.Conflictf("match result has already been recorded")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to record result: %w", err)
	}
	return match, nil
}

// UpdateMatchStatus sets the lifecycle status of a match
func (r *Repository) UpdateMatchStatus(ctx context.Context, id uuid.UUID, status models.MatchStatus) (*models.Match, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE matches SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+matchColumns, id, status)

	match, err := scanMatch(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFoundf("match %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update match status: %w", err)
	}
	return match, nil
}

// DeleteMatch removes a fixture
func (r *Repository) DeleteMatch(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFoundf("match %s not found", id)
	}
	return nil
}

// GetMatchStats returns aggregate match counts by status and stage
func (r *Repository) GetMatchStats(ctx context.Context) (*MatchStats, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT count(*),
			count(*) FILTER (WHERE status = 'scheduled'),
			count(*) FILTER (WHERE status = 'live'),
			count(*) FILTER (WHERE status = 'completed'),
			count(*) FILTER (WHERE status = 'cancelled'),
			count(*) FILTER (WHERE stage = 'group_stage'),
			count(*) FILTER (WHERE stage = 'round_16'),
			count(*) FILTER (WHERE stage = 'quarter_final'),
			count(*) FILTER (WHERE stage = 'semi_final'),
			count(*) FILTER (WHERE stage = 'final')
		FROM matches`)

	var stats MatchStats
	err := row.Scan(&stats.Total,
		&stats.ByStatus.Scheduled, &stats.ByStatus.Live, &stats.ByStatus.Completed, &stats.ByStatus.Cancelled,
		&stats.ByStage.GroupStage, &stats.ByStage.Round16, &stats.ByStage.QuarterFinal,
		&stats.ByStage.SemiFinal, &stats.ByStage.Final)
	if err != nil {
		return nil, fmt.Errorf("failed to get match stats: %w", err)
	}
	return &stats, nil
}

func scanMatch(row pgx.Row) (*models.Match, error) {
	var m models.Match
	err := row.Scan(&m.ID, &m.TeamAID, &m.TeamBID, &m.MatchDate, &m.Venue, &m.Stage,
		&m.Status, &m.ScoreA, &m.ScoreB, &m.Notes, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func collectMatches(rows pgx.Rows) ([]models.Match, error) {
	var matches []models.Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, *match)
	}
	return matches, rows.Err()
}
