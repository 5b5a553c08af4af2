package matches

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sadiqful/tournament/internal/apperrors"
	"github.com/sadiqful/tournament/internal/events"
	"github.com/sadiqful/tournament/internal/models"
)

// MatchesRepository defines what the app layer needs from the repository
type MatchesRepository interface {
	CreateMatch(ctx context.Context, req ScheduleMatchRequest) (*models.Match, error)
	GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error)
	ListMatches(ctx context.Context, filter MatchFilter) ([]models.Match, error)
	ListCompletedMatches(ctx context.Context) ([]models.Match, error)
	UpdateMatch(ctx context.Context, id uuid.UUID, req UpdateMatchRequest) (*models.Match, error)
	RecordResult(ctx context.Context, id uuid.UUID, req RecordResultRequest) (*models.Match, error)
	UpdateMatchStatus(ctx context.Context, id uuid.UUID, status models.MatchStatus) (*models.Match, error)
	DeleteMatch(ctx context.Context, id uuid.UUID) error
	GetMatchStats(ctx context.Context) (*MatchStats, error)
}

// TeamLookup defines what the app layer needs from the team registry
type TeamLookup interface {
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
}

// EventPublisher broadcasts match lifecycle events for the live feed.
// Publishing is best-effort and never blocks a domain transition.
type EventPublisher interface {
	PublishMatchEvent(ctx context.Context, evt events.MatchEvent) error
}

// StatusPolicy decides whether a match may move between two statuses.
// The default allows any transition.
type StatusPolicy func(from, to models.MatchStatus) error

// App handles match scheduling business logic
type App struct {
	repo      MatchesRepository
	teams     TeamLookup
	publisher EventPublisher
	policy    StatusPolicy
}

// NewApp creates a new matches App
func NewApp(repo MatchesRepository, teams TeamLookup, publisher EventPublisher) *App {
	return &App{
		repo:      repo,
		teams:     teams,
		publisher: publisher,
		policy:    func(from, to models.MatchStatus) error { return nil },
	}
}

// ScheduleMatch creates a fixture between two distinct approved teams
func (a *App) ScheduleMatch(ctx context.Context, req ScheduleMatchRequest) (*models.Match, error) {
	if req.Venue == "" {
		return nil, apperrors.Validationf("venue is required")
	}
	if req.MatchDate.IsZero() {
		return nil, apperrors.Validationf("match_date is required")
	}
	if !models.ValidMatchStage(models.MatchStage(req.Stage)) {
		return nil, apperrors.Validationf("unknown stage %q", req.Stage)
	}

	if err := a.validatePairing(ctx, req.TeamAID, req.TeamBID); err != nil {
		return nil, err
	}

	match, err := a.repo.CreateMatch(ctx, req)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("match_id", match.ID.String()).
		Str("team_a", match.TeamAID.String()).
		Str("team_b", match.TeamBID.String()).
		Str("stage", string(match.Stage)).
		Msg("scheduled match")

	a.publish(ctx, events.MatchScheduled, match)
	return match, nil
}

// GetMatch retrieves a match by ID
func (a *App) GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	return a.repo.GetMatch(ctx, id)
}

// ListMatches retrieves matches with optional status/stage filters
func (a *App) ListMatches(ctx context.Context, filter MatchFilter) ([]models.Match, error) {
	if filter.Status != nil && !models.ValidMatchStatus(*filter.Status) {
		return nil, apperrors.Validationf("unknown match status %q", *filter.Status)
	}
	if filter.Stage != nil && !models.ValidMatchStage(*filter.Stage) {
		return nil, apperrors.Validationf("unknown stage %q", *filter.Stage)
	}
	return a.repo.ListMatches(ctx, filter)
}

// ListUpcoming retrieves scheduled matches in date order
func (a *App) ListUpcoming(ctx context.Context) ([]models.Match, error) {
	status := models.MatchStatusScheduled
	return a.repo.ListMatches(ctx, MatchFilter{Status: &status})
}

// ListResults retrieves completed matches, newest first
func (a *App) ListResults(ctx context.Context) ([]models.Match, error) {
	return a.repo.ListCompletedMatches(ctx)
}

// UpdateMatch applies a partial update. When either team reference changes,
// distinctness and approval are re-checked against the effective pair.
func (a *App) UpdateMatch(ctx context.Context, id uuid.UUID, req UpdateMatchRequest) (*models.Match, error) {
	match, err := a.repo.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Stage != nil && !models.ValidMatchStage(models.MatchStage(*req.Stage)) {
		return nil, apperrors.Validationf("unknown stage %q", *req.Stage)
	}

	if req.TeamAID != nil || req.TeamBID != nil {
		teamAID := match.TeamAID
		teamBID := match.TeamBID
		if req.TeamAID != nil {
			teamAID = *req.TeamAID
		}
		if req.TeamBID != nil {
			teamBID = *req.TeamBID
		}
		if err := a.validatePairing(ctx, teamAID, teamBID); err != nil {
			return nil, err
		}
	}

	return a.repo.UpdateMatch(ctx, id, req)
}

// RecordResult records a final score and completes the match. Results are
// write-once: an already-completed match rejects further recordings.
func (a *App) RecordResult(ctx context.Context, id uuid.UUID, req RecordResultRequest) (*models.Match, error) {
	if req.ScoreA < 0 || req.ScoreB < 0 {
		return nil, apperrors.Validationf("scores must be non-negative")
	}

	match, err := a.repo.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if match.Status == models.MatchStatusCompleted {
		return nil, apperrors.Conflictf("match result has already been recorded")
	}

	updated, err := a.repo.RecordResult(ctx, id, req)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("match_id", updated.ID.String()).
		Int("score_a", req.ScoreA).
		Int("score_b", req.ScoreB).
		Msg("recorded match result")

	a.publish(ctx, events.MatchResultRecorded, updated)
	return updated, nil
}

// SetStatus is a direct admin status override
func (a *App) SetStatus(ctx context.Context, id uuid.UUID, status models.MatchStatus) (*models.Match, error) {
	if !models.ValidMatchStatus(status) {
		return nil, apperrors.Validationf("unknown match status %q", status)
	}

	current, err := a.repo.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.policy(current.Status, status); err != nil {
		return nil, err
	}

	match, err := a.repo.UpdateMatchStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("match_id", match.ID.String()).
		Str("from", string(current.Status)).
		Str("to", string(status)).
		Msg("updated match status")

	a.publish(ctx, events.MatchStatusChanged, match)
	return match, nil
}

// DeleteMatch removes a fixture
func (a *App) DeleteMatch(ctx context.Context, id uuid.UUID) error {
	match, err := a.repo.GetMatch(ctx, id)
	if err != nil {
		return err
	}
	if err := a.repo.DeleteMatch(ctx, id); err != nil {
		return err
	}

	a.publish(ctx, events.MatchDeleted, match)
	return nil
}

// GetMatchStats returns aggregate match counts
func (a *App) GetMatchStats(ctx context.Context) (*MatchStats, error) {
	return a.repo.GetMatchStats(ctx)
}

// validatePairing enforces the scheduling gates: both teams exist, are
// distinct, and are approved.
func (a *App) validatePairing(ctx context.Context, teamAID, teamBID uuid.UUID) error {
	if teamAID == teamBID {
		return apperrors.Conflictf("a team cannot play against itself")
	}

	teamA, err := a.teams.GetTeam(ctx, teamAID)
	if err != nil {
		return err
	}
	teamB, err := a.teams.GetTeam(ctx, teamBID)
	if err != nil {
		return err
	}

	if teamA.Status != models.TeamStatusApproved || teamB.Status != models.TeamStatusApproved {
		return apperrors.InvalidStatef("both teams must be approved to schedule a match")
	}
	return nil
}

func (a *App) publish(ctx context.Context, eventType events.MatchEventType, match *models.Match) {
	if a.publisher == nil {
		return
	}
	err := a.publisher.PublishMatchEvent(ctx, events.MatchEvent{
		Type:      eventType,
		MatchID:   match.ID,
		TeamAID:   match.TeamAID,
		TeamBID:   match.TeamBID,
		Status:    string(match.Status),
		Stage:     string(match.Stage),
		ScoreA:    match.ScoreA,
		ScoreB:    match.ScoreB,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		log.Warn().Err(err).Str("match_id", match.ID.String()).Msg("failed to publish match event")
	}
}
