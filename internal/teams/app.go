package teams

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sadiqful/tournament/internal/apperrors"
	"github.com/sadiqful/tournament/internal/models"
	"github.com/sadiqful/tournament/internal/notifications"
)

// TeamsRepository defines what the app layer needs from the repository
type TeamsRepository interface {
	CreateTeam(ctx context.Context, req RegisterTeamRequest) (*models.Team, error)
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	GetTeamByName(ctx context.Context, name string) (*models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	ListTeamsByStatus(ctx context.Context, status models.TeamStatus) ([]models.Team, error)
	UpdateTeamStatus(ctx context.Context, id uuid.UUID, status models.TeamStatus) (*models.Team, error)
	DeleteTeam(ctx context.Context, id uuid.UUID) error
	GetTeamStats(ctx context.Context) (*TeamStats, error)
}

// StatusPolicy decides whether a team may move between two approval states.
// The default allows any transition; tightening the rules later is a matter
// of swapping this single function.
type StatusPolicy func(from, to models.TeamStatus) error

// App handles team registry business logic
type App struct {
	repo       TeamsRepository
	dispatcher notifications.Dispatcher
	policy     StatusPolicy
}

// NewApp creates a new teams App
func NewApp(repo TeamsRepository, dispatcher notifications.Dispatcher) *App {
	return &App{
		repo:       repo,
		dispatcher: dispatcher,
		policy:     func(from, to models.TeamStatus) error { return nil },
	}
}

// RegisterTeam registers a new team in pending/unpaid state
func (a *App) RegisterTeam(ctx context.Context, req RegisterTeamRequest) (*models.Team, error) {
	if err := validateRegisterTeamRequest(req); err != nil {
		return nil, err
	}

	existing, err := a.repo.GetTeamByName(ctx, req.Name)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check team name: %w", err)
	}
	if existing != nil {
		return nil, apperrors.Conflictf("team name %q already exists", req.Name)
	}

	team, err := a.repo.CreateTeam(ctx, req)
	if err != nil {
		return nil, err
	}

	log.Info().Str("team_id", team.ID.String()).Str("name", team.Name).Msg("registered team")

	a.notify(ctx, notifications.Notification{
		Kind:      notifications.KindRegistrationReceived,
		Recipient: team.ContactEmail,
		Data: map[string]string{
			"team_name":       team.Name,
			"registration_id": team.ID.String(),
		},
	})

	return team, nil
}

// SetStatus moves a team between approval states
func (a *App) SetStatus(ctx context.Context, id uuid.UUID, status models.TeamStatus) (*models.Team, error) {
	if !models.ValidTeamStatus(status) {
		return nil, apperrors.Validationf("unknown team status %q", status)
	}

	current, err := a.repo.GetTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.policy(current.Status, status); err != nil {
		return nil, err
	}

	team, err := a.repo.UpdateTeamStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("team_id", team.ID.String()).
		Str("from", string(current.Status)).
		Str("to", string(status)).
		Msg("updated team status")

	switch status {
	case models.TeamStatusApproved:
		a.notify(ctx, notifications.Notification{
			Kind:      notifications.KindTeamApproved,
			Recipient: team.ContactEmail,
			Data:      map[string]string{"team_name": team.Name},
		})
	case models.TeamStatusRejected:
		a.notify(ctx, notifications.Notification{
			Kind:      notifications.KindTeamRejected,
			Recipient: team.ContactEmail,
			Data:      map[string]string{"team_name": team.Name},
		})
	}

	return team, nil
}

// GetTeam retrieves a team by ID
func (a *App) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	return a.repo.GetTeam(ctx, id)
}

// ListTeams retrieves teams, optionally filtered by status
func (a *App) ListTeams(ctx context.Context, status *models.TeamStatus) ([]models.Team, error) {
	if status == nil {
		return a.repo.ListTeams(ctx)
	}
	if !models.ValidTeamStatus(*status) {
		return nil, apperrors.Validationf("unknown team status %q", *status)
	}
	return a.repo.ListTeamsByStatus(ctx, *status)
}

// ListApprovedTeams retrieves the public team listing
func (a *App) ListApprovedTeams(ctx context.Context) ([]models.Team, error) {
	return a.repo.ListTeamsByStatus(ctx, models.TeamStatusApproved)
}

// DeleteTeam deletes a team; roster and payment rows cascade with it
func (a *App) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	team, err := a.repo.GetTeam(ctx, id)
	if err != nil {
		return err
	}

	if err := a.repo.DeleteTeam(ctx, id); err != nil {
		return err
	}

	log.Info().Str("team_id", id.String()).Str("name", team.Name).Msg("deleted team")
	return nil
}

// GetTeamStats returns aggregate team counts
func (a *App) GetTeamStats(ctx context.Context) (*TeamStats, error) {
	return a.repo.GetTeamStats(ctx)
}

// notify dispatches best-effort; failures are logged, never propagated.
func (a *App) notify(ctx context.Context, n notifications.Notification) {
	if a.dispatcher == nil {
		return
	}
	if err := a.dispatcher.Notify(ctx, n); err != nil {
		log.Warn().Err(err).Str("kind", string(n.Kind)).Msg("failed to dispatch notification")
	}
}

func validateRegisterTeamRequest(req RegisterTeamRequest) error {
	if req.Name == "" {
		return apperrors.Validationf("name is required")
	}
	if req.Coach == "" {
		return apperrors.Validationf("coach is required")
	}
	if req.ContactEmail == "" {
		return apperrors.Validationf("contact_email is required")
	}
	if req.ContactPhone == "" {
		return apperrors.Validationf("contact_phone is required")
	}
	return nil
}
