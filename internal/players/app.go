package players

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sadiqful/tournament/internal/apperrors"
	"github.com/sadiqful/tournament/internal/models"
)

// PlayersRepository defines what the app layer needs from the repository
type PlayersRepository interface {
	CreatePlayer(ctx context.Context, req CreatePlayerRequest) (*models.Player, error)
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
	GetPlayerByTeamAndJersey(ctx context.Context, teamID uuid.UUID, jerseyNumber int) (*models.Player, error)
	ListPlayersByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Player, error)
	ListPlayersOfApprovedTeams(ctx context.Context) ([]models.Player, error)
	CountPlayersByTeam(ctx context.Context, teamID uuid.UUID) (int, error)
	UpdatePlayer(ctx context.Context, id uuid.UUID, req UpdatePlayerRequest) (*models.Player, error)
	DeletePlayer(ctx context.Context, id uuid.UUID) error
	GetPlayerStats(ctx context.Context) (*PlayerStats, error)
}

// TeamLookup defines what the app layer needs from the team registry
type TeamLookup interface {
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
}

// App handles roster business logic
type App struct {
	repo  PlayersRepository
	teams TeamLookup
}

// NewApp creates a new players App
func NewApp(repo PlayersRepository, teams TeamLookup) *App {
	return &App{repo: repo, teams: teams}
}

// AddPlayer adds one player to a team roster
func (a *App) AddPlayer(ctx context.Context, req CreatePlayerRequest) (*models.Player, error) {
	if err := validatePlayerFields(req.Name, req.Age, req.Position, req.JerseyNumber); err != nil {
		return nil, err
	}

	if _, err := a.teams.GetTeam(ctx, req.TeamID); err != nil {
		return nil, err
	}

	if err := a.checkJerseyFree(ctx, req.TeamID, req.JerseyNumber); err != nil {
		return nil, err
	}

	count, err := a.repo.CountPlayersByTeam(ctx, req.TeamID)
	if err != nil {
		return nil, err
	}
	if count >= models.MaxRosterSize {
		return nil, apperrors.Conflictf("team already has maximum number of players (%d)", models.MaxRosterSize)
	}

	player, err := a.repo.CreatePlayer(ctx, req)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("player_id", player.ID.String()).
		Str("team_id", req.TeamID.String()).
		Int("jersey", player.JerseyNumber).
		Msg("added player")

	return player, nil
}

// AddPlayersBulk adds several players to one team, validating the whole batch first
func (a *App) AddPlayersBulk(ctx context.Context, req CreateBulkPlayersRequest) ([]models.Player, error) {
	if len(req.Players) == 0 {
		return nil, apperrors.Validationf("players list is empty")
	}

	if _, err := a.teams.GetTeam(ctx, req.TeamID); err != nil {
		return nil, err
	}

	count, err := a.repo.CountPlayersByTeam(ctx, req.TeamID)
	if err != nil {
		return nil, err
	}
	if count+len(req.Players) > models.MaxRosterSize {
		return nil, apperrors.Conflictf("adding %d players would exceed the roster limit of %d",
			len(req.Players), models.MaxRosterSize)
	}

	seen := make(map[int]bool, len(req.Players))
	for _, entry := range req.Players {
		if err := validatePlayerFields(entry.Name, entry.Age, entry.Position, entry.JerseyNumber); err != nil {
			return nil, err
		}
		if seen[entry.JerseyNumber] {
			return nil, apperrors.Conflictf("duplicate jersey number %d in request", entry.JerseyNumber)
		}
		seen[entry.JerseyNumber] = true

		if err := a.checkJerseyFree(ctx, req.TeamID, entry.JerseyNumber); err != nil {
			return nil, err
		}
	}

	created := make([]models.Player, 0, len(req.Players))
	for _, entry := range req.Players {
		player, err := a.repo.CreatePlayer(ctx, CreatePlayerRequest{
			TeamID:       req.TeamID,
			Name:         entry.Name,
			Age:          entry.Age,
			Position:     entry.Position,
			JerseyNumber: entry.JerseyNumber,
			Photo:        entry.Photo,
		})
		if err != nil {
			return nil, err
		}
		created = append(created, *player)
	}

	log.Info().Str("team_id", req.TeamID.String()).Int("count", len(created)).Msg("added players in bulk")
	return created, nil
}

// GetPlayer retrieves a player by ID
func (a *App) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	return a.repo.GetPlayer(ctx, id)
}

// ListPlayers retrieves all players of approved teams
func (a *App) ListPlayers(ctx context.Context) ([]models.Player, error) {
	return a.repo.ListPlayersOfApprovedTeams(ctx)
}

// ListPlayersByTeam retrieves one team's roster
func (a *App) ListPlayersByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Player, error) {
	if _, err := a.teams.GetTeam(ctx, teamID); err != nil {
		return nil, err
	}
	return a.repo.ListPlayersByTeam(ctx, teamID)
}

// UpdatePlayer applies a partial update, re-checking jersey uniqueness on change
func (a *App) UpdatePlayer(ctx context.Context, id uuid.UUID, req UpdatePlayerRequest) (*models.Player, error) {
	player, err := a.repo.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Age != nil && (*req.Age < models.MinPlayerAge || *req.Age > models.MaxPlayerAge) {
		return nil, apperrors.Validationf("age must be between %d and %d", models.MinPlayerAge, models.MaxPlayerAge)
	}
	if req.Position != nil && !models.ValidPlayerPosition(models.PlayerPosition(*req.Position)) {
		return nil, apperrors.Validationf("unknown position %q", *req.Position)
	}
	if req.JerseyNumber != nil && *req.JerseyNumber != player.JerseyNumber {
		if err := a.checkJerseyFree(ctx, player.TeamID, *req.JerseyNumber); err != nil {
			return nil, err
		}
	}

	return a.repo.UpdatePlayer(ctx, id, req)
}

// DeletePlayer removes a player
func (a *App) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	if _, err := a.repo.GetPlayer(ctx, id); err != nil {
		return err
	}
	return a.repo.DeletePlayer(ctx, id)
}

// GetPlayerStats returns aggregate player counts
func (a *App) GetPlayerStats(ctx context.Context) (*PlayerStats, error) {
	return a.repo.GetPlayerStats(ctx)
}

// checkJerseyFree fails with Conflict when the number is taken in the team.
// Uniqueness is scoped to the team; the same number on other teams is fine.
func (a *App) checkJerseyFree(ctx context.Context, teamID uuid.UUID, jerseyNumber int) error {
	_, err := a.repo.GetPlayerByTeamAndJersey(ctx, teamID, jerseyNumber)
	if err == nil {
		return apperrors.Conflictf("jersey number %d already taken for this team", jerseyNumber)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check jersey number: %w", err)
	}
	return nil
}

func validatePlayerFields(name string, age int, position string, jerseyNumber int) error {
	if name == "" {
		return apperrors.Validationf("name is required")
	}
	if age < models.MinPlayerAge || age > models.MaxPlayerAge {
		return apperrors.Validationf("age must be between %d and %d", models.MinPlayerAge, models.MaxPlayerAge)
	}
	if !models.ValidPlayerPosition(models.PlayerPosition(position)) {
		return apperrors.Validationf("unknown position %q", position)
	}
	if jerseyNumber < 1 || jerseyNumber > 99 {
		return apperrors.Validationf("jersey number must be between 1 and 99")
	}
	return nil
}
