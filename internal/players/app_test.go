package players

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/sadiqful/tournament/internal/apperrors"
	"github.com/sadiqful/tournament/internal/models"
)

// fakePlayersRepo is an in-memory PlayersRepository.
type fakePlayersRepo struct {
	players map[uuid.UUID]*models.Player
}

func newFakePlayersRepo() *fakePlayersRepo {
	return &fakePlayersRepo{players: make(map[uuid.UUID]*models.Player)}
}

func (r *fakePlayersRepo) CreatePlayer(_ context.Context, req CreatePlayerRequest) (*models.Player, error) {
	now := time.Now()
	player := &models.Player{
		ID:           uuid.New(),
		TeamID:       req.TeamID,
		Name:         req.Name,
		Age:          req.Age,
		Position:     models.PlayerPosition(req.Position),
		JerseyNumber: req.JerseyNumber,
		Photo:        req.Photo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.players[player.ID] = player
	return player, nil
}

func (r *fakePlayersRepo) GetPlayer(_ context.Context, id uuid.UUID) (*models.Player, error) {
	player, ok := r.players[id]
	if !ok {
		return nil, apperrors.NotFoundf("player %s not found", id)
	}
	copied := *player
	return &copied, nil
}

func (r *fakePlayersRepo) GetPlayerByTeamAndJersey(_ context.Context, teamID uuid.UUID, jerseyNumber int) (*models.Player, error) {
	for _, player := range r.players {
		if player.TeamID == teamID && player.JerseyNumber == jerseyNumber {
			copied := *player
			return &copied, nil
		}
	}
	return nil, apperrors.NotFoundf("no player with jersey %d on team %s", jerseyNumber, teamID)
}

func (r *fakePlayersRepo) ListPlayersByTeam(_ context.Context, teamID uuid.UUID) ([]models.Player, error) {
	var out []models.Player
	for _, player := range r.players {
		if player.TeamID == teamID {
			out = append(out, *player)
		}
	}
	return out, nil
}

func (r *fakePlayersRepo) ListPlayersOfApprovedTeams(_ context.Context) ([]models.Player, error) {
	var out []models.Player
	for _, player := range r.players {
		out = append(out, *player)
	}
	return out, nil
}

func (r *fakePlayersRepo) CountPlayersByTeam(_ context.Context, teamID uuid.UUID) (int, error) {
	count := 0
	for _, player := range r.players {
		if player.TeamID == teamID {
			count++
		}
	}
	return count, nil
}

func (r *fakePlayersRepo) UpdatePlayer(_ context.Context, id uuid.UUID, req UpdatePlayerRequest) (*models.Player, error) {
	player, ok := r.players[id]
	if !ok {
		return nil, apperrors.NotFoundf("player %s not found", id)
	}
	if req.Name != nil {
		player.Name = *req.Name
	}
	if req.Age != nil {
		player.Age = *req.Age
	}
	if req.Position != nil {
		player.Position = models.PlayerPosition(*req.Position)
	}
	if req.JerseyNumber != nil {
		player.JerseyNumber = *req.JerseyNumber
	}
	if req.Photo != nil {
		player.Photo = req.Photo
	}
	player.UpdatedAt = time.Now()
	copied := *player
	return &copied, nil
}

func (r *fakePlayersRepo) DeletePlayer(_ context.Context, id uuid.UUID) error {
	if _, ok := r.players[id]; !ok {
		return apperrors.NotFoundf("player %s not found", id)
	}
	delete(r.players, id)
	return nil
}

func (r *fakePlayersRepo) GetPlayerStats(_ context.Context) (*PlayerStats, error) {
	stats := &PlayerStats{}
	for _, player := range r.players {
		stats.Total++
		switch player.Position {
		case models.PositionGoalkeeper:
			stats.Goalkeepers++
		case models.PositionDefender:
			stats.Defenders++
		case models.PositionMidfielder:
			stats.Midfielders++
		case models.PositionForward:
			stats.Forwards++
		}
	}
	return stats, nil
}

// fakeTeamLookup serves a fixed set of teams.
type fakeTeamLookup struct {
	teams map[uuid.UUID]*models.Team
}

func (l *fakeTeamLookup) GetTeam(_ context.Context, id uuid.UUID) (*models.Team, error) {
	team, ok := l.teams[id]
	if !ok {
		return nil, apperrors.NotFoundf("team %s not found", id)
	}
	return team, nil
}

type PlayersAppSuite struct {
	suite.Suite
	repo   *fakePlayersRepo
	lookup *fakeTeamLookup
	app    *App
	ctx    context.Context
	teamID uuid.UUID
}

func TestPlayersAppSuite(t *testing.T) {
	suite.Run(t, new(PlayersAppSuite))
}

func (s *PlayersAppSuite) SetupTest() {
	s.repo = newFakePlayersRepo()
	s.teamID = uuid.New()
	s.lookup = &fakeTeamLookup{teams: map[uuid.UUID]*models.Team{
		s.teamID: {ID: s.teamID, Name: "Lions", Status: models.TeamStatusApproved},
	}}
	s.app = NewApp(s.repo, s.lookup)
	s.ctx = context.Background()
}

func (s *PlayersAppSuite) addPlayer(jersey int) *models.Player {
	player, err := s.app.AddPlayer(s.ctx, CreatePlayerRequest{
		TeamID:       s.teamID,
		Name:         fmt.Sprintf("Player %d", jersey),
		Age:          25,
		Position:     "midfielder",
		JerseyNumber: jersey,
	})
	s.Require().NoError(err)
	return player
}

func (s *PlayersAppSuite) TestAddPlayer() {
	s.Run("adds a valid player", func() {
		player := s.addPlayer(10)
		s.Equal(models.PositionMidfielder, player.Position)
		s.Equal(10, player.JerseyNumber)
	})

	s.Run("rejects duplicate jersey within team", func() {
		s.addPlayer(7)
		_, err := s.app.AddPlayer(s.ctx, CreatePlayerRequest{
			TeamID:       s.teamID,
			Name:         "Impostor",
			Age:          22,
			Position:     "forward",
			JerseyNumber: 7,
		})
		s.Require().ErrorIs(err, apperrors.ErrConflict)
	})

	s.Run("allows same jersey on another team", func() {
		otherTeam := uuid.New()
		s.lookup.teams[otherTeam] = &models.Team{ID: otherTeam, Name: "Tigers"}
		s.addPlayer(9)

		_, err := s.app.AddPlayer(s.ctx, CreatePlayerRequest{
			TeamID:       otherTeam,
			Name:         "Other Nine",
			Age:          30,
			Position:     "forward",
			JerseyNumber: 9,
		})
		s.Require().NoError(err)
	})

	s.Run("rejects age out of range", func() {
		_, err := s.app.AddPlayer(s.ctx, CreatePlayerRequest{
			TeamID:       s.teamID,
			Name:         "Too Young",
			Age:          models.MinPlayerAge - 1,
			Position:     "defender",
			JerseyNumber: 2,
		})
		s.Require().ErrorIs(err, apperrors.ErrValidation)
	})

	s.Run("rejects unknown position", func() {
		_, err := s.app.AddPlayer(s.ctx, CreatePlayerRequest{
			TeamID:       s.teamID,
			Name:         "Libero",
			Age:          28,
			Position:     "libero",
			JerseyNumber: 3,
		})
		s.Require().ErrorIs(err, apperrors.ErrValidation)
	})

	s.Run("rejects unknown team", func() {
		_, err := s.app.AddPlayer(s.ctx, CreatePlayerRequest{
			TeamID:       uuid.New(),
			Name:         "Orphan",
			Age:          28,
			Position:     "defender",
			JerseyNumber: 4,
		})
		s.Require().ErrorIs(err, apperrors.ErrNotFound)
	})

	s.Run("enforces roster cap", func() {
		fullTeam := uuid.New()
		s.lookup.teams[fullTeam] = &models.Team{ID: fullTeam, Name: "Full FC"}
		for i := 1; i <= models.MaxRosterSize; i++ {
			_, err := s.app.AddPlayer(s.ctx, CreatePlayerRequest{
				TeamID:       fullTeam,
				Name:         fmt.Sprintf("Player %d", i),
				Age:          25,
				Position:     "midfielder",
				JerseyNumber: i,
			})
			s.Require().NoError(err)
		}
		_, err := s.app.AddPlayer(s.ctx, CreatePlayerRequest{
			TeamID:       fullTeam,
			Name:         "Sixteenth",
			Age:          27,
			Position:     "goalkeeper",
			JerseyNumber: 99,
		})
		s.Require().ErrorIs(err, apperrors.ErrConflict)
	})
}

func (s *PlayersAppSuite) TestAddPlayersBulk() {
	s.Run("adds the whole batch", func() {
		created, err := s.app.AddPlayersBulk(s.ctx, CreateBulkPlayersRequest{
			TeamID: s.teamID,
			Players: []BulkPlayerEntry{
				{Name: "Keeper", Age: 30, Position: "goalkeeper", JerseyNumber: 1},
				{Name: "Striker", Age: 24, Position: "forward", JerseyNumber: 9},
			},
		})
		s.Require().NoError(err)
		s.Len(created, 2)
	})

	s.Run("rejects duplicate jerseys inside the batch", func() {
		_, err := s.app.AddPlayersBulk(s.ctx, CreateBulkPlayersRequest{
			TeamID: s.teamID,
			Players: []BulkPlayerEntry{
				{Name: "First", Age: 24, Position: "forward", JerseyNumber: 11},
				{Name: "Second", Age: 25, Position: "defender", JerseyNumber: 11},
			},
		})
		s.Require().ErrorIs(err, apperrors.ErrConflict)
	})

	s.Run("rejects a batch that would exceed the cap", func() {
		crowded := uuid.New()
		s.lookup.teams[crowded] = &models.Team{ID: crowded, Name: "Crowded FC"}
		for i := 1; i <= models.MaxRosterSize-1; i++ {
			_, err := s.app.AddPlayer(s.ctx, CreatePlayerRequest{
				TeamID:       crowded,
				Name:         fmt.Sprintf("Player %d", i),
				Age:          25,
				Position:     "midfielder",
				JerseyNumber: i,
			})
			s.Require().NoError(err)
		}
		_, err := s.app.AddPlayersBulk(s.ctx, CreateBulkPlayersRequest{
			TeamID: crowded,
			Players: []BulkPlayerEntry{
				{Name: "Fits", Age: 24, Position: "forward", JerseyNumber: 97},
				{Name: "Overflow", Age: 25, Position: "defender", JerseyNumber: 98},
			},
		})
		s.Require().ErrorIs(err, apperrors.ErrConflict)
	})

	s.Run("rejects empty batch", func() {
		_, err := s.app.AddPlayersBulk(s.ctx, CreateBulkPlayersRequest{TeamID: s.teamID})
		s.Require().ErrorIs(err, apperrors.ErrValidation)
	})
}

func (s *PlayersAppSuite) TestUpdatePlayer() {
	s.Run("changing jersey re-checks uniqueness", func() {
		s.addPlayer(5)
		player := s.addPlayer(6)

		taken := 5
		_, err := s.app.UpdatePlayer(s.ctx, player.ID, UpdatePlayerRequest{JerseyNumber: &taken})
		s.Require().ErrorIs(err, apperrors.ErrConflict)
	})

	s.Run("keeping own jersey is not a conflict", func() {
		player := s.addPlayer(8)
		name := "Renamed"
		jersey := 8

		updated, err := s.app.UpdatePlayer(s.ctx, player.ID, UpdatePlayerRequest{Name: &name, JerseyNumber: &jersey})
		s.Require().NoError(err)
		s.Equal("Renamed", updated.Name)
	})

	s.Run("rejects invalid age on update", func() {
		player := s.addPlayer(12)
		age := models.MaxPlayerAge + 1

		_, err := s.app.UpdatePlayer(s.ctx, player.ID, UpdatePlayerRequest{Age: &age})
		s.Require().ErrorIs(err, apperrors.ErrValidation)
	})
}
