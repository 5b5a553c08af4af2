package standings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/sadiqful/tournament/internal/models"
)

type StandingsSuite struct {
	suite.Suite
}

func TestStandingsSuite(t *testing.T) {
	suite.Run(t, new(StandingsSuite))
}

func newTeam(name string) models.Team {
	return models.Team{ID: uuid.New(), Name: name, Status: models.TeamStatusApproved}
}

func completedMatch(teamA, teamB models.Team, scoreA, scoreB int) models.Match {
	return models.Match{
		ID:      uuid.New(),
		TeamAID: teamA.ID,
		TeamBID: teamB.ID,
		Status:  models.MatchStatusCompleted,
		ScoreA:  &scoreA,
		ScoreB:  &scoreB,
	}
}

func (s *StandingsSuite) TestComputeTable() {
	s.Run("awards three points for a win and none for a loss", func() {
		teamA, teamB, teamC := newTeam("A"), newTeam("B"), newTeam("C")
		table := ComputeTable(
			[]models.Team{teamA, teamB, teamC},
			[]models.Match{completedMatch(teamA, teamB, 2, 1)},
		)

		s.Require().Len(table, 3)
		s.Equal("A", table[0].Team.Name)
		s.Equal(3, table[0].Points)
		s.Equal(1, table[0].Won)
		s.Equal(1, table[0].GoalDifference)

		// C never played but ranks above B on goal difference.
		s.Equal("C", table[1].Team.Name)
		s.Equal(0, table[1].Played)
		s.Equal("B", table[2].Team.Name)
		s.Equal(1, table[2].Lost)
		s.Equal(-1, table[2].GoalDifference)
	})

	s.Run("awards one point each for a draw", func() {
		teamA, teamB := newTeam("A"), newTeam("B")
		table := ComputeTable(
			[]models.Team{teamA, teamB},
			[]models.Match{completedMatch(teamA, teamB, 1, 1)},
		)

		s.Equal(1, table[0].Points)
		s.Equal(1, table[1].Points)
		s.Equal(1, table[0].Drawn)
	})

	s.Run("full ties keep seed order", func() {
		teamA, teamB := newTeam("First Seed"), newTeam("Second Seed")
		table := ComputeTable(
			[]models.Team{teamA, teamB},
			[]models.Match{completedMatch(teamA, teamB, 2, 2)},
		)

		s.Equal("First Seed", table[0].Team.Name)
		s.Equal("Second Seed", table[1].Team.Name)
	})

	s.Run("breaks point ties by goal difference then goals for", func() {
		teamA, teamB, teamC, teamD := newTeam("A"), newTeam("B"), newTeam("C"), newTeam("D")
		table := ComputeTable(
			[]models.Team{teamA, teamB, teamC, teamD},
			[]models.Match{
				completedMatch(teamA, teamD, 1, 0), // A: 3 pts, GD +1, GF 1
				completedMatch(teamB, teamD, 3, 1), // B: 3 pts, GD +2, GF 3
				completedMatch(teamC, teamD, 2, 0), // C: 3 pts, GD +2, GF 2
			},
		)

		s.Equal("B", table[0].Team.Name)
		s.Equal("C", table[1].Team.Name)
		s.Equal("A", table[2].Team.Name)
		s.Equal("D", table[3].Team.Name)
	})

	s.Run("skips matches referencing teams outside the seed set", func() {
		teamA, teamB := newTeam("A"), newTeam("B")
		outsider := newTeam("Deleted FC")
		table := ComputeTable(
			[]models.Team{teamA, teamB},
			[]models.Match{
				completedMatch(teamA, outsider, 9, 0),
				completedMatch(teamA, teamB, 0, 1),
			},
		)

		s.Equal("B", table[0].Team.Name)
		s.Equal(1, table[0].Played)
		s.Equal(1, table[1].Played)
	})

	s.Run("skips matches without both scores", func() {
		teamA, teamB := newTeam("A"), newTeam("B")
		broken := models.Match{
			ID:      uuid.New(),
			TeamAID: teamA.ID,
			TeamBID: teamB.ID,
			Status:  models.MatchStatusCompleted,
		}
		table := ComputeTable([]models.Team{teamA, teamB}, []models.Match{broken})

		s.Equal(0, table[0].Played)
		s.Equal(0, table[1].Played)
	})

	s.Run("empty team set yields an empty table", func() {
		s.Empty(ComputeTable(nil, nil))
	})
}

// fakeTeamSource and fakeMatchSource feed the app from memory.
type fakeTeamSource struct {
	teams []models.Team
}

func (f *fakeTeamSource) ListTeamsByStatus(_ context.Context, status models.TeamStatus) ([]models.Team, error) {
	var out []models.Team
	for _, team := range f.teams {
		if team.Status == status {
			out = append(out, team)
		}
	}
	return out, nil
}

type fakeMatchSource struct {
	completed []models.Match
}

func (f *fakeMatchSource) ListCompletedMatches(_ context.Context) ([]models.Match, error) {
	return f.completed, nil
}

func (s *StandingsSuite) TestAppComputeTable() {
	s.Run("seeds only approved teams in creation order", func() {
		approved := newTeam("Approved FC")
		approved.CreatedAt = time.Now()
		pending := newTeam("Pending FC")
		pending.Status = models.TeamStatusPending

		app := NewApp(
			&fakeTeamSource{teams: []models.Team{approved, pending}},
			&fakeMatchSource{},
		)

		table, err := app.ComputeTable(context.Background())
		s.Require().NoError(err)
		s.Require().Len(table, 1)
		s.Equal("Approved FC", table[0].Team.Name)
	})
}
