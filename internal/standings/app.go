package standings

import (
	"context"

	"github.com/sadiqful/tournament/internal/models"
)

// TeamSource supplies the current approved team set in creation order
type TeamSource interface {
	ListTeamsByStatus(ctx context.Context, status models.TeamStatus) ([]models.Team, error)
}

// MatchSource supplies the completed-match ledger
type MatchSource interface {
	ListCompletedMatches(ctx context.Context) ([]models.Match, error)
}

// App computes the standings table on demand
type App struct {
	teams   TeamSource
	matches MatchSource
}

// NewApp creates a new standings App
func NewApp(teams TeamSource, matches MatchSource) *App {
	return &App{teams: teams, matches: matches}
}

// ComputeTable fetches the inputs and derives the table
func (a *App) ComputeTable(ctx context.Context) ([]TableRow, error) {
	approved, err := a.teams.ListTeamsByStatus(ctx, models.TeamStatusApproved)
	if err != nil {
		return nil, err
	}

	completed, err := a.matches.ListCompletedMatches(ctx)
	if err != nil {
		return nil, err
	}

	return ComputeTable(approved, completed), nil
}
