// Package standings derives the league table from completed matches and the
// current approved team set. The table is recomputed on every call; the match
// ledger stays the single source of truth.
package standings

import (
	"sort"

	"github.com/sadiqful/tournament/internal/models"
)

// TableRow is one team's line in the standings table
type TableRow struct {
	Team           models.Team `json:"team"`
	Played         int         `json:"played"`
	Won            int         `json:"won"`
	Drawn          int         `json:"drawn"`
	Lost           int         `json:"lost"`
	GoalsFor       int         `json:"goals_for"`
	GoalsAgainst   int         `json:"goals_against"`
	GoalDifference int         `json:"goal_difference"`
	Points         int         `json:"points"`
}

// Points awarded per result.
const (
	pointsWin  = 3
	pointsDraw = 1
)

// ComputeTable seeds one zeroed row per team (in the given order), folds in
// every completed match whose two teams are both seeded, and sorts by points,
// then goal difference, then goals for, all descending. Matches referencing a
// team outside the seed set are skipped entirely. Full ties keep seed order.
func ComputeTable(teams []models.Team, completed []models.Match) []TableRow {
	rows := make([]TableRow, len(teams))
	index := make(map[string]int, len(teams))
	for i, team := range teams {
		rows[i] = TableRow{Team: team}
		index[team.ID.String()] = i
	}

	for _, match := range completed {
		if match.Status != models.MatchStatusCompleted || match.ScoreA == nil || match.ScoreB == nil {
			continue
		}
		ia, okA := index[match.TeamAID.String()]
		ib, okB := index[match.TeamBID.String()]
		if !okA || !okB {
			continue
		}

		scoreA, scoreB := *match.ScoreA, *match.ScoreB

		rows[ia].Played++
		rows[ib].Played++
		rows[ia].GoalsFor += scoreA
		rows[ia].GoalsAgainst += scoreB
		rows[ib].GoalsFor += scoreB
		rows[ib].GoalsAgainst += scoreA
		rows[ia].GoalDifference = rows[ia].GoalsFor - rows[ia].GoalsAgainst
		rows[ib].GoalDifference = rows[ib].GoalsFor - rows[ib].GoalsAgainst

		switch {
		case scoreA > scoreB:
			rows[ia].Won++
			rows[ia].Points += pointsWin
			rows[ib].Lost++
		case scoreB > scoreA:
			rows[ib].Won++
			rows[ib].Points += pointsWin
			rows[ia].Lost++
		default:
			rows[ia].Drawn++
			rows[ia].Points += pointsDraw
			rows[ib].Drawn++
			rows[ib].Points += pointsDraw
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].GoalDifference != rows[j].GoalDifference {
			return rows[i].GoalDifference > rows[j].GoalDifference
		}
		return rows[i].GoalsFor > rows[j].GoalsFor
	})

	return rows
}
