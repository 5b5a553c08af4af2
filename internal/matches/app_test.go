package matches

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/sadiqful/tournament/internal/apperrors"
	"github.com/sadiqful/tournament/internal/events"
	"github.com/sadiqful/tournament/internal/models"
)

// fakeMatchesRepo is an in-memory MatchesRepository. RecordResult mirrors the
// guarded update of the Postgres implementation: an already-completed match
// cannot transition again.
type fakeMatchesRepo struct {
	matches map[uuid.UUID]*models.Match
}

func newFakeMatchesRepo() *fakeMatchesRepo {
	return &fakeMatchesRepo{matches: make(map[uuid.UUID]*models.Match)}
}

func (r *fakeMatchesRepo) CreateMatch(_ context.Context, req ScheduleMatchRequest) (*models.Match, error) {
	now := time.Now()
	match := &models.Match{
		ID:        uuid.New(),
		TeamAID:   req.TeamAID,
		TeamBID:   req.TeamBID,
		MatchDate: req.MatchDate,
		Venue:     req.Venue,
		Stage:     models.MatchStage(req.Stage),
		Status:    models.MatchStatusScheduled,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.matches[match.ID] = match
	return match, nil
}

func (r *fakeMatchesRepo) GetMatch(_ context.Context, id uuid.UUID) (*models.Match, error) {
	match, ok := r.matches[id]
	if !ok {
		return nil, apperrors.NotFoundf("match %s not found", id)
	}
	copied := *match
	return &copied, nil
}

func (r *fakeMatchesRepo) ListMatches(_ context.Context, filter MatchFilter) ([]models.Match, error) {
	var out []models.Match
	for _, match := range r.matches {
		if filter.Status != nil && match.Status != *filter.Status {
			continue
		}
		if filter.Stage != nil && match.Stage != *filter.Stage {
			continue
		}
		out = append(out, *match)
	}
	return out, nil
}

func (r *fakeMatchesRepo) ListCompletedMatches(_ context.Context) ([]models.Match, error) {
	var out []models.Match
	for _, match := range r.matches {
		if match.Status == models.MatchStatusCompleted {
			out = append(out, *match)
		}
	}
	return out, nil
}

func (r *fakeMatchesRepo) UpdateMatch(_ context.Context, id uuid.UUID, req UpdateMatchRequest) (*models.Match, error) {
	match, ok := r.matches[id]
	if !ok {
		return nil, apperrors.NotFoundf("match %s not found", id)
	}
	if req.TeamAID != nil {
		match.TeamAID = *req.TeamAID
	}
	if req.TeamBID != nil {
		match.TeamBID = *req.TeamBID
	}
	if req.MatchDate != nil {
		match.MatchDate = *req.MatchDate
	}
	if req.Venue != nil {
		match.Venue = *req.Venue
	}
	if req.Stage != nil {
		match.Stage = models.MatchStage(*req.Stage)
	}
	if req.Notes != nil {
		match.Notes = req.Notes
	}
	match.UpdatedAt = time.Now()
	copied := *match
	return &copied, nil
}

func (r *fakeMatchesRepo) RecordResult(_ context.Context, id uuid.UUID, req RecordResultRequest) (*models.Match, error) {
	match, ok := r.matches[id]
	if !ok {
		return nil, apperrors.NotFoundf("match %s not found", id)
	}
	if match.Status == models.MatchStatusCompleted {
		return nil, apperrors.Conflictf("match result has already been recorded")
	}
	scoreA, scoreB := req.ScoreA, req.ScoreB
	match.ScoreA = &scoreA
	match.ScoreB = &scoreB
	match.Status = models.MatchStatusCompleted
	if req.Notes != nil {
		match.Notes = req.Notes
	}
	match.UpdatedAt = time.Now()
	copied := *match
	return &copied, nil
}

func (r *fakeMatchesRepo) UpdateMatchStatus(_ context.Context, id uuid.UUID, status models.MatchStatus) (*models.Match, error) {
	match, ok := r.matches[id]
	if !ok {
		return nil, apperrors.NotFoundf("match %s not found", id)
	}
	match.Status = status
	match.UpdatedAt = time.Now()
	copied := *match
	return &copied, nil
}

func (r *fakeMatchesRepo) DeleteMatch(_ context.Context, id uuid.UUID) error {
	if _, ok := r.matches[id]; !ok {
		return apperrors.NotFoundf("match %s not found", id)
	}
	delete(r.matches, id)
	return nil
}

func (r *fakeMatchesRepo) GetMatchStats(_ context.Context) (*MatchStats, error) {
	stats := &MatchStats{}
	for _, match := range r.matches {
		stats.Total++
		switch match.Status {
		case models.MatchStatusScheduled:
			stats.ByStatus.Scheduled++
		case models.MatchStatusLive:
			stats.ByStatus.Live++
		case models.MatchStatusCompleted:
			stats.ByStatus.Completed++
		case models.MatchStatusCancelled:
			stats.ByStatus.Cancelled++
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

// capturePublisher records published match events.
type capturePublisher struct {
	published []events.MatchEvent
}

func (p *capturePublisher) PublishMatchEvent(_ context.Context, evt events.MatchEvent) error {
	p.published = append(p.published, evt)
	return nil
}

type MatchesAppSuite struct {
	suite.Suite
	repo      *fakeMatchesRepo
	lookup    *fakeTeamLookup
	publisher *capturePublisher
	app       *App
	ctx       context.Context
	teamA     uuid.UUID
	teamB     uuid.UUID
}

func TestMatchesAppSuite(t *testing.T) {
	suite.Run(t, new(MatchesAppSuite))
}

func (s *MatchesAppSuite) SetupTest() {
	s.repo = newFakeMatchesRepo()
	s.teamA = uuid.New()
	s.teamB = uuid.New()
	s.lookup = &fakeTeamLookup{teams: map[uuid.UUID]*models.Team{
		s.teamA: {ID: s.teamA, Name: "Lions", Status: models.TeamStatusApproved},
		s.teamB: {ID: s.teamB, Name: "Tigers", Status: models.TeamStatusApproved},
	}}
	s.publisher = &capturePublisher{}
	s.app = NewApp(s.repo, s.lookup, s.publisher)
	s.ctx = context.Background()
}

func (s *MatchesAppSuite) scheduleMatch() *models.Match {
	match, err := s.app.ScheduleMatch(s.ctx, ScheduleMatchRequest{
		TeamAID:   s.teamA,
		TeamBID:   s.teamB,
		MatchDate: time.Now().Add(48 * time.Hour),
		Venue:     "Main Stadium",
		Stage:     "group_stage",
	})
	s.Require().NoError(err)
	return match
}

func (s *MatchesAppSuite) TestScheduleMatch() {
	s.Run("schedules a fixture between approved teams", func() {
		match := s.scheduleMatch()
		s.Equal(models.MatchStatusScheduled, match.Status)
		s.Nil(match.ScoreA)
		s.Nil(match.ScoreB)

		s.Require().Len(s.publisher.published, 1)
		s.Equal(events.MatchScheduled, s.publisher.published[0].Type)
	})

	s.Run("rejects a team playing itself", func() {
		_, err := s.app.ScheduleMatch(s.ctx, ScheduleMatchRequest{
			TeamAID:   s.teamA,
			TeamBID:   s.teamA,
			MatchDate: time.Now(),
			Venue:     "Main Stadium",
			Stage:     "group_stage",
		})
		s.Require().ErrorIs(err, apperrors.ErrConflict)
	})

	s.Run("rejects unapproved teams", func() {
		pending := uuid.New()
		s.lookup.teams[pending] = &models.Team{ID: pending, Name: "Pending FC", Status: models.TeamStatusPending}

		_, err := s.app.ScheduleMatch(s.ctx, ScheduleMatchRequest{
			TeamAID:   s.teamA,
			TeamBID:   pending,
			MatchDate: time.Now(),
			Venue:     "Main Stadium",
			Stage:     "group_stage",
		})
		s.Require().ErrorIs(err, apperrors.ErrInvalidState)
	})

	s.Run("rejects unknown teams", func() {
		_, err := s.app.ScheduleMatch(s.ctx, ScheduleMatchRequest{
			TeamAID:   s.teamA,
			TeamBID:   uuid.New(),
			MatchDate: time.Now(),
			Venue:     "Main Stadium",
			Stage:     "group_stage",
		})
		s.Require().ErrorIs(err, apperrors.ErrNotFound)
	})

	s.Run("rejects unknown stage", func() {
		_, err := s.app.ScheduleMatch(s.ctx, ScheduleMatchRequest{
			TeamAID:   s.teamA,
			TeamBID:   s.teamB,
			MatchDate: time.Now(),
			Venue:     "Main Stadium",
			Stage:     "playoffs",
		})
		s.Require().ErrorIs(err, apperrors.ErrValidation)
	})

	s.Run("rejects missing venue", func() {
		_, err := s.app.ScheduleMatch(s.ctx, ScheduleMatchRequest{
			TeamAID:   s.teamA,
			TeamBID:   s.teamB,
			MatchDate: time.Now(),
			Stage:     "group_stage",
		})
		s.Require().ErrorIs(err, apperrors.ErrValidation)
	})
}

func (s *MatchesAppSuite) TestRecordResult() {
	s.Run("records a result and completes the match", func() {
		match := s.scheduleMatch()
		s.publisher.published = nil

		updated, err := s.app.RecordResult(s.ctx, match.ID, RecordResultRequest{ScoreA: 2, ScoreB: 1})
		s.Require().NoError(err)
		s.Equal(models.MatchStatusCompleted, updated.Status)
		s.Equal(2, *updated.ScoreA)
		s.Equal(1, *updated.ScoreB)

		s.Require().Len(s.publisher.published, 1)
		s.Equal(events.MatchResultRecorded, s.publisher.published[0].Type)
	})

	s.Run("results are write-once", func() {
		match := s.scheduleMatch()
		_, err := s.app.RecordResult(s.ctx, match.ID, RecordResultRequest{ScoreA: 2, ScoreB: 1})
		s.Require().NoError(err)

		_, err = s.app.RecordResult(s.ctx, match.ID, RecordResultRequest{ScoreA: 5, ScoreB: 0})
		s.Require().ErrorIs(err, apperrors.ErrConflict)

		current, err := s.app.GetMatch(s.ctx, match.ID)
		s.Require().NoError(err)
		s.Equal(2, *current.ScoreA)
		s.Equal(1, *current.ScoreB)
	})

	s.Run("rejects negative scores", func() {
		match := s.scheduleMatch()
		_, err := s.app.RecordResult(s.ctx, match.ID, RecordResultRequest{ScoreA: -1, ScoreB: 0})
		s.Require().ErrorIs(err, apperrors.ErrValidation)
	})

	s.Run("returns NotFound for unknown match", func() {
		_, err := s.app.RecordResult(s.ctx, uuid.New(), RecordResultRequest{ScoreA: 1, ScoreB: 1})
		s.Require().ErrorIs(err, apperrors.ErrNotFound)
	})
}

func (s *MatchesAppSuite) TestUpdateMatch() {
	s.Run("re-validates the effective pair on team change", func() {
		match := s.scheduleMatch()

		_, err := s.app.UpdateMatch(s.ctx, match.ID, UpdateMatchRequest{TeamBID: &s.teamA})
		s.Require().ErrorIs(err, apperrors.ErrConflict)
	})

	s.Run("patches venue without touching teams", func() {
		match := s.scheduleMatch()
		venue := "Training Ground"

		updated, err := s.app.UpdateMatch(s.ctx, match.ID, UpdateMatchRequest{Venue: &venue})
		s.Require().NoError(err)
		s.Equal("Training Ground", updated.Venue)
		s.Equal(s.teamA, updated.TeamAID)
	})
}

func (s *MatchesAppSuite) TestSetStatus() {
	s.Run("overrides status and publishes the change", func() {
		match := s.scheduleMatch()
		s.publisher.published = nil

		updated, err := s.app.SetStatus(s.ctx, match.ID, models.MatchStatusLive)
		s.Require().NoError(err)
		s.Equal(models.MatchStatusLive, updated.Status)

		s.Require().Len(s.publisher.published, 1)
		s.Equal(events.MatchStatusChanged, s.publisher.published[0].Type)
	})

	s.Run("rejects unknown status value", func() {
		match := s.scheduleMatch()
		_, err := s.app.SetStatus(s.ctx, match.ID, models.MatchStatus("abandoned"))
		s.Require().ErrorIs(err, apperrors.ErrValidation)
	})
}

func (s *MatchesAppSuite) TestDeleteMatch() {
	s.Run("deletes and publishes the removal", func() {
		match := s.scheduleMatch()
		s.publisher.published = nil

		s.Require().NoError(s.app.DeleteMatch(s.ctx, match.ID))
		_, err := s.app.GetMatch(s.ctx, match.ID)
		s.Require().ErrorIs(err, apperrors.ErrNotFound)

		s.Require().Len(s.publisher.published, 1)
		s.Equal(events.MatchDeleted, s.publisher.published[0].Type)
	})
}
