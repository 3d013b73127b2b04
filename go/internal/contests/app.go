package contests

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/pickpool/go/internal/clock"
	"github.com/mcdev12/pickpool/go/internal/events"
	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/outcome"
	"github.com/mcdev12/pickpool/go/internal/roster"
	"github.com/mcdev12/pickpool/go/internal/scoring"
)

// ContestsRepository defines what the app layer needs from the repository
type ContestsRepository interface {
	CreateContest(ctx context.Context, c models.Contest) (*models.Contest, error)
	GetContest(ctx context.Context, id uuid.UUID) (*models.Contest, error)
	ListContestsByPeriod(ctx context.Context, periodID uuid.UUID) ([]models.Contest, error)
	SaveContestResult(ctx context.Context, id uuid.UUID, result models.ContestResult) (*models.Contest, error)
	GetPeriod(ctx context.Context, id uuid.UUID) (*models.Period, error)
}

// Provisioner fans a new contest out to every participant
type Provisioner interface {
	OnContestCreated(ctx context.Context, contestID uuid.UUID) (*roster.Report, error)
}

// Scorer rescores a contest after its result changes
type Scorer interface {
	OnContestResultSaved(ctx context.Context, contest models.Contest) (*scoring.Summary, error)
}

// StandingsInvalidator drops cached standings for a season
type StandingsInvalidator interface {
	Invalidate(ctx context.Context, seasonID uuid.UUID) error
}

// EventRecorder writes domain events to the outbox
type EventRecorder interface {
	Record(ctx context.Context, aggregateID uuid.UUID, eventType events.Type, payload interface{}) error
}

// App handles contest scheduling and result entry. Each write calls its
// fan-out explicitly after persisting.
type App struct {
	repo        ContestsRepository
	provisioner Provisioner
	scorer      Scorer
	standings   StandingsInvalidator
	recorder    EventRecorder
	clock       clock.Clock
}

func NewApp(repo ContestsRepository, provisioner Provisioner, scorer Scorer, standings StandingsInvalidator, recorder EventRecorder, clk clock.Clock) *App {
	return &App{
		repo:        repo,
		provisioner: provisioner,
		scorer:      scorer,
		standings:   standings,
		recorder:    recorder,
		clock:       clk,
	}
}

// CreateContest persists a contest and gives every participant a no-pick for it.
func (a *App) CreateContest(ctx context.Context, req CreateContestRequest) (*models.Contest, error) {
	if err := a.validateCreateContestRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	contest, err := a.repo.CreateContest(ctx, models.Contest{
		ID:            uuid.New(),
		PeriodID:      req.PeriodID,
		Number:        req.Number,
		StartsAt:      req.StartsAt,
		HomeTeamID:    req.HomeTeamID,
		VisitorTeamID: req.VisitorTeamID,
		VenueID:       req.VenueID,
		UpdatedAt:     a.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create contest: %w", err)
	}

	if a.provisioner != nil {
		if _, err := a.provisioner.OnContestCreated(ctx, contest.ID); err != nil {
			log.Error().Err(err).Str("contest_id", contest.ID.String()).Msg("failed to provision contest")
		}
	}
	return contest, nil
}

// SaveResult persists a result and rescores the contest. Scoring problems are
// logged; the saved result is returned regardless.
func (a *App) SaveResult(ctx context.Context, id uuid.UUID, result models.ContestResult) (*ContestView, error) {
	if result.HomeScore < 0 || result.VisitorScore < 0 {
		return nil, fmt.Errorf("%w: scores must not be negative", models.ErrValidation)
	}

	result.SavedAt = a.clock.Now().UTC()
	contest, err := a.repo.SaveContestResult(ctx, id, result)
	if err != nil {
		return nil, fmt.Errorf("failed to save contest result: %w", err)
	}

	var summary *scoring.Summary
	if a.scorer != nil {
		summary, err = a.scorer.OnContestResultSaved(ctx, *contest)
		if err != nil {
			log.Error().Err(err).Str("contest_id", contest.ID.String()).Msg("failed to score contest")
		}
	}

	period, err := a.repo.GetPeriod(ctx, contest.PeriodID)
	if err != nil {
		log.Error().Err(err).Str("contest_id", contest.ID.String()).Msg("failed to get contest period")
	}

	if summary != nil && period != nil {
		a.recordScored(ctx, *contest, *period, summary)
	}
	if period != nil && a.standings != nil {
		if err := a.standings.Invalidate(ctx, period.SeasonID); err != nil {
			log.Warn().Err(err).Str("season_id", period.SeasonID.String()).Msg("failed to invalidate standings")
		}
	}

	return a.view(*contest), nil
}

func (a *App) GetContest(ctx context.Context, id uuid.UUID) (*ContestView, error) {
	contest, err := a.repo.GetContest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get contest: %w", err)
	}
	return a.view(*contest), nil
}

// ListByPeriod returns a period's contests in number order with outcomes.
func (a *App) ListByPeriod(ctx context.Context, periodID uuid.UUID) ([]ContestView, error) {
	contests, err := a.repo.ListContestsByPeriod(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contests: %w", err)
	}
	out := make([]ContestView, len(contests))
	for i, c := range contests {
		out[i] = *a.view(c)
	}
	return out, nil
}

func (a *App) view(c models.Contest) *ContestView {
	return &ContestView{
		Contest: c,
		Outcome: outcome.Classify(c, a.clock.Now()),
	}
}

func (a *App) recordScored(ctx context.Context, contest models.Contest, period models.Period, summary *scoring.Summary) {
	if a.recorder == nil {
		return
	}
	facts := summary.Outcome.Facts.Categories()
	names := make([]string, len(facts))
	for i, f := range facts {
		names[i] = f.String()
	}
	err := a.recorder.Record(ctx, contest.ID, events.ContestScored, events.ContestScoredPayload{
		ContestID:     contest.ID.String(),
		PeriodID:      period.ID.String(),
		SeasonID:      period.SeasonID.String(),
		Status:        summary.Outcome.Status.String(),
		Facts:         names,
		Scored:        summary.Scored,
		Created:       summary.Created,
		Failed:        summary.Failed,
		PointsAwarded: summary.PointsAwarded,
		ScoredAt:      a.clock.Now(),
	})
	if err != nil {
		log.Error().Err(err).Str("contest_id", contest.ID.String()).Msg("failed to record contest scored event")
	}
}

func (a *App) validateCreateContestRequest(req CreateContestRequest) error {
	if req.PeriodID == uuid.Nil {
		return fmt.Errorf("period_id is required")
	}
	if req.Number < 1 {
		return fmt.Errorf("number must be at least 1")
	}
	if req.StartsAt.IsZero() {
		return fmt.Errorf("starts_at is required")
	}
	return nil
}
