package periods

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/pickpool/go/internal/clock"
	"github.com/mcdev12/pickpool/go/internal/events"
	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/pooldb"
)

// PeriodsRepository defines what the state machine needs from persistence
type PeriodsRepository interface {
	GetActiveID(ctx context.Context, key models.ActiveKey) (uuid.UUID, error)
	SetActiveID(ctx context.Context, key models.ActiveKey, id uuid.UUID) error
	GetSeason(ctx context.Context, id uuid.UUID) (*models.Season, error)
	GetPeriod(ctx context.Context, id uuid.UUID) (*models.Period, error)
	FindPeriodAt(ctx context.Context, t time.Time) (*models.Period, error)
	ListPeriodsBySeason(ctx context.Context, seasonID uuid.UUID) ([]models.Period, error)
}

// EventRecorder writes domain events to the outbox
type EventRecorder interface {
	Record(ctx context.Context, aggregateID uuid.UUID, eventType events.Type, payload interface{}) error
}

// App owns the active season and active period registers. Each register holds
// a single id for the whole pool, so activating a period of one season
// deactivates the periods of every other season too.
type App struct {
	repo     PeriodsRepository
	recorder EventRecorder
	clock    clock.Clock
}

func NewApp(repo PeriodsRepository, recorder EventRecorder, clk clock.Clock) *App {
	return &App{
		repo:     repo,
		recorder: recorder,
		clock:    clk,
	}
}

// Activate makes the period the single active one.
func (a *App) Activate(ctx context.Context, periodID uuid.UUID) (*models.Period, error) {
	period, err := a.repo.GetPeriod(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to get period: %w", err)
	}
	if err := a.repo.SetActiveID(ctx, models.ActivePeriod, period.ID); err != nil {
		return nil, fmt.Errorf("failed to activate period: %w", err)
	}
	period.IsActive = true

	log.Info().
		Str("period_id", period.ID.String()).
		Str("season_id", period.SeasonID.String()).
		Str("name", period.Name).
		Msg("period activated")

	if a.recorder != nil {
		err := a.recorder.Record(ctx, period.SeasonID, events.PeriodActivated, events.PeriodActivatedPayload{
			PeriodID:    period.ID.String(),
			SeasonID:    period.SeasonID.String(),
			Name:        period.Name,
			ActivatedAt: a.clock.Now(),
		})
		if err != nil {
			log.Error().Err(err).Str("period_id", period.ID.String()).Msg("failed to record period activation")
		}
	}
	return period, nil
}

// ActivateSeason makes the season the single active one.
func (a *App) ActivateSeason(ctx context.Context, seasonID uuid.UUID) (*models.Season, error) {
	season, err := a.repo.GetSeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get season: %w", err)
	}
	if err := a.repo.SetActiveID(ctx, models.ActiveSeason, season.ID); err != nil {
		return nil, fmt.Errorf("failed to activate season: %w", err)
	}
	season.IsActive = true
	log.Info().Str("season_id", season.ID.String()).Str("name", season.Name).Msg("season activated")
	return season, nil
}

func (a *App) CurrentSeason(ctx context.Context) (*models.Season, error) {
	id, err := a.repo.GetActiveID(ctx, models.ActiveSeason)
	if errors.Is(err, pooldb.ErrNotFound) {
		return nil, ErrNoActiveSeason
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active season: %w", err)
	}
	season, err := a.repo.GetSeason(ctx, id)
	if errors.Is(err, pooldb.ErrNotFound) {
		return nil, ErrNoActiveSeason
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get season: %w", err)
	}
	return season, nil
}

// CurrentPeriod resolves the period the pool is in right now.
//
// The active period is kept while now is inside its window. Otherwise the
// period whose window contains now is promoted. Between windows the previous
// active period stays current.
func (a *App) CurrentPeriod(ctx context.Context) (*models.Period, error) {
	now := a.clock.Now()

	active, err := a.activePeriod(ctx)
	if err != nil {
		return nil, err
	}
	if active != nil && active.Contains(now) {
		return active, nil
	}

	found, err := a.repo.FindPeriodAt(ctx, now)
	if err != nil && !errors.Is(err, pooldb.ErrNotFound) {
		return nil, fmt.Errorf("failed to find period at %s: %w", now.Format(time.RFC3339), err)
	}
	if found != nil {
		if active != nil && active.ID == found.ID {
			return active, nil
		}
		return a.Activate(ctx, found.ID)
	}

	if active != nil {
		return active, nil
	}
	return nil, ErrNoCurrentPeriod
}

// ListPeriods returns a season's periods in sequence order.
func (a *App) ListPeriods(ctx context.Context, seasonID uuid.UUID) ([]models.Period, error) {
	periods, err := a.repo.ListPeriodsBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	return periods, nil
}

func (a *App) activePeriod(ctx context.Context) (*models.Period, error) {
	id, err := a.repo.GetActiveID(ctx, models.ActivePeriod)
	if errors.Is(err, pooldb.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active period: %w", err)
	}
	period, err := a.repo.GetPeriod(ctx, id)
	if errors.Is(err, pooldb.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get period: %w", err)
	}
	return period, nil
}
