package seasons

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/pickpool/go/internal/clock"
	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/schedule"
)

// SeasonsRepository defines what the app layer needs from the repository
type SeasonsRepository interface {
	CreateSeason(ctx context.Context, s models.Season) (*models.Season, error)
	GetSeason(ctx context.Context, id uuid.UUID) (*models.Season, error)
	ListSeasons(ctx context.Context) ([]models.Season, error)
}

// ScheduleGenerator lays out a new season
type ScheduleGenerator interface {
	Generate(ctx context.Context, season models.Season) (*schedule.Report, error)
}

// SeasonActivator sets the single active season
type SeasonActivator interface {
	ActivateSeason(ctx context.Context, seasonID uuid.UUID) (*models.Season, error)
}

type App struct {
	repo      SeasonsRepository
	generator ScheduleGenerator
	activator SeasonActivator
	clock     clock.Clock
}

func NewApp(repo SeasonsRepository, generator ScheduleGenerator, activator SeasonActivator, clk clock.Clock) *App {
	return &App{
		repo:      repo,
		generator: generator,
		activator: activator,
		clock:     clk,
	}
}

// CreateSeason persists the season, then generates its schedule. Reference
// data errors from the generator fail the call; the season row stays and a
// later Generate call can finish the job.
func (a *App) CreateSeason(ctx context.Context, req CreateSeasonRequest) (*CreateSeasonResponse, error) {
	if err := a.validateCreateSeasonRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	season, err := a.repo.CreateSeason(ctx, models.Season{
		ID:        uuid.New(),
		Name:      req.Name,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		CreatedAt: a.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create season: %w", err)
	}
	log.Info().Str("season_id", season.ID.String()).Str("name", season.Name).Msg("season created")

	if req.Activate {
		activated, err := a.activator.ActivateSeason(ctx, season.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to activate season: %w", err)
		}
		season = activated
	}

	report, err := a.generator.Generate(ctx, *season)
	if err != nil {
		return nil, fmt.Errorf("failed to generate schedule for season %s: %w", season.ID, err)
	}

	return &CreateSeasonResponse{Season: season, Schedule: report}, nil
}

// Generate re-runs schedule generation for an existing season. It is a no-op
// when the season already has periods.
func (a *App) Generate(ctx context.Context, id uuid.UUID) (*schedule.Report, error) {
	season, err := a.repo.GetSeason(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get season: %w", err)
	}
	return a.generator.Generate(ctx, *season)
}

func (a *App) GetSeason(ctx context.Context, id uuid.UUID) (*models.Season, error) {
	season, err := a.repo.GetSeason(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get season: %w", err)
	}
	return season, nil
}

func (a *App) ListSeasons(ctx context.Context) ([]models.Season, error) {
	seasons, err := a.repo.ListSeasons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}
	return seasons, nil
}

func (a *App) validateCreateSeasonRequest(req CreateSeasonRequest) error {
	if req.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !req.StartsAt.IsZero() && !req.EndsAt.IsZero() && req.EndsAt.Before(req.StartsAt) {
		return fmt.Errorf("ends_at must not be before starts_at")
	}
	return nil
}
