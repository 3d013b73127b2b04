package standings

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/pickpool/go/internal/models"
)

// StandingsRepository defines what the app layer needs from the repository
type StandingsRepository interface {
	GetSeason(ctx context.Context, id uuid.UUID) (*models.Season, error)
	ListPeriodsBySeason(ctx context.Context, seasonID uuid.UUID) ([]models.Period, error)
	ListParticipants(ctx context.Context) ([]models.Participant, error)
	ListPeriodScores(ctx context.Context, seasonID uuid.UUID) ([]models.PeriodScore, error)
}

// App serves standings, computing them on a cache miss. A nil cache
// computes on every call. Cache failures degrade to computing.
type App struct {
	repo  StandingsRepository
	cache Cache
}

func NewApp(repo StandingsRepository, cache Cache) *App {
	return &App{
		repo:  repo,
		cache: cache,
	}
}

func (a *App) Standings(ctx context.Context, seasonID uuid.UUID) ([]models.Standing, error) {
	if a.cache != nil {
		cached, ok, err := a.cache.Get(ctx, seasonID)
		if err != nil {
			log.Warn().Err(err).Str("season_id", seasonID.String()).Msg("standings cache read failed")
		}
		if ok {
			return cached, nil
		}
	}

	standings, err := a.compute(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	if a.cache != nil {
		if err := a.cache.Set(ctx, seasonID, standings); err != nil {
			log.Warn().Err(err).Str("season_id", seasonID.String()).Msg("standings cache write failed")
		}
	}
	return standings, nil
}

// Invalidate drops the cached standings for a season.
func (a *App) Invalidate(ctx context.Context, seasonID uuid.UUID) error {
	if a.cache == nil {
		return nil
	}
	if err := a.cache.Delete(ctx, seasonID); err != nil {
		return fmt.Errorf("failed to invalidate standings: %w", err)
	}
	return nil
}

func (a *App) compute(ctx context.Context, seasonID uuid.UUID) ([]models.Standing, error) {
	if _, err := a.repo.GetSeason(ctx, seasonID); err != nil {
		return nil, fmt.Errorf("failed to get season: %w", err)
	}
	periods, err := a.repo.ListPeriodsBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	participants, err := a.repo.ListParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	scores, err := a.repo.ListPeriodScores(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list period scores: %w", err)
	}
	return Compute(periods, participants, scores), nil
}
