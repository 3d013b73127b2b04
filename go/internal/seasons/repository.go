package seasons

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/pooldb"
)

type Repository struct {
	queries *pooldb.Queries
}

func NewRepository(queries *pooldb.Queries) *Repository {
	return &Repository{
		queries: queries,
	}
}

func (r *Repository) CreateSeason(ctx context.Context, s models.Season) (*models.Season, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	row, err := r.queries.CreateSeason(ctx, pooldb.CreateSeasonParams{
		ID:       s.ID,
		Name:     s.Name,
		StartsAt: s.StartsAt,
		EndsAt:   s.EndsAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create season: %w", pooldb.Translate(err))
	}
	season := row.Model()
	return &season, nil
}

func (r *Repository) GetSeason(ctx context.Context, id uuid.UUID) (*models.Season, error) {
	row, err := r.queries.GetSeason(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get season: %w", pooldb.Translate(err))
	}
	season := row.Model()
	active, err := r.activeSeasonID(ctx)
	if err != nil {
		return nil, err
	}
	season.IsActive = season.ID == active
	return &season, nil
}

func (r *Repository) ListSeasons(ctx context.Context) ([]models.Season, error) {
	rows, err := r.queries.ListSeasons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}
	active, err := r.activeSeasonID(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Season, len(rows))
	for i, row := range rows {
		out[i] = row.Model()
		out[i].IsActive = out[i].ID == active
	}
	return out, nil
}

func (r *Repository) activeSeasonID(ctx context.Context) (uuid.UUID, error) {
	id, err := r.queries.GetActiveID(ctx, string(models.ActiveSeason))
	if errors.Is(pooldb.Translate(err), pooldb.ErrNotFound) {
		return uuid.Nil, nil
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to get active season: %w", err)
	}
	return id, nil
}
