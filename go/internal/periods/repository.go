package periods

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/pooldb"
)

// Repository implements the active registers and period lookups. The
// is_active flags on returned rows are derived from the registers.
type Repository struct {
	queries *pooldb.Queries
}

func NewRepository(queries *pooldb.Queries) *Repository {
	return &Repository{
		queries: queries,
	}
}

func (r *Repository) GetActiveID(ctx context.Context, key models.ActiveKey) (uuid.UUID, error) {
	id, err := r.queries.GetActiveID(ctx, string(key))
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to get active %s: %w", key, pooldb.Translate(err))
	}
	return id, nil
}

func (r *Repository) SetActiveID(ctx context.Context, key models.ActiveKey, id uuid.UUID) error {
	err := r.queries.SetActiveID(ctx, pooldb.SetActiveIDParams{
		Entity:   string(key),
		ActiveID: id,
	})
	if err != nil {
		return fmt.Errorf("failed to set active %s: %w", key, err)
	}
	return nil
}

func (r *Repository) GetSeason(ctx context.Context, id uuid.UUID) (*models.Season, error) {
	row, err := r.queries.GetSeason(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get season: %w", pooldb.Translate(err))
	}
	season := row.Model()
	active, err := r.activeID(ctx, models.ActiveSeason)
	if err != nil {
		return nil, err
	}
	season.IsActive = season.ID == active
	return &season, nil
}

func (r *Repository) GetPeriod(ctx context.Context, id uuid.UUID) (*models.Period, error) {
	row, err := r.queries.GetPeriod(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get period: %w", pooldb.Translate(err))
	}
	return r.withActive(ctx, row)
}

func (r *Repository) FindPeriodAt(ctx context.Context, t time.Time) (*models.Period, error) {
	row, err := r.queries.FindPeriodAt(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to find period: %w", pooldb.Translate(err))
	}
	return r.withActive(ctx, row)
}

func (r *Repository) ListPeriodsBySeason(ctx context.Context, seasonID uuid.UUID) ([]models.Period, error) {
	rows, err := r.queries.ListPeriodsBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	active, err := r.activeID(ctx, models.ActivePeriod)
	if err != nil {
		return nil, err
	}
	out := make([]models.Period, len(rows))
	for i, row := range rows {
		out[i] = row.Model()
		out[i].IsActive = out[i].ID == active
	}
	return out, nil
}

func (r *Repository) withActive(ctx context.Context, row pooldb.Period) (*models.Period, error) {
	period := row.Model()
	active, err := r.activeID(ctx, models.ActivePeriod)
	if err != nil {
		return nil, err
	}
	period.IsActive = period.ID == active
	return &period, nil
}

// activeID reads a register, treating an empty register as uuid.Nil.
func (r *Repository) activeID(ctx context.Context, key models.ActiveKey) (uuid.UUID, error) {
	id, err := r.queries.GetActiveID(ctx, string(key))
	if errors.Is(pooldb.Translate(err), pooldb.ErrNotFound) {
		return uuid.Nil, nil
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to get active %s: %w", key, err)
	}
	return id, nil
}
