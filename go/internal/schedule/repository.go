package schedule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/pooldb"
	"github.com/mcdev12/pickpool/go/internal/sqlutil"
)

type Repository struct {
	queries *pooldb.Queries
}

func NewRepository(queries *pooldb.Queries) *Repository {
	return &Repository{
		queries: queries,
	}
}

func (r *Repository) CountPeriodsBySeason(ctx context.Context, seasonID uuid.UUID) (int, error) {
	n, err := r.queries.CountPeriodsBySeason(ctx, seasonID)
	if err != nil {
		return 0, fmt.Errorf("failed to count periods: %w", err)
	}
	return int(n), nil
}

func (r *Repository) GetPeriodType(ctx context.Context, id models.PeriodTypeID) (*models.PeriodType, error) {
	row, err := r.queries.GetPeriodType(ctx, int16(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get period type: %w", pooldb.Translate(err))
	}
	pt := row.Model()
	return &pt, nil
}

func (r *Repository) GetPredictionKind(ctx context.Context, id models.PredictionKindID) (*models.PredictionKind, error) {
	row, err := r.queries.GetPredictionKind(ctx, int16(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction kind: %w", pooldb.Translate(err))
	}
	k := row.Model()
	return &k, nil
}

func (r *Repository) GetTeamByCode(ctx context.Context, code string) (*models.Team, error) {
	row, err := r.queries.GetTeamByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get team %s: %w", code, pooldb.Translate(err))
	}
	t := row.Model()
	return &t, nil
}

func (r *Repository) GetVenueByName(ctx context.Context, name string) (*models.Venue, error) {
	row, err := r.queries.GetVenueByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get venue %s: %w", name, pooldb.Translate(err))
	}
	v := row.Model()
	return &v, nil
}

func (r *Repository) CreatePeriod(ctx context.Context, p models.Period) (*models.Period, error) {
	row, err := r.queries.CreatePeriod(ctx, pooldb.CreatePeriodParams{
		ID:           p.ID,
		SeasonID:     p.SeasonID,
		PeriodTypeID: int16(p.PeriodTypeID),
		Sequence:     int32(p.Sequence),
		Name:         p.Name,
		StartsAt:     p.StartsAt,
		EndsAt:       p.EndsAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create period: %w", pooldb.Translate(err))
	}
	period := row.Model()
	return &period, nil
}

func (r *Repository) CreateWinner(ctx context.Context, w models.Winner) (*models.Winner, error) {
	row, err := r.queries.CreateWinner(ctx, pooldb.CreateWinnerParams{
		ID:            w.ID,
		PeriodID:      w.PeriodID,
		ParticipantID: sqlutil.ToNullUUID(w.ParticipantID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create winner: %w", err)
	}
	winner := row.Model()
	return &winner, nil
}
