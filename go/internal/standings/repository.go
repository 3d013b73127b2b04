package standings

import (
	"context"
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

func (r *Repository) GetSeason(ctx context.Context, id uuid.UUID) (*models.Season, error) {
	row, err := r.queries.GetSeason(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get season: %w", pooldb.Translate(err))
	}
	season := row.Model()
	return &season, nil
}

func (r *Repository) ListPeriodsBySeason(ctx context.Context, seasonID uuid.UUID) ([]models.Period, error) {
	rows, err := r.queries.ListPeriodsBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	out := make([]models.Period, len(rows))
	for i, row := range rows {
		out[i] = row.Model()
	}
	return out, nil
}

func (r *Repository) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	rows, err := r.queries.ListParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	out := make([]models.Participant, len(rows))
	for i, row := range rows {
		out[i] = row.Model()
	}
	return out, nil
}

func (r *Repository) ListPeriodScores(ctx context.Context, seasonID uuid.UUID) ([]models.PeriodScore, error) {
	rows, err := r.queries.ListPeriodScores(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list period scores: %w", err)
	}
	out := make([]models.PeriodScore, len(rows))
	for i, row := range rows {
		out[i] = models.PeriodScore{
			ParticipantID: row.ParticipantID,
			PeriodID:      row.PeriodID,
			Points:        int(row.Points),
		}
	}
	return out, nil
}
