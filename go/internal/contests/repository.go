package contests

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/pickpool/go/internal/events"
	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/outbox"
	"github.com/mcdev12/pickpool/go/internal/pooldb"
	"github.com/mcdev12/pickpool/go/internal/sqlutil"
)

type Repository struct {
	queries *pooldb.Queries
	db      *sql.DB
}

func NewRepository(queries *pooldb.Queries, db *sql.DB) *Repository {
	return &Repository{
		queries: queries,
		db:      db,
	}
}

func (r *Repository) CreateContest(ctx context.Context, c models.Contest) (*models.Contest, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	row, err := r.queries.CreateContest(ctx, pooldb.CreateContestParams{
		ID:            c.ID,
		PeriodID:      c.PeriodID,
		Number:        int32(c.Number),
		StartsAt:      c.StartsAt,
		HomeTeamID:    sqlutil.ToNullUUID(c.HomeTeamID),
		VisitorTeamID: sqlutil.ToNullUUID(c.VisitorTeamID),
		VenueID:       sqlutil.ToNullUUID(c.VenueID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create contest: %w", pooldb.Translate(err))
	}
	contest := row.Model()
	return &contest, nil
}

func (r *Repository) GetContest(ctx context.Context, id uuid.UUID) (*models.Contest, error) {
	row, err := r.queries.GetContest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get contest: %w", pooldb.Translate(err))
	}
	contest := row.Model()
	return &contest, nil
}

func (r *Repository) ListContestsByPeriod(ctx context.Context, periodID uuid.UUID) ([]models.Contest, error) {
	rows, err := r.queries.ListContestsByPeriod(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contests: %w", err)
	}
	out := make([]models.Contest, len(rows))
	for i, row := range rows {
		out[i] = row.Model()
	}
	return out, nil
}

func (r *Repository) GetPeriod(ctx context.Context, id uuid.UUID) (*models.Period, error) {
	row, err := r.queries.GetPeriod(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get period: %w", pooldb.Translate(err))
	}
	period := row.Model()
	return &period, nil
}

// SaveContestResult writes the result and its ContestResultSaved outbox row in
// one transaction.
func (r *Repository) SaveContestResult(ctx context.Context, id uuid.UUID, result models.ContestResult) (*models.Contest, error) {
	var saved pooldb.Contest
	err := sqlutil.InTx(ctx, r.db, func(q *pooldb.Queries) error {
		row, err := q.UpdateContestResult(ctx, pooldb.UpdateContestResultParams{
			ID:            id,
			HomeScore:     int32(result.HomeScore),
			VisitorScore:  int32(result.VisitorScore),
			RegulationTie: result.RegulationTie,
			UpdatedAt:     result.SavedAt,
		})
		if err != nil {
			return fmt.Errorf("failed to update contest result: %w", pooldb.Translate(err))
		}
		saved = row

		return outbox.Insert(ctx, q, row.ID, events.ContestResultSaved, events.ContestResultSavedPayload{
			ContestID:     row.ID.String(),
			PeriodID:      row.PeriodID.String(),
			HomeScore:     int(row.HomeScore),
			VisitorScore:  int(row.VisitorScore),
			RegulationTie: row.RegulationTie,
			SavedAt:       result.SavedAt,
		})
	})
	if err != nil {
		return nil, err
	}
	contest := saved.Model()
	return &contest, nil
}
