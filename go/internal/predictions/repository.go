package predictions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/pooldb"
)

// Repository implements prediction data access over the pool queries. The
// scoring and roster repositories embed it for get-or-create.
type Repository struct {
	queries *pooldb.Queries
}

func NewRepository(queries *pooldb.Queries) *Repository {
	return &Repository{
		queries: queries,
	}
}

// GetOrCreatePrediction returns the prediction for the pair, creating a no-pick
// when none exists. created reports which path was taken.
func (r *Repository) GetOrCreatePrediction(ctx context.Context, contestID, participantID uuid.UUID) (*models.Prediction, bool, error) {
	row, err := r.queries.InsertPredictionIfMissing(ctx, pooldb.InsertPredictionIfMissingParams{
		ID:            uuid.New(),
		ContestID:     contestID,
		ParticipantID: participantID,
		KindID:        int16(models.KindNoPick),
	})
	if err == nil {
		p := row.Model()
		return &p, true, nil
	}
	if !errors.Is(pooldb.Translate(err), pooldb.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to insert prediction: %w", pooldb.Translate(err))
	}

	row, err = r.queries.GetPredictionByPair(ctx, pooldb.GetPredictionByPairParams{
		ContestID:     contestID,
		ParticipantID: participantID,
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to get prediction: %w", pooldb.Translate(err))
	}
	p := row.Model()
	return &p, false, nil
}

func (r *Repository) GetPrediction(ctx context.Context, id uuid.UUID) (*models.Prediction, error) {
	row, err := r.queries.GetPrediction(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction: %w", pooldb.Translate(err))
	}
	p := row.Model()
	return &p, nil
}

func (r *Repository) ResetContestScores(ctx context.Context, contestID uuid.UUID) error {
	if err := r.queries.ResetContestScores(ctx, contestID); err != nil {
		return fmt.Errorf("failed to reset contest scores: %w", err)
	}
	return nil
}

func (r *Repository) UpdatePredictionScore(ctx context.Context, id uuid.UUID, score int) error {
	err := r.queries.UpdatePredictionScore(ctx, pooldb.UpdatePredictionScoreParams{
		ID:    id,
		Score: int32(score),
	})
	if err != nil {
		return fmt.Errorf("failed to update prediction score: %w", err)
	}
	return nil
}

func (r *Repository) UpdatePredictionKind(ctx context.Context, id uuid.UUID, kind models.PredictionKindID, at time.Time) (*models.Prediction, error) {
	row, err := r.queries.UpdatePredictionKind(ctx, pooldb.UpdatePredictionKindParams{
		ID:        id,
		KindID:    int16(kind),
		UpdatedAt: at,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update prediction kind: %w", pooldb.Translate(err))
	}
	p := row.Model()
	return &p, nil
}

func (r *Repository) ListPredictionsByParticipantPeriod(ctx context.Context, participantID, periodID uuid.UUID) ([]models.Prediction, error) {
	rows, err := r.queries.ListPredictionsByParticipantPeriod(ctx, pooldb.ListPredictionsByParticipantPeriodParams{
		ParticipantID: participantID,
		PeriodID:      periodID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	out := make([]models.Prediction, len(rows))
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

// ListNoPickEmails returns the distinct emails of participants still holding a
// no-pick on any contest of the period.
func (r *Repository) ListNoPickEmails(ctx context.Context, periodID uuid.UUID) ([]string, error) {
	emails, err := r.queries.ListNoPickEmails(ctx, pooldb.ListNoPickEmailsParams{
		PeriodID: periodID,
		KindID:   int16(models.KindNoPick),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list no-pick emails: %w", err)
	}
	return emails, nil
}

func (r *Repository) GetPredictionKind(ctx context.Context, id models.PredictionKindID) (*models.PredictionKind, error) {
	row, err := r.queries.GetPredictionKind(ctx, int16(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction kind: %w", pooldb.Translate(err))
	}
	k := row.Model()
	return &k, nil
}

func (r *Repository) GetContest(ctx context.Context, id uuid.UUID) (*models.Contest, error) {
	row, err := r.queries.GetContest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get contest: %w", pooldb.Translate(err))
	}
	c := row.Model()
	return &c, nil
}
