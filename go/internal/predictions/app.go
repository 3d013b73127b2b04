package predictions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/pickpool/go/internal/clock"
	"github.com/mcdev12/pickpool/go/internal/models"
)

// PredictionsRepository defines what the app layer needs from the repository
type PredictionsRepository interface {
	GetOrCreatePrediction(ctx context.Context, contestID, participantID uuid.UUID) (*models.Prediction, bool, error)
	UpdatePredictionKind(ctx context.Context, id uuid.UUID, kind models.PredictionKindID, at time.Time) (*models.Prediction, error)
	ListPredictionsByParticipantPeriod(ctx context.Context, participantID, periodID uuid.UUID) ([]models.Prediction, error)
	GetPredictionKind(ctx context.Context, id models.PredictionKindID) (*models.PredictionKind, error)
	GetContest(ctx context.Context, id uuid.UUID) (*models.Contest, error)
}

// App handles prediction entry
type App struct {
	repo  PredictionsRepository
	clock clock.Clock
}

func NewApp(repo PredictionsRepository, clk clock.Clock) *App {
	return &App{
		repo:  repo,
		clock: clk,
	}
}

// MakePrediction records the participant's chosen kind for a contest. Entries
// close once the contest's start has passed. Scores are left alone; they are
// recomputed on the next result save.
func (a *App) MakePrediction(ctx context.Context, req MakePredictionRequest) (*models.Prediction, error) {
	if req.ContestID == uuid.Nil || req.ParticipantID == uuid.Nil {
		return nil, fmt.Errorf("%w: contest_id and participant_id are required", models.ErrValidation)
	}

	kind, err := a.repo.GetPredictionKind(ctx, req.KindID)
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction kind %d: %w", req.KindID, err)
	}
	if !kind.Active {
		return nil, ErrInactiveKind
	}

	contest, err := a.repo.GetContest(ctx, req.ContestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get contest: %w", err)
	}
	now := a.clock.Now()
	if contest.StartsAt.Before(now) {
		return nil, ErrContestStarted
	}

	prediction, _, err := a.repo.GetOrCreatePrediction(ctx, req.ContestID, req.ParticipantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction: %w", err)
	}

	updated, err := a.repo.UpdatePredictionKind(ctx, prediction.ID, req.KindID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to make prediction: %w", err)
	}

	log.Info().
		Str("participant_id", req.ParticipantID.String()).
		Str("contest_id", req.ContestID.String()).
		Str("kind", kind.Name).
		Msg("prediction made")
	return updated, nil
}

// ListForParticipantPeriod returns a participant's predictions for one period in contest order.
func (a *App) ListForParticipantPeriod(ctx context.Context, participantID, periodID uuid.UUID) ([]models.Prediction, error) {
	predictions, err := a.repo.ListPredictionsByParticipantPeriod(ctx, participantID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	return predictions, nil
}
