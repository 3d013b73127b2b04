package scoring

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/pickpool/go/internal/clock"
	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/outcome"
)

// ScoringRepository defines what the engine needs from persistence
type ScoringRepository interface {
	ResetContestScores(ctx context.Context, contestID uuid.UUID) error
	ListParticipantIDs(ctx context.Context) ([]uuid.UUID, error)
	GetOrCreatePrediction(ctx context.Context, contestID, participantID uuid.UUID) (*models.Prediction, bool, error)
	UpdatePredictionScore(ctx context.Context, id uuid.UUID, score int) error
}

// Summary reports one scoring pass over a contest.
type Summary struct {
	ContestID     uuid.UUID       `json:"contest_id"`
	Outcome       outcome.Outcome `json:"outcome"`
	Scored        int             `json:"scored"`
	Created       int             `json:"created"`
	Failed        int             `json:"failed"`
	PointsAwarded int             `json:"points_awarded"`
}

// Engine rescores every prediction of a contest whenever its result is saved.
type Engine struct {
	repo  ScoringRepository
	rules Rules
	clock clock.Clock
}

func NewEngine(repo ScoringRepository, rules Rules, clk clock.Clock) *Engine {
	return &Engine{
		repo:  repo,
		rules: rules,
		clock: clk,
	}
}

func (e *Engine) Rules() Rules {
	return e.rules
}

// Score is the award a prediction earns against a classified contest.
func (e *Engine) Score(p models.Prediction, o outcome.Outcome) int {
	return e.rules.Score(o, p.KindID)
}

// OnContestResultSaved resets all scores of the contest, then recomputes one
// prediction per current participant. Participants without a prediction get a
// no-pick created and stay at 0 for this pass.
//
// Per-participant failures are logged and counted; they never abort the pass.
func (e *Engine) OnContestResultSaved(ctx context.Context, contest models.Contest) (*Summary, error) {
	o := outcome.Classify(contest, e.clock.Now())
	summary := &Summary{ContestID: contest.ID, Outcome: o}

	if err := e.repo.ResetContestScores(ctx, contest.ID); err != nil {
		return nil, fmt.Errorf("failed to reset contest scores: %w", err)
	}

	participantIDs, err := e.repo.ListParticipantIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	for _, participantID := range participantIDs {
		prediction, created, err := e.repo.GetOrCreatePrediction(ctx, contest.ID, participantID)
		if err != nil {
			summary.Failed++
			log.Error().Err(err).
				Str("contest_id", contest.ID.String()).
				Str("participant_id", participantID.String()).
				Msg("failed to get or create prediction")
			continue
		}
		if created {
			summary.Created++
			continue
		}

		points := e.Score(*prediction, o)
		if points != 0 {
			if err := e.repo.UpdatePredictionScore(ctx, prediction.ID, points); err != nil {
				summary.Failed++
				log.Error().Err(err).
					Str("contest_id", contest.ID.String()).
					Str("prediction_id", prediction.ID.String()).
					Msg("failed to update prediction score")
				continue
			}
		}
		summary.Scored++
		summary.PointsAwarded += points
	}

	log.Info().
		Str("contest_id", contest.ID.String()).
		Str("status", o.Status.String()).
		Str("facts", o.Facts.String()).
		Int("scored", summary.Scored).
		Int("created", summary.Created).
		Int("failed", summary.Failed).
		Msg("contest scored")

	return summary, nil
}
