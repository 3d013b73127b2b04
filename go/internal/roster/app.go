package roster

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/pickpool/go/internal/clock"
	"github.com/mcdev12/pickpool/go/internal/events"
	"github.com/mcdev12/pickpool/go/internal/models"
)

const WelcomeMessage = "Welcome to this year's football pool. This is a welcome alert. Click the =>'x' to delete it."

// RosterRepository defines what provisioning needs from persistence
type RosterRepository interface {
	ListContestIDs(ctx context.Context) ([]uuid.UUID, error)
	ListParticipantIDs(ctx context.Context) ([]uuid.UUID, error)
	GetOrCreatePrediction(ctx context.Context, contestID, participantID uuid.UUID) (*models.Prediction, bool, error)
	PaymentAuditExists(ctx context.Context, participantID uuid.UUID) (bool, error)
	CreatePaymentAudit(ctx context.Context, audit models.PaymentAudit) error
	PreferencesExist(ctx context.Context, participantID uuid.UUID) (bool, error)
	CreatePreferences(ctx context.Context, prefs models.Preferences) error
	CountAlerts(ctx context.Context, participantID uuid.UUID) (int, error)
	CreateAlert(ctx context.Context, alert models.Alert) error
}

// EventRecorder writes domain events to the outbox
type EventRecorder interface {
	Record(ctx context.Context, aggregateID uuid.UUID, eventType events.Type, payload interface{}) error
}

// Report counts what a provisioning pass created.
type Report struct {
	PredictionsCreated int  `json:"predictions_created"`
	PredictionsFailed  int  `json:"predictions_failed"`
	PaymentAudit       bool `json:"payment_audit"`
	Preferences        bool `json:"preferences"`
	WelcomeAlert       bool `json:"welcome_alert"`
}

// App back-fills the baseline rows every (participant, contest) pair needs.
type App struct {
	repo     RosterRepository
	recorder EventRecorder
	clock    clock.Clock
}

func NewApp(repo RosterRepository, recorder EventRecorder, clk clock.Clock) *App {
	return &App{
		repo:     repo,
		recorder: recorder,
		clock:    clk,
	}
}

// OnParticipantCreated gives a new participant a no-pick prediction for every
// existing contest plus a payment audit, default preferences and a welcome
// alert. Each step is guarded, so re-running it creates nothing new.
//
// Individual failures are logged and skipped.
func (a *App) OnParticipantCreated(ctx context.Context, participantID uuid.UUID) (*Report, error) {
	contestIDs, err := a.repo.ListContestIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contests: %w", err)
	}

	report := &Report{}
	for _, contestID := range contestIDs {
		a.ensurePrediction(ctx, contestID, participantID, report)
	}

	report.PaymentAudit = a.ensurePaymentAudit(ctx, participantID)
	report.Preferences = a.ensurePreferences(ctx, participantID)
	report.WelcomeAlert = a.ensureWelcomeAlert(ctx, participantID)

	log.Info().
		Str("participant_id", participantID.String()).
		Int("contests", len(contestIDs)).
		Int("predictions_created", report.PredictionsCreated).
		Int("predictions_failed", report.PredictionsFailed).
		Msg("participant provisioned")

	if a.recorder != nil {
		err := a.recorder.Record(ctx, participantID, events.ParticipantProvisioned, events.ParticipantProvisionedPayload{
			ParticipantID:      participantID.String(),
			PredictionsCreated: report.PredictionsCreated,
			PaymentAudit:       report.PaymentAudit,
			Preferences:        report.Preferences,
			WelcomeAlert:       report.WelcomeAlert,
			ProvisionedAt:      a.clock.Now(),
		})
		if err != nil {
			log.Error().Err(err).Str("participant_id", participantID.String()).Msg("failed to record provisioning event")
		}
	}
	return report, nil
}

// OnContestCreated is the symmetric fan-out: every current participant gets a
// no-pick prediction for the new contest.
func (a *App) OnContestCreated(ctx context.Context, contestID uuid.UUID) (*Report, error) {
	participantIDs, err := a.repo.ListParticipantIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	report := &Report{}
	for _, participantID := range participantIDs {
		a.ensurePrediction(ctx, contestID, participantID, report)
	}

	log.Debug().
		Str("contest_id", contestID.String()).
		Int("predictions_created", report.PredictionsCreated).
		Msg("contest provisioned")
	return report, nil
}

func (a *App) ensurePrediction(ctx context.Context, contestID, participantID uuid.UUID, report *Report) {
	_, created, err := a.repo.GetOrCreatePrediction(ctx, contestID, participantID)
	if err != nil {
		report.PredictionsFailed++
		log.Error().Err(err).
			Str("contest_id", contestID.String()).
			Str("participant_id", participantID.String()).
			Msg("failed to create prediction")
		return
	}
	if created {
		report.PredictionsCreated++
	}
}

func (a *App) ensurePaymentAudit(ctx context.Context, participantID uuid.UUID) bool {
	exists, err := a.repo.PaymentAuditExists(ctx, participantID)
	if err != nil {
		log.Error().Err(err).Str("participant_id", participantID.String()).Msg("failed to check payment audit")
		return false
	}
	if exists {
		return false
	}
	err = a.repo.CreatePaymentAudit(ctx, models.PaymentAudit{
		ParticipantID: participantID,
		HasPaid:       false,
		CreatedAt:     a.clock.Now(),
	})
	if err != nil {
		log.Error().Err(err).Str("participant_id", participantID.String()).Msg("failed to create payment audit")
		return false
	}
	return true
}

func (a *App) ensurePreferences(ctx context.Context, participantID uuid.UUID) bool {
	exists, err := a.repo.PreferencesExist(ctx, participantID)
	if err != nil {
		log.Error().Err(err).Str("participant_id", participantID.String()).Msg("failed to check preferences")
		return false
	}
	if exists {
		return false
	}
	err = a.repo.CreatePreferences(ctx, models.Preferences{
		ParticipantID: participantID,
		PicksLayout:   models.LayoutGrid,
		WinnersLayout: models.LayoutGrid,
	})
	if err != nil {
		log.Error().Err(err).Str("participant_id", participantID.String()).Msg("failed to create preferences")
		return false
	}
	return true
}

func (a *App) ensureWelcomeAlert(ctx context.Context, participantID uuid.UUID) bool {
	n, err := a.repo.CountAlerts(ctx, participantID)
	if err != nil {
		log.Error().Err(err).Str("participant_id", participantID.String()).Msg("failed to count alerts")
		return false
	}
	if n > 0 {
		return false
	}
	err = a.repo.CreateAlert(ctx, models.Alert{
		ID:            uuid.New(),
		ParticipantID: participantID,
		Level:         models.AlertInfo,
		Message:       WelcomeMessage,
		Metadata:      map[string]string{"kind": "welcome"},
		CreatedAt:     a.clock.Now(),
	})
	if err != nil {
		log.Error().Err(err).Str("participant_id", participantID.String()).Msg("failed to create welcome alert")
		return false
	}
	return true
}
