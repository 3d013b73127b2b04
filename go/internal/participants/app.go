package participants

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/pickpool/go/internal/clock"
	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/pooldb"
	"github.com/mcdev12/pickpool/go/internal/roster"
)

const defaultTimezone = "America/New_York"

// ParticipantsRepository defines what the app layer needs from the repository
type ParticipantsRepository interface {
	CreateParticipant(ctx context.Context, p models.Participant) (*models.Participant, error)
	GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error)
	GetParticipantByUsername(ctx context.Context, username string) (*models.Participant, error)
	GetParticipantByEmail(ctx context.Context, email string) (*models.Participant, error)
	ListParticipants(ctx context.Context) ([]models.Participant, error)
}

// Provisioner gives a new participant their predictions and account defaults
type Provisioner interface {
	OnParticipantCreated(ctx context.Context, participantID uuid.UUID) (*roster.Report, error)
}

// App handles participant business logic
type App struct {
	repo        ParticipantsRepository
	provisioner Provisioner
	clock       clock.Clock
}

func NewApp(repo ParticipantsRepository, provisioner Provisioner, clk clock.Clock) *App {
	return &App{
		repo:        repo,
		provisioner: provisioner,
		clock:       clk,
	}
}

// CreateParticipant persists a participant, then provisions them. A
// provisioning failure is logged and the participant is still returned.
func (a *App) CreateParticipant(ctx context.Context, req CreateParticipantRequest) (*CreateParticipantResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if err := a.validateCreateParticipantRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	if _, err := a.repo.GetParticipantByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, pooldb.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if _, err := a.repo.GetParticipantByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, pooldb.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = defaultTimezone
	}

	participant, err := a.repo.CreateParticipant(ctx, models.Participant{
		ID:             uuid.New(),
		Username:       req.Username,
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		FavoriteTeamID: req.FavoriteTeamID,
		Timezone:       timezone,
		CreatedAt:      a.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}
	log.Info().
		Str("participant_id", participant.ID.String()).
		Str("username", participant.Username).
		Msg("participant created")

	resp := &CreateParticipantResponse{Participant: participant}
	if a.provisioner != nil {
		report, err := a.provisioner.OnParticipantCreated(ctx, participant.ID)
		if err != nil {
			log.Error().Err(err).Str("participant_id", participant.ID.String()).Msg("failed to provision participant")
		}
		resp.Provisioning = report
	}
	return resp, nil
}

func (a *App) GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error) {
	participant, err := a.repo.GetParticipant(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return participant, nil
}

func (a *App) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	participants, err := a.repo.ListParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return participants, nil
}

func (a *App) validateCreateParticipantRequest(req CreateParticipantRequest) error {
	if req.Username == "" {
		return fmt.Errorf("username is required")
	}
	if req.Email == "" {
		return fmt.Errorf("email is required")
	}
	at := strings.Index(req.Email, "@")
	if at < 1 || !strings.Contains(req.Email[at:], ".") {
		return fmt.Errorf("email format is invalid")
	}
	return nil
}
