package participants

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mcdev12/pickpool/go/internal/httpapi"
	"github.com/mcdev12/pickpool/go/internal/models"
)

// ParticipantsApp defines what the service layer needs from the participants application
type ParticipantsApp interface {
	CreateParticipant(ctx context.Context, req CreateParticipantRequest) (*CreateParticipantResponse, error)
	GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error)
	ListParticipants(ctx context.Context) ([]models.Participant, error)
}

type Service struct {
	app ParticipantsApp
}

func NewService(app ParticipantsApp) *Service {
	return &Service{
		app: app,
	}
}

func (s *Service) Routes(r chi.Router) {
	r.Get("/participants", s.ListParticipants)
	r.Post("/participants", s.CreateParticipant)
	r.Get("/participants/{participantID}", s.GetParticipant)
}

func (s *Service) CreateParticipant(w http.ResponseWriter, r *http.Request) {
	var req CreateParticipantRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.RespondAppError(w, "invalid request body", err)
		return
	}
	resp, err := s.app.CreateParticipant(r.Context(), req)
	if err != nil {
		httpapi.RespondAppError(w, "failed to create participant", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusCreated, resp)
}

func (s *Service) GetParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.UUIDParam(r, "participantID")
	if err != nil {
		httpapi.RespondAppError(w, "invalid participant id", err)
		return
	}
	participant, err := s.app.GetParticipant(r.Context(), id)
	if err != nil {
		httpapi.RespondAppError(w, "failed to get participant", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, participant)
}

func (s *Service) ListParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := s.app.ListParticipants(r.Context())
	if err != nil {
		httpapi.RespondAppError(w, "failed to list participants", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"participants": participants,
		"count":        len(participants),
	})
}
