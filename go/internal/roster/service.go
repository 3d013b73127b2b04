package roster

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mcdev12/pickpool/go/internal/httpapi"
)

// RosterApp defines what the service layer needs from the roster application
type RosterApp interface {
	OnParticipantCreated(ctx context.Context, participantID uuid.UUID) (*Report, error)
}

// Service exposes manual re-provisioning for administrators
type Service struct {
	app RosterApp
}

func NewService(app RosterApp) *Service {
	return &Service{
		app: app,
	}
}

func (s *Service) Routes(r chi.Router) {
	r.Post("/participants/{participantID}/provision", s.Provision)
}

func (s *Service) Provision(w http.ResponseWriter, r *http.Request) {
	participantID, err := httpapi.UUIDParam(r, "participantID")
	if err != nil {
		httpapi.RespondAppError(w, "invalid participant id", err)
		return
	}

	report, err := s.app.OnParticipantCreated(r.Context(), participantID)
	if err != nil {
		httpapi.RespondAppError(w, "failed to provision participant", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, report)
}
