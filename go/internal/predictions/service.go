package predictions

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mcdev12/pickpool/go/internal/httpapi"
	"github.com/mcdev12/pickpool/go/internal/models"
)

// PredictionsApp defines what the service layer needs from the predictions application
type PredictionsApp interface {
	MakePrediction(ctx context.Context, req MakePredictionRequest) (*models.Prediction, error)
	ListForParticipantPeriod(ctx context.Context, participantID, periodID uuid.UUID) ([]models.Prediction, error)
}

// Service exposes prediction entry over HTTP
type Service struct {
	app PredictionsApp
}

func NewService(app PredictionsApp) *Service {
	return &Service{
		app: app,
	}
}

func (s *Service) Routes(r chi.Router) {
	r.Post("/predictions", s.MakePrediction)
	r.Get("/participants/{participantID}/periods/{periodID}/predictions", s.ListForParticipantPeriod)
}

func (s *Service) MakePrediction(w http.ResponseWriter, r *http.Request) {
	var req MakePredictionRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.RespondAppError(w, "invalid request body", err)
		return
	}

	prediction, err := s.app.MakePrediction(r.Context(), req)
	if err != nil {
		httpapi.RespondAppError(w, "failed to make prediction", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, prediction)
}

func (s *Service) ListForParticipantPeriod(w http.ResponseWriter, r *http.Request) {
	participantID, err := httpapi.UUIDParam(r, "participantID")
	if err != nil {
		httpapi.RespondAppError(w, "invalid participant id", err)
		return
	}
	periodID, err := httpapi.UUIDParam(r, "periodID")
	if err != nil {
		httpapi.RespondAppError(w, "invalid period id", err)
		return
	}

	predictions, err := s.app.ListForParticipantPeriod(r.Context(), participantID, periodID)
	if err != nil {
		httpapi.RespondAppError(w, "failed to list predictions", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"predictions": predictions,
		"count":       len(predictions),
	})
}
