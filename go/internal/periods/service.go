package periods

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mcdev12/pickpool/go/internal/httpapi"
	"github.com/mcdev12/pickpool/go/internal/models"
)

// PeriodsApp defines what the service layer needs from the periods application
type PeriodsApp interface {
	Activate(ctx context.Context, periodID uuid.UUID) (*models.Period, error)
	ActivateSeason(ctx context.Context, seasonID uuid.UUID) (*models.Season, error)
	ListPeriods(ctx context.Context, seasonID uuid.UUID) ([]models.Period, error)
}

type Service struct {
	app PeriodsApp
}

func NewService(app PeriodsApp) *Service {
	return &Service{
		app: app,
	}
}

func (s *Service) Routes(r chi.Router) {
	r.Get("/current", s.GetCurrent)
	r.Get("/seasons/{seasonID}/periods", s.ListPeriods)
	r.Post("/seasons/{seasonID}/activate", s.ActivateSeason)
	r.Post("/periods/{periodID}/activate", s.Activate)
}

// GetCurrent reports what Middleware resolved for this request.
func (s *Service) GetCurrent(w http.ResponseWriter, r *http.Request) {
	current, _ := FromContext(r.Context())
	httpapi.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"season": current.Season,
		"period": current.Period,
	})
}

func (s *Service) ListPeriods(w http.ResponseWriter, r *http.Request) {
	seasonID, err := httpapi.UUIDParam(r, "seasonID")
	if err != nil {
		httpapi.RespondAppError(w, "invalid season id", err)
		return
	}
	periods, err := s.app.ListPeriods(r.Context(), seasonID)
	if err != nil {
		httpapi.RespondAppError(w, "failed to list periods", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"periods": periods,
		"count":   len(periods),
	})
}

func (s *Service) ActivateSeason(w http.ResponseWriter, r *http.Request) {
	seasonID, err := httpapi.UUIDParam(r, "seasonID")
	if err != nil {
		httpapi.RespondAppError(w, "invalid season id", err)
		return
	}
	season, err := s.app.ActivateSeason(r.Context(), seasonID)
	if err != nil {
		httpapi.RespondAppError(w, "failed to activate season", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, season)
}

func (s *Service) Activate(w http.ResponseWriter, r *http.Request) {
	periodID, err := httpapi.UUIDParam(r, "periodID")
	if err != nil {
		httpapi.RespondAppError(w, "invalid period id", err)
		return
	}
	period, err := s.app.Activate(r.Context(), periodID)
	if err != nil {
		httpapi.RespondAppError(w, "failed to activate period", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, period)
}
