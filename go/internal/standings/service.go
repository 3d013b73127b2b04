package standings

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mcdev12/pickpool/go/internal/httpapi"
	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/periods"
)

// StandingsApp defines what the service layer needs from the standings application
type StandingsApp interface {
	Standings(ctx context.Context, seasonID uuid.UUID) ([]models.Standing, error)
}

type Service struct {
	app StandingsApp
}

func NewService(app StandingsApp) *Service {
	return &Service{
		app: app,
	}
}

func (s *Service) Routes(r chi.Router) {
	r.Get("/standings", s.CurrentStandings)
	r.Get("/seasons/{seasonID}/standings", s.SeasonStandings)
}

// CurrentStandings serves the active season resolved by periods.Middleware.
func (s *Service) CurrentStandings(w http.ResponseWriter, r *http.Request) {
	current, ok := periods.FromContext(r.Context())
	if !ok || current.Season == nil {
		httpapi.RespondAppError(w, "failed to get standings", periods.ErrNoActiveSeason)
		return
	}
	s.respond(w, r, current.Season.ID)
}

func (s *Service) SeasonStandings(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.UUIDParam(r, "seasonID")
	if err != nil {
		httpapi.RespondAppError(w, "invalid season id", err)
		return
	}
	s.respond(w, r, id)
}

func (s *Service) respond(w http.ResponseWriter, r *http.Request, seasonID uuid.UUID) {
	standings, err := s.app.Standings(r.Context(), seasonID)
	if err != nil {
		httpapi.RespondAppError(w, "failed to get standings", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"season_id": seasonID,
		"standings": standings,
	})
}
