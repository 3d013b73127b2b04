package teams

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mcdev12/pickpool/go/internal/httpapi"
	"github.com/mcdev12/pickpool/go/internal/models"
)

// TeamsApp defines what the service layer needs from the teams application
type TeamsApp interface {
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	GetTeamByCode(ctx context.Context, code string) (*models.Team, error)
	ListTeams(ctx context.Context, filter TeamFilter) ([]models.Team, error)
}

type Service struct {
	app TeamsApp
}

func NewService(app TeamsApp) *Service {
	return &Service{
		app: app,
	}
}

func (s *Service) Routes(r chi.Router) {
	r.Get("/teams", s.ListTeams)
	r.Get("/teams/{teamID}", s.GetTeam)
	r.Get("/teams/code/{code}", s.GetTeamByCode)
}

func (s *Service) ListTeams(w http.ResponseWriter, r *http.Request) {
	filter := TeamFilter{
		City:         r.URL.Query().Get("city"),
		IncludeUnset: r.URL.Query().Get("include_unset") == "true",
	}
	teams, err := s.app.ListTeams(r.Context(), filter)
	if err != nil {
		httpapi.RespondAppError(w, "failed to list teams", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"teams": teams,
		"count": len(teams),
	})
}

func (s *Service) GetTeam(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.UUIDParam(r, "teamID")
	if err != nil {
		httpapi.RespondAppError(w, "invalid team id", err)
		return
	}
	team, err := s.app.GetTeam(r.Context(), id)
	if err != nil {
		httpapi.RespondAppError(w, "failed to get team", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, team)
}

func (s *Service) GetTeamByCode(w http.ResponseWriter, r *http.Request) {
	team, err := s.app.GetTeamByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		httpapi.RespondAppError(w, "failed to get team", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, team)
}
