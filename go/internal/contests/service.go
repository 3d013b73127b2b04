package contests

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mcdev12/pickpool/go/internal/httpapi"
	"github.com/mcdev12/pickpool/go/internal/models"
)

// ContestsApp defines what the service layer needs from the contests application
type ContestsApp interface {
	CreateContest(ctx context.Context, req CreateContestRequest) (*models.Contest, error)
	SaveResult(ctx context.Context, id uuid.UUID, result models.ContestResult) (*ContestView, error)
	GetContest(ctx context.Context, id uuid.UUID) (*ContestView, error)
	ListByPeriod(ctx context.Context, periodID uuid.UUID) ([]ContestView, error)
}

type Service struct {
	app ContestsApp
}

func NewService(app ContestsApp) *Service {
	return &Service{
		app: app,
	}
}

func (s *Service) Routes(r chi.Router) {
	r.Post("/contests", s.CreateContest)
	r.Get("/contests/{contestID}", s.GetContest)
	r.Put("/contests/{contestID}/result", s.SaveResult)
	r.Get("/periods/{periodID}/contests", s.ListByPeriod)
}

func (s *Service) CreateContest(w http.ResponseWriter, r *http.Request) {
	var req CreateContestRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.RespondAppError(w, "invalid request body", err)
		return
	}
	contest, err := s.app.CreateContest(r.Context(), req)
	if err != nil {
		httpapi.RespondAppError(w, "failed to create contest", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusCreated, contest)
}

func (s *Service) GetContest(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.UUIDParam(r, "contestID")
	if err != nil {
		httpapi.RespondAppError(w, "invalid contest id", err)
		return
	}
	view, err := s.app.GetContest(r.Context(), id)
	if err != nil {
		httpapi.RespondAppError(w, "failed to get contest", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, view)
}

func (s *Service) SaveResult(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.UUIDParam(r, "contestID")
	if err != nil {
		httpapi.RespondAppError(w, "invalid contest id", err)
		return
	}
	var result models.ContestResult
	if err := httpapi.Decode(r, &result); err != nil {
		httpapi.RespondAppError(w, "invalid request body", err)
		return
	}
	view, err := s.app.SaveResult(r.Context(), id, result)
	if err != nil {
		httpapi.RespondAppError(w, "failed to save result", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, view)
}

func (s *Service) ListByPeriod(w http.ResponseWriter, r *http.Request) {
	periodID, err := httpapi.UUIDParam(r, "periodID")
	if err != nil {
		httpapi.RespondAppError(w, "invalid period id", err)
		return
	}
	views, err := s.app.ListByPeriod(r.Context(), periodID)
	if err != nil {
		httpapi.RespondAppError(w, "failed to list contests", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"contests": views,
		"count":    len(views),
	})
}
