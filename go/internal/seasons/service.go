package seasons

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mcdev12/pickpool/go/internal/httpapi"
	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/schedule"
)

// SeasonsApp defines what the service layer needs from the seasons application
type SeasonsApp interface {
	CreateSeason(ctx context.Context, req CreateSeasonRequest) (*CreateSeasonResponse, error)
	Generate(ctx context.Context, id uuid.UUID) (*schedule.Report, error)
	GetSeason(ctx context.Context, id uuid.UUID) (*models.Season, error)
	ListSeasons(ctx context.Context) ([]models.Season, error)
}

type Service struct {
	app SeasonsApp
}

func NewService(app SeasonsApp) *Service {
	return &Service{
		app: app,
	}
}

func (s *Service) Routes(r chi.Router) {
	r.Get("/seasons", s.ListSeasons)
	r.Post("/seasons", s.CreateSeason)
	r.Get("/seasons/{seasonID}", s.GetSeason)
	r.Post("/seasons/{seasonID}/schedule", s.Generate)
}

func (s *Service) CreateSeason(w http.ResponseWriter, r *http.Request) {
	var req CreateSeasonRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.RespondAppError(w, "invalid request body", err)
		return
	}
	resp, err := s.app.CreateSeason(r.Context(), req)
	if err != nil {
		httpapi.RespondAppError(w, "failed to create season", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusCreated, resp)
}

func (s *Service) Generate(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.UUIDParam(r, "seasonID")
	if err != nil {
		httpapi.RespondAppError(w, "invalid season id", err)
		return
	}
	report, err := s.app.Generate(r.Context(), id)
	if err != nil {
		httpapi.RespondAppError(w, "failed to generate schedule", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, report)
}

func (s *Service) GetSeason(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.UUIDParam(r, "seasonID")
	if err != nil {
		httpapi.RespondAppError(w, "invalid season id", err)
		return
	}
	season, err := s.app.GetSeason(r.Context(), id)
	if err != nil {
		httpapi.RespondAppError(w, "failed to get season", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, season)
}

func (s *Service) ListSeasons(w http.ResponseWriter, r *http.Request) {
	seasons, err := s.app.ListSeasons(r.Context())
	if err != nil {
		httpapi.RespondAppError(w, "failed to list seasons", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"seasons": seasons,
		"count":   len(seasons),
	})
}
