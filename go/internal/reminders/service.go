package reminders

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mcdev12/pickpool/go/internal/httpapi"
	"github.com/mcdev12/pickpool/go/internal/models"
)

// RemindersApp defines what the service layer needs from the reminders application
type RemindersApp interface {
	Recipients(ctx context.Context) (*models.Period, []string, error)
	Send(ctx context.Context) (*Result, error)
}

type Service struct {
	app RemindersApp
}

func NewService(app RemindersApp) *Service {
	return &Service{
		app: app,
	}
}

func (s *Service) Routes(r chi.Router) {
	r.Get("/reminders/recipients", s.Recipients)
	r.Post("/reminders/send", s.Send)
}

func (s *Service) Recipients(w http.ResponseWriter, r *http.Request) {
	period, emails, err := s.app.Recipients(r.Context())
	if err != nil {
		httpapi.RespondAppError(w, "failed to resolve recipients", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"period_id":  period.ID,
		"period":     period.Name,
		"recipients": emails,
		"count":      len(emails),
	})
}

func (s *Service) Send(w http.ResponseWriter, r *http.Request) {
	result, err := s.app.Send(r.Context())
	if err != nil {
		httpapi.RespondAppError(w, "failed to send reminders", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, result)
}
