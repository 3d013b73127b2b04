package gateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/pickpool/go/internal/httpapi"
)

type Handler struct {
	connectionManager *ConnectionManager
}

func NewHandler(cm *ConnectionManager) *Handler {
	return &Handler{
		connectionManager: cm,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/ws/scoreboard", h.HandleScoreboard)
	r.Get("/ws/stats", h.HandleStats)
}

// HandleScoreboard upgrades to a websocket subscribed to ?season_id=.
func (h *Handler) HandleScoreboard(w http.ResponseWriter, r *http.Request) {
	seasonID, err := httpapi.UUIDQuery(r, "season_id")
	if err != nil {
		httpapi.RespondAppError(w, "season_id is required", err)
		return
	}
	// Upgrade writes its own error response.
	if err := h.connectionManager.UpgradeConnection(w, r, seasonID); err != nil {
		log.Error().Err(err).Str("season_id", seasonID.String()).Msg("failed to upgrade scoreboard connection")
	}
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	httpapi.RespondJSON(w, http.StatusOK, h.connectionManager.Stats())
}
