package seasons

import (
	"time"

	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/schedule"
)

// CreateSeasonRequest represents the data needed to create a new season
type CreateSeasonRequest struct {
	Name     string    `json:"name"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	Activate bool      `json:"activate"`
}

// CreateSeasonResponse is the new season plus what the generator laid out
type CreateSeasonResponse struct {
	Season   *models.Season   `json:"season"`
	Schedule *schedule.Report `json:"schedule"`
}
