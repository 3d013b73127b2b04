package contests

import (
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/outcome"
)

// CreateContestRequest represents the data needed to schedule a contest
type CreateContestRequest struct {
	PeriodID      uuid.UUID  `json:"period_id"`
	Number        int        `json:"number"`
	StartsAt      time.Time  `json:"starts_at"`
	HomeTeamID    *uuid.UUID `json:"home_team_id,omitempty"`
	VisitorTeamID *uuid.UUID `json:"visitor_team_id,omitempty"`
	VenueID       *uuid.UUID `json:"venue_id,omitempty"`
}

// ContestView is a contest with its outcome derived at read time
type ContestView struct {
	models.Contest
	Outcome outcome.Outcome `json:"outcome"`
}
