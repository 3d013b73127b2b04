package models

import (
	"time"

	"github.com/google/uuid"
)

// Contest is a single scheduled matchup inside a period.
// Status is never stored; see outcome.Classify.
type Contest struct {
	ID            uuid.UUID  `json:"id"`
	PeriodID      uuid.UUID  `json:"period_id"`
	Number        int        `json:"number"`
	StartsAt      time.Time  `json:"starts_at"`
	HomeTeamID    *uuid.UUID `json:"home_team_id,omitempty"`
	VisitorTeamID *uuid.UUID `json:"visitor_team_id,omitempty"`
	VenueID       *uuid.UUID `json:"venue_id,omitempty"`
	HomeScore     int        `json:"home_score"`
	VisitorScore  int        `json:"visitor_score"`
	RegulationTie bool       `json:"regulation_tie"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ContestResult holds the fields written by result entry.
type ContestResult struct {
	HomeScore     int       `json:"home_score"`
	VisitorScore  int       `json:"visitor_score"`
	RegulationTie bool      `json:"regulation_tie"`
	SavedAt       time.Time `json:"-"`
}

// Team is a club that can be assigned to either side of a contest
type Team struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"created_at"`
}

// Venue is where a contest is played
type Venue struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	City string    `json:"city"`
}

// Winner is the announcement slot for a period.
type Winner struct {
	ID            uuid.UUID  `json:"id"`
	PeriodID      uuid.UUID  `json:"period_id"`
	ParticipantID *uuid.UUID `json:"participant_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

const (
	// UnsetTeamCode is the sentinel team assigned to generated contests until
	// an administrator fills in the real matchup.
	UnsetTeamCode = "UNSET"
	// PlaceholderVenue is the venue generated contests start with.
	PlaceholderVenue = "TBD"
)
