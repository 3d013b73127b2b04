package models

import "github.com/google/uuid"

// PeriodStanding is one row of a participant's standing.
type PeriodStanding struct {
	PeriodID     uuid.UUID    `json:"period_id"`
	Name         string       `json:"name"`
	PeriodTypeID PeriodTypeID `json:"period_type_id"`
	Points       int          `json:"points"`
	RunningTotal int          `json:"running_total"`
}

// Standing is a read-only projection of one participant's season.
type Standing struct {
	ParticipantID   uuid.UUID        `json:"participant_id"`
	Username        string           `json:"username"`
	Periods         []PeriodStanding `json:"periods"`
	PreseasonTotal  int              `json:"preseason_total"`
	RegularTotal    int              `json:"regular_total"`
	PostseasonTotal int              `json:"postseason_total"`
	Total           int              `json:"total"`
}
