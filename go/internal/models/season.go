package models

import (
	"time"

	"github.com/google/uuid"
)

// Season is a year-long container of periods.
type Season struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// PeriodTypeID identifies a schedule tier
type PeriodTypeID int

const (
	PeriodTypePreseason  PeriodTypeID = 1
	PeriodTypeRegular    PeriodTypeID = 2
	PeriodTypePostseason PeriodTypeID = 3
)

func (t PeriodTypeID) String() string {
	switch t {
	case PeriodTypePreseason:
		return "preseason"
	case PeriodTypeRegular:
		return "regular"
	case PeriodTypePostseason:
		return "postseason"
	default:
		return "unknown"
	}
}

// PeriodType gates whether a whole tier is generated for new seasons.
type PeriodType struct {
	ID     PeriodTypeID `json:"id"`
	Name   string       `json:"name"`
	Active bool         `json:"active"`
}

// Period is a scheduling window ("week") grouping contests.
type Period struct {
	ID           uuid.UUID    `json:"id"`
	SeasonID     uuid.UUID    `json:"season_id"`
	PeriodTypeID PeriodTypeID `json:"period_type_id"`
	Sequence     int          `json:"sequence"`
	Name         string       `json:"name"`
	StartsAt     time.Time    `json:"starts_at"`
	EndsAt       time.Time    `json:"ends_at"`
	IsActive     bool         `json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"`
}

// Contains reports whether t falls inside [StartsAt, EndsAt].
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.StartsAt) && !t.After(p.EndsAt)
}

// ActiveKey names a single-active register.
type ActiveKey string

const (
	ActiveSeason ActiveKey = "season"
	ActivePeriod ActiveKey = "period"
)
