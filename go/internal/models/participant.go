package models

import (
	"time"

	"github.com/google/uuid"
)

// Participant represents a registered user of the pool
type Participant struct {
	ID             uuid.UUID  `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	FavoriteTeamID *uuid.UUID `json:"favorite_team_id,omitempty"`
	Timezone       string     `json:"timezone"`
	CreatedAt      time.Time  `json:"created_at"`
}

type LayoutType int

const (
	LayoutGrid    LayoutType = 1
	LayoutList    LayoutType = 2
	LayoutCompact LayoutType = 3
)

// Preferences holds display layout choices.
type Preferences struct {
	ParticipantID uuid.UUID  `json:"participant_id"`
	PicksLayout   LayoutType `json:"picks_layout"`
	WinnersLayout LayoutType `json:"winners_layout"`
}

// PaymentAudit tracks whether a participant has paid the entry fee.
type PaymentAudit struct {
	ParticipantID uuid.UUID  `json:"participant_id"`
	HasPaid       bool       `json:"has_paid"`
	Method        *string    `json:"method,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type AlertLevel int

const (
	AlertInfo    AlertLevel = 1
	AlertWarning AlertLevel = 2
	AlertDanger  AlertLevel = 3
)

// Alert is a dismissable message shown to one participant
type Alert struct {
	ID            uuid.UUID   `json:"id"`
	ParticipantID uuid.UUID   `json:"participant_id"`
	Level         AlertLevel  `json:"level"`
	Message       string      `json:"message"`
	Metadata      interface{} `json:"metadata,omitempty"` // JSONB
	CreatedAt     time.Time   `json:"created_at"`
}
