package pooldb

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

type ActiveState struct {
	Entity    string
	ActiveID  uuid.UUID
	UpdatedAt time.Time
}

type Alert struct {
	ID            uuid.UUID
	ParticipantID uuid.UUID
	Level         int16
	Message       string
	Metadata      pqtype.NullRawMessage
	CreatedAt     time.Time
}

type Contest struct {
	ID            uuid.UUID
	PeriodID      uuid.UUID
	Number        int32
	StartsAt      time.Time
	HomeTeamID    uuid.NullUUID
	VisitorTeamID uuid.NullUUID
	VenueID       uuid.NullUUID
	HomeScore     int32
	VisitorScore  int32
	RegulationTie bool
	UpdatedAt     time.Time
}

type Participant struct {
	ID             uuid.UUID
	Username       string
	Email          string
	FirstName      string
	LastName       string
	FavoriteTeamID uuid.NullUUID
	Timezone       string
	CreatedAt      time.Time
}

type PaymentAudit struct {
	ParticipantID uuid.UUID
	HasPaid       bool
	Method        sql.NullString
	PaidAt        sql.NullTime
	CreatedAt     time.Time
}

type Period struct {
	ID           uuid.UUID
	SeasonID     uuid.UUID
	PeriodTypeID int16
	Sequence     int32
	Name         string
	StartsAt     time.Time
	EndsAt       time.Time
	CreatedAt    time.Time
}

type PeriodType struct {
	ID     int16
	Name   string
	Active bool
}

type PoolOutbox struct {
	ID          uuid.UUID
	AggregateID uuid.UUID
	EventType   string
	Payload     pqtype.NullRawMessage
	CreatedAt   time.Time
	SentAt      sql.NullTime
}

type Prediction struct {
	ID            uuid.UUID
	ContestID     uuid.UUID
	ParticipantID uuid.UUID
	KindID        int16
	Score         int32
	UpdatedAt     time.Time
}

type PredictionKind struct {
	ID          int16
	Name        string
	SortValue   int32
	Active      bool
	Description string
}

type Preference struct {
	ParticipantID uuid.UUID
	PicksLayout   int16
	WinnersLayout int16
}

type Season struct {
	ID        uuid.UUID
	Name      string
	StartsAt  time.Time
	EndsAt    time.Time
	CreatedAt time.Time
}

type Team struct {
	ID        uuid.UUID
	Code      string
	Name      string
	City      string
	CreatedAt time.Time
}

type Venue struct {
	ID   uuid.UUID
	Name string
	City string
}

type Winner struct {
	ID            uuid.UUID
	PeriodID      uuid.UUID
	ParticipantID uuid.NullUUID
	CreatedAt     time.Time
}
