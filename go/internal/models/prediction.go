package models

import (
	"time"

	"github.com/google/uuid"
)

// PredictionKindID is the numeric value of a pick type. It doubles as the sort value.
type PredictionKindID int

const (
	KindNoPick        PredictionKindID = 1
	KindHomeWin       PredictionKindID = 2
	KindVisitorWin    PredictionKindID = 3
	KindWithinThree   PredictionKindID = 4
	KindRegulationTie PredictionKindID = 5
	KindOvertimeTie   PredictionKindID = 6
)

// PredictionKind is the shared vocabulary between contest outcomes and picks.
type PredictionKind struct {
	ID          PredictionKindID `json:"id"`
	Name        string           `json:"name"`
	SortValue   int              `json:"sort_value"`
	Active      bool             `json:"active"`
	Description string           `json:"description"`
}

// Prediction is one participant's pick for one contest
type Prediction struct {
	ID            uuid.UUID        `json:"id"`
	ContestID     uuid.UUID        `json:"contest_id"`
	ParticipantID uuid.UUID        `json:"participant_id"`
	KindID        PredictionKindID `json:"kind_id"`
	Score         int              `json:"score"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// PeriodScore is a participant's summed prediction score for one period.
type PeriodScore struct {
	ParticipantID uuid.UUID `json:"participant_id"`
	PeriodID      uuid.UUID `json:"period_id"`
	Points        int       `json:"points"`
}
