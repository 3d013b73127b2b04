package predictions

import (
	"github.com/google/uuid"

	"github.com/mcdev12/pickpool/go/internal/models"
)

// MakePredictionRequest is a participant choosing a kind for one contest
type MakePredictionRequest struct {
	ParticipantID uuid.UUID               `json:"participant_id"`
	ContestID     uuid.UUID               `json:"contest_id"`
	KindID        models.PredictionKindID `json:"kind_id"`
}
