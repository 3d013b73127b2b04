package participants

import (
	"github.com/google/uuid"

	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/roster"
)

// CreateParticipantRequest represents the data needed to create a new participant
type CreateParticipantRequest struct {
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	FavoriteTeamID *uuid.UUID `json:"favorite_team_id,omitempty"`
	Timezone       string     `json:"timezone"`
}

// CreateParticipantResponse carries the new participant and what was provisioned for them
type CreateParticipantResponse struct {
	Participant  *models.Participant `json:"participant"`
	Provisioning *roster.Report      `json:"provisioning,omitempty"`
}
