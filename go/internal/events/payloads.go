package events

import (
	"encoding/json"
	"time"
)

// Event payload types shared by the outbox writers and the scoreboard gateway

type Type string

const (
	SeasonScheduled        Type = "SeasonScheduled"
	PeriodActivated        Type = "PeriodActivated"
	ContestResultSaved     Type = "ContestResultSaved"
	ContestScored          Type = "ContestScored"
	ParticipantProvisioned Type = "ParticipantProvisioned"
)

// Envelope is the message body published for every outbox event
type Envelope struct {
	EventID     string          `json:"eventId"`
	EventType   Type            `json:"eventType"`
	AggregateID string          `json:"aggregateId"`
	Timestamp   time.Time       `json:"timestamp"`
	Payload     json.RawMessage `json:"payload"`
}

// SeasonScheduledPayload is the payload for a SeasonScheduled event
type SeasonScheduledPayload struct {
	SeasonID    string    `json:"season_id"`
	Periods     int       `json:"periods"`
	Contests    int       `json:"contests"`
	Winners     int       `json:"winners"`
	Complete    bool      `json:"complete"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// PeriodActivatedPayload is the payload for a PeriodActivated event
type PeriodActivatedPayload struct {
	PeriodID    string    `json:"period_id"`
	SeasonID    string    `json:"season_id"`
	Name        string    `json:"name"`
	ActivatedAt time.Time `json:"activated_at"`
}

// ContestResultSavedPayload is the payload for a ContestResultSaved event
type ContestResultSavedPayload struct {
	ContestID     string    `json:"contest_id"`
	PeriodID      string    `json:"period_id"`
	HomeScore     int       `json:"home_score"`
	VisitorScore  int       `json:"visitor_score"`
	RegulationTie bool      `json:"regulation_tie"`
	SavedAt       time.Time `json:"saved_at"`
}

// ContestScoredPayload is the payload for a ContestScored event
type ContestScoredPayload struct {
	ContestID     string    `json:"contest_id"`
	PeriodID      string    `json:"period_id"`
	SeasonID      string    `json:"season_id"`
	Status        string    `json:"status"`
	Facts         []string  `json:"facts"`
	Scored        int       `json:"scored"`
	Created       int       `json:"created"`
	Failed        int       `json:"failed"`
	PointsAwarded int       `json:"points_awarded"`
	ScoredAt      time.Time `json:"scored_at"`
}

// ParticipantProvisionedPayload is the payload for a ParticipantProvisioned event
type ParticipantProvisionedPayload struct {
	ParticipantID      string    `json:"participant_id"`
	PredictionsCreated int       `json:"predictions_created"`
	PaymentAudit       bool      `json:"payment_audit"`
	Preferences        bool      `json:"preferences"`
	WelcomeAlert       bool      `json:"welcome_alert"`
	ProvisionedAt      time.Time `json:"provisioned_at"`
}
