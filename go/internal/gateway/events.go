package gateway

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/pickpool/go/internal/events"
)

// ScoreboardEvent is what clients receive over the socket.
type ScoreboardEvent struct {
	ID        string          `json:"id"`
	SeasonID  string          `json:"season_id"`
	Type      events.Type     `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// broadcastTypes are the outbox events forwarded to scoreboard clients.
var broadcastTypes = map[events.Type]bool{
	events.ContestScored:   true,
	events.PeriodActivated: true,
}

// seasonPayload is the part every forwarded payload shares.
type seasonPayload struct {
	SeasonID string `json:"season_id"`
}

// toScoreboardEvent converts an envelope. ok is false for event types that
// clients don't see.
func toScoreboardEvent(env events.Envelope) (event *ScoreboardEvent, seasonID uuid.UUID, ok bool, err error) {
	if !broadcastTypes[env.EventType] {
		return nil, uuid.Nil, false, nil
	}
	var p seasonPayload
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		return nil, uuid.Nil, false, fmt.Errorf("unmarshal %s payload: %w", env.EventType, err)
	}
	seasonID, err = uuid.Parse(p.SeasonID)
	if err != nil {
		return nil, uuid.Nil, false, fmt.Errorf("parse season ID: %w", err)
	}
	return &ScoreboardEvent{
		ID:        env.EventID,
		SeasonID:  p.SeasonID,
		Type:      env.EventType,
		Timestamp: env.Timestamp,
		Data:      env.Payload,
	}, seasonID, true, nil
}
