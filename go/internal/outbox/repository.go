package outbox

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/pickpool/go/internal/events"
	"github.com/mcdev12/pickpool/go/internal/pooldb"
	"github.com/mcdev12/pickpool/go/internal/sqlutil"
)

type Repository struct {
	queries *pooldb.Queries
}

func NewRepository(queries *pooldb.Queries) *Repository {
	return &Repository{
		queries: queries,
	}
}

// Insert writes one event row with q, so callers holding a transaction can
// commit the event together with the state change it describes.
func Insert(ctx context.Context, q *pooldb.Queries, aggregateID uuid.UUID, eventType events.Type, payload interface{}) error {
	raw, err := sqlutil.ToNullRawMessage(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	err = q.InsertOutboxEvent(ctx, pooldb.InsertOutboxEventParams{
		ID:          uuid.New(),
		AggregateID: aggregateID,
		EventType:   string(eventType),
		Payload:     raw,
	})
	if err != nil {
		return fmt.Errorf("failed to insert %s outbox event: %w", eventType, err)
	}
	return nil
}

// Record inserts an event outside of any caller transaction.
func (r *Repository) Record(ctx context.Context, aggregateID uuid.UUID, eventType events.Type, payload interface{}) error {
	if err := Insert(ctx, r.queries, aggregateID, eventType, payload); err != nil {
		return err
	}
	log.Debug().
		Str("aggregate_id", aggregateID.String()).
		Str("event_type", string(eventType)).
		Msg("outbox event inserted")
	return nil
}

func (r *Repository) FetchUnsentOutbox(ctx context.Context, limit int32) ([]OutboxEvent, error) {
	rows, err := r.queries.FetchUnsentOutbox(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unsent outbox events: %w", err)
	}

	out := make([]OutboxEvent, len(rows))
	for i, row := range rows {
		out[i] = dbOutboxToEvent(row)
	}
	return out, nil
}

func (r *Repository) FetchOutboxByID(ctx context.Context, id uuid.UUID) (*OutboxEvent, error) {
	row, err := r.queries.FetchOutboxByID(ctx, id)
	if err != nil {
		if errors.Is(pooldb.Translate(err), pooldb.ErrNotFound) {
			return nil, fmt.Errorf("outbox event not found or already sent: %w", pooldb.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch outbox event by ID: %w", err)
	}
	ev := dbOutboxToEvent(row)
	return &ev, nil
}

func (r *Repository) MarkOutboxSent(ctx context.Context, id uuid.UUID) error {
	if err := r.queries.MarkOutboxSent(ctx, id); err != nil {
		return fmt.Errorf("failed to mark outbox event as sent: %w", err)
	}
	return nil
}

func dbOutboxToEvent(row pooldb.PoolOutbox) OutboxEvent {
	return OutboxEvent{
		ID:          row.ID,
		AggregateID: row.AggregateID,
		EventType:   row.EventType,
		Payload:     sqlutil.FromNullRawMessage(row.Payload),
		CreatedAt:   row.CreatedAt,
		SentAt:      sqlutil.FromSqlTime(row.SentAt),
	}
}
