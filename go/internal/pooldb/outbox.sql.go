package pooldb

import (
	"context"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

const insertOutboxEvent = `-- name: InsertOutboxEvent :exec
INSERT INTO pool_outbox (id, aggregate_id, event_type, payload)
VALUES ($1, $2, $3, $4)
`

type InsertOutboxEventParams struct {
	ID          uuid.UUID
	AggregateID uuid.UUID
	EventType   string
	Payload     pqtype.NullRawMessage
}

func (q *Queries) InsertOutboxEvent(ctx context.Context, arg InsertOutboxEventParams) error {
	_, err := q.db.ExecContext(ctx, insertOutboxEvent, arg.ID, arg.AggregateID, arg.EventType, arg.Payload)
	return err
}

const fetchOutboxByID = `-- name: FetchOutboxByID :one
SELECT id, aggregate_id, event_type, payload, created_at, sent_at
FROM pool_outbox
WHERE id = $1 AND sent_at IS NULL
`

func (q *Queries) FetchOutboxByID(ctx context.Context, id uuid.UUID) (PoolOutbox, error) {
	row := q.db.QueryRowContext(ctx, fetchOutboxByID, id)
	var i PoolOutbox
	err := row.Scan(&i.ID, &i.AggregateID, &i.EventType, &i.Payload, &i.CreatedAt, &i.SentAt)
	return i, err
}

const fetchUnsentOutbox = `-- name: FetchUnsentOutbox :many
SELECT id, aggregate_id, event_type, payload, created_at, sent_at
FROM pool_outbox
WHERE sent_at IS NULL
ORDER BY created_at
LIMIT $1
FOR UPDATE SKIP LOCKED
`

func (q *Queries) FetchUnsentOutbox(ctx context.Context, limit int32) ([]PoolOutbox, error) {
	rows, err := q.db.QueryContext(ctx, fetchUnsentOutbox, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PoolOutbox
	for rows.Next() {
		var i PoolOutbox
		if err := rows.Scan(&i.ID, &i.AggregateID, &i.EventType, &i.Payload, &i.CreatedAt, &i.SentAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const markOutboxSent = `-- name: MarkOutboxSent :exec
UPDATE pool_outbox SET sent_at = now() WHERE id = $1
`

func (q *Queries) MarkOutboxSent(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, markOutboxSent, id)
	return err
}
