package pooldb

import (
	"context"

	"github.com/google/uuid"
)

const getActiveID = `-- name: GetActiveID :one
SELECT active_id FROM active_state WHERE entity = $1
`

func (q *Queries) GetActiveID(ctx context.Context, entity string) (uuid.UUID, error) {
	row := q.db.QueryRowContext(ctx, getActiveID, entity)
	var activeID uuid.UUID
	err := row.Scan(&activeID)
	return activeID, err
}

const setActiveID = `-- name: SetActiveID :exec
INSERT INTO active_state (entity, active_id, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (entity) DO UPDATE
SET active_id = EXCLUDED.active_id, updated_at = EXCLUDED.updated_at
`

type SetActiveIDParams struct {
	Entity   string
	ActiveID uuid.UUID
}

func (q *Queries) SetActiveID(ctx context.Context, arg SetActiveIDParams) error {
	_, err := q.db.ExecContext(ctx, setActiveID, arg.Entity, arg.ActiveID)
	return err
}
