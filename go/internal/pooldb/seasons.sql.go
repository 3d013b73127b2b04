package pooldb

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const createSeason = `-- name: CreateSeason :one
INSERT INTO seasons (id, name, starts_at, ends_at)
VALUES ($1, $2, $3, $4)
RETURNING id, name, starts_at, ends_at, created_at
`

type CreateSeasonParams struct {
	ID       uuid.UUID
	Name     string
	StartsAt time.Time
	EndsAt   time.Time
}

func (q *Queries) CreateSeason(ctx context.Context, arg CreateSeasonParams) (Season, error) {
	row := q.db.QueryRowContext(ctx, createSeason, arg.ID, arg.Name, arg.StartsAt, arg.EndsAt)
	var i Season
	err := row.Scan(&i.ID, &i.Name, &i.StartsAt, &i.EndsAt, &i.CreatedAt)
	return i, err
}

const getSeason = `-- name: GetSeason :one
SELECT id, name, starts_at, ends_at, created_at FROM seasons WHERE id = $1
`

func (q *Queries) GetSeason(ctx context.Context, id uuid.UUID) (Season, error) {
	row := q.db.QueryRowContext(ctx, getSeason, id)
	var i Season
	err := row.Scan(&i.ID, &i.Name, &i.StartsAt, &i.EndsAt, &i.CreatedAt)
	return i, err
}

const listSeasons = `-- name: ListSeasons :many
SELECT id, name, starts_at, ends_at, created_at FROM seasons ORDER BY starts_at DESC
`

func (q *Queries) ListSeasons(ctx context.Context) ([]Season, error) {
	rows, err := q.db.QueryContext(ctx, listSeasons)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Season
	for rows.Next() {
		var i Season
		if err := rows.Scan(&i.ID, &i.Name, &i.StartsAt, &i.EndsAt, &i.CreatedAt); err != nil {
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
