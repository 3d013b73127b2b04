package pooldb

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const createPeriod = `-- name: CreatePeriod :one
INSERT INTO periods (id, season_id, period_type_id, sequence, name, starts_at, ends_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, season_id, period_type_id, sequence, name, starts_at, ends_at, created_at
`

type CreatePeriodParams struct {
	ID           uuid.UUID
	SeasonID     uuid.UUID
	PeriodTypeID int16
	Sequence     int32
	Name         string
	StartsAt     time.Time
	EndsAt       time.Time
}

func (q *Queries) CreatePeriod(ctx context.Context, arg CreatePeriodParams) (Period, error) {
	row := q.db.QueryRowContext(ctx, createPeriod,
		arg.ID,
		arg.SeasonID,
		arg.PeriodTypeID,
		arg.Sequence,
		arg.Name,
		arg.StartsAt,
		arg.EndsAt,
	)
	var i Period
	err := row.Scan(
		&i.ID,
		&i.SeasonID,
		&i.PeriodTypeID,
		&i.Sequence,
		&i.Name,
		&i.StartsAt,
		&i.EndsAt,
		&i.CreatedAt,
	)
	return i, err
}

const getPeriod = `-- name: GetPeriod :one
SELECT id, season_id, period_type_id, sequence, name, starts_at, ends_at, created_at
FROM periods WHERE id = $1
`

func (q *Queries) GetPeriod(ctx context.Context, id uuid.UUID) (Period, error) {
	row := q.db.QueryRowContext(ctx, getPeriod, id)
	var i Period
	err := row.Scan(
		&i.ID,
		&i.SeasonID,
		&i.PeriodTypeID,
		&i.Sequence,
		&i.Name,
		&i.StartsAt,
		&i.EndsAt,
		&i.CreatedAt,
	)
	return i, err
}

const findPeriodAt = `-- name: FindPeriodAt :one
SELECT id, season_id, period_type_id, sequence, name, starts_at, ends_at, created_at
FROM periods
WHERE starts_at <= $1 AND ends_at >= $1
ORDER BY starts_at DESC
LIMIT 1
`

func (q *Queries) FindPeriodAt(ctx context.Context, at time.Time) (Period, error) {
	row := q.db.QueryRowContext(ctx, findPeriodAt, at)
	var i Period
	err := row.Scan(
		&i.ID,
		&i.SeasonID,
		&i.PeriodTypeID,
		&i.Sequence,
		&i.Name,
		&i.StartsAt,
		&i.EndsAt,
		&i.CreatedAt,
	)
	return i, err
}

const listPeriodsBySeason = `-- name: ListPeriodsBySeason :many
SELECT id, season_id, period_type_id, sequence, name, starts_at, ends_at, created_at
FROM periods WHERE season_id = $1 ORDER BY sequence
`

func (q *Queries) ListPeriodsBySeason(ctx context.Context, seasonID uuid.UUID) ([]Period, error) {
	rows, err := q.db.QueryContext(ctx, listPeriodsBySeason, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Period
	for rows.Next() {
		var i Period
		if err := rows.Scan(
			&i.ID,
			&i.SeasonID,
			&i.PeriodTypeID,
			&i.Sequence,
			&i.Name,
			&i.StartsAt,
			&i.EndsAt,
			&i.CreatedAt,
		); err != nil {
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

const countPeriodsBySeason = `-- name: CountPeriodsBySeason :one
SELECT count(*) FROM periods WHERE season_id = $1
`

func (q *Queries) CountPeriodsBySeason(ctx context.Context, seasonID uuid.UUID) (int64, error) {
	row := q.db.QueryRowContext(ctx, countPeriodsBySeason, seasonID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const getPeriodType = `-- name: GetPeriodType :one
SELECT id, name, active FROM period_types WHERE id = $1
`

func (q *Queries) GetPeriodType(ctx context.Context, id int16) (PeriodType, error) {
	row := q.db.QueryRowContext(ctx, getPeriodType, id)
	var i PeriodType
	err := row.Scan(&i.ID, &i.Name, &i.Active)
	return i, err
}

const createWinner = `-- name: CreateWinner :one
INSERT INTO winners (id, period_id, participant_id)
VALUES ($1, $2, $3)
RETURNING id, period_id, participant_id, created_at
`

type CreateWinnerParams struct {
	ID            uuid.UUID
	PeriodID      uuid.UUID
	ParticipantID uuid.NullUUID
}

func (q *Queries) CreateWinner(ctx context.Context, arg CreateWinnerParams) (Winner, error) {
	row := q.db.QueryRowContext(ctx, createWinner, arg.ID, arg.PeriodID, arg.ParticipantID)
	var i Winner
	err := row.Scan(&i.ID, &i.PeriodID, &i.ParticipantID, &i.CreatedAt)
	return i, err
}
