package pooldb

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const contestColumns = `id, period_id, number, starts_at, home_team_id, visitor_team_id, venue_id,
       home_score, visitor_score, regulation_tie, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanContest(row rowScanner) (Contest, error) {
	var i Contest
	err := row.Scan(
		&i.ID,
		&i.PeriodID,
		&i.Number,
		&i.StartsAt,
		&i.HomeTeamID,
		&i.VisitorTeamID,
		&i.VenueID,
		&i.HomeScore,
		&i.VisitorScore,
		&i.RegulationTie,
		&i.UpdatedAt,
	)
	return i, err
}

const createContest = `-- name: CreateContest :one
INSERT INTO contests (id, period_id, number, starts_at, home_team_id, visitor_team_id, venue_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + contestColumns

type CreateContestParams struct {
	ID            uuid.UUID
	PeriodID      uuid.UUID
	Number        int32
	StartsAt      time.Time
	HomeTeamID    uuid.NullUUID
	VisitorTeamID uuid.NullUUID
	VenueID       uuid.NullUUID
}

func (q *Queries) CreateContest(ctx context.Context, arg CreateContestParams) (Contest, error) {
	row := q.db.QueryRowContext(ctx, createContest,
		arg.ID,
		arg.PeriodID,
		arg.Number,
		arg.StartsAt,
		arg.HomeTeamID,
		arg.VisitorTeamID,
		arg.VenueID,
	)
	return scanContest(row)
}

const getContest = `-- name: GetContest :one
SELECT ` + contestColumns + ` FROM contests WHERE id = $1`

func (q *Queries) GetContest(ctx context.Context, id uuid.UUID) (Contest, error) {
	return scanContest(q.db.QueryRowContext(ctx, getContest, id))
}

const listContestsByPeriod = `-- name: ListContestsByPeriod :many
SELECT ` + contestColumns + ` FROM contests WHERE period_id = $1 ORDER BY number`

func (q *Queries) ListContestsByPeriod(ctx context.Context, periodID uuid.UUID) ([]Contest, error) {
	rows, err := q.db.QueryContext(ctx, listContestsByPeriod, periodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Contest
	for rows.Next() {
		i, err := scanContest(rows)
		if err != nil {
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

const listContestIDs = `-- name: ListContestIDs :many
SELECT id FROM contests ORDER BY starts_at, number
`

func (q *Queries) ListContestIDs(ctx context.Context) ([]uuid.UUID, error) {
	return q.listIDs(ctx, listContestIDs)
}

const updateContestResult = `-- name: UpdateContestResult :one
UPDATE contests
SET home_score = $2, visitor_score = $3, regulation_tie = $4, updated_at = $5
WHERE id = $1
RETURNING ` + contestColumns

type UpdateContestResultParams struct {
	ID            uuid.UUID
	HomeScore     int32
	VisitorScore  int32
	RegulationTie bool
	UpdatedAt     time.Time
}

func (q *Queries) UpdateContestResult(ctx context.Context, arg UpdateContestResultParams) (Contest, error) {
	row := q.db.QueryRowContext(ctx, updateContestResult,
		arg.ID,
		arg.HomeScore,
		arg.VisitorScore,
		arg.RegulationTie,
		arg.UpdatedAt,
	)
	return scanContest(row)
}

func (q *Queries) listIDs(ctx context.Context, query string, args ...interface{}) ([]uuid.UUID, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		items = append(items, id)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
