package pooldb

import (
	"context"

	"github.com/google/uuid"
)

const getTeam = `-- name: GetTeam :one
SELECT id, code, name, city, created_at FROM teams WHERE id = $1
`

func (q *Queries) GetTeam(ctx context.Context, id uuid.UUID) (Team, error) {
	row := q.db.QueryRowContext(ctx, getTeam, id)
	var i Team
	err := row.Scan(&i.ID, &i.Code, &i.Name, &i.City, &i.CreatedAt)
	return i, err
}

const getTeamByCode = `-- name: GetTeamByCode :one
SELECT id, code, name, city, created_at FROM teams WHERE code = $1
`

func (q *Queries) GetTeamByCode(ctx context.Context, code string) (Team, error) {
	row := q.db.QueryRowContext(ctx, getTeamByCode, code)
	var i Team
	err := row.Scan(&i.ID, &i.Code, &i.Name, &i.City, &i.CreatedAt)
	return i, err
}

const listTeams = `-- name: ListTeams :many
SELECT id, code, name, city, created_at FROM teams ORDER BY name
`

func (q *Queries) ListTeams(ctx context.Context) ([]Team, error) {
	rows, err := q.db.QueryContext(ctx, listTeams)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Team
	for rows.Next() {
		var i Team
		if err := rows.Scan(&i.ID, &i.Code, &i.Name, &i.City, &i.CreatedAt); err != nil {
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

const getVenueByName = `-- name: GetVenueByName :one
SELECT id, name, city FROM venues WHERE name = $1
`

func (q *Queries) GetVenueByName(ctx context.Context, name string) (Venue, error) {
	row := q.db.QueryRowContext(ctx, getVenueByName, name)
	var i Venue
	err := row.Scan(&i.ID, &i.Name, &i.City)
	return i, err
}
