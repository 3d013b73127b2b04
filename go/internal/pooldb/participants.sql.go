package pooldb

import (
	"context"

	"github.com/google/uuid"
)

const participantColumns = `id, username, email, first_name, last_name, favorite_team_id, timezone, created_at`

func scanParticipant(row rowScanner) (Participant, error) {
	var i Participant
	err := row.Scan(
		&i.ID,
		&i.Username,
		&i.Email,
		&i.FirstName,
		&i.LastName,
		&i.FavoriteTeamID,
		&i.Timezone,
		&i.CreatedAt,
	)
	return i, err
}

const createParticipant = `-- name: CreateParticipant :one
INSERT INTO participants (id, username, email, first_name, last_name, favorite_team_id, timezone)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + participantColumns

type CreateParticipantParams struct {
	ID             uuid.UUID
	Username       string
	Email          string
	FirstName      string
	LastName       string
	FavoriteTeamID uuid.NullUUID
	Timezone       string
}

func (q *Queries) CreateParticipant(ctx context.Context, arg CreateParticipantParams) (Participant, error) {
	row := q.db.QueryRowContext(ctx, createParticipant,
		arg.ID,
		arg.Username,
		arg.Email,
		arg.FirstName,
		arg.LastName,
		arg.FavoriteTeamID,
		arg.Timezone,
	)
	return scanParticipant(row)
}

const getParticipant = `-- name: GetParticipant :one
SELECT ` + participantColumns + ` FROM participants WHERE id = $1`

func (q *Queries) GetParticipant(ctx context.Context, id uuid.UUID) (Participant, error) {
	return scanParticipant(q.db.QueryRowContext(ctx, getParticipant, id))
}

const getParticipantByUsername = `-- name: GetParticipantByUsername :one
SELECT ` + participantColumns + ` FROM participants WHERE username = $1`

func (q *Queries) GetParticipantByUsername(ctx context.Context, username string) (Participant, error) {
	return scanParticipant(q.db.QueryRowContext(ctx, getParticipantByUsername, username))
}

const getParticipantByEmail = `-- name: GetParticipantByEmail :one
SELECT ` + participantColumns + ` FROM participants WHERE email = $1`

func (q *Queries) GetParticipantByEmail(ctx context.Context, email string) (Participant, error) {
	return scanParticipant(q.db.QueryRowContext(ctx, getParticipantByEmail, email))
}

const listParticipants = `-- name: ListParticipants :many
SELECT ` + participantColumns + ` FROM participants ORDER BY username`

func (q *Queries) ListParticipants(ctx context.Context) ([]Participant, error) {
	rows, err := q.db.QueryContext(ctx, listParticipants)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Participant
	for rows.Next() {
		i, err := scanParticipant(rows)
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

const listParticipantIDs = `-- name: ListParticipantIDs :many
SELECT id FROM participants ORDER BY created_at
`

func (q *Queries) ListParticipantIDs(ctx context.Context) ([]uuid.UUID, error) {
	return q.listIDs(ctx, listParticipantIDs)
}
