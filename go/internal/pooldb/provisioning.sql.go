package pooldb

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

const paymentAuditExists = `-- name: PaymentAuditExists :one
SELECT EXISTS (SELECT 1 FROM payment_audits WHERE participant_id = $1)
`

func (q *Queries) PaymentAuditExists(ctx context.Context, participantID uuid.UUID) (bool, error) {
	row := q.db.QueryRowContext(ctx, paymentAuditExists, participantID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const createPaymentAudit = `-- name: CreatePaymentAudit :exec
INSERT INTO payment_audits (participant_id, has_paid, method, paid_at)
VALUES ($1, $2, $3, $4)
`

type CreatePaymentAuditParams struct {
	ParticipantID uuid.UUID
	HasPaid       bool
	Method        sql.NullString
	PaidAt        sql.NullTime
}

func (q *Queries) CreatePaymentAudit(ctx context.Context, arg CreatePaymentAuditParams) error {
	_, err := q.db.ExecContext(ctx, createPaymentAudit, arg.ParticipantID, arg.HasPaid, arg.Method, arg.PaidAt)
	return err
}

const preferencesExist = `-- name: PreferencesExist :one
SELECT EXISTS (SELECT 1 FROM preferences WHERE participant_id = $1)
`

func (q *Queries) PreferencesExist(ctx context.Context, participantID uuid.UUID) (bool, error) {
	row := q.db.QueryRowContext(ctx, preferencesExist, participantID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const createPreferences = `-- name: CreatePreferences :exec
INSERT INTO preferences (participant_id, picks_layout, winners_layout)
VALUES ($1, $2, $3)
`

type CreatePreferencesParams struct {
	ParticipantID uuid.UUID
	PicksLayout   int16
	WinnersLayout int16
}

func (q *Queries) CreatePreferences(ctx context.Context, arg CreatePreferencesParams) error {
	_, err := q.db.ExecContext(ctx, createPreferences, arg.ParticipantID, arg.PicksLayout, arg.WinnersLayout)
	return err
}

const countAlerts = `-- name: CountAlerts :one
SELECT count(*) FROM alerts WHERE participant_id = $1
`

func (q *Queries) CountAlerts(ctx context.Context, participantID uuid.UUID) (int64, error) {
	row := q.db.QueryRowContext(ctx, countAlerts, participantID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createAlert = `-- name: CreateAlert :exec
INSERT INTO alerts (id, participant_id, level, message, metadata)
VALUES ($1, $2, $3, $4, $5)
`

type CreateAlertParams struct {
	ID            uuid.UUID
	ParticipantID uuid.UUID
	Level         int16
	Message       string
	Metadata      pqtype.NullRawMessage
}

func (q *Queries) CreateAlert(ctx context.Context, arg CreateAlertParams) error {
	_, err := q.db.ExecContext(ctx, createAlert,
		arg.ID,
		arg.ParticipantID,
		arg.Level,
		arg.Message,
		arg.Metadata,
	)
	return err
}
