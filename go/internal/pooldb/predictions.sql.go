package pooldb

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const predictionColumns = `id, contest_id, participant_id, kind_id, score, updated_at`

func scanPrediction(row rowScanner) (Prediction, error) {
	var i Prediction
	err := row.Scan(
		&i.ID,
		&i.ContestID,
		&i.ParticipantID,
		&i.KindID,
		&i.Score,
		&i.UpdatedAt,
	)
	return i, err
}

const insertPredictionIfMissing = `-- name: InsertPredictionIfMissing :one
INSERT INTO predictions (id, contest_id, participant_id, kind_id, score)
VALUES ($1, $2, $3, $4, 0)
ON CONFLICT (contest_id, participant_id) DO NOTHING
RETURNING ` + predictionColumns

type InsertPredictionIfMissingParams struct {
	ID            uuid.UUID
	ContestID     uuid.UUID
	ParticipantID uuid.UUID
	KindID        int16
}

// InsertPredictionIfMissing returns sql.ErrNoRows when the pair already exists.
func (q *Queries) InsertPredictionIfMissing(ctx context.Context, arg InsertPredictionIfMissingParams) (Prediction, error) {
	row := q.db.QueryRowContext(ctx, insertPredictionIfMissing,
		arg.ID,
		arg.ContestID,
		arg.ParticipantID,
		arg.KindID,
	)
	return scanPrediction(row)
}

const getPredictionByPair = `-- name: GetPredictionByPair :one
SELECT ` + predictionColumns + ` FROM predictions WHERE contest_id = $1 AND participant_id = $2`

type GetPredictionByPairParams struct {
	ContestID     uuid.UUID
	ParticipantID uuid.UUID
}

func (q *Queries) GetPredictionByPair(ctx context.Context, arg GetPredictionByPairParams) (Prediction, error) {
	return scanPrediction(q.db.QueryRowContext(ctx, getPredictionByPair, arg.ContestID, arg.ParticipantID))
}

const getPrediction = `-- name: GetPrediction :one
SELECT ` + predictionColumns + ` FROM predictions WHERE id = $1`

func (q *Queries) GetPrediction(ctx context.Context, id uuid.UUID) (Prediction, error) {
	return scanPrediction(q.db.QueryRowContext(ctx, getPrediction, id))
}

const resetContestScores = `-- name: ResetContestScores :exec
UPDATE predictions SET score = 0 WHERE contest_id = $1
`

func (q *Queries) ResetContestScores(ctx context.Context, contestID uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, resetContestScores, contestID)
	return err
}

const updatePredictionScore = `-- name: UpdatePredictionScore :exec
UPDATE predictions SET score = $2 WHERE id = $1
`

type UpdatePredictionScoreParams struct {
	ID    uuid.UUID
	Score int32
}

func (q *Queries) UpdatePredictionScore(ctx context.Context, arg UpdatePredictionScoreParams) error {
	_, err := q.db.ExecContext(ctx, updatePredictionScore, arg.ID, arg.Score)
	return err
}

const updatePredictionKind = `-- name: UpdatePredictionKind :one
UPDATE predictions SET kind_id = $2, updated_at = $3 WHERE id = $1
RETURNING ` + predictionColumns

type UpdatePredictionKindParams struct {
	ID        uuid.UUID
	KindID    int16
	UpdatedAt time.Time
}

func (q *Queries) UpdatePredictionKind(ctx context.Context, arg UpdatePredictionKindParams) (Prediction, error) {
	return scanPrediction(q.db.QueryRowContext(ctx, updatePredictionKind, arg.ID, arg.KindID, arg.UpdatedAt))
}

const listPredictionsByParticipantPeriod = `-- name: ListPredictionsByParticipantPeriod :many
SELECT p.id, p.contest_id, p.participant_id, p.kind_id, p.score, p.updated_at
FROM predictions p
JOIN contests c ON c.id = p.contest_id
WHERE p.participant_id = $1 AND c.period_id = $2
ORDER BY c.number
`

type ListPredictionsByParticipantPeriodParams struct {
	ParticipantID uuid.UUID
	PeriodID      uuid.UUID
}

func (q *Queries) ListPredictionsByParticipantPeriod(ctx context.Context, arg ListPredictionsByParticipantPeriodParams) ([]Prediction, error) {
	rows, err := q.db.QueryContext(ctx, listPredictionsByParticipantPeriod, arg.ParticipantID, arg.PeriodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Prediction
	for rows.Next() {
		i, err := scanPrediction(rows)
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

const listPeriodScores = `-- name: ListPeriodScores :many
SELECT p.participant_id, c.period_id, COALESCE(SUM(p.score), 0)::int AS points
FROM predictions p
JOIN contests c ON c.id = p.contest_id
JOIN periods w ON w.id = c.period_id
WHERE w.season_id = $1
GROUP BY p.participant_id, c.period_id
`

type ListPeriodScoresRow struct {
	ParticipantID uuid.UUID
	PeriodID      uuid.UUID
	Points        int32
}

func (q *Queries) ListPeriodScores(ctx context.Context, seasonID uuid.UUID) ([]ListPeriodScoresRow, error) {
	rows, err := q.db.QueryContext(ctx, listPeriodScores, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListPeriodScoresRow
	for rows.Next() {
		var i ListPeriodScoresRow
		if err := rows.Scan(&i.ParticipantID, &i.PeriodID, &i.Points); err != nil {
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

const listNoPickEmails = `-- name: ListNoPickEmails :many
SELECT DISTINCT u.email
FROM participants u
JOIN predictions p ON p.participant_id = u.id
JOIN contests c ON c.id = p.contest_id
WHERE c.period_id = $1 AND p.kind_id = $2
ORDER BY u.email
`

type ListNoPickEmailsParams struct {
	PeriodID uuid.UUID
	KindID   int16
}

func (q *Queries) ListNoPickEmails(ctx context.Context, arg ListNoPickEmailsParams) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listNoPickEmails, arg.PeriodID, arg.KindID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		items = append(items, email)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getPredictionKind = `-- name: GetPredictionKind :one
SELECT id, name, sort_value, active, description FROM prediction_kinds WHERE id = $1
`

func (q *Queries) GetPredictionKind(ctx context.Context, id int16) (PredictionKind, error) {
	row := q.db.QueryRowContext(ctx, getPredictionKind, id)
	var i PredictionKind
	err := row.Scan(&i.ID, &i.Name, &i.SortValue, &i.Active, &i.Description)
	return i, err
}
