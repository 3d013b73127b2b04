package pooldb_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/pickpool/go/internal/clock"
	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/periods"
	"github.com/mcdev12/pickpool/go/internal/pooldb"
	"github.com/mcdev12/pickpool/go/internal/predictions"
	"github.com/mcdev12/pickpool/go/internal/scoring"
)

// Windows sit far in the future so they never overlap periods already in the database.
var seasonStart = time.Date(2191, 9, 1, 0, 0, 0, 0, time.UTC)

// openTx applies the schema and returns queries bound to a transaction that is
// rolled back when the test ends.
func openTx(t *testing.T) *pooldb.Queries {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.PingContext(ctx))

	_, err = db.ExecContext(ctx, pooldb.Schema)
	require.NoError(t, err, "failed to apply schema")

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { tx.Rollback() })

	seedReference(t, tx)
	return pooldb.New(tx)
}

func seedReference(t *testing.T, tx *sql.Tx) {
	t.Helper()
	ctx := context.Background()
	for _, kind := range []models.PredictionKindID{
		models.KindNoPick,
		models.KindHomeWin,
		models.KindVisitorWin,
		models.KindWithinThree,
		models.KindRegulationTie,
		models.KindOvertimeTie,
	} {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO prediction_kinds (id, name, sort_value)
            VALUES ($1, $2, $3)
            ON CONFLICT (id) DO NOTHING
        `, int16(kind), fmt.Sprintf("kind %d", kind), int(kind))
		require.NoError(t, err)
	}
	_, err := tx.ExecContext(ctx, `
        INSERT INTO period_types (id, name) VALUES ($1, $2)
        ON CONFLICT (id) DO NOTHING
    `, int16(models.PeriodTypeRegular), "Regular Season")
	require.NoError(t, err)
}

type world struct {
	q      *pooldb.Queries
	season pooldb.Season
}

func newWorld(t *testing.T) *world {
	t.Helper()
	q := openTx(t)
	season, err := q.CreateSeason(context.Background(), pooldb.CreateSeasonParams{
		ID:       uuid.New(),
		Name:     "integration",
		StartsAt: seasonStart,
		EndsAt:   seasonStart.AddDate(0, 5, 0),
	})
	require.NoError(t, err)
	return &world{q: q, season: season}
}

func (w *world) period(t *testing.T, sequence int, startsAt, endsAt time.Time) pooldb.Period {
	t.Helper()
	p, err := w.q.CreatePeriod(context.Background(), pooldb.CreatePeriodParams{
		ID:           uuid.New(),
		SeasonID:     w.season.ID,
		PeriodTypeID: int16(models.PeriodTypeRegular),
		Sequence:     int32(sequence),
		Name:         "Week",
		StartsAt:     startsAt,
		EndsAt:       endsAt,
	})
	require.NoError(t, err)
	return p
}

func (w *world) contest(t *testing.T, periodID uuid.UUID, number int, startsAt time.Time) pooldb.Contest {
	t.Helper()
	c, err := w.q.CreateContest(context.Background(), pooldb.CreateContestParams{
		ID:       uuid.New(),
		PeriodID: periodID,
		Number:   int32(number),
		StartsAt: startsAt,
	})
	require.NoError(t, err)
	return c
}

func (w *world) participant(t *testing.T, email string) pooldb.Participant {
	t.Helper()
	p, err := w.q.CreateParticipant(context.Background(), pooldb.CreateParticipantParams{
		ID:       uuid.New(),
		Username: uuid.NewString(),
		Email:    email,
		Timezone: "UTC",
	})
	require.NoError(t, err)
	return p
}

func (w *world) pick(t *testing.T, contestID, participantID uuid.UUID, kind models.PredictionKindID) pooldb.Prediction {
	t.Helper()
	ctx := context.Background()
	pred, _, err := predictions.NewRepository(w.q).GetOrCreatePrediction(ctx, contestID, participantID)
	require.NoError(t, err)
	row, err := w.q.UpdatePredictionKind(ctx, pooldb.UpdatePredictionKindParams{
		ID:        pred.ID,
		KindID:    int16(kind),
		UpdatedAt: seasonStart,
	})
	require.NoError(t, err)
	return row
}

func TestInsertPredictionIfMissing_ExistingPair(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	period := w.period(t, 1, seasonStart, seasonStart.AddDate(0, 0, 7))
	contest := w.contest(t, period.ID, 1, seasonStart.Add(time.Hour))
	user := w.participant(t, uuid.NewString()+"@pool.test")

	first, err := w.q.InsertPredictionIfMissing(ctx, pooldb.InsertPredictionIfMissingParams{
		ID:            uuid.New(),
		ContestID:     contest.ID,
		ParticipantID: user.ID,
		KindID:        int16(models.KindNoPick),
	})
	require.NoError(t, err)

	_, err = w.q.InsertPredictionIfMissing(ctx, pooldb.InsertPredictionIfMissingParams{
		ID:            uuid.New(),
		ContestID:     contest.ID,
		ParticipantID: user.ID,
		KindID:        int16(models.KindHomeWin),
	})
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.ErrorIs(t, pooldb.Translate(err), pooldb.ErrNotFound)

	existing, err := w.q.GetPredictionByPair(ctx, pooldb.GetPredictionByPairParams{ContestID: contest.ID, ParticipantID: user.ID})
	require.NoError(t, err)
	assert.Equal(t, first.ID, existing.ID)
	assert.Equal(t, int16(models.KindNoPick), existing.KindID)
}

func TestGetOrCreatePrediction_Idempotent(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	repo := predictions.NewRepository(w.q)
	period := w.period(t, 1, seasonStart, seasonStart.AddDate(0, 0, 7))
	contest := w.contest(t, period.ID, 1, seasonStart.Add(time.Hour))
	user := w.participant(t, uuid.NewString()+"@pool.test")

	created, wasCreated, err := repo.GetOrCreatePrediction(ctx, contest.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, wasCreated)
	assert.Equal(t, models.KindNoPick, created.KindID)

	again, wasCreated, err := repo.GetOrCreatePrediction(ctx, contest.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, wasCreated)
	assert.Equal(t, created.ID, again.ID)
}

func TestScoringEngine_RescoreIsIdempotent(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	kickoff := seasonStart.Add(26 * time.Hour)
	period := w.period(t, 1, seasonStart, seasonStart.AddDate(0, 0, 7))
	contest := w.contest(t, period.ID, 1, kickoff)

	home := w.participant(t, uuid.NewString()+"@pool.test")
	near := w.participant(t, uuid.NewString()+"@pool.test")
	w.pick(t, contest.ID, home.ID, models.KindHomeWin)
	w.pick(t, contest.ID, near.ID, models.KindWithinThree)

	saved, err := w.q.UpdateContestResult(ctx, pooldb.UpdateContestResultParams{
		ID:           contest.ID,
		HomeScore:    24,
		VisitorScore: 21,
		UpdatedAt:    kickoff.Add(4 * time.Hour),
	})
	require.NoError(t, err)

	engine := scoring.NewEngine(scoring.NewRepository(w.q), scoring.DefaultRules(), clock.NewFake(kickoff.Add(4*time.Hour)))
	points := func() map[uuid.UUID]int32 {
		rows, err := w.q.ListPeriodScores(ctx, w.season.ID)
		require.NoError(t, err)
		out := make(map[uuid.UUID]int32)
		for _, row := range rows {
			if row.PeriodID == period.ID {
				out[row.ParticipantID] = row.Points
			}
		}
		return out
	}

	_, err = engine.OnContestResultSaved(ctx, saved.Model())
	require.NoError(t, err)
	first := points()
	assert.Equal(t, int32(1), first[home.ID])
	assert.Equal(t, int32(2), first[near.ID])

	_, err = engine.OnContestResultSaved(ctx, saved.Model())
	require.NoError(t, err)
	assert.Equal(t, first, points())

	// A correction replaces the previous awards rather than adding to them.
	corrected, err := w.q.UpdateContestResult(ctx, pooldb.UpdateContestResultParams{
		ID:           contest.ID,
		HomeScore:    10,
		VisitorScore: 31,
		UpdatedAt:    kickoff.Add(5 * time.Hour),
	})
	require.NoError(t, err)
	_, err = engine.OnContestResultSaved(ctx, corrected.Model())
	require.NoError(t, err)
	assert.Equal(t, int32(0), points()[home.ID])
	assert.Equal(t, int32(0), points()[near.ID])
}

func TestFindPeriodAt_InclusiveBoundaries(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	repo := periods.NewRepository(w.q)

	week1Start := seasonStart
	week1End := seasonStart.AddDate(0, 0, 7)
	week2End := week1End.AddDate(0, 0, 7)
	week1 := w.period(t, 1, week1Start, week1End)
	week2 := w.period(t, 2, week1End, week2End)

	tests := []struct {
		name string
		at   time.Time
		want uuid.UUID
	}{
		{"first instant", week1Start, week1.ID},
		{"inside", week1Start.Add(72 * time.Hour), week1.ID},
		{"shared boundary goes to the later period", week1End, week2.ID},
		{"last instant", week2End, week2.ID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := repo.FindPeriodAt(ctx, tt.at)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.ID)
		})
	}

	_, err := repo.FindPeriodAt(ctx, week1Start.Add(-time.Microsecond))
	assert.ErrorIs(t, err, pooldb.ErrNotFound)
	_, err = repo.FindPeriodAt(ctx, week2End.Add(time.Microsecond))
	assert.ErrorIs(t, err, pooldb.ErrNotFound)
}

func TestListNoPickEmails(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	week1 := w.period(t, 1, seasonStart, seasonStart.AddDate(0, 0, 7))
	week2 := w.period(t, 2, seasonStart.AddDate(0, 0, 7), seasonStart.AddDate(0, 0, 14))
	c1 := w.contest(t, week1.ID, 1, seasonStart.Add(time.Hour))
	c2 := w.contest(t, week1.ID, 2, seasonStart.Add(2*time.Hour))
	c3 := w.contest(t, week2.ID, 1, seasonStart.AddDate(0, 0, 8))

	suffix := uuid.NewString()
	zed := w.participant(t, "zed-"+suffix+"@pool.test")
	amy := w.participant(t, "amy-"+suffix+"@pool.test")
	bob := w.participant(t, "bob-"+suffix+"@pool.test")

	w.pick(t, c1.ID, zed.ID, models.KindNoPick)
	w.pick(t, c2.ID, zed.ID, models.KindNoPick)
	w.pick(t, c1.ID, amy.ID, models.KindNoPick)
	w.pick(t, c2.ID, amy.ID, models.KindHomeWin)
	w.pick(t, c1.ID, bob.ID, models.KindVisitorWin)
	w.pick(t, c2.ID, bob.ID, models.KindWithinThree)
	w.pick(t, c3.ID, bob.ID, models.KindNoPick)

	emails, err := predictions.NewRepository(w.q).ListNoPickEmails(ctx, week1.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{amy.Email, zed.Email}, emails)
}

func TestSetActiveID_Upserts(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	repo := periods.NewRepository(w.q)
	week1 := w.period(t, 1, seasonStart, seasonStart.AddDate(0, 0, 7))
	week2 := w.period(t, 2, seasonStart.AddDate(0, 0, 7), seasonStart.AddDate(0, 0, 14))

	require.NoError(t, repo.SetActiveID(ctx, models.ActivePeriod, week1.ID))
	require.NoError(t, repo.SetActiveID(ctx, models.ActivePeriod, week2.ID))

	active, err := w.q.GetActiveID(ctx, string(models.ActivePeriod))
	require.NoError(t, err)
	assert.Equal(t, week2.ID, active)

	p, err := repo.GetPeriod(ctx, week2.ID)
	require.NoError(t, err)
	assert.True(t, p.IsActive)
	p, err = repo.GetPeriod(ctx, week1.ID)
	require.NoError(t, err)
	assert.False(t, p.IsActive)
}

func TestTranslate_UniqueViolation(t *testing.T) {
	w := newWorld(t)
	email := uuid.NewString() + "@pool.test"
	w.participant(t, email)

	_, err := w.q.CreateParticipant(context.Background(), pooldb.CreateParticipantParams{
		ID:       uuid.New(),
		Username: uuid.NewString(),
		Email:    email,
		Timezone: "UTC",
	})
	require.Error(t, err)
	assert.ErrorIs(t, pooldb.Translate(err), pooldb.ErrDuplicate)
}
