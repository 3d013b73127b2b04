package predictions

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/pickpool/go/internal/clock"
	"github.com/mcdev12/pickpool/go/internal/memstore"
	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/pooldb"
)

var kickoff = time.Date(2025, 9, 14, 13, 0, 0, 0, time.UTC)

func setup(t *testing.T, now time.Time) (*App, *memstore.Store, models.Contest, models.Participant) {
	t.Helper()
	ctx := context.Background()
	store := memstore.NewSeeded()

	season, err := store.CreateSeason(ctx, models.Season{Name: "2025"})
	require.NoError(t, err)
	period, err := store.CreatePeriod(ctx, models.Period{SeasonID: season.ID, PeriodTypeID: models.PeriodTypeRegular, Sequence: 1, Name: "Week 2"})
	require.NoError(t, err)
	contest, err := store.CreateContest(ctx, models.Contest{PeriodID: period.ID, Number: 1, StartsAt: kickoff})
	require.NoError(t, err)
	participant, err := store.CreateParticipant(ctx, models.Participant{Username: "mo", Email: "mo@pool.test"})
	require.NoError(t, err)

	return NewApp(store, clock.NewFake(now)), store, *contest, *participant
}

func TestMakePrediction_BeforeKickoff(t *testing.T) {
	app, store, contest, participant := setup(t, kickoff.Add(-time.Hour))

	got, err := app.MakePrediction(context.Background(), MakePredictionRequest{
		ParticipantID: participant.ID,
		ContestID:     contest.ID,
		KindID:        models.KindVisitorWin,
	})
	require.NoError(t, err)
	assert.Equal(t, models.KindVisitorWin, got.KindID)
	assert.Equal(t, kickoff.Add(-time.Hour), got.UpdatedAt)

	stored, ok := store.PredictionFor(contest.ID, participant.ID)
	require.True(t, ok)
	assert.Equal(t, models.KindVisitorWin, stored.KindID)
	assert.Equal(t, 0, stored.Score)
}

func TestMakePrediction_ChangesExistingPick(t *testing.T) {
	app, store, contest, participant := setup(t, kickoff.Add(-time.Hour))
	ctx := context.Background()

	_, err := app.MakePrediction(ctx, MakePredictionRequest{ParticipantID: participant.ID, ContestID: contest.ID, KindID: models.KindHomeWin})
	require.NoError(t, err)
	_, err = app.MakePrediction(ctx, MakePredictionRequest{ParticipantID: participant.ID, ContestID: contest.ID, KindID: models.KindOvertimeTie})
	require.NoError(t, err)

	assert.Len(t, store.Predictions(), 1)
	stored, _ := store.PredictionFor(contest.ID, participant.ID)
	assert.Equal(t, models.KindOvertimeTie, stored.KindID)
}

func TestMakePrediction_AfterKickoff(t *testing.T) {
	app, store, contest, participant := setup(t, kickoff.Add(time.Minute))

	_, err := app.MakePrediction(context.Background(), MakePredictionRequest{
		ParticipantID: participant.ID,
		ContestID:     contest.ID,
		KindID:        models.KindHomeWin,
	})
	require.ErrorIs(t, err, ErrContestStarted)
	assert.ErrorIs(t, err, models.ErrConflict)
	assert.Empty(t, store.Predictions())
}

func TestMakePrediction_UnknownKind(t *testing.T) {
	app, _, contest, participant := setup(t, kickoff.Add(-time.Hour))

	_, err := app.MakePrediction(context.Background(), MakePredictionRequest{
		ParticipantID: participant.ID,
		ContestID:     contest.ID,
		KindID:        models.PredictionKindID(42),
	})
	assert.ErrorIs(t, err, pooldb.ErrNotFound)
}

func TestMakePrediction_MissingIDs(t *testing.T) {
	app, _, contest, _ := setup(t, kickoff.Add(-time.Hour))

	_, err := app.MakePrediction(context.Background(), MakePredictionRequest{ContestID: contest.ID, KindID: models.KindHomeWin})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestListForParticipantPeriod(t *testing.T) {
	app, store, contest, participant := setup(t, kickoff.Add(-time.Hour))
	ctx := context.Background()

	second, err := store.CreateContest(ctx, models.Contest{PeriodID: contest.PeriodID, Number: 2, StartsAt: kickoff})
	require.NoError(t, err)
	for _, id := range []uuid.UUID{second.ID, contest.ID} {
		_, _, err := store.GetOrCreatePrediction(ctx, id, participant.ID)
		require.NoError(t, err)
	}

	got, err := app.ListForParticipantPeriod(ctx, participant.ID, contest.PeriodID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, contest.ID, got[0].ContestID)
	assert.Equal(t, second.ID, got[1].ContestID)
}
