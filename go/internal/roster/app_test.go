package roster

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/pickpool/go/internal/clock"
	"github.com/mcdev12/pickpool/go/internal/events"
	"github.com/mcdev12/pickpool/go/internal/memstore"
	"github.com/mcdev12/pickpool/go/internal/models"
)

var now = time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

func seedContests(t *testing.T, store *memstore.Store, n int) []uuid.UUID {
	t.Helper()
	ctx := context.Background()
	season, err := store.CreateSeason(ctx, models.Season{Name: "2025"})
	require.NoError(t, err)
	period, err := store.CreatePeriod(ctx, models.Period{SeasonID: season.ID, PeriodTypeID: models.PeriodTypeRegular, Sequence: 1, Name: "Week 1"})
	require.NoError(t, err)

	ids := make([]uuid.UUID, n)
	for i := 0; i < n; i++ {
		c, err := store.CreateContest(ctx, models.Contest{PeriodID: period.ID, Number: i + 1, StartsAt: now})
		require.NoError(t, err)
		ids[i] = c.ID
	}
	return ids
}

func TestOnParticipantCreated(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewSeeded()
	seedContests(t, store, 16)
	app := NewApp(store, store, clock.NewFake(now))

	p, err := store.CreateParticipant(ctx, models.Participant{Username: "jo", Email: "jo@pool.test"})
	require.NoError(t, err)

	report, err := app.OnParticipantCreated(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 16, report.PredictionsCreated)
	assert.True(t, report.PaymentAudit)
	assert.True(t, report.Preferences)
	assert.True(t, report.WelcomeAlert)

	preds := store.Predictions()
	require.Len(t, preds, 16)
	for _, pred := range preds {
		assert.Equal(t, p.ID, pred.ParticipantID)
		assert.Equal(t, models.KindNoPick, pred.KindID)
		assert.Equal(t, 0, pred.Score)
	}

	prefs, ok := store.Preferences(p.ID)
	require.True(t, ok)
	assert.Equal(t, models.LayoutGrid, prefs.PicksLayout)
	assert.Equal(t, models.LayoutGrid, prefs.WinnersLayout)

	alerts := store.Alerts(p.ID)
	require.Len(t, alerts, 1)
	assert.Equal(t, WelcomeMessage, alerts[0].Message)
	assert.Equal(t, models.AlertInfo, alerts[0].Level)

	require.Len(t, store.Events(events.ParticipantProvisioned), 1)
}

func TestOnParticipantCreated_Rerun(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewSeeded()
	seedContests(t, store, 5)
	app := NewApp(store, store, clock.NewFake(now))

	p, err := store.CreateParticipant(ctx, models.Participant{Username: "jo", Email: "jo@pool.test"})
	require.NoError(t, err)
	_, err = app.OnParticipantCreated(ctx, p.ID)
	require.NoError(t, err)

	report, err := app.OnParticipantCreated(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, report.PredictionsCreated)
	assert.False(t, report.PaymentAudit)
	assert.False(t, report.Preferences)
	assert.False(t, report.WelcomeAlert)
	assert.Len(t, store.Predictions(), 5)
	assert.Len(t, store.Alerts(p.ID), 1)
}

func TestOnParticipantCreated_NoContests(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewSeeded()
	app := NewApp(store, nil, clock.NewFake(now))

	p, err := store.CreateParticipant(ctx, models.Participant{Username: "jo", Email: "jo@pool.test"})
	require.NoError(t, err)

	report, err := app.OnParticipantCreated(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, report.PredictionsCreated)
	assert.True(t, report.PaymentAudit)
}

func TestOnParticipantCreated_SkipsFailedPairs(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewSeeded()
	contests := seedContests(t, store, 3)
	app := NewApp(store, store, clock.NewFake(now))

	p, err := store.CreateParticipant(ctx, models.Participant{Username: "jo", Email: "jo@pool.test"})
	require.NoError(t, err)
	store.FailGetOrCreate = func(contestID, _ uuid.UUID) error {
		if contestID == contests[1] {
			return errors.New("unique violation")
		}
		return nil
	}

	report, err := app.OnParticipantCreated(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, report.PredictionsCreated)
	assert.Equal(t, 1, report.PredictionsFailed)
	assert.True(t, report.WelcomeAlert)
}

func TestOnContestCreated(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewSeeded()
	app := NewApp(store, store, clock.NewFake(now))

	for _, name := range []string{"a", "b", "c"} {
		_, err := store.CreateParticipant(ctx, models.Participant{Username: name, Email: name + "@pool.test"})
		require.NoError(t, err)
	}
	contests := seedContests(t, store, 1)

	report, err := app.OnContestCreated(ctx, contests[0])
	require.NoError(t, err)
	assert.Equal(t, 3, report.PredictionsCreated)

	report, err = app.OnContestCreated(ctx, contests[0])
	require.NoError(t, err)
	assert.Equal(t, 0, report.PredictionsCreated)
	assert.Len(t, store.Predictions(), 3)
}
