package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/pickpool/go/internal/clock"
	"github.com/mcdev12/pickpool/go/internal/contests"
	"github.com/mcdev12/pickpool/go/internal/events"
	"github.com/mcdev12/pickpool/go/internal/memstore"
	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/periods"
	"github.com/mcdev12/pickpool/go/internal/roster"
)

var created = time.Date(2025, 8, 1, 9, 30, 0, 0, time.UTC)

func newGenerator(t *testing.T, store *memstore.Store) *Generator {
	t.Helper()
	tmpl, err := DefaultTemplate()
	require.NoError(t, err)

	clk := clock.NewFake(created)
	contestsApp := contests.NewApp(store, roster.NewApp(store, nil, clk), nil, nil, nil, clk)
	return NewGenerator(store, contestsApp, periods.NewApp(store, nil, clk), store, tmpl, clk)
}

func newSeason(t *testing.T, store *memstore.Store) models.Season {
	t.Helper()
	s, err := store.CreateSeason(context.Background(), models.Season{Name: "2025"})
	require.NoError(t, err)
	return *s
}

func TestGenerate_FullTemplate(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewSeeded()
	season := newSeason(t, store)

	report, err := newGenerator(t, store).Generate(ctx, season)
	require.NoError(t, err)
	assert.True(t, report.Complete)
	assert.Equal(t, 26, report.Periods)
	assert.Equal(t, 336, report.Contests)
	assert.Equal(t, 22, report.Winners)
	assert.Len(t, store.Winners(), 22)
	assert.Len(t, store.Contests(), 336)

	ps, err := store.ListPeriodsBySeason(ctx, season.ID)
	require.NoError(t, err)
	require.Len(t, ps, 26)

	first := ps[0]
	assert.Equal(t, "Hall of Fame", first.Name)
	assert.Equal(t, models.PeriodTypePreseason, first.PeriodTypeID)
	assert.Equal(t, created, first.StartsAt)
	assert.True(t, first.IsActive)

	for i := 1; i < len(ps); i++ {
		assert.Equal(t, ps[i-1].EndsAt.Add(24*time.Hour), ps[i].StartsAt, ps[i].Name)
		assert.False(t, ps[i].IsActive, ps[i].Name)
	}

	last := ps[len(ps)-1]
	assert.Equal(t, "Super Bowl", last.Name)
	assert.Equal(t, 14*24*time.Hour, last.EndsAt.Sub(last.StartsAt))
	assert.Equal(t, 7*24*time.Hour, ps[5].EndsAt.Sub(ps[5].StartsAt))

	unset, err := store.GetTeamByCode(ctx, models.UnsetTeamCode)
	require.NoError(t, err)
	week10, err := store.ListContestsByPeriod(ctx, ps[14].ID)
	require.NoError(t, err)
	assert.Equal(t, "Week 10", ps[14].Name)
	require.Len(t, week10, 13)
	for i, c := range week10 {
		assert.Equal(t, i+1, c.Number)
		assert.Equal(t, ps[14].StartsAt, c.StartsAt)
		require.NotNil(t, c.HomeTeamID)
		assert.Equal(t, unset.ID, *c.HomeTeamID)
		assert.Equal(t, unset.ID, *c.VisitorTeamID)
		assert.NotNil(t, c.VenueID)
	}

	scheduled := store.Events(events.SeasonScheduled)
	require.Len(t, scheduled, 1)
	assert.True(t, scheduled[0].Payload.(events.SeasonScheduledPayload).Complete)
}

func TestGenerate_PreseasonInactive(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewSeeded()
	store.SetPeriodTypeActive(models.PeriodTypePreseason, false)
	season := newSeason(t, store)

	report, err := newGenerator(t, store).Generate(ctx, season)
	require.NoError(t, err)
	assert.Equal(t, 21, report.Periods)

	ps, err := store.ListPeriodsBySeason(ctx, season.ID)
	require.NoError(t, err)
	for _, p := range ps {
		assert.NotEqual(t, models.PeriodTypePreseason, p.PeriodTypeID)
	}
	assert.Equal(t, "Week 1", ps[0].Name)
	assert.Equal(t, models.PeriodTypeRegular, ps[0].PeriodTypeID)
	assert.Equal(t, created, ps[0].StartsAt)

	_, err = store.GetActiveID(ctx, models.ActivePeriod)
	assert.Error(t, err)
}

func TestGenerate_PostseasonInactive(t *testing.T) {
	store := memstore.NewSeeded()
	store.SetPeriodTypeActive(models.PeriodTypePostseason, false)

	report, err := newGenerator(t, store).Generate(context.Background(), newSeason(t, store))
	require.NoError(t, err)
	assert.Equal(t, 22, report.Periods)
	assert.Equal(t, 325, report.Contests)
	assert.Equal(t, 18, report.Winners)
}

func TestGenerate_SkipsScheduledSeason(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewSeeded()
	season := newSeason(t, store)
	g := newGenerator(t, store)

	_, err := g.Generate(ctx, season)
	require.NoError(t, err)

	report, err := g.Generate(ctx, season)
	require.NoError(t, err)
	assert.True(t, report.Skipped)
	assert.Equal(t, 0, report.Periods)
	assert.Len(t, store.Contests(), 336)
}

func TestGenerate_MissingReferenceRows(t *testing.T) {
	ctx := context.Background()

	t.Run("period type", func(t *testing.T) {
		store := memstore.NewSeeded()
		store.DeletePeriodType(models.PeriodTypeRegular)
		_, err := newGenerator(t, store).Generate(ctx, newSeason(t, store))
		assert.ErrorIs(t, err, ErrMissingPeriodType)
		assert.Empty(t, store.Contests())
	})

	t.Run("no-pick kind", func(t *testing.T) {
		store := memstore.NewSeeded()
		store.DeletePredictionKind(models.KindNoPick)
		_, err := newGenerator(t, store).Generate(ctx, newSeason(t, store))
		assert.ErrorIs(t, err, ErrMissingPredictionKind)
		assert.Empty(t, store.Contests())
	})
}

func TestGenerate_FailureKeepsPartialSchedule(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewSeeded()
	season := newSeason(t, store)
	store.FailCreatePeriod = func(p models.Period) error {
		if p.Sequence == 3 {
			return errors.New("connection refused")
		}
		return nil
	}

	report, err := newGenerator(t, store).Generate(ctx, season)
	require.NoError(t, err)
	assert.False(t, report.Complete)
	assert.NotEmpty(t, report.Error)
	assert.Equal(t, 2, report.Periods)
	assert.Equal(t, 17, report.Contests)

	n, err := store.CountPeriodsBySeason(ctx, season.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestGenerate_ProvisionsExistingParticipants(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewSeeded()
	for _, name := range []string{"ann", "bo"} {
		_, err := store.CreateParticipant(ctx, models.Participant{Username: name, Email: name + "@pool.test"})
		require.NoError(t, err)
	}

	_, err := newGenerator(t, store).Generate(ctx, newSeason(t, store))
	require.NoError(t, err)
	assert.Len(t, store.Predictions(), 2*336)
}
