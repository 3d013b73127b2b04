package seasons

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/pickpool/go/internal/clock"
	"github.com/mcdev12/pickpool/go/internal/contests"
	"github.com/mcdev12/pickpool/go/internal/memstore"
	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/periods"
	"github.com/mcdev12/pickpool/go/internal/roster"
	"github.com/mcdev12/pickpool/go/internal/schedule"
)

var now = time.Date(2025, 7, 20, 8, 0, 0, 0, time.UTC)

func newApp(t *testing.T, store *memstore.Store) *App {
	t.Helper()
	clk := clock.NewFake(now)
	tmpl, err := schedule.DefaultTemplate()
	require.NoError(t, err)

	periodsApp := periods.NewApp(store, store, clk)
	contestsApp := contests.NewApp(store, roster.NewApp(store, store, clk), nil, nil, store, clk)
	generator := schedule.NewGenerator(store, contestsApp, periodsApp, store, tmpl, clk)
	return NewApp(store, generator, periodsApp, clk)
}

func TestCreateSeason_GeneratesSchedule(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewSeeded()
	app := newApp(t, store)

	resp, err := app.CreateSeason(ctx, CreateSeasonRequest{
		Name:     "2025",
		StartsAt: now,
		EndsAt:   now.AddDate(0, 7, 0),
		Activate: true,
	})
	require.NoError(t, err)
	assert.True(t, resp.Season.IsActive)
	assert.True(t, resp.Schedule.Complete)
	assert.Equal(t, 26, resp.Schedule.Periods)

	again, err := app.Generate(ctx, resp.Season.ID)
	require.NoError(t, err)
	assert.True(t, again.Skipped)
}

func TestCreateSeason_SecondActivationWins(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewSeeded()
	app := newApp(t, store)

	first, err := app.CreateSeason(ctx, CreateSeasonRequest{Name: "2024", Activate: true})
	require.NoError(t, err)
	second, err := app.CreateSeason(ctx, CreateSeasonRequest{Name: "2025", Activate: true})
	require.NoError(t, err)

	seasons, err := app.ListSeasons(ctx)
	require.NoError(t, err)
	active := 0
	for _, s := range seasons {
		if s.IsActive {
			active++
			assert.Equal(t, second.Season.ID, s.ID)
		}
	}
	assert.Equal(t, 1, active)

	got, err := app.GetSeason(ctx, first.Season.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestCreateSeason_Validation(t *testing.T) {
	app := newApp(t, memstore.NewSeeded())

	_, err := app.CreateSeason(context.Background(), CreateSeasonRequest{})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = app.CreateSeason(context.Background(), CreateSeasonRequest{Name: "x", StartsAt: now, EndsAt: now.Add(-time.Hour)})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestCreateSeason_MissingReferenceData(t *testing.T) {
	store := memstore.NewSeeded()
	store.DeletePredictionKind(models.KindNoPick)
	app := newApp(t, store)

	_, err := app.CreateSeason(context.Background(), CreateSeasonRequest{Name: "2025"})
	assert.ErrorIs(t, err, schedule.ErrMissingPredictionKind)
}
