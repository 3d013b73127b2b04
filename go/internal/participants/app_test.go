package participants

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/pickpool/go/internal/clock"
	"github.com/mcdev12/pickpool/go/internal/memstore"
	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/roster"
)

var now = time.Date(2025, 9, 3, 12, 0, 0, 0, time.UTC)

func newApp(store *memstore.Store) *App {
	clk := clock.NewFake(now)
	return NewApp(store, roster.NewApp(store, store, clk), clk)
}

func addContests(t *testing.T, store *memstore.Store, n int) {
	t.Helper()
	ctx := context.Background()
	season, err := store.CreateSeason(ctx, models.Season{Name: "2025"})
	require.NoError(t, err)
	period, err := store.CreatePeriod(ctx, models.Period{
		SeasonID:     season.ID,
		PeriodTypeID: models.PeriodTypeRegular,
		Sequence:     1,
		Name:         "Week 1",
		StartsAt:     now,
		EndsAt:       now.AddDate(0, 0, 7),
	})
	require.NoError(t, err)
	for i := 1; i <= n; i++ {
		_, err := store.CreateContest(ctx, models.Contest{
			PeriodID: period.ID,
			Number:   i,
			StartsAt: now.AddDate(0, 0, 3),
		})
		require.NoError(t, err)
	}
}

func TestCreateParticipant_ProvisionsExistingContests(t *testing.T) {
	store := memstore.NewSeeded()
	addContests(t, store, 16)

	resp, err := newApp(store).CreateParticipant(context.Background(), CreateParticipantRequest{
		Username: "mcdev",
		Email:    "mc@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, defaultTimezone, resp.Participant.Timezone)
	require.NotNil(t, resp.Provisioning)
	assert.Equal(t, 16, resp.Provisioning.PredictionsCreated)

	preds := store.Predictions()
	require.Len(t, preds, 16)
	for _, p := range preds {
		assert.Equal(t, resp.Participant.ID, p.ParticipantID)
		assert.Equal(t, models.KindNoPick, p.KindID)
		assert.Zero(t, p.Score)
	}
	assert.Len(t, store.Alerts(resp.Participant.ID), 1)
}

func TestCreateParticipant_Duplicates(t *testing.T) {
	ctx := context.Background()
	app := newApp(memstore.NewSeeded())

	_, err := app.CreateParticipant(ctx, CreateParticipantRequest{Username: "mcdev", Email: "mc@example.com"})
	require.NoError(t, err)

	_, err = app.CreateParticipant(ctx, CreateParticipantRequest{Username: "MCDEV", Email: "other@example.com"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.ErrorIs(t, err, models.ErrConflict)

	_, err = app.CreateParticipant(ctx, CreateParticipantRequest{Username: "other", Email: "mc@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreateParticipant_Validation(t *testing.T) {
	app := newApp(memstore.NewSeeded())
	for _, req := range []CreateParticipantRequest{
		{Email: "mc@example.com"},
		{Username: "mcdev"},
		{Username: "mcdev", Email: "example.com"},
		{Username: "mcdev", Email: "@example.com"},
		{Username: "mcdev", Email: "mc@example"},
	} {
		_, err := app.CreateParticipant(context.Background(), req)
		assert.ErrorIs(t, err, models.ErrValidation, req)
	}
}

func TestService_CreateAndGet(t *testing.T) {
	r := chi.NewRouter()
	NewService(newApp(memstore.NewSeeded())).Routes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/participants",
		strings.NewReader(`{"username":"mcdev","email":"mc@example.com"}`)))
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/participants",
		strings.NewReader(`{"username":"mcdev","email":"mc@example.com"}`)))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/participants",
		strings.NewReader(`{"username":"mcdev","nickname":"mc"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/participants/8f7c1c1e-0d6b-4a55-9a59-3f0c1d7e2b10", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
