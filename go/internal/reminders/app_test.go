package reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/pickpool/go/internal/clock"
	"github.com/mcdev12/pickpool/go/internal/memstore"
	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/periods"
)

var now = time.Date(2025, 9, 4, 18, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	sent []Message
	err  error
}

func (n *recordingNotifier) Notify(ctx context.Context, msgs []Message) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, msgs...)
	return nil
}

type fixture struct {
	store    *memstore.Store
	notifier *recordingNotifier
	app      *App
	period   models.Period
	contests []models.Contest
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memstore.NewSeeded()
	clk := clock.NewFake(now)

	season, err := store.CreateSeason(ctx, models.Season{Name: "2025"})
	require.NoError(t, err)
	period, err := store.CreatePeriod(ctx, models.Period{
		SeasonID:     season.ID,
		PeriodTypeID: models.PeriodTypeRegular,
		Sequence:     1,
		Name:         "Week 1",
		StartsAt:     now.Add(-24 * time.Hour),
		EndsAt:       now.AddDate(0, 0, 6),
	})
	require.NoError(t, err)

	f := &fixture{store: store, notifier: &recordingNotifier{}, period: *period}
	for i := 1; i <= 2; i++ {
		c, err := store.CreateContest(ctx, models.Contest{PeriodID: period.ID, Number: i, StartsAt: now.Add(time.Hour)})
		require.NoError(t, err)
		f.contests = append(f.contests, *c)
	}
	f.app = NewApp(store, periods.NewApp(store, nil, clk), f.notifier, DefaultTemplate(), clk)
	return f
}

func (f *fixture) participant(t *testing.T, username, email string, kinds ...models.PredictionKindID) {
	t.Helper()
	ctx := context.Background()
	p, err := f.store.CreateParticipant(ctx, models.Participant{Username: username, Email: email})
	require.NoError(t, err)
	for i, kind := range kinds {
		pred, _, err := f.store.GetOrCreatePrediction(ctx, f.contests[i].ID, p.ID)
		require.NoError(t, err)
		if kind != models.KindNoPick {
			_, err = f.store.UpdatePredictionKind(ctx, pred.ID, kind, now)
			require.NoError(t, err)
		}
	}
}

func TestRecipients_OnlyParticipantsWithNoPick(t *testing.T) {
	f := newFixture(t)
	f.participant(t, "done", "done@example.com", models.KindHomeWin, models.KindVisitorWin)
	f.participant(t, "half", "half@example.com", models.KindHomeWin, models.KindNoPick)
	f.participant(t, "none", "none@example.com", models.KindNoPick, models.KindNoPick)

	period, emails, err := f.app.Recipients(context.Background())
	require.NoError(t, err)
	assert.Equal(t, f.period.ID, period.ID)
	assert.Equal(t, []string{"half@example.com", "none@example.com"}, emails)
}

func TestSend_RendersTemplate(t *testing.T) {
	f := newFixture(t)
	f.participant(t, "none", "none@example.com", models.KindNoPick)

	result, err := f.app.Send(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
	require.Len(t, f.notifier.sent, 1)

	msg := f.notifier.sent[0]
	assert.Equal(t, "none@example.com", msg.To)
	assert.Equal(t, "Don't Forget to make your Picks", msg.Subject)
	assert.Equal(t, "Week 1 Kick-off is almost here. Make your picks!", msg.Body)
	assert.Equal(t, f.period.ID, msg.PeriodID)
}

func TestSend_NothingToSend(t *testing.T) {
	f := newFixture(t)
	f.participant(t, "done", "done@example.com", models.KindHomeWin)

	result, err := f.app.Send(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.Sent)
	assert.Empty(t, f.notifier.sent)
}

func TestSend_NotifierFailure(t *testing.T) {
	f := newFixture(t)
	f.participant(t, "none", "none@example.com", models.KindNoPick)
	f.notifier.err = errors.New("nats down")

	_, err := f.app.Send(context.Background())
	assert.Error(t, err)
}

func TestSend_NoCurrentPeriod(t *testing.T) {
	store := memstore.NewSeeded()
	clk := clock.NewFake(now)
	app := NewApp(store, periods.NewApp(store, nil, clk), &recordingNotifier{}, DefaultTemplate(), clk)

	_, err := app.Send(context.Background())
	assert.ErrorIs(t, err, periods.ErrNoCurrentPeriod)
}
