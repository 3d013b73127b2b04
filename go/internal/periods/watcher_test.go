package periods

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mcdev12/pickpool/go/internal/clock"
	"github.com/mcdev12/pickpool/go/internal/memstore"
)

func TestWatcher_PromotesAtBoundary(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := memstore.NewSeeded()
	periods := addSeason(t, store, "2025", t0, 2)
	clk := clock.NewFake(t0.Add(time.Hour))
	app := NewApp(store, nil, clk)

	w := NewWatcher(app, clk, 30*24*time.Hour)
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	require.NoError(t, clk.BlockUntilContext(ctx, 1))
	require.Equal(t, periods[0].ID.String(), activeID(t, store))

	// through the first window and the one-day gap
	clk.Advance(week + 25*time.Hour)

	require.Eventually(t, func() bool {
		return activeID(t, store) == periods[1].ID.String()
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}
