package periods

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/pickpool/go/internal/clock"
	"github.com/mcdev12/pickpool/go/internal/models"
)

// Reconciler resolves, and if needed promotes, the current period.
type Reconciler interface {
	CurrentPeriod(ctx context.Context) (*models.Period, error)
}

// Watcher reconciles the active period as soon as its window closes instead
// of waiting for the next request to notice.
type Watcher struct {
	reconciler Reconciler
	clock      clock.Clock
	idle       time.Duration
}

// NewWatcher creates a watcher. idle is how long to sleep when no boundary
// is known, for example between two period windows.
func NewWatcher(reconciler Reconciler, clk clock.Clock, idle time.Duration) *Watcher {
	if idle <= 0 {
		idle = time.Hour
	}
	return &Watcher{
		reconciler: reconciler,
		clock:      clk,
		idle:       idle,
	}
}

// Run blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	log.Info().Dur("idle", w.idle).Msg("period watcher started")
	for {
		wait := w.reconcile(ctx)

		timer := w.clock.NewTimer(wait)
		select {
		case <-timer.Chan():
		case <-ctx.Done():
			stopAndDrainTimer(timer)
			log.Info().Msg("period watcher stopped")
			return
		}
	}
}

// reconcile runs one check and returns how long to sleep until the next one.
func (w *Watcher) reconcile(ctx context.Context) time.Duration {
	period, err := w.reconciler.CurrentPeriod(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("period reconciliation failed")
		return w.idle
	}

	// wake just past the inclusive end of the window
	next := period.EndsAt.Add(time.Second)
	wait := next.Sub(w.clock.Now())
	if wait <= 0 || wait > w.idle {
		wait = w.idle
	}

	log.Debug().
		Str("period_id", period.ID.String()).
		Time("ends_at", period.EndsAt).
		Dur("wait", wait).
		Msg("next period check scheduled")
	return wait
}

func stopAndDrainTimer(timer clockwork.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.Chan():
		default:
		}
	}
}
