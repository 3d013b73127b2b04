package clock

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock is the time oracle every time-dependent decision routes through.
// In production, use New(). In tests, a clockwork.FakeClock.
type Clock interface {
	Now() time.Time
	NewTimer(d time.Duration) clockwork.Timer
}

// New returns the wall clock.
func New() Clock {
	return clockwork.NewRealClock()
}

// NewFake returns a fake clock frozen at t.
func NewFake(t time.Time) *clockwork.FakeClock {
	return clockwork.NewFakeClockAt(t)
}
