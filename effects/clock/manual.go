package clock

import (
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

// Manual is a Clock that only moves when Advance is called.
// Due callbacks are started by Advance, each on its own goroutine.
type Manual struct {
	*clockwork.FakeClock
	pending atomic.Int64
}

func NewManual(start time.Time) *Manual {
	return &Manual{FakeClock: clockwork.NewFakeClockAt(start)}
}

// AfterFunc schedules fn like the fake clock does and keeps count of it
// until it starts or is stopped.
func (m *Manual) AfterFunc(d time.Duration, fn func()) clockwork.Timer {
	t := &manualTimer{clock: m}
	m.pending.Add(1)
	t.Timer = m.FakeClock.AfterFunc(d, func() {
		if t.settle() {
			fn()
		}
	})
	return t
}

// Pending reports how many callbacks are scheduled and not yet started.
func (m *Manual) Pending() int {
	return int(m.pending.Load())
}

type manualTimer struct {
	clockwork.Timer
	clock   *Manual
	settled atomic.Bool
}

func (t *manualTimer) Stop() bool {
	if !t.Timer.Stop() {
		return false
	}
	return t.settle()
}

// settle marks the timer as fired or stopped, once.
func (t *manualTimer) settle() bool {
	if !t.settled.CompareAndSwap(false, true) {
		return false
	}
	t.clock.pending.Add(-1)
	return true
}
