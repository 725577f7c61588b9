// Package clock is the timer facility behind self-expiring view state.
//
// A Clock is installed into a context with WithEffectHandler, the same way
// the other handlers are, and retrieved with FromContext. Real wraps the
// runtime timers; Manual is a clockwork fake clock for tests and replays.
package clock

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/on-the-ground/viewstate/effects/internal/helper"
	effectmodel "github.com/on-the-ground/viewstate/effects/internal/model"
	"github.com/rickb777/date/v2/timespan"
)

// Clock schedules callbacks no earlier than the requested delay.
// Expiry code only relies on Now and AfterFunc.
type Clock = clockwork.Clock

// Timer is a pending callback. Stop reports false if the callback already
// fired or was already stopped.
type Timer = clockwork.Timer

// Real returns the wall clock.
func Real() Clock {
	return clockwork.NewRealClock()
}

// WithEffectHandler installs c as the clock of ctx.
func WithEffectHandler(ctx context.Context, c Clock) (context.Context, func() context.Context) {
	return context.WithValue(ctx, effectmodel.EffectClock, c), func() context.Context {
		return ctx
	}
}

// FromContext returns the installed clock. Panics if none is installed.
func FromContext(ctx context.Context) Clock {
	return helper.Handler[Clock](ctx, effectmodel.EffectClock)
}

// NewWindow returns the span that starts at from and lasts d.
func NewWindow(from time.Time, d time.Duration) timespan.TimeSpan {
	return timespan.BetweenTimes(from, from.Add(d))
}
