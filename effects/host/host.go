// Package host models the cooperative scheduler a presentation layer runs on.
//
// Every resource and effect queue owns a partition key. Jobs posted for the
// same owner run one at a time, in post order, on the same worker goroutine;
// jobs of different owners may run in parallel on other workers. Re-render
// notifications and timer expiries are delivered through it.
package host

import (
	"context"
	"errors"

	"github.com/on-the-ground/viewstate/effects"
	effectmodel "github.com/on-the-ground/viewstate/effects/internal/model"
	"github.com/on-the-ground/viewstate/effects/log"
)

// Config sizes the scheduler.
type Config struct {
	BufferSize int // per worker, default 1
	NumWorkers int // default 1
}

type job struct {
	owner string
	fn    func()
}

func (j job) PartitionKey() string {
	return j.owner
}

// WithEffectHandler installs the scheduler.
func WithEffectHandler(ctx context.Context, config Config) (context.Context, func() context.Context) {
	return effects.WithFireAndForgetPartitionableEffectHandler(
		ctx,
		effectmodel.NewEffectScopeConfig(config.BufferSize, config.NumWorkers),
		effectmodel.EffectHost,
		run,
	)
}

// Post schedules fn on the worker owning owner and never blocks the caller,
// so it is safe to call from inside a running job. Jobs of one owner run in
// post order while the worker's buffer has room; once it is full the job is
// handed over from a separate goroutine and later posts may overtake it.
// It reports false when the job was dropped because the scheduler is done.
// Panics if no scheduler is installed.
func Post(ctx context.Context, owner string, fn func()) bool {
	j := job{owner: owner, fn: fn}
	switch err := effects.TryFireAndForgetEffect(ctx, effectmodel.EffectHost, j); {
	case err == nil:
		return true
	case errors.Is(err, effects.ErrBufferFull):
		go func() {
			// dropped only once the scheduler is torn down; run it here instead
			if !effects.FireAndForgetEffect(context.WithoutCancel(ctx), effectmodel.EffectHost, j) {
				run(ctx, j)
			}
		}()
		return true
	default:
		return false
	}
}

func run(ctx context.Context, j job) {
	defer func() {
		if r := recover(); r != nil {
			log.Effect(ctx, log.LogError, "panic in host job", map[string]any{
				"owner": j.owner,
				"error": r,
			})
		}
	}()
	j.fn()
}
