package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/on-the-ground/viewstate/effects/concurrency"
	"github.com/on-the-ground/viewstate/effects/internal/handlers"
)

// ErrPanicked wraps a panic raised by a task function.
var ErrPanicked = errors.New("task panicked")

// Payload is an asynchronous operation that returns a value of type R.
type Payload[R any] func(context.Context) (R, error)

// Effect runs fn on a supervised goroutine and returns a channel that
// receives exactly one result and is then closed.
// If the supervisor refuses the task, the result carries that error.
func Effect[R any](ctx context.Context, fn Payload[R]) <-chan handlers.ResumableResult[R] {
	resultCh := make(chan handlers.ResumableResult[R], 1)

	err := concurrency.Effect(ctx, func(ctx context.Context) {
		defer close(resultCh)
		resultCh <- run(ctx, fn)
	})
	if err != nil {
		var zero R
		resultCh <- handlers.ResumableResultFrom(zero, err)
		close(resultCh)
	}
	return resultCh
}

func run[R any](ctx context.Context, fn Payload[R]) (res handlers.ResumableResult[R]) {
	defer func() {
		if r := recover(); r != nil {
			res = handlers.ResumableResultFrom(*new(R), fmt.Errorf("%w: %v", ErrPanicked, r))
		}
	}()
	return handlers.ResumableResultFrom[R](fn(ctx))
}
