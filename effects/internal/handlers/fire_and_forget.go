package handlers

import (
	"context"
	"errors"

	effectmodel "github.com/on-the-ground/viewstate/effects/internal/model"
)

var (
	ErrScopeClosed = errors.New("effect scope closed")
	ErrBufferFull  = errors.New("effect buffer full")
)

// FireAndForgetHandler delivers payloads to its workers without waiting for
// them to be handled.
type FireAndForgetHandler[P any] struct {
	*effectScope[P]
}

// NewFireAndForgetHandler installs a single worker.
func NewFireAndForgetHandler[P any](
	ctx context.Context,
	bufferSize int,
	handleFn func(context.Context, P),
	teardown func(),
) FireAndForgetHandler[P] {
	return FireAndForgetHandler[P]{
		effectScope: newEffectScope(
			ctx,
			func(ctx context.Context) Dispatcher[P] {
				return NewSingleDispatcher(ctx, bufferSize, handleFn)
			},
			teardown,
		),
	}
}

// NewPartitionableFireAndForgetHandler installs config.NumWorkers workers and
// routes each payload by its partition key.
func NewPartitionableFireAndForgetHandler[P effectmodel.Partitionable](
	ctx context.Context,
	config effectmodel.EffectScopeConfig,
	handleFn func(context.Context, P),
	teardown func(),
) FireAndForgetHandler[P] {
	return FireAndForgetHandler[P]{
		effectScope: newEffectScope(
			ctx,
			func(ctx context.Context) Dispatcher[P] {
				return NewPartitionedDispatcher(ctx, config, handleFn)
			},
			teardown,
		),
	}
}

// FireAndForgetEffect enqueues payload. It reports false when the payload was
// dropped because either the caller's context or the handler scope is done.
func (h FireAndForgetHandler[P]) FireAndForgetEffect(ctx context.Context, payload P) bool {
	if ctx.Err() != nil {
		return false
	}
	h.accepting.RLock()
	defer h.accepting.RUnlock()
	select {
	case <-h.done:
		return false
	default:
	}

	select {
	case <-ctx.Done():
		return false
	case <-h.done:
		return false
	case h.dispatcher.ChannelOf(payload) <- payload:
		return true
	}
}

// TryFireAndForgetEffect enqueues payload only if the worker has buffer room.
func (h FireAndForgetHandler[P]) TryFireAndForgetEffect(payload P) error {
	h.accepting.RLock()
	defer h.accepting.RUnlock()
	select {
	case <-h.done:
		return ErrScopeClosed
	default:
	}

	select {
	case h.dispatcher.ChannelOf(payload) <- payload:
		return nil
	default:
		return ErrBufferFull
	}
}
