package effects

import (
	"context"

	"github.com/on-the-ground/viewstate/effects/internal/handlers"
	"github.com/on-the-ground/viewstate/effects/internal/helper"
	"go.uber.org/zap"

	effectmodel "github.com/on-the-ground/viewstate/effects/internal/model"
)

// ErrNoEffectHandler is returned (or panicked with) when an effect is
// performed in a context where its handler was never installed.
var ErrNoEffectHandler = effectmodel.ErrNoEffectHandler

var (
	ErrScopeClosed = handlers.ErrScopeClosed
	ErrBufferFull  = handlers.ErrBufferFull
)

// WithFireAndForgetEffectHandler registers a single-worker fire-and-forget handler
// for the given effect enum.
//
// Suitable for one-shot effects like logging. Payloads are handled in send order.
//
// Usage:
//
//	ctx, end := WithFireAndForgetEffectHandler(ctx, 16, MyEffectEnum, handleFn)
//	defer end()
func WithFireAndForgetEffectHandler[P any](
	ctx context.Context,
	bufferSize int,
	enum effectmodel.EffectEnum,
	handleFn func(context.Context, P),
	teardown ...func(),
) (context.Context, func() context.Context) {
	handler := handlers.NewFireAndForgetHandler(ctx, bufferSize, handleFn, normalizeTeardown(teardown))
	zap.L().Debug("created fire/forget effect handler",
		zap.String("effectId", handler.EffectId), zap.String("enum", string(enum)))

	return context.WithValue(ctx, enum, handler), func() context.Context {
		handler.Close()
		zap.L().Debug("closed fire/forget effect handler",
			zap.String("effectId", handler.EffectId), zap.String("enum", string(enum)))
		return ctx
	}
}

// WithFireAndForgetPartitionableEffectHandler registers a partitioned fire-and-forget handler.
//
// Hash-based dispatching ensures that payloads with the same PartitionKey() are handled
// by the same goroutine, in the order they were sent.
func WithFireAndForgetPartitionableEffectHandler[P effectmodel.Partitionable](
	ctx context.Context,
	config effectmodel.EffectScopeConfig,
	enum effectmodel.EffectEnum,
	handleFn func(context.Context, P),
	teardown ...func(),
) (context.Context, func() context.Context) {
	handler := handlers.NewPartitionableFireAndForgetHandler(ctx, config, handleFn, normalizeTeardown(teardown))
	zap.L().Debug("created partitioned fire/forget effect handler",
		zap.String("effectId", handler.EffectId), zap.String("enum", string(enum)),
		zap.Int("workers", config.NumWorkers))

	return context.WithValue(ctx, enum, handler), func() context.Context {
		handler.Close()
		zap.L().Debug("closed partitioned fire/forget effect handler",
			zap.String("effectId", handler.EffectId), zap.String("enum", string(enum)))
		return ctx
	}
}

// FireAndForgetEffect hands payload to the handler registered for enum.
//
// It reports whether the payload was accepted. Panics if no handler is registered.
func FireAndForgetEffect[P any](
	ctx context.Context,
	enum effectmodel.EffectEnum,
	payload P,
) bool {
	handler := helper.Handler[handlers.FireAndForgetHandler[P]](ctx, enum)
	return handler.FireAndForgetEffect(ctx, payload)
}

// TryFireAndForgetEffect is the non-blocking variant of FireAndForgetEffect.
// It returns ErrBufferFull instead of waiting, or ErrScopeClosed after teardown.
func TryFireAndForgetEffect[P any](
	ctx context.Context,
	enum effectmodel.EffectEnum,
	payload P,
) error {
	handler := helper.Handler[handlers.FireAndForgetHandler[P]](ctx, enum)
	return handler.TryFireAndForgetEffect(payload)
}

// HasHandler reports whether a handler for enum is installed in ctx.
func HasHandler(ctx context.Context, enum effectmodel.EffectEnum) bool {
	return helper.Installed(ctx, enum)
}

// normalizeTeardown flattens optional teardown functions into a single callable.
//
// Accepts either 0 or 1 teardown functions. Panics if more than one is passed.
func normalizeTeardown(teardown []func()) func() {
	switch len(teardown) {
	case 1:
		return teardown[0]
	case 0:
		return func() {}
	default:
		panic("normalizeTeardown: only one or zero teardown functions allowed")
	}
}
