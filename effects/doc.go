// Package effects is the handler layer under the view-state packages.
//
// View state has side effects: it logs, it spawns producers, it schedules
// expiries and it notifies the presentation layer. Each of these is
// delegated to a handler installed in a context.Context, so the state
// machines themselves stay free of globals and can be driven
// deterministically in tests.
//
// # Handlers
//
// A handler is installed with a WithXxxEffectHandler function, which
// returns the derived context and a teardown that restores the parent:
//
//	ctx, endOfLog := log.WithZapEffectHandler(ctx, 64, logger)
//	defer endOfLog()
//	ctx, endOfHost := host.WithEffectHandler(ctx, host.Config{NumWorkers: 4})
//	defer endOfHost()
//	ctx, endOfConcurrency := concurrency.WithEffectHandler(ctx)
//	defer endOfConcurrency()
//	ctx, endOfClock := clock.WithEffectHandler(ctx, clock.Real())
//	defer endOfClock()
//
// Performing an effect whose handler is missing panics with an error
// wrapping ErrNoEffectHandler. Logging is the exception: without a log
// handler the line is dropped.
//
// # Fire-and-forget
//
// This package exports the generic building block used by log and host:
// payloads are sent to a scope of worker goroutines and processed without
// a reply. The partitioned variant routes each payload by its partition key,
// so payloads with the same key are handled by one worker in send order.
package effects
