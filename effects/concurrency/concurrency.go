package concurrency

import (
	"context"
	"errors"
	"sync"

	"github.com/on-the-ground/viewstate/effects/internal/helper"
	effectmodel "github.com/on-the-ground/viewstate/effects/internal/model"
	"github.com/on-the-ground/viewstate/effects/log"
)

// ErrSupervisorClosed is returned by Effect after the handler was torn down.
var ErrSupervisorClosed = errors.New("concurrency supervisor closed")

// WithEffectHandler installs a supervisor for goroutines spawned through Effect.
//
//   - Each child runs with its own cancellable context that keeps the values of ctx.
//   - Cancelling ctx cancels every child.
//   - Panics in children are recovered and logged.
//   - The returned teardown refuses new children and blocks until the running ones return.
func WithEffectHandler(
	ctx context.Context,
) (context.Context, func() context.Context) {
	sv := &supervisor{
		base:    context.WithoutCancel(ctx),
		cancels: make(map[uint64]context.CancelFunc),
		doneCh:  make(chan struct{}),
	}
	sv.watchParentCancel(ctx)

	return context.WithValue(ctx, effectmodel.EffectConcurrency, sv), func() context.Context {
		sv.close(ctx)
		return ctx
	}
}

// Effect spawns each function in its own supervised goroutine.
// Panics if no handler is installed in ctx.
func Effect(ctx context.Context, fns ...func(context.Context)) error {
	sv := helper.Handler[*supervisor](ctx, effectmodel.EffectConcurrency)
	return sv.spawn(ctx, fns)
}

// supervisor tracks the children spawned under one handler scope.
type supervisor struct {
	mu       sync.Mutex
	wg       sync.WaitGroup
	base     context.Context
	cancels  map[uint64]context.CancelFunc // running children only
	nextID   uint64
	canceled bool
	closed   bool
	doneCh   chan struct{}
}

// watchParentCancel propagates cancellation of the parent context to all children.
func (s *supervisor) watchParentCancel(parent context.Context) {
	ready := make(chan struct{})
	go func() {
		close(ready)
		select {
		case <-parent.Done():
			log.Effect(parent, log.LogInfo, "context cancelled, cancelling supervised routines", nil)
			s.cancelAll()
		case <-s.doneCh:
		}
	}()
	<-ready
}

func (s *supervisor) cancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canceled = true
	for id, cancel := range s.cancels {
		cancel()
		delete(s.cancels, id)
	}
}

// release cancels the context of a finished child and forgets it.
func (s *supervisor) release(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cancel, ok := s.cancels[id]; ok {
		cancel()
		delete(s.cancels, id)
	}
}

// running counts the children whose cancel funcs are still held.
func (s *supervisor) running() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cancels)
}

func (s *supervisor) spawn(ctx context.Context, fns []func(context.Context)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSupervisorClosed
	}

	for _, fn := range fns {
		childCtx, cancel := context.WithCancel(s.base)
		id := s.nextID
		s.nextID++
		if s.canceled {
			cancel()
		} else {
			s.cancels[id] = cancel
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.release(id)
			defer func() {
				if r := recover(); r != nil {
					log.Effect(ctx, log.LogError, "panic in supervised routine", map[string]any{
						"error": r,
					})
				}
			}()
			fn(childCtx)
		}()
	}
	return nil
}

// close stops accepting children and waits for the running ones.
func (s *supervisor) close(ctx context.Context) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	log.Effect(ctx, log.LogDebug, "waiting for supervised routines to finish", nil)
	s.wg.Wait()

	s.cancelAll()
	close(s.doneCh)
	log.Effect(ctx, log.LogDebug, "all supervised routines finished", nil)
}
