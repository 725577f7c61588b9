// Package resource holds the state of one asynchronous load for a view.
//
// A Resource wraps a producer and exposes a Snapshot {data, isLoading, error}.
// The presentation layer calls Observe on every render with the current
// dependencies; the producer is invoked again only when they change.
// Results of superseded invocations, and every result that arrives after
// Dispose, are discarded. The producer itself is never cancelled.
//
//	r := resource.New(ctx, fetchUser)
//	defer r.Dispose()
//	unsubscribe := r.OnChange(func(s resource.Snapshot[User]) { rerender() })
//	defer unsubscribe()
//	snap := r.Observe(userID)
package resource

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/on-the-ground/viewstate/effects/concurrency"
	"github.com/on-the-ground/viewstate/effects/host"
	"github.com/on-the-ground/viewstate/effects/internal/handlers"
	"github.com/on-the-ground/viewstate/effects/log"
	"github.com/on-the-ground/viewstate/effects/task"
)

// Producer yields the value of a resource. It may be called once per
// dependency epoch; making repeated calls harmless is up to the caller.
type Producer[T any] func(context.Context) (T, error)

type Option[T any] func(*Resource[T])

// WithInitialData seeds Data before the first invocation settles.
func WithInitialData[T any](data T) Option[T] {
	return func(r *Resource[T]) {
		r.snap.Data = data
		r.snap.HasData = true
	}
}

// Resource requires the host and concurrency handlers in its context.
type Resource[T any] struct {
	id       string
	ctx      context.Context
	producer Producer[T]

	mu        sync.Mutex
	snap      Snapshot[T]
	deps      []any
	observed  bool
	disposed  bool
	version   uint64 // bumped on every commit
	delivered uint64 // version last handed to listeners
	flushing  bool   // a flush job is queued on the host

	listeners    map[uint64]func(Snapshot[T])
	nextListener uint64
}

func New[T any](ctx context.Context, producer Producer[T], opts ...Option[T]) *Resource[T] {
	r := &Resource[T]{
		id:        uuid.NewString(),
		ctx:       ctx,
		producer:  producer,
		snap:      Snapshot[T]{Status: StatusLoading},
		listeners: make(map[uint64]func(Snapshot[T])),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ID is the owner key of this resource on the host scheduler.
func (r *Resource[T]) ID() string {
	return r.id
}

// Observe returns the current snapshot. On the first call, and whenever deps
// differ element-wise from the previous call, it starts a new invocation and
// resets the state to loading, keeping the last data.
func (r *Resource[T]) Observe(deps ...any) Snapshot[T] {
	r.mu.Lock()
	if r.disposed || (r.observed && !depsChanged(r.deps, deps)) {
		defer r.mu.Unlock()
		return r.snap
	}
	r.observed = true
	r.deps = slices.Clone(deps)
	snap, flush := r.beginLocked()
	r.mu.Unlock()

	r.start(snap.Generation, flush)
	return snap
}

// Refetch starts a new invocation with the current dependencies.
func (r *Resource[T]) Refetch() Snapshot[T] {
	r.mu.Lock()
	if r.disposed {
		defer r.mu.Unlock()
		return r.snap
	}
	r.observed = true
	snap, flush := r.beginLocked()
	r.mu.Unlock()

	r.start(snap.Generation, flush)
	return snap
}

// Snapshot returns the current state without observing.
func (r *Resource[T]) Snapshot() Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap
}

// OnChange registers fn to be called with the latest snapshot after state
// changes. Calls run on the host worker owning this resource, never
// concurrently with each other; bursts of changes may be coalesced into one
// call carrying the newest snapshot.
func (r *Resource[T]) OnChange(fn func(Snapshot[T])) (unsubscribe func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.disposed {
		return func() {}
	}
	id := r.nextListener
	r.nextListener++
	r.listeners[id] = fn
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners, id)
	}
}

// Dispose freezes the resource. Pending invocations still run to completion
// but their results are ignored, and no listener is scheduled afterwards.
// A listener call that is already running may still finish.
func (r *Resource[T]) Dispose() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.disposed {
		return
	}
	r.disposed = true
	clear(r.listeners)
	log.Effect(r.ctx, log.LogDebug, "resource disposed", map[string]any{
		"resource":   r.id,
		"generation": r.snap.Generation,
	})
}

func (r *Resource[T]) beginLocked() (Snapshot[T], bool) {
	r.snap.Generation++
	r.snap.Status = StatusLoading
	r.snap.Error = ""
	return r.snap, r.commitLocked()
}

// commitLocked records a state change and reports whether the caller must
// post a flush after releasing the lock.
func (r *Resource[T]) commitLocked() bool {
	r.version++
	if r.flushing || len(r.listeners) == 0 {
		return false
	}
	r.flushing = true
	return true
}

func (r *Resource[T]) start(generation uint64, flush bool) {
	if flush {
		r.postFlush()
	}
	log.Effect(r.ctx, log.LogDebug, "resource invocation started", map[string]any{
		"resource":   r.id,
		"generation": generation,
	})

	resultCh := task.Effect(r.ctx, task.Payload[T](r.producer))
	err := concurrency.Effect(r.ctx, func(ctx context.Context) {
		select {
		case res := <-resultCh:
			r.settle(generation, res)
		case <-ctx.Done():
		}
	})
	if err != nil {
		// the supervisor is gone; task.Effect has already reported why
		r.settle(generation, <-resultCh)
	}
}

func (r *Resource[T]) settle(generation uint64, res handlers.ResumableResult[T]) {
	r.mu.Lock()
	if r.disposed || generation != r.snap.Generation {
		current, disposed := r.snap.Generation, r.disposed
		r.mu.Unlock()
		log.Effect(r.ctx, log.LogDebug, "discarding result of superseded invocation", map[string]any{
			"resource":   r.id,
			"generation": generation,
			"current":    current,
			"disposed":   disposed,
		})
		return
	}

	if res.Err != nil {
		r.snap.Status = StatusFailed
		r.snap.Error = describe(res.Err)
	} else {
		r.snap.Data = res.Value
		r.snap.HasData = true
		r.snap.Status = StatusReady
		r.snap.Error = ""
	}
	snap := r.snap
	flush := r.commitLocked()
	r.mu.Unlock()

	if flush {
		r.postFlush()
	}
	if res.Err != nil {
		log.Effect(r.ctx, log.LogWarn, "resource invocation failed", map[string]any{
			"resource":   r.id,
			"generation": generation,
			"error":      res.Err.Error(),
		})
		return
	}
	log.Effect(r.ctx, log.LogDebug, "resource invocation settled", map[string]any{
		"resource":   r.id,
		"generation": snap.Generation,
	})
}

func (r *Resource[T]) postFlush() {
	if !host.Post(r.ctx, r.id, r.flush) {
		r.mu.Lock()
		r.flushing = false
		r.mu.Unlock()
	}
}

// flush runs on the host worker and hands the newest snapshot to listeners.
func (r *Resource[T]) flush() {
	r.mu.Lock()
	r.flushing = false
	if r.disposed || r.delivered == r.version {
		r.mu.Unlock()
		return
	}
	r.delivered = r.version
	snap := r.snap
	listeners := make([]func(Snapshot[T]), 0, len(r.listeners))
	for _, fn := range r.listeners {
		listeners = append(listeners, fn)
	}
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}
