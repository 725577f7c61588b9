// Package transient manages self-expiring view state: ripple marks that
// follow a pointer activation and alert banners that hide themselves.
//
// A Queue holds tokens in insertion order. Each token is removed exactly
// once, either when its TTL elapses or when it is dismissed, whichever
// comes first. Removal is by id, so a late or repeated expiry is a no-op.
package transient

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/on-the-ground/viewstate/effects/clock"
	"github.com/on-the-ground/viewstate/effects/host"
	"github.com/on-the-ground/viewstate/effects/log"
)

// Config describes one kind of token.
type Config struct {
	Kind Kind
	TTL  time.Duration
	// Slots bounds the number of live tokens; 0 means unbounded. When the
	// queue is full, Add evicts the oldest token.
	Slots int
}

// Queue requires the host and clock handlers in its context.
type Queue[P any] struct {
	id     string
	ctx    context.Context
	config Config
	clock  clock.Clock

	mu        sync.Mutex
	tokens    []Token[P]
	timers    map[string]clock.Timer
	closed    bool
	version   uint64
	delivered uint64
	flushing  bool

	listeners    map[uint64]func([]Token[P])
	nextListener uint64
}

func New[P any](ctx context.Context, config Config) *Queue[P] {
	return &Queue[P]{
		id:        uuid.NewString(),
		ctx:       ctx,
		config:    config,
		clock:     clock.FromContext(ctx),
		timers:    make(map[string]clock.Timer),
		listeners: make(map[uint64]func([]Token[P])),
	}
}

// ID is the owner key of this queue on the host scheduler.
func (q *Queue[P]) ID() string {
	return q.id
}

// Add appends a token carrying payload and schedules its expiry.
// It returns the token id, or "" if the queue is closed.
func (q *Queue[P]) Add(payload P) string {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ""
	}

	var evicted []string
	if q.config.Slots > 0 {
		for len(q.tokens) >= q.config.Slots {
			oldest := q.tokens[0]
			q.tokens = q.tokens[1:]
			q.stopTimerLocked(oldest.ID)
			evicted = append(evicted, oldest.ID)
		}
	}

	now := q.clock.Now()
	tok := Token[P]{
		ID:        uuid.NewString(),
		Kind:      q.config.Kind,
		Payload:   payload,
		CreatedAt: now,
		Window:    clock.NewWindow(now, q.config.TTL),
	}
	q.tokens = append(q.tokens, tok)
	id := tok.ID
	q.timers[id] = q.clock.AfterFunc(q.config.TTL, func() {
		if !host.Post(q.ctx, q.id, func() { q.expire(id, "expired") }) {
			q.expire(id, "expired")
		}
	})
	flush := q.commitLocked()
	q.mu.Unlock()

	if flush {
		q.postFlush()
	}
	for _, old := range evicted {
		log.Effect(q.ctx, log.LogDebug, "token evicted", q.fields(old))
	}
	log.Effect(q.ctx, log.LogDebug, "token added", q.fields(id))
	return id
}

// Expire removes the token with the given id wherever it sits.
// It reports false if no such token is live.
func (q *Queue[P]) Expire(id string) bool {
	return q.expire(id, "expired")
}

// Dismiss removes the token now and cancels its pending expiry.
// Dismissing an absent token is a no-op that reports false.
func (q *Queue[P]) Dismiss(id string) bool {
	return q.expire(id, "dismissed")
}

func (q *Queue[P]) expire(id, reason string) bool {
	q.mu.Lock()
	i := slices.IndexFunc(q.tokens, func(t Token[P]) bool { return t.ID == id })
	if q.closed || i < 0 {
		q.mu.Unlock()
		return false
	}
	q.tokens = slices.Delete(q.tokens, i, i+1)
	q.stopTimerLocked(id)
	flush := q.commitLocked()
	q.mu.Unlock()

	if flush {
		q.postFlush()
	}
	log.Effect(q.ctx, log.LogDebug, "token "+reason, q.fields(id))
	return true
}

// Tokens returns the live tokens in insertion order.
func (q *Queue[P]) Tokens() []Token[P] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.tokens)
}

func (q *Queue[P]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tokens)
}

// OnChange registers fn to receive the live tokens after changes. Calls run
// on the host worker owning this queue; bursts may be coalesced.
func (q *Queue[P]) OnChange(fn func([]Token[P])) (unsubscribe func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return func() {}
	}
	id := q.nextListener
	q.nextListener++
	q.listeners[id] = fn
	return func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		delete(q.listeners, id)
	}
}

// Close cancels every pending expiry and empties the queue.
// Add is a no-op afterwards.
func (q *Queue[P]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
	q.tokens = nil
	clear(q.listeners)
	log.Effect(q.ctx, log.LogDebug, "queue closed", map[string]any{
		"queue": q.id,
		"kind":  q.config.Kind,
	})
}

func (q *Queue[P]) stopTimerLocked(id string) {
	if t, ok := q.timers[id]; ok {
		t.Stop()
		delete(q.timers, id)
	}
}

func (q *Queue[P]) commitLocked() bool {
	q.version++
	if q.flushing || len(q.listeners) == 0 {
		return false
	}
	q.flushing = true
	return true
}

func (q *Queue[P]) postFlush() {
	if !host.Post(q.ctx, q.id, q.flush) {
		q.mu.Lock()
		q.flushing = false
		q.mu.Unlock()
	}
}

func (q *Queue[P]) flush() {
	q.mu.Lock()
	q.flushing = false
	if q.closed || q.delivered == q.version {
		q.mu.Unlock()
		return
	}
	q.delivered = q.version
	tokens := slices.Clone(q.tokens)
	listeners := make([]func([]Token[P]), 0, len(q.listeners))
	for _, fn := range q.listeners {
		listeners = append(listeners, fn)
	}
	q.mu.Unlock()

	for _, fn := range listeners {
		fn(tokens)
	}
}

func (q *Queue[P]) fields(token string) map[string]any {
	return map[string]any{
		"queue": q.id,
		"kind":  q.config.Kind,
		"token": token,
	}
}
