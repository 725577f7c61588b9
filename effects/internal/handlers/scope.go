package handlers

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// effectScope owns the workers of one installed handler.
//
// Shutdown happens in order: the scope stops accepting messages, waits for
// senders already past the check, then lets the workers drain their buffers
// and exit. Close additionally waits for the workers and runs the teardown
// exactly once; it must not be called from inside a handled message.
// Cancelling the parent context shuts the scope down without the teardown.
type effectScope[T any] struct {
	EffectId   string
	dispatcher Dispatcher[T]

	// senders hold the read lock between the done check and the send
	accepting   sync.RWMutex
	done        chan struct{}
	stopWorkers context.CancelFunc
	stopOnce    sync.Once
	closeOnce   sync.Once
	teardown    func()
}

func (es *effectScope[T]) Close() {
	es.closeOnce.Do(func() {
		es.stop()
		es.dispatcher.Wait()
		es.teardown()
	})
}

// Done is closed once the scope stops accepting messages.
func (es *effectScope[T]) Done() <-chan struct{} {
	return es.done
}

func (es *effectScope[T]) stop() {
	es.stopOnce.Do(func() {
		close(es.done)
		es.accepting.Lock()
		es.accepting.Unlock()
		es.stopWorkers()
	})
}

func newEffectScope[T any](
	ctx context.Context,
	newDispatcher func(context.Context) Dispatcher[T],
	teardown func(),
) *effectScope[T] {
	workerCtx, stopWorkers := context.WithCancel(context.WithoutCancel(ctx))
	es := &effectScope[T]{
		EffectId:    uuid.NewString(),
		dispatcher:  newDispatcher(workerCtx),
		done:        make(chan struct{}),
		stopWorkers: stopWorkers,
		teardown:    teardown,
	}
	go func() {
		select {
		case <-ctx.Done():
			es.stop()
		case <-es.done:
		}
	}()
	return es
}
