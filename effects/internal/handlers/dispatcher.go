package handlers

import (
	"context"
	"sync"

	effectmodel "github.com/on-the-ground/viewstate/effects/internal/model"
)

// Dispatcher selects the worker channel a message is delivered to.
// Wait blocks until every worker has drained its buffer and exited.
type Dispatcher[T any] interface {
	ChannelOf(msg T) chan<- T
	Wait()
}

type singleDispatcher[T any] struct {
	ch      chan T
	stopped *sync.WaitGroup
}

func (d singleDispatcher[T]) Wait() {
	d.stopped.Wait()
}

func (d singleDispatcher[T]) ChannelOf(_ T) chan<- T {
	return d.ch
}

// NewSingleDispatcher starts one worker; messages are handled in send order.
func NewSingleDispatcher[T any](
	ctx context.Context,
	bufferSize int,
	handleFn func(context.Context, T),
) Dispatcher[T] {
	ch := make(chan T, bufferSize)
	stopped := &sync.WaitGroup{}
	stopped.Add(1)
	ready := make(chan struct{})
	go func() {
		defer stopped.Done()
		close(ready)
		work(ctx, ch, handleFn)
	}()
	<-ready
	return singleDispatcher[T]{ch: ch, stopped: stopped}
}

type partitionedDispatcher[T effectmodel.Partitionable] struct {
	chs     []chan T
	stopped *sync.WaitGroup
}

func (d partitionedDispatcher[T]) Wait() {
	d.stopped.Wait()
}

func (d partitionedDispatcher[T]) ChannelOf(msg T) chan<- T {
	return d.chs[partitionIndex(msg.PartitionKey(), len(d.chs))]
}

// NewPartitionedDispatcher starts numWorkers workers. Messages sharing a
// partition key always land on the same worker, so they are handled in send order.
func NewPartitionedDispatcher[T effectmodel.Partitionable](
	ctx context.Context,
	config effectmodel.EffectScopeConfig,
	handleFn func(context.Context, T),
) Dispatcher[T] {
	chs := make([]chan T, config.NumWorkers)
	stopped := &sync.WaitGroup{}
	ready := sync.WaitGroup{}
	for i := range chs {
		ch := make(chan T, config.BufferSize)
		stopped.Add(1)
		ready.Add(1)
		go func() {
			defer stopped.Done()
			ready.Done()
			work(ctx, ch, handleFn)
		}()
		chs[i] = ch
	}
	ready.Wait()
	return partitionedDispatcher[T]{chs: chs, stopped: stopped}
}

// work handles messages until ctx is done, then handles whatever is still
// buffered before returning.
func work[T any](ctx context.Context, ch <-chan T, handleFn func(context.Context, T)) {
	for {
		select {
		case msg := <-ch:
			handleFn(ctx, msg)
		case <-ctx.Done():
			for {
				select {
				case msg := <-ch:
					handleFn(ctx, msg)
				default:
					return
				}
			}
		}
	}
}
