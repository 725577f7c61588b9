package handlers_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/on-the-ground/viewstate/effects/internal/handlers"
	effectmodel "github.com/on-the-ground/viewstate/effects/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ownedJob struct {
	owner string
	seq   int
}

func (j ownedJob) PartitionKey() string {
	return j.owner
}

func TestFireAndForgetHandler_BasicExecution(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan string, 1)
	handler := handlers.NewFireAndForgetHandler(
		ctx,
		10,
		func(ctx context.Context, msg string) {
			received <- msg
		},
		func() {},
	)
	defer handler.Close()

	require.True(t, handler.FireAndForgetEffect(ctx, "hello"))

	select {
	case msg := <-received:
		assert.Equal(t, "hello", msg)
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for handler")
	}
}

func TestFireAndForgetHandler_CancelledCallerDropsPayload(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var called bool
	handler := handlers.NewFireAndForgetHandler(
		context.Background(),
		0,
		func(ctx context.Context, msg string) {
			called = true
		},
		func() {},
	)
	defer handler.Close()

	assert.False(t, handler.FireAndForgetEffect(ctx, "should-not-send"))
	assert.False(t, called, "handler should not have been called")
}

func TestFireAndForgetHandler_CloseRunsTeardownOnce(t *testing.T) {
	teardowns := 0
	handler := handlers.NewFireAndForgetHandler(
		context.Background(),
		1,
		func(ctx context.Context, msg string) {},
		func() { teardowns++ },
	)

	handler.Close()
	handler.Close()

	assert.Equal(t, 1, teardowns)
	assert.False(t, handler.FireAndForgetEffect(context.Background(), "late"))
	select {
	case <-handler.Done():
	default:
		t.Fatal("expected scope to be done after Close")
	}
}

func TestPartitionableFireAndForgetHandler_SameOwnerKeepsOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	got := map[string][]int{}
	var wg sync.WaitGroup
	wg.Add(40)

	handler := handlers.NewPartitionableFireAndForgetHandler(
		ctx,
		effectmodel.NewEffectScopeConfig(8, 3),
		func(ctx context.Context, job ownedJob) {
			defer wg.Done()
			mu.Lock()
			got[job.owner] = append(got[job.owner], job.seq)
			mu.Unlock()
		},
		func() {},
	)
	defer handler.Close()

	for i := 0; i < 20; i++ {
		handler.FireAndForgetEffect(ctx, ownedJob{owner: "a", seq: i})
		handler.FireAndForgetEffect(ctx, ownedJob{owner: "b", seq: i})
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for jobs")
	}

	mu.Lock()
	defer mu.Unlock()
	for _, owner := range []string{"a", "b"} {
		require.Len(t, got[owner], 20)
		for i, seq := range got[owner] {
			assert.Equal(t, i, seq, "jobs of owner %s out of order", owner)
		}
	}
}

func TestFireAndForgetHandler_CloseHandlesBufferedPayloads(t *testing.T) {
	block := make(chan struct{})
	var mu sync.Mutex
	var handled []string

	handler := handlers.NewFireAndForgetHandler(
		context.Background(),
		8,
		func(ctx context.Context, msg string) {
			if msg == "first" {
				<-block
			}
			mu.Lock()
			handled = append(handled, msg)
			mu.Unlock()
		},
		func() {},
	)

	require.True(t, handler.FireAndForgetEffect(context.Background(), "first"))
	for _, msg := range []string{"a", "b", "c"} {
		require.True(t, handler.FireAndForgetEffect(context.Background(), msg))
	}

	closed := make(chan struct{})
	go func() {
		handler.Close()
		close(closed)
	}()
	select {
	case <-closed:
		t.Fatal("Close returned while a payload was still being handled")
	case <-time.After(20 * time.Millisecond):
	}

	close(block)
	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("Close did not return")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"first", "a", "b", "c"}, handled)
}

func TestFireAndForgetHandler_AcceptedPayloadsSurviveConcurrentClose(t *testing.T) {
	var handled atomic.Int64
	handler := handlers.NewPartitionableFireAndForgetHandler(
		context.Background(),
		effectmodel.NewEffectScopeConfig(4, 2),
		func(ctx context.Context, job ownedJob) { handled.Add(1) },
		func() {},
	)

	var accepted atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seq := 0; seq < 200; seq++ {
				job := ownedJob{owner: fmt.Sprintf("owner-%d", i), seq: seq}
				if seq%2 == 0 {
					if handler.TryFireAndForgetEffect(job) == nil {
						accepted.Add(1)
					}
				} else if handler.FireAndForgetEffect(context.Background(), job) {
					accepted.Add(1)
				}
			}
		}()
	}

	time.Sleep(time.Millisecond)
	handler.Close()
	wg.Wait()

	assert.Equal(t, accepted.Load(), handled.Load())
}
