package host_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/on-the-ground/viewstate/effects/host"
	"github.com/on-the-ground/viewstate/effects/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHost_JobsOfOneOwnerRunInPostOrder(t *testing.T) {
	ctx, endOfLogHandler := log.WithTestEffectHandler(context.Background())
	defer endOfLogHandler()
	ctx, endOfHost := host.WithEffectHandler(ctx, host.Config{BufferSize: 64, NumWorkers: 4})
	defer endOfHost()

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		require.True(t, host.Post(ctx, "resource-1", func() {
			defer wg.Done()
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		}))
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	for i, v := range order {
		require.Equal(t, i, v)
	}
}

func TestHost_PanicInJobDoesNotStopWorker(t *testing.T) {
	ctx, endOfLogHandler := log.WithTestEffectHandler(context.Background())
	defer endOfLogHandler()
	ctx, endOfHost := host.WithEffectHandler(ctx, host.Config{})
	defer endOfHost()

	host.Post(ctx, "owner", func() { panic("render failed") })

	done := make(chan struct{})
	host.Post(ctx, "owner", func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker stopped after a panicking job")
	}
}

func TestHost_PostAfterTeardownIsDropped(t *testing.T) {
	ctx, endOfHost := host.WithEffectHandler(context.Background(), host.Config{})
	endOfHost()

	assert.False(t, host.Post(ctx, "owner", func() {}))
}

func TestHost_PostWithoutSchedulerPanics(t *testing.T) {
	assert.Panics(t, func() {
		host.Post(context.Background(), "owner", func() {})
	})
}

func TestHost_PostFromInsideJobDoesNotDeadlock(t *testing.T) {
	ctx, endOfHost := host.WithEffectHandler(context.Background(), host.Config{BufferSize: 1, NumWorkers: 1})
	defer endOfHost()

	var wg sync.WaitGroup
	wg.Add(10)
	host.Post(ctx, "owner", func() {
		// the single worker is busy here, so most of these overflow its buffer
		for i := 0; i < 10; i++ {
			host.Post(ctx, "owner", wg.Done)
		}
	})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("nested posts never ran")
	}
}

func TestHost_TeardownRunsBufferedJobs(t *testing.T) {
	ctx, endOfHost := host.WithEffectHandler(context.Background(), host.Config{BufferSize: 8, NumWorkers: 1})

	release := make(chan struct{})
	var ran atomic.Int32
	require.True(t, host.Post(ctx, "owner", func() { <-release }))
	for i := 0; i < 5; i++ {
		require.True(t, host.Post(ctx, "owner", func() { ran.Add(1) }))
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		close(release)
	}()
	endOfHost()

	assert.Equal(t, int32(5), ran.Load())
	assert.False(t, host.Post(ctx, "owner", func() {}))
}
