package task_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/on-the-ground/viewstate/effects/concurrency"
	"github.com/on-the-ground/viewstate/effects/log"
	"github.com/on-the-ground/viewstate/effects/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTaskScope(t *testing.T) context.Context {
	t.Helper()
	ctx, endOfLogHandler := log.WithTestEffectHandler(context.Background())
	ctx, endOfConcurrencyHandler := concurrency.WithEffectHandler(ctx)
	t.Cleanup(func() {
		endOfConcurrencyHandler()
		endOfLogHandler()
	})
	return ctx
}

func TestTaskEffect_Success(t *testing.T) {
	ctx := withTaskScope(t)

	ch := task.Effect(ctx, func(ctx context.Context) (string, error) {
		time.Sleep(50 * time.Millisecond)
		return "ok", nil
	})

	select {
	case res := <-ch:
		require.NoError(t, res.Err)
		assert.Equal(t, "ok", res.Value)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for task result")
	}

	_, open := <-ch
	assert.False(t, open, "result channel should be closed after delivery")
}

func TestTaskEffect_Failure(t *testing.T) {
	ctx := withTaskScope(t)
	boom := errors.New("network down")

	res := <-task.Effect(ctx, func(ctx context.Context) (int, error) {
		return 0, boom
	})

	assert.ErrorIs(t, res.Err, boom)
}

func TestTaskEffect_PanicBecomesError(t *testing.T) {
	ctx := withTaskScope(t)

	res := <-task.Effect(ctx, func(ctx context.Context) (int, error) {
		panic("kaboom")
	})

	assert.ErrorIs(t, res.Err, task.ErrPanicked)
	assert.Contains(t, res.Err.Error(), "kaboom")
}

func TestTaskEffect_Parallel(t *testing.T) {
	ctx := withTaskScope(t)

	release := make(chan struct{})
	first := task.Effect(ctx, func(ctx context.Context) (string, error) {
		<-release
		return "slow", nil
	})
	second := task.Effect(ctx, func(ctx context.Context) (string, error) {
		return "fast", nil
	})

	select {
	case res := <-second:
		assert.Equal(t, "fast", res.Value)
	case <-time.After(time.Second):
		t.Fatal("a blocked task must not hold back the others")
	}

	close(release)
	assert.Equal(t, "slow", (<-first).Value)
}

func TestTaskEffect_RefusedAfterTeardown(t *testing.T) {
	ctx, endOfConcurrencyHandler := concurrency.WithEffectHandler(context.Background())
	endOfConcurrencyHandler()

	res := <-task.Effect(ctx, func(ctx context.Context) (int, error) {
		return 1, nil
	})
	assert.ErrorIs(t, res.Err, concurrency.ErrSupervisorClosed)
}
