package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorker_RunsJobsAndTracksStats(t *testing.T) {
	w := NewWorker(2, 10)

	done := make(chan struct{}, 3)
	require.NoError(t, w.Enqueue("ok-1", func(ctx context.Context) error { done <- struct{}{}; return nil }))
	require.NoError(t, w.Enqueue("fails", func(ctx context.Context) error { done <- struct{}{}; return errors.New("boom") }))
	require.NoError(t, w.Enqueue("panics", func(ctx context.Context) error { done <- struct{}{}; panic("bad") }))

	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("job did not run")
		}
	}

	assert.Eventually(t, func() bool {
		s := w.GetStats()
		return s.FinishedJobs == 3 && s.ActiveJobs == 0
	}, 2*time.Second, 10*time.Millisecond)

	s := w.GetStats()
	assert.EqualValues(t, 2, s.FailedJobs)
	assert.Equal(t, 2, s.Workers)
	assert.Equal(t, 10, s.QueueCapacity)

	w.Shutdown()
}

func TestWorker_EnqueueAfterShutdown(t *testing.T) {
	w := NewWorker(1, 1)
	w.Shutdown()
	w.Shutdown()

	err := w.Enqueue("late", func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrShutdown)
}

func TestWorker_QueueFull(t *testing.T) {
	w := NewWorker(1, 1)
	defer w.Shutdown()

	block := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, w.Enqueue("blocker", func(ctx context.Context) error {
		close(started)
		select {
		case <-block:
		case <-ctx.Done():
		}
		return nil
	}))
	<-started

	require.NoError(t, w.Enqueue("pending", func(ctx context.Context) error { return nil }))
	err := w.Enqueue("overflow", func(ctx context.Context) error { return nil })
	assert.Error(t, err)
	close(block)
}

func TestWorker_ScheduleEvery(t *testing.T) {
	w := NewWorker(1, 1)

	var runs atomic.Int32
	w.ScheduleEvery("tick", 20*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	w.Shutdown()

	after := runs.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, runs.Load(), "no runs after shutdown")
}

func TestWorker_ScheduleIgnoresZeroInterval(t *testing.T) {
	w := NewWorker(1, 1)
	defer w.Shutdown()

	var runs atomic.Int32
	w.ScheduleEvery("never", 0, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, runs.Load())
}
