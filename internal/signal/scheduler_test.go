package signal

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntervalScheduler_TicksUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	scheduler := NewIntervalScheduler(ctx, 10*time.Millisecond)
	scheduler.Name = "test"

	var ticks atomic.Int64
	done := make(chan struct{})
	go func() {
		defer close(done)
		scheduler.Start(func() { ticks.Add(1) })
	}()

	assert.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}

	// no further ticks once stopped
	final := ticks.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, final, ticks.Load())
}

func TestIntervalScheduler_RejectsInvalidSetup(t *testing.T) {
	t.Run("nil task returns immediately", func(t *testing.T) {
		scheduler := NewIntervalScheduler(context.Background(), 10*time.Millisecond)
		finished := make(chan struct{})
		go func() {
			scheduler.Start(nil)
			close(finished)
		}()
		select {
		case <-finished:
		case <-time.After(time.Second):
			t.Fatal("Start with nil task should return")
		}
	})

	t.Run("non-positive interval returns immediately", func(t *testing.T) {
		scheduler := NewIntervalScheduler(context.Background(), 0)
		finished := make(chan struct{})
		go func() {
			scheduler.Start(func() {})
			close(finished)
		}()
		select {
		case <-finished:
		case <-time.After(time.Second):
			t.Fatal("Start with zero interval should return")
		}
	})
}

func TestIntervalScheduler_CancelledBeforeFirstTick(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	scheduler := NewIntervalScheduler(ctx, time.Hour)

	var ticks atomic.Int64
	finished := make(chan struct{})
	go func() {
		scheduler.Start(func() { ticks.Add(1) })
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("scheduler should exit on already-cancelled context")
	}
	assert.Equal(t, int64(0), ticks.Load())
}

func TestIntervalScheduler_RealignsAfterSlowTask(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	scheduler := NewIntervalScheduler(ctx, 5*time.Millisecond)

	var ticks atomic.Int64
	go scheduler.Start(func() {
		if ticks.Add(1) == 1 {
			// task slower than several intervals must not cause a burst
			time.Sleep(30 * time.Millisecond)
		}
	})

	time.Sleep(60 * time.Millisecond)
	cancel()
	// 60ms window at 5ms interval: first tick eats 30ms, realigned ticks
	// follow one per interval, never a catch-up burst
	assert.LessOrEqual(t, ticks.Load(), int64(8))
	assert.GreaterOrEqual(t, ticks.Load(), int64(2))
}
