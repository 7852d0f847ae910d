package capture

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduler_FirstTickImmediate(t *testing.T) {
	ticked := make(chan struct{}, 1)
	s := NewScheduler(time.Hour, func() {
		select {
		case ticked <- struct{}{}:
		default:
		}
	})
	s.Start()
	defer s.Stop()

	select {
	case <-ticked:
		// Fired well before the hour interval.
	case <-time.After(time.Second):
		t.Fatal("first tick did not fire immediately")
	}
}

func TestScheduler_TicksRepeat(t *testing.T) {
	var count atomic.Int64
	done := make(chan struct{})
	s := NewScheduler(5*time.Millisecond, func() {
		if count.Add(1) == 3 {
			close(done)
		}
	})
	s.Start()
	defer s.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("only %d ticks fired", count.Load())
	}
}

func TestScheduler_IntervalMeasuredFromTickEnd(t *testing.T) {
	// A tick slower than the interval must not cause overlapping or
	// immediately queued ticks.
	var running atomic.Bool
	var overlapped atomic.Bool
	var count atomic.Int64

	s := NewScheduler(time.Millisecond, func() {
		if !running.CompareAndSwap(false, true) {
			overlapped.Store(true)
		}
		time.Sleep(20 * time.Millisecond)
		count.Add(1)
		running.Store(false)
	})
	s.Start()
	time.Sleep(70 * time.Millisecond)
	s.Stop()

	if overlapped.Load() {
		t.Error("ticks overlapped")
	}
	// With 20ms ticks and a 1ms gap, 70ms allows at most ~4 ticks.
	// Overlapping or wall-clock-aligned scheduling would produce more.
	if n := count.Load(); n < 2 || n > 5 {
		t.Errorf("tick count = %d, want between 2 and 5", n)
	}
}

func TestScheduler_StopWaitsForCurrentTick(t *testing.T) {
	entered := make(chan struct{})
	finished := make(chan struct{})
	s := NewScheduler(time.Hour, func() {
		close(entered)
		time.Sleep(30 * time.Millisecond)
		close(finished)
	})
	s.Start()

	<-entered
	s.Stop() // Must block until the in-flight tick completes

	select {
	case <-finished:
	default:
		t.Error("Stop returned while a tick was in flight")
	}
}

func TestScheduler_StopIdempotent(t *testing.T) {
	s := NewScheduler(time.Hour, func() {})
	s.Start()
	s.Stop()
	s.Stop() // No panic, no deadlock
}

func TestScheduler_NoTickAfterStop(t *testing.T) {
	var count atomic.Int64
	s := NewScheduler(2*time.Millisecond, func() { count.Add(1) })
	s.Start()
	time.Sleep(20 * time.Millisecond)
	s.Stop()

	after := count.Load()
	time.Sleep(20 * time.Millisecond)
	if count.Load() != after {
		t.Error("ticks fired after Stop returned")
	}
}
