package core

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLimiter_AcquireRelease(t *testing.T) {
	l := NewLimiter(2, time.Second)
	ctx := context.Background()

	if err := l.Acquire(ctx); err != nil {
		t.Fatalf("first Acquire: %v", err)
	}
	if err := l.Acquire(ctx); err != nil {
		t.Fatalf("second Acquire: %v", err)
	}

	want := LimiterStatus{Active: 2, Available: 0, Capacity: 2}
	if diff := cmp.Diff(want, l.Status()); diff != "" {
		t.Errorf("Status() mismatch (-want +got):\n%s", diff)
	}

	l.Release()
	l.Release()

	want = LimiterStatus{Active: 0, Available: 2, Capacity: 2}
	if diff := cmp.Diff(want, l.Status()); diff != "" {
		t.Errorf("Status() after release mismatch (-want +got):\n%s", diff)
	}
}

func TestLimiter_BusyWhenFull(t *testing.T) {
	l := NewLimiter(1, 20*time.Millisecond)
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer l.Release()

	err := l.Acquire(context.Background())
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("Acquire() error = %v, want ErrBusy", err)
	}
	if got := MapError(err).Code; got != "BUSY001" {
		t.Errorf("MapError code = %q, want BUSY001", got)
	}
}

func TestLimiter_ContextCancelled(t *testing.T) {
	l := NewLimiter(1, time.Minute)
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer l.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := l.Acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Acquire() error = %v, want context.Canceled", err)
	}
}

func TestLimiter_UnblocksWaiter(t *testing.T) {
	l := NewLimiter(1, time.Second)
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- l.Acquire(context.Background()) }()

	time.Sleep(20 * time.Millisecond)
	l.Release()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("waiter Acquire: %v", err)
		}
		l.Release()
	case <-time.After(time.Second):
		t.Fatal("waiter was not unblocked")
	}
}

func TestLimiter_NeverExceedsCapacity(t *testing.T) {
	const capacity = 3
	l := NewLimiter(capacity, 5*time.Second)

	var running, peak atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.Acquire(context.Background()); err != nil {
				t.Errorf("Acquire: %v", err)
				return
			}
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			running.Add(-1)
			l.Release()
		}()
	}
	wg.Wait()

	if got := peak.Load(); got > capacity {
		t.Errorf("peak concurrency = %d, want <= %d", got, capacity)
	}
	if got := l.Active(); got != 0 {
		t.Errorf("Active() = %d after all released", got)
	}
}

func TestLimiter_Drain(t *testing.T) {
	l := NewLimiter(2, time.Second)
	if err := l.Drain(context.Background()); err != nil {
		t.Fatalf("Drain() on idle limiter: %v", err)
	}

	if err := l.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}
	go func() {
		time.Sleep(30 * time.Millisecond)
		l.Release()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := l.Drain(ctx); err != nil {
		t.Errorf("Drain() error = %v", err)
	}
}

func TestLimiter_DrainTimeout(t *testing.T) {
	l := NewLimiter(1, time.Second)
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer l.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if err := l.Drain(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Drain() error = %v, want DeadlineExceeded", err)
	}
}

func TestNewLimiter_Defaults(t *testing.T) {
	l := NewLimiter(0, 0)
	if got := l.Capacity(); got != DefaultMaxConcurrent {
		t.Errorf("Capacity() = %d, want %d", got, DefaultMaxConcurrent)
	}
	if l.wait != DefaultQueueWait {
		t.Errorf("wait = %v, want %v", l.wait, DefaultQueueWait)
	}
}
