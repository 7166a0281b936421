package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestKeyedMutex_SerializesPerKey(t *testing.T) {
	t.Parallel()
	k := newKeyedMutex()
	ctx := context.Background()

	var inside, maxInside atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := k.Lock(ctx, "alice")
			if err != nil {
				t.Errorf("Lock: %v", err)
				return
			}
			n := inside.Add(1)
			if n > maxInside.Load() {
				maxInside.Store(n)
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
			unlock()
		}()
	}
	wg.Wait()

	if maxInside.Load() != 1 {
		t.Fatalf("max holders=%d, want 1", maxInside.Load())
	}
	if k.len() != 0 {
		t.Fatalf("entries left behind: %d", k.len())
	}
}

func TestKeyedMutex_IndependentKeys(t *testing.T) {
	t.Parallel()
	k := newKeyedMutex()
	ctx := context.Background()

	unlockA, _ := k.Lock(ctx, "a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB, err := k.Lock(ctx, "b")
		if err == nil {
			unlockB()
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("lock on b blocked by a")
	}
}

func TestKeyedMutex_ContextCancel(t *testing.T) {
	t.Parallel()
	k := newKeyedMutex()
	unlock, _ := k.Lock(context.Background(), "a")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := k.Lock(ctx, "a"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err=%v, want DeadlineExceeded", err)
	}
	unlock()
	if k.len() != 0 {
		t.Fatalf("entries left behind: %d", k.len())
	}
}
