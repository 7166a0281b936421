package limiter

import (
	"context"
	"testing"
	"time"
)

func TestMemory_BlocksAndResets(t *testing.T) {
	t.Parallel()
	now := fixedNow
	l := NewMemory(time.Minute, 3, 5*time.Minute)
	l.now = func() time.Time { return now }
	ctx := context.Background()
	ip := HashIP("10.0.0.1")

	for i := 0; i < 2; i++ {
		if blocked, _, _ := l.Failure(ctx, "alice", ip); blocked {
			t.Fatalf("blocked too early at %d", i)
		}
	}
	blocked, dur, _ := l.Failure(ctx, "alice", ip)
	if !blocked || dur != 5*time.Minute {
		t.Fatalf("third failure: blocked=%v dur=%v", blocked, dur)
	}
	if ok, retry, _ := l.Allow(ctx, "alice", ip); ok || retry != 5*time.Minute {
		t.Fatalf("Allow while blocked: ok=%v retry=%v", ok, retry)
	}
	if ok, _, _ := l.Allow(ctx, "alice", HashIP("10.0.0.2")); !ok {
		t.Fatalf("other address must not be blocked")
	}

	now = now.Add(6 * time.Minute)
	if ok, _, _ := l.Allow(ctx, "alice", ip); !ok {
		t.Fatalf("block must lapse")
	}
	if err := l.Success(ctx, "alice", ip); err != nil {
		t.Fatalf("Success: %v", err)
	}
	if blocked, _, _ := l.Failure(ctx, "alice", ip); blocked {
		t.Fatalf("counter must restart after success")
	}
}

func TestMemory_WindowRestartsCount(t *testing.T) {
	t.Parallel()
	now := fixedNow
	l := NewMemory(time.Minute, 2, time.Minute)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	_, _, _ = l.Failure(ctx, "bob", nil)
	now = now.Add(2 * time.Minute)
	if blocked, _, _ := l.Failure(ctx, "bob", nil); blocked {
		t.Fatalf("failure outside the window must not accumulate")
	}
	now = now.Add(2 * time.Minute)
	if n := l.Prune(); n != 1 {
		t.Fatalf("Prune removed %d, want 1", n)
	}
}
