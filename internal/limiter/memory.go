package limiter

import (
	"context"
	"encoding/hex"
	"sync"
	"time"
)

type counter struct {
	fails        int
	lastFail     time.Time
	blockedUntil time.Time
}

// Memory is an in-process Limiter for single-instance deployments and tests.
type Memory struct {
	mu       sync.Mutex
	m        map[string]*counter
	window   time.Duration
	maxFails int
	blockFor time.Duration
	now      func() time.Time
}

// NewMemory constructs an in-memory limiter.
func NewMemory(window time.Duration, maxFails int, blockFor time.Duration) *Memory {
	if window <= 0 {
		window = DefaultWindow
	}
	if maxFails <= 0 {
		maxFails = DefaultMaxFails
	}
	if blockFor <= 0 {
		blockFor = DefaultBlockFor
	}
	return &Memory{m: make(map[string]*counter), window: window, maxFails: maxFails, blockFor: blockFor, now: time.Now}
}

func key(identifier string, ipHash []byte) string {
	return identifier + "\x00" + hex.EncodeToString(ipHash)
}

// Allow implements Limiter.
func (l *Memory) Allow(_ context.Context, identifier string, ipHash []byte) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.m[key(identifier, ipHash)]
	if !ok {
		return true, 0, nil
	}
	if now := l.now(); c.blockedUntil.After(now) {
		return false, c.blockedUntil.Sub(now), nil
	}
	return true, 0, nil
}

// Success implements Limiter.
func (l *Memory) Success(_ context.Context, identifier string, ipHash []byte) error {
	l.mu.Lock()
	delete(l.m, key(identifier, ipHash))
	l.mu.Unlock()
	return nil
}

// Failure implements Limiter.
func (l *Memory) Failure(_ context.Context, identifier string, ipHash []byte) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	k := key(identifier, ipHash)
	c, ok := l.m[k]
	if !ok || now.Sub(c.lastFail) > l.window {
		c = &counter{}
		l.m[k] = c
	}
	c.fails++
	c.lastFail = now
	if c.fails >= l.maxFails {
		c.blockedUntil = now.Add(l.blockFor)
		return true, l.blockFor, nil
	}
	return false, 0, nil
}

// Prune drops counters idle for longer than the window and not blocked.
func (l *Memory) Prune() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	n := 0
	for k, c := range l.m {
		if now.Sub(c.lastFail) > l.window && !c.blockedUntil.After(now) {
			delete(l.m, k)
			n++
		}
	}
	return n
}
