package httpserver

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/and161185/zk-journal/internal/metrics"
)

type addrLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// IPRateLimiter is a token bucket per client address.
type IPRateLimiter struct {
	rate  rate.Limit
	burst int
	rec   metrics.Recorder

	mu       sync.Mutex
	limiters map[string]*addrLimiter
	now      func() time.Time
}

// NewIPRateLimiter allows perSec requests per second with the given burst
// for each client address.
func NewIPRateLimiter(perSec float64, burst int, rec metrics.Recorder) *IPRateLimiter {
	if rec == nil {
		rec = metrics.Noop{}
	}
	if burst < 1 {
		burst = 1
	}
	return &IPRateLimiter{
		rate:     rate.Limit(perSec),
		burst:    burst,
		rec:      rec,
		limiters: make(map[string]*addrLimiter),
		now:      time.Now,
	}
}

func (l *IPRateLimiter) get(addr string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	al, ok := l.limiters[addr]
	if !ok {
		al = &addrLimiter{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[addr] = al
	}
	al.lastAccess = l.now()
	return al.limiter
}

// Middleware rejects requests over the limit with 429. It keys on
// r.RemoteAddr, so it belongs after RealIP.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.get(clientIP(r)).Allow() {
			l.rec.HTTPRateLimited()
			retry := int(math.Ceil(1.0 / float64(l.rate)))
			if retry < 1 || l.rate <= 0 {
				retry = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			writeJSON(w, http.StatusTooManyRequests, errorBody("rate limited"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Prune drops limiters idle for longer than idle.
func (l *IPRateLimiter) Prune(idle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	n := 0
	for addr, al := range l.limiters {
		if now.Sub(al.lastAccess) > idle {
			delete(l.limiters, addr)
			n++
		}
	}
	return n
}

// Run prunes idle entries every interval until ctx is done.
func (l *IPRateLimiter) Run(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			l.Prune(2 * interval)
		}
	}
}

// Len reports the number of tracked addresses.
func (l *IPRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}
