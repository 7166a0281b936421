package session

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultSweepInterval is the default period between sweeps.
const DefaultSweepInterval = time.Minute

// SweepObserver receives the outcome of every sweep.
type SweepObserver interface {
	SessionsSwept(n int, err error)
}

// Sweeper periodically removes expired sessions. Expiry is also enforced
// lazily by Take, so a missed sweep only costs storage.
type Sweeper struct {
	store    Store
	interval time.Duration
	log      *zap.Logger
	obs      SweepObserver
}

// NewSweeper constructs a sweeper. obs may be nil.
func NewSweeper(store Store, interval time.Duration, log *zap.Logger, obs SweepObserver) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Sweeper{store: store, interval: interval, log: log, obs: obs}
}

// Run sweeps every interval until ctx is done. It always returns nil so it
// can sit in an errgroup without tearing the server down.
func (sw *Sweeper) Run(ctx context.Context) error {
	t := time.NewTicker(sw.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			sw.SweepOnce(ctx)
		}
	}
}

// SweepOnce runs a single bounded sweep.
func (sw *Sweeper) SweepOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, sw.interval)
	defer cancel()

	start := time.Now()
	n, err := sw.store.Sweep(ctx)
	if sw.obs != nil {
		sw.obs.SessionsSwept(n, err)
	}
	if err != nil {
		sw.log.Warn("session sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		sw.log.Info("session sweep", zap.Int("removed", n), zap.Duration("dur", time.Since(start)))
	}
}
