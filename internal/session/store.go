// Package session stores the ephemeral OPAQUE state that bridges a protocol
// start and its finish.
package session

import (
	"context"
	"time"

	"github.com/and161185/zk-journal/internal/model"
)

// DefaultTTL is how long a started flow may wait for its finish.
const DefaultTTL = 3 * time.Minute

// Store keeps single-use sessions.
//
// Take is an atomic compare-and-remove: of any number of concurrent callers
// with the same id exactly one receives the session. The others get
// errs.ErrSessionAlreadyConsumed. Expired sessions yield errs.ErrSessionExpired
// and unknown ids errs.ErrSessionNotFound.
type Store interface {
	// Put saves s and returns its id. An id is generated when s.ID is empty.
	Put(ctx context.Context, s model.OpaqueSession, ttl time.Duration) (string, error)
	// Take consumes the session.
	Take(ctx context.Context, id string) (model.OpaqueSession, error)
	// Sweep removes expired sessions and returns how many were removed.
	Sweep(ctx context.Context) (int, error)
}
