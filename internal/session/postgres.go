package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/and161185/zk-journal/internal/crypto"
	"github.com/and161185/zk-journal/internal/errs"
	"github.com/and161185/zk-journal/internal/model"
)

// Querier is the subset of a pgx pool the store needs. It is implemented by
// *pgxpool.Pool and pgxmock.PgxPoolIface.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps sessions in the opaque_sessions table so several
// server instances can share them.
type PostgresStore struct {
	q Querier
}

// NewPostgresStore constructs a PostgreSQL-backed Store.
func NewPostgresStore(q Querier) *PostgresStore { return &PostgresStore{q: q} }

// Put implements Store. Timestamps come from the database clock, the same
// clock Take compares against.
func (s *PostgresStore) Put(ctx context.Context, sess model.OpaqueSession, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if sess.ID == "" {
		id, err := crypto.NewSessionID()
		if err != nil {
			return "", fmt.Errorf("session id: %w", err)
		}
		sess.ID = id
	}
	state := sess.State
	if state == nil {
		state = []byte{}
	}

	const q = `
INSERT INTO opaque_sessions (session_id, phase, identifier, user_id, phase_state, created_at, expires_at, consumed)
VALUES ($1, $2, $3, $4, $5, now(), now() + $6::interval, false)`
	_, err := s.q.Exec(ctx, q, sess.ID, string(sess.Phase), sess.Identifier, nullUUID(sess.UserID), state, ttl)
	if err != nil {
		var pg *pgconn.PgError
		if errors.As(err, &pg) && pg.Code == "23505" {
			return "", errs.ErrAlreadyExists
		}
		return "", fmt.Errorf("session put: %w", err)
	}
	return sess.ID, nil
}

// Take implements Store with a single conditional UPDATE. The row lock taken
// by the subquery makes concurrent takers wait and then match nothing.
func (s *PostgresStore) Take(ctx context.Context, id string) (model.OpaqueSession, error) {
	const q = `
UPDATE opaque_sessions AS s
SET consumed = true, phase_state = ''::bytea
FROM (SELECT session_id, phase_state FROM opaque_sessions WHERE session_id = $1 FOR UPDATE) AS old
WHERE s.session_id = old.session_id AND NOT s.consumed AND s.expires_at > now()
RETURNING s.phase, s.identifier, COALESCE(s.user_id::text, ''), old.phase_state, s.created_at, s.expires_at`

	out := model.OpaqueSession{ID: id}
	var phase string
	var userID string
	err := s.q.QueryRow(ctx, q, id).Scan(&phase, &out.Identifier, &userID, &out.State, &out.CreatedAt, &out.ExpiresAt)
	switch {
	case err == nil:
		out.Phase = model.SessionPhase(phase)
		if !out.Phase.Valid() {
			return model.OpaqueSession{}, fmt.Errorf("%w: unknown phase %q", errs.ErrSessionInvalid, phase)
		}
		if userID != "" {
			if out.UserID, err = uuid.FromString(userID); err != nil {
				return model.OpaqueSession{}, fmt.Errorf("session take: user id: %w", err)
			}
		}
		return out, nil
	case errors.Is(err, pgx.ErrNoRows):
		return model.OpaqueSession{}, s.classify(ctx, id)
	default:
		return model.OpaqueSession{}, fmt.Errorf("session take: %w", err)
	}
}

// classify explains why Take matched no row.
func (s *PostgresStore) classify(ctx context.Context, id string) error {
	const q = `SELECT consumed, expires_at <= now() FROM opaque_sessions WHERE session_id = $1`
	var consumed, expired bool
	err := s.q.QueryRow(ctx, q, id).Scan(&consumed, &expired)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return errs.ErrSessionNotFound
	case err != nil:
		return fmt.Errorf("session classify: %w", err)
	case consumed:
		return errs.ErrSessionAlreadyConsumed
	case expired:
		return errs.ErrSessionExpired
	}
	// Raced with a concurrent take that has not committed yet.
	return errs.ErrSessionAlreadyConsumed
}

// Sweep implements Store.
func (s *PostgresStore) Sweep(ctx context.Context) (int, error) {
	const q = `DELETE FROM opaque_sessions WHERE expires_at <= now()`
	tag, err := s.q.Exec(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("session sweep: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// nullUUID maps uuid.Nil to SQL NULL.
func nullUUID(id uuid.UUID) any {
	if id == uuid.Nil {
		return nil
	}
	return id
}
