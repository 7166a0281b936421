package session

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/and161185/zk-journal/internal/crypto"
	"github.com/and161185/zk-journal/internal/errs"
	"github.com/and161185/zk-journal/internal/model"
)

const shardCount = 32

type shard struct {
	mu sync.Mutex
	m  map[string]*model.OpaqueSession
}

// MemoryStore is an in-process Store. Sessions are spread over independently
// locked shards; there is no store-wide lock.
//
// Consumed sessions stay behind as tombstones with their state wiped until
// they expire, so a repeated finish is reported as consumed, not unknown.
type MemoryStore struct {
	shards [shardCount]shard
	now    func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{now: time.Now}
	for i := range s.shards {
		s.shards[i].m = make(map[string]*model.OpaqueSession)
	}
	return s
}

func (s *MemoryStore) shardFor(id string) *shard {
	h := fnv.New32a()
	h.Write([]byte(id))
	return &s.shards[h.Sum32()%shardCount]
}

// Put implements Store.
func (s *MemoryStore) Put(ctx context.Context, sess model.OpaqueSession, ttl time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	generated := sess.ID == ""
	for attempt := 0; attempt < 3; attempt++ {
		if generated {
			id, err := crypto.NewSessionID()
			if err != nil {
				return "", fmt.Errorf("session id: %w", err)
			}
			sess.ID = id
		}
		now := s.now()
		sess.CreatedAt = now
		sess.ExpiresAt = now.Add(ttl)
		sess.Consumed = false
		sess.State = append([]byte(nil), sess.State...)

		sh := s.shardFor(sess.ID)
		sh.mu.Lock()
		if _, exists := sh.m[sess.ID]; !exists {
			cp := sess
			sh.m[sess.ID] = &cp
			sh.mu.Unlock()
			return sess.ID, nil
		}
		sh.mu.Unlock()
		if !generated {
			return "", errs.ErrAlreadyExists
		}
	}
	return "", errs.ErrAlreadyExists
}

// Take implements Store.
func (s *MemoryStore) Take(ctx context.Context, id string) (model.OpaqueSession, error) {
	if err := ctx.Err(); err != nil {
		return model.OpaqueSession{}, err
	}
	sh := s.shardFor(id)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, ok := sh.m[id]
	switch {
	case !ok:
		return model.OpaqueSession{}, errs.ErrSessionNotFound
	case e.Consumed:
		return model.OpaqueSession{}, errs.ErrSessionAlreadyConsumed
	case e.Expired(s.now()):
		delete(sh.m, id)
		return model.OpaqueSession{}, errs.ErrSessionExpired
	}

	out := *e
	e.Consumed = true
	e.State = nil
	return out, nil
}

// Sweep implements Store. Expired live sessions and expired tombstones both go.
func (s *MemoryStore) Sweep(ctx context.Context) (int, error) {
	now := s.now()
	removed := 0
	for i := range s.shards {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		sh := &s.shards[i]
		sh.mu.Lock()
		for id, e := range sh.m {
			if e.Expired(now) {
				delete(sh.m, id)
				removed++
			}
		}
		sh.mu.Unlock()
	}
	return removed, nil
}

// Len returns the number of stored sessions, tombstones included.
func (s *MemoryStore) Len() int {
	n := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		n += len(sh.m)
		sh.mu.Unlock()
	}
	return n
}
