// Package memory is an in-process credential store for single-instance
// development deployments and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/zk-journal/internal/errs"
	"github.com/and161185/zk-journal/internal/model"
	"github.com/and161185/zk-journal/internal/repository"
)

// UserRepo keeps users in two indexes under one lock, which makes the
// identifier check and the insert a single step.
type UserRepo struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*model.User
	byName map[string]uuid.UUID
	now    func() time.Time
}

var _ repository.UserRepository = (*UserRepo)(nil)

// NewUserRepo returns an empty store.
func NewUserRepo() *UserRepo {
	return &UserRepo{
		byID:   make(map[uuid.UUID]*model.User),
		byName: make(map[string]uuid.UUID),
		now:    time.Now,
	}
}

func clone(u *model.User) *model.User {
	c := *u
	if rec, ok := u.Envelope(); ok {
		c.Auth = model.OpaqueEnvelope{Record: append([]byte(nil), rec...)}
	}
	return &c
}

// Create implements repository.UserRepository.
func (r *UserRepo) Create(_ context.Context, u *model.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byName[u.Identifier]; taken {
		return errs.ErrAlreadyExists
	}
	if _, taken := r.byID[u.ID]; taken {
		return errs.ErrAlreadyExists
	}
	c := clone(u)
	if c.CreatedAt.IsZero() {
		c.CreatedAt = r.now().UTC()
	}
	r.byID[c.ID] = c
	r.byName[c.Identifier] = c.ID
	return nil
}

// GetByID implements repository.UserRepository.
func (r *UserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return clone(u), nil
}

// GetByIdentifier implements repository.UserRepository.
func (r *UserRepo) GetByIdentifier(_ context.Context, identifier string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[identifier]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return clone(r.byID[id]), nil
}

// ReplaceEnvelope implements repository.UserRepository.
func (r *UserRepo) ReplaceEnvelope(_ context.Context, id uuid.UUID, record []byte) error {
	if len(record) == 0 {
		return errs.ErrInvalidAuthMethod
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return errs.ErrNotFound
	}
	if _, has := u.Envelope(); !has {
		return errs.ErrConflict
	}
	u.Auth = model.OpaqueEnvelope{Record: append([]byte(nil), record...)}
	return nil
}

// Delete implements repository.UserRepository.
func (r *UserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return errs.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byName, u.Identifier)
	return nil
}
