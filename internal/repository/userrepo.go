// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/and161185/zk-journal/internal/model"
	"github.com/gofrs/uuid/v5"
)

// UserRepository is the credential store: one authentication method per user.
type UserRepository interface {
	// Create inserts a new user unless the identifier is taken
	// (errs.ErrAlreadyExists).
	Create(ctx context.Context, u *model.User) error
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetByIdentifier loads a user by login identifier.
	GetByIdentifier(ctx context.Context, identifier string) (*model.User, error)
	// ReplaceEnvelope swaps the OPAQUE record of a user that already has one
	// (errs.ErrConflict otherwise).
	ReplaceEnvelope(ctx context.Context, id uuid.UUID, record []byte) error
	// Delete removes the user row.
	Delete(ctx context.Context, id uuid.UUID) error
}
