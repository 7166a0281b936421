package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/and161185/zk-journal/internal/errs"
	"github.com/and161185/zk-journal/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// UserRepo implements UserRepository using PostgreSQL.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new user row. The insert is conditional on the
// identifier so two racing registrations leave exactly one row.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	envelope, external, err := model.AuthColumns(u.Auth)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO users (id, identifier, auth_envelope, external_identity)
VALUES ($1, $2, $3, $4)
ON CONFLICT (identifier) DO NOTHING`
	tag, err := r.db.Pool.Exec(ctx, q, u.ID, u.Identifier, envelope, external)
	switch {
	case isUniqueViolation(err):
		return errs.ErrAlreadyExists
	case isCheckViolation(err):
		return errs.ErrInvalidAuthMethod
	case err != nil:
		return fmt.Errorf("create user: %w", err)
	case tag.RowsAffected() == 0:
		return errs.ErrAlreadyExists
	}
	return nil
}

const selectUser = `
SELECT id, identifier, auth_envelope, external_identity, created_at
FROM users`

func scanUser(row pgx.Row) (*model.User, error) {
	var (
		u        model.User
		envelope []byte
		external *string
	)
	if err := row.Scan(&u.ID, &u.Identifier, &envelope, &external, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	auth, err := model.AuthMethodFromColumns(envelope, external)
	if err != nil {
		return nil, err
	}
	u.Auth = auth
	return &u, nil
}

// GetByID selects a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return scanUser(r.db.Pool.QueryRow(ctx, selectUser+` WHERE id=$1`, id))
}

// GetByIdentifier selects a user by identifier.
func (r *UserRepo) GetByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	return scanUser(r.db.Pool.QueryRow(ctx, selectUser+` WHERE identifier=$1`, identifier))
}

// ReplaceEnvelope overwrites the whole envelope in one statement, only for
// users authenticated by OPAQUE.
func (r *UserRepo) ReplaceEnvelope(ctx context.Context, id uuid.UUID, record []byte) error {
	if err := model.ValidateAuthMethod(model.OpaqueEnvelope{Record: record}); err != nil {
		return err
	}
	const q = `
UPDATE users
SET auth_envelope = $2
WHERE id = $1 AND auth_envelope IS NOT NULL`
	tag, err := r.db.Pool.Exec(ctx, q, id, record)
	if err != nil {
		return fmt.Errorf("replace envelope: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrConflict
	}
	return nil
}

// Delete removes the user.
func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM users WHERE id = $1`
	tag, err := r.db.Pool.Exec(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
