// Package authctx carries the authenticated user through a request context.
// Both transports resolve the bearer token and then call WithUser.
package authctx

import (
	"context"
	"strings"

	"github.com/gofrs/uuid/v5"
)

type ctxKey struct{}

// WithUser stores the authenticated user ID in ctx.
func WithUser(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// User returns the user stored by WithUser. uuid.Nil never counts as
// authenticated: dummy login sessions carry it.
func User(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxKey{}).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// value. The scheme is case-insensitive.
func BearerToken(header string) (string, bool) {
	v := strings.TrimSpace(header)
	if len(v) < 7 || !strings.EqualFold(v[:7], "bearer ") {
		return "", false
	}
	t := strings.TrimSpace(v[7:])
	return t, t != ""
}
