// Package token issues and verifies HS256 session tokens.
//
// Tokens are derived from nothing but the server signing key and the user
// id. They never carry or depend on client key material.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/and161185/zk-journal/internal/errs"
	"github.com/and161185/zk-journal/internal/model"
)

// Kind separates access tokens from refresh tokens.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Defaults
const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 14 * 24 * time.Hour
	DefaultIssuer     = "zk-journal"

	leeway = 30 * time.Second
)

// Claims is the JWT payload.
type Claims struct {
	jwt.RegisteredClaims
	Kind Kind `json:"kind"`
}

// Issuer signs and verifies tokens with a single HS256 key.
type Issuer struct {
	key        []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewIssuer constructs an Issuer. Zero TTLs fall back to the defaults.
func NewIssuer(key []byte, accessTTL, refreshTTL time.Duration) (*Issuer, error) {
	if len(key) == 0 {
		return nil, errors.New("empty signing key")
	}
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &Issuer{key: key, issuer: DefaultIssuer, accessTTL: accessTTL, refreshTTL: refreshTTL, now: time.Now}, nil
}

// IssuePair returns a fresh access/refresh pair for userID.
func (i *Issuer) IssuePair(userID uuid.UUID) (model.Tokens, error) {
	access, exp, err := i.sign(userID, KindAccess, i.accessTTL)
	if err != nil {
		return model.Tokens{}, err
	}
	refresh, _, err := i.sign(userID, KindRefresh, i.refreshTTL)
	if err != nil {
		return model.Tokens{}, err
	}
	return model.Tokens{AccessToken: access, RefreshToken: refresh, ExpiresAt: exp}, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (i *Issuer) Refresh(refreshToken string) (string, time.Time, error) {
	userID, err := i.parse(refreshToken, KindRefresh)
	if err != nil {
		return "", time.Time{}, err
	}
	return i.sign(userID, KindAccess, i.accessTTL)
}

// ParseAccess verifies an access token and returns its subject.
func (i *Issuer) ParseAccess(tok string) (uuid.UUID, error) {
	return i.parse(tok, KindAccess)
}

func (i *Issuer) sign(userID uuid.UUID, kind Kind, ttl time.Duration) (string, time.Time, error) {
	jti, err := uuid.NewV4()
	if err != nil {
		return "", time.Time{}, err
	}
	now := i.now()
	exp := now.Add(ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        jti.String(),
		},
		Kind: kind,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	return signed, exp, err
}

// parse verifies signature, time claims and kind. Every failure is ErrUnauthorized.
func (i *Issuer) parse(tok string, want Kind) (uuid.UUID, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return i.key, nil
	},
		jwt.WithLeeway(leeway),
		jwt.WithIssuer(i.issuer),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return uuid.Nil, fmt.Errorf("%w: invalid token", errs.ErrUnauthorized)
	}
	if claims.Kind != want {
		return uuid.Nil, fmt.Errorf("%w: wrong token kind", errs.ErrUnauthorized)
	}
	id, err := uuid.FromString(claims.Subject)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: bad subject", errs.ErrUnauthorized)
	}
	return id, nil
}
