// Package model defines domain entities used by services and repositories.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/and161185/zk-journal/internal/errs"
	"github.com/gofrs/uuid/v5"
)

// Tokens collects an issued access/refresh pair.
type Tokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time // access token expiry
}

// AuthMethod is the single way a user authenticates. The only implementations
// are ExternalIdentity and OpaqueEnvelope.
type AuthMethod interface {
	authMethod()
}

// ExternalIdentity references an account at an external identity provider.
type ExternalIdentity struct {
	Provider string // e.g. "google"
	Subject  string // provider's stable subject id
}

// OpaqueEnvelope is the serialized OPAQUE registration record.
type OpaqueEnvelope struct {
	Record []byte
}

func (ExternalIdentity) authMethod() {}
func (OpaqueEnvelope) authMethod()   {}

// String encodes the identity as "provider:subject" for storage.
func (e ExternalIdentity) String() string { return e.Provider + ":" + e.Subject }

// ParseExternalIdentity is the inverse of ExternalIdentity.String.
func ParseExternalIdentity(s string) (ExternalIdentity, error) {
	provider, subject, ok := strings.Cut(s, ":")
	if !ok || provider == "" || subject == "" {
		return ExternalIdentity{}, fmt.Errorf("%w: bad external identity %q", errs.ErrInvalidAuthMethod, s)
	}
	return ExternalIdentity{Provider: provider, Subject: subject}, nil
}

// ValidateAuthMethod rejects nil methods and empty variants.
func ValidateAuthMethod(m AuthMethod) error {
	switch v := m.(type) {
	case OpaqueEnvelope:
		if len(v.Record) == 0 {
			return fmt.Errorf("%w: empty envelope", errs.ErrInvalidAuthMethod)
		}
	case *OpaqueEnvelope:
		if v == nil || len(v.Record) == 0 {
			return fmt.Errorf("%w: empty envelope", errs.ErrInvalidAuthMethod)
		}
	case ExternalIdentity:
		if v.Provider == "" || v.Subject == "" || strings.Contains(v.Provider, ":") {
			return fmt.Errorf("%w: incomplete external identity", errs.ErrInvalidAuthMethod)
		}
	case *ExternalIdentity:
		if v == nil {
			return fmt.Errorf("%w: nil external identity", errs.ErrInvalidAuthMethod)
		}
		return ValidateAuthMethod(*v)
	default:
		return errs.ErrInvalidAuthMethod
	}
	return nil
}

// AuthColumns maps a method onto the (auth_envelope, external_identity) column pair.
// Exactly one of the returned values is non-nil.
func AuthColumns(m AuthMethod) (envelope []byte, external *string, err error) {
	if err := ValidateAuthMethod(m); err != nil {
		return nil, nil, err
	}
	switch v := m.(type) {
	case OpaqueEnvelope:
		return v.Record, nil, nil
	case *OpaqueEnvelope:
		return v.Record, nil, nil
	case ExternalIdentity:
		s := v.String()
		return nil, &s, nil
	case *ExternalIdentity:
		s := v.String()
		return nil, &s, nil
	}
	return nil, nil, errs.ErrInvalidAuthMethod
}

// AuthMethodFromColumns rebuilds the method from storage, rejecting both/neither.
func AuthMethodFromColumns(envelope []byte, external *string) (AuthMethod, error) {
	hasEnv := len(envelope) > 0
	hasExt := external != nil && *external != ""
	switch {
	case hasEnv && hasExt:
		return nil, fmt.Errorf("%w: both columns set", errs.ErrInvalidAuthMethod)
	case hasEnv:
		return OpaqueEnvelope{Record: envelope}, nil
	case hasExt:
		ext, err := ParseExternalIdentity(*external)
		if err != nil {
			return nil, err
		}
		return ext, nil
	default:
		return nil, fmt.Errorf("%w: no column set", errs.ErrInvalidAuthMethod)
	}
}

// User represents an account stored on the server. The server never stores a
// password or any key able to decrypt user content.
type User struct {
	ID         uuid.UUID // PK
	Identifier string    // unique login name
	Auth       AuthMethod
	CreatedAt  time.Time
}

// NewOpaqueUser builds a user authenticated by an OPAQUE registration record.
func NewOpaqueUser(id uuid.UUID, identifier string, record []byte) (*User, error) {
	u := &User{ID: id, Identifier: identifier, Auth: OpaqueEnvelope{Record: record}}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// NewExternalUser builds a user authenticated by an external provider.
func NewExternalUser(id uuid.UUID, identifier string, ext ExternalIdentity) (*User, error) {
	u := &User{ID: id, Identifier: identifier, Auth: ext}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks identity fields and the auth method invariant.
func (u *User) Validate() error {
	if u.ID == uuid.Nil || u.Identifier == "" {
		return fmt.Errorf("%w: missing id or identifier", errs.ErrInvalidAuthMethod)
	}
	return ValidateAuthMethod(u.Auth)
}

// Envelope returns the OPAQUE record, or false for externally authenticated users.
func (u *User) Envelope() ([]byte, bool) {
	switch v := u.Auth.(type) {
	case OpaqueEnvelope:
		return v.Record, len(v.Record) > 0
	case *OpaqueEnvelope:
		if v != nil {
			return v.Record, len(v.Record) > 0
		}
	}
	return nil, false
}

// SessionPhase tells which protocol flow a session belongs to.
type SessionPhase string

const (
	PhaseRegistration   SessionPhase = "registration"
	PhaseLogin          SessionPhase = "login"
	PhaseReregistration SessionPhase = "reregistration"
)

// Valid reports whether p is a known phase.
func (p SessionPhase) Valid() bool {
	switch p {
	case PhaseRegistration, PhaseLogin, PhaseReregistration:
		return true
	}
	return false
}

// OpaqueSession is the ephemeral state bridging a protocol start and finish.
type OpaqueSession struct {
	ID         string
	Phase      SessionPhase
	Identifier string
	UserID     uuid.UUID // uuid.Nil for registrations and dummy logins
	State      []byte    // server-side AKE state, empty for registration
	CreatedAt  time.Time
	ExpiresAt  time.Time
	Consumed   bool
}

// Expired reports whether the session is past its expiry at now.
func (s *OpaqueSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
