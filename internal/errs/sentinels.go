// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Storage-level sentinels.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., identifier taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrConflict indicates a conditional write matched no row.
	ErrConflict = errors.New("conflict")

	// ErrInvalidAuthMethod indicates a user row that does not carry exactly one
	// authentication method.
	ErrInvalidAuthMethod = errors.New("user must have exactly one authentication method")

	// ErrUnauthorized indicates a missing or invalid bearer token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")
)

// Protocol sentinels. Only the ones marked "public" may cross the API boundary;
// the rest are collapsed by the service layer.
var (
	// ErrMalformedRequest is a structurally invalid request (public).
	ErrMalformedRequest = errors.New("malformed request")

	// ErrRecordMalformed is a registration record that failed to decode.
	ErrRecordMalformed = errors.New("registration record malformed")

	ErrSessionNotFound        = errors.New("session not found")
	ErrSessionExpired         = errors.New("session expired")
	ErrSessionAlreadyConsumed = errors.New("session already consumed")

	// ErrSessionInvalid replaces every session failure at the boundary (public).
	ErrSessionInvalid = errors.New("session invalid")

	// ErrAuthenticationFailed covers wrong password and unknown identifier alike (public).
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrIdentityAlreadyRegistered is public at registration time only.
	ErrIdentityAlreadyRegistered = errors.New("identity already registered")

	// ErrInternalCrypto is a failure of the underlying protocol primitive.
	ErrInternalCrypto = errors.New("internal crypto failure")

	// ErrUnavailable is a retryable failure of a dependency (public).
	ErrUnavailable = errors.New("temporarily unavailable")

	// ErrInternal is the generic outcome for everything else (public).
	ErrInternal = errors.New("internal error")
)

// IsSession reports whether err is any of the session lifecycle failures.
func IsSession(err error) bool {
	return errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrSessionExpired) ||
		errors.Is(err, ErrSessionAlreadyConsumed) ||
		errors.Is(err, ErrSessionInvalid)
}
