// Package crypto implements randomness helpers: the CSPRNG source shared by
// server and client, and session ids.
package crypto

import (
	"crypto/rand"
	"encoding/base64"
)

// SessionIDLen is the number of random bytes behind a session id (256 bits).
const SessionIDLen = 32

// RandBytes returns n cryptographically secure random bytes.
func RandBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

// NewSessionID returns a fresh unguessable session id, base64url without padding.
func NewSessionID() (string, error) {
	b, err := RandBytes(SessionIDLen)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ValidSessionID reports whether id has the shape produced by NewSessionID.
func ValidSessionID(id string) bool {
	if len(id) != base64.RawURLEncoding.EncodedLen(SessionIDLen) {
		return false
	}
	_, err := base64.RawURLEncoding.DecodeString(id)
	return err == nil
}
