// Package httpapi defines the JSON bodies of the /v1/auth HTTP API.
//
// Opaque protocol blobs travel as standard base64 strings.
package httpapi

import "time"

// RegisterStartRequest opens a registration.
type RegisterStartRequest struct {
	Identifier          string `json:"identifier"`
	RegistrationRequest string `json:"registration_request"`
}

// RegisterStartResponse carries the server's evaluation.
type RegisterStartResponse struct {
	RegistrationResponse string `json:"registration_response"`
	SessionID            string `json:"session_id"`
}

// RegisterFinishRequest uploads the client's registration record.
type RegisterFinishRequest struct {
	SessionID          string `json:"session_id"`
	RegistrationRecord string `json:"registration_record"`
}

// SuccessResponse acknowledges operations without a payload.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// LoginStartRequest carries KE1.
type LoginStartRequest struct {
	Identifier        string `json:"identifier"`
	CredentialRequest string `json:"credential_request"`
}

// LoginStartResponse carries KE2.
type LoginStartResponse struct {
	CredentialResponse string `json:"credential_response"`
	SessionID          string `json:"session_id"`
}

// LoginFinishRequest carries KE3.
type LoginFinishRequest struct {
	SessionID              string `json:"session_id"`
	CredentialFinalization string `json:"credential_finalization"`
}

// LoginFinishResponse returns the session tokens.
type LoginFinishResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ReRegisterStartRequest opens a password change for the bearer.
type ReRegisterStartRequest struct {
	RegistrationRequest string `json:"registration_request"`
}

type ReRegisterFinishRequest struct {
	SessionID          string `json:"session_id"`
	RegistrationRecord string `json:"registration_record"`
}

type DeleteAccountRequest struct{}

// ErrorResponse is the HTTP error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
