// Package convert maps between transport messages (protobuf and the HTTP
// JSON bodies) and service values.
package convert

import (
	"encoding/base64"
	"fmt"

	"github.com/and161185/zk-journal/internal/api/httpapi"
	"github.com/and161185/zk-journal/internal/errs"
	"github.com/and161185/zk-journal/internal/model"
	"github.com/and161185/zk-journal/internal/service"
)

var b64 = base64.StdEncoding.Strict()

// --- helpers ---

// Blob decodes a required base64 field. The error names the field.
func Blob(field, s string) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: %s is required", errs.ErrMalformedRequest, field)
	}
	b, err := b64.DecodeString(s)
	if err != nil || len(b) == 0 {
		return nil, fmt.Errorf("%w: %s is not valid base64", errs.ErrMalformedRequest, field)
	}
	return b, nil
}

// EncodeBlob is the inverse of Blob.
func EncodeBlob(b []byte) string {
	return b64.EncodeToString(b)
}

// --- requests (JSON -> service) ---

// FromJSONRegisterStart extracts the identifier and the registration request.
func FromJSONRegisterStart(in *httpapi.RegisterStartRequest) (string, []byte, error) {
	if in == nil {
		return "", nil, fmt.Errorf("%w: empty body", errs.ErrMalformedRequest)
	}
	req, err := Blob("registration_request", in.RegistrationRequest)
	if err != nil {
		return "", nil, err
	}
	return in.Identifier, req, nil
}

// FromJSONRegisterFinish extracts the session id and the record.
func FromJSONRegisterFinish(sessionID, record string) (string, []byte, error) {
	rec, err := Blob("registration_record", record)
	if err != nil {
		return "", nil, err
	}
	return sessionID, rec, nil
}

// FromJSONLoginStart extracts the identifier and KE1.
func FromJSONLoginStart(in *httpapi.LoginStartRequest) (string, []byte, error) {
	if in == nil {
		return "", nil, fmt.Errorf("%w: empty body", errs.ErrMalformedRequest)
	}
	ke1, err := Blob("credential_request", in.CredentialRequest)
	if err != nil {
		return "", nil, err
	}
	return in.Identifier, ke1, nil
}

// FromJSONLoginFinish extracts the session id and KE3.
func FromJSONLoginFinish(in *httpapi.LoginFinishRequest) (string, []byte, error) {
	if in == nil {
		return "", nil, fmt.Errorf("%w: empty body", errs.ErrMalformedRequest)
	}
	ke3, err := Blob("credential_finalization", in.CredentialFinalization)
	if err != nil {
		return "", nil, err
	}
	return in.SessionID, ke3, nil
}

// --- responses (service -> JSON) ---

func ToJSONRegisterStart(r service.StartResult) *httpapi.RegisterStartResponse {
	return &httpapi.RegisterStartResponse{
		RegistrationResponse: EncodeBlob(r.Response),
		SessionID:            r.SessionID,
	}
}

func ToJSONLoginStart(r service.StartResult) *httpapi.LoginStartResponse {
	return &httpapi.LoginStartResponse{
		CredentialResponse: EncodeBlob(r.Response),
		SessionID:          r.SessionID,
	}
}

// ToJSONTokens converts an issued pair.
func ToJSONTokens(t model.Tokens) *httpapi.LoginFinishResponse {
	return &httpapi.LoginFinishResponse{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		ExpiresAt:    t.ExpiresAt.UTC(),
	}
}

// ToJSONRefresh converts a refreshed access token.
func ToJSONRefresh(t model.Tokens) *httpapi.RefreshResponse {
	return &httpapi.RefreshResponse{
		AccessToken: t.AccessToken,
		ExpiresAt:   t.ExpiresAt.UTC(),
	}
}
