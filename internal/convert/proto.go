package convert

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"

	pb "github.com/and161185/zk-journal/gen/go/zkjournal/auth/v1"
	"github.com/and161185/zk-journal/internal/errs"
	"github.com/and161185/zk-journal/internal/model"
	"github.com/and161185/zk-journal/internal/service"
)

// --- helpers ---

func ts(t time.Time) *timestamppb.Timestamp {
	if t.IsZero() {
		return nil
	}
	return timestamppb.New(t)
}

func fromTS(t *timestamppb.Timestamp) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.AsTime()
}

// Required rejects an empty protocol message. The error names the field.
func Required(field string, b []byte) ([]byte, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: %s is required", errs.ErrMalformedRequest, field)
	}
	return b, nil
}

// --- requests (proto -> service) ---

// FromProtoRegisterStart extracts the identifier and the registration request.
func FromProtoRegisterStart(in *pb.RegisterStartRequest) (string, []byte, error) {
	if in == nil {
		return "", nil, fmt.Errorf("%w: empty body", errs.ErrMalformedRequest)
	}
	req, err := Required("registration_request", in.GetRegistrationRequest())
	if err != nil {
		return "", nil, err
	}
	return in.GetIdentifier(), req, nil
}

// FromProtoRegisterFinish extracts the session id and the record.
func FromProtoRegisterFinish(sessionID string, record []byte) (string, []byte, error) {
	rec, err := Required("registration_record", record)
	if err != nil {
		return "", nil, err
	}
	return sessionID, rec, nil
}

// FromProtoLoginStart extracts the identifier and KE1.
func FromProtoLoginStart(in *pb.LoginStartRequest) (string, []byte, error) {
	if in == nil {
		return "", nil, fmt.Errorf("%w: empty body", errs.ErrMalformedRequest)
	}
	ke1, err := Required("credential_request", in.GetCredentialRequest())
	if err != nil {
		return "", nil, err
	}
	return in.GetIdentifier(), ke1, nil
}

// FromProtoLoginFinish extracts the session id and KE3.
func FromProtoLoginFinish(in *pb.LoginFinishRequest) (string, []byte, error) {
	if in == nil {
		return "", nil, fmt.Errorf("%w: empty body", errs.ErrMalformedRequest)
	}
	ke3, err := Required("credential_finalization", in.GetCredentialFinalization())
	if err != nil {
		return "", nil, err
	}
	return in.GetSessionId(), ke3, nil
}

// --- responses (service -> proto) ---

func ToProtoRegisterStart(r service.StartResult) *pb.RegisterStartResponse {
	return &pb.RegisterStartResponse{
		RegistrationResponse: r.Response,
		SessionId:            r.SessionID,
	}
}

func ToProtoLoginStart(r service.StartResult) *pb.LoginStartResponse {
	return &pb.LoginStartResponse{
		CredentialResponse: r.Response,
		SessionId:          r.SessionID,
	}
}

// ToProtoTokens converts an issued pair.
func ToProtoTokens(t model.Tokens) *pb.LoginFinishResponse {
	return &pb.LoginFinishResponse{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		ExpiresAt:    ts(t.ExpiresAt),
	}
}

// ToProtoRefresh converts a refreshed access token.
func ToProtoRefresh(t model.Tokens) *pb.RefreshResponse {
	return &pb.RefreshResponse{
		AccessToken: t.AccessToken,
		ExpiresAt:   ts(t.ExpiresAt),
	}
}

// --- client side (proto -> values) ---

// FromProtoStart checks a start response: both the blob and the session id
// must be present.
func FromProtoStart(field string, blob []byte, sessionID string) (service.StartResult, error) {
	b, err := Required(field, blob)
	if err != nil {
		return service.StartResult{}, err
	}
	if sessionID == "" {
		return service.StartResult{}, fmt.Errorf("%w: session_id is required", errs.ErrMalformedRequest)
	}
	return service.StartResult{Response: b, SessionID: sessionID}, nil
}

// FromProtoTokens converts a login response. Expiry is UTC.
func FromProtoTokens(in *pb.LoginFinishResponse) model.Tokens {
	return model.Tokens{
		AccessToken:  in.GetAccessToken(),
		RefreshToken: in.GetRefreshToken(),
		ExpiresAt:    fromTS(in.GetExpiresAt()),
	}
}
