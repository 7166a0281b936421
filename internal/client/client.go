// Package client drives both OPAQUE round trips against the Auth service.
// The export key it returns never leaves the calling process.
package client

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	pb "github.com/and161185/zk-journal/gen/go/zkjournal/auth/v1"
	"github.com/and161185/zk-journal/internal/convert"
	"github.com/and161185/zk-journal/internal/errs"
	"github.com/and161185/zk-journal/internal/model"
	"github.com/and161185/zk-journal/internal/pake"
)

// Client talks to one server identity.
type Client struct {
	api  pb.AuthClient
	pake *pake.Client
}

// Session is the result of a successful login.
type Session struct {
	Tokens    model.Tokens
	ExportKey []byte
}

// New wraps cc. serverID must match the server's configured identity.
func New(cc grpc.ClientConnInterface, serverID string) *Client {
	return &Client{api: pb.NewAuthClient(cc), pake: pake.NewClient(serverID)}
}

// FromStatus maps a gRPC status back to the sentinel the server started from.
func FromStatus(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	var base error
	switch st.Code() {
	case codes.InvalidArgument:
		base = errs.ErrMalformedRequest
	case codes.FailedPrecondition:
		base = errs.ErrSessionInvalid
	case codes.Unauthenticated:
		if st.Message() == errs.ErrUnauthorized.Error() {
			base = errs.ErrUnauthorized
		} else {
			base = errs.ErrAuthenticationFailed
		}
	case codes.AlreadyExists:
		base = errs.ErrIdentityAlreadyRegistered
	case codes.ResourceExhausted:
		base = errs.ErrRateLimited
	case codes.Unavailable, codes.DeadlineExceeded:
		base = errs.ErrUnavailable
	default:
		base = errs.ErrInternal
	}
	return fmt.Errorf("%w: %s", base, st.Message())
}

func withBearer(ctx context.Context, accessToken string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+accessToken)
}

// Register creates an account and returns the export key.
func (c *Client) Register(ctx context.Context, identifier string, password []byte) ([]byte, error) {
	reg, req, err := c.pake.StartRegistration(password)
	if err != nil {
		return nil, err
	}
	rs, err := c.api.RegisterStart(ctx, &pb.RegisterStartRequest{
		Identifier:          identifier,
		RegistrationRequest: req,
	})
	if err != nil {
		return nil, FromStatus(err)
	}
	record, exportKey, err := c.finishRegistration(reg, identifier, rs)
	if err != nil {
		return nil, err
	}
	if _, err := c.api.RegisterFinish(ctx, &pb.RegisterFinishRequest{
		SessionId:          rs.GetSessionId(),
		RegistrationRecord: record,
	}); err != nil {
		return nil, FromStatus(err)
	}
	return exportKey, nil
}

func (c *Client) finishRegistration(reg *pake.Registration, identifier string, rs *pb.RegisterStartResponse) (record, exportKey []byte, err error) {
	res, err := convert.FromProtoStart("registration_response", rs.GetRegistrationResponse(), rs.GetSessionId())
	if err != nil {
		return nil, nil, err
	}
	return reg.Finish(identifier, res.Response)
}

// Login authenticates and returns tokens plus the export key. A wrong
// password is detected locally and reported as ErrAuthenticationFailed
// without sending a finalization.
func (c *Client) Login(ctx context.Context, identifier string, password []byte) (Session, error) {
	l, ke1, err := c.pake.StartLogin(password)
	if err != nil {
		return Session{}, err
	}
	ls, err := c.api.LoginStart(ctx, &pb.LoginStartRequest{
		Identifier:        identifier,
		CredentialRequest: ke1,
	})
	if err != nil {
		return Session{}, FromStatus(err)
	}
	res, err := convert.FromProtoStart("credential_response", ls.GetCredentialResponse(), ls.GetSessionId())
	if err != nil {
		return Session{}, err
	}
	ke3, exportKey, err := l.Finish(identifier, res.Response)
	if err != nil {
		if errors.Is(err, errs.ErrAuthenticationFailed) {
			return Session{}, errs.ErrAuthenticationFailed
		}
		return Session{}, err
	}
	tok, err := c.api.LoginFinish(ctx, &pb.LoginFinishRequest{
		SessionId:              res.SessionID,
		CredentialFinalization: ke3,
	})
	if err != nil {
		return Session{}, FromStatus(err)
	}
	return Session{Tokens: convert.FromProtoTokens(tok), ExportKey: exportKey}, nil
}

// Refresh trades a refresh token for a new access token. The refresh token
// is carried over unchanged.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (model.Tokens, error) {
	out, err := c.api.Refresh(ctx, &pb.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return model.Tokens{}, FromStatus(err)
	}
	return model.Tokens{
		AccessToken:  out.GetAccessToken(),
		RefreshToken: refreshToken,
		ExpiresAt:    out.GetExpiresAt().AsTime(),
	}, nil
}

// ChangePassword re-registers the bearer under newPassword and returns the
// new export key. Callers re-wrap their entry keys with the old and new
// master keys afterwards.
func (c *Client) ChangePassword(ctx context.Context, accessToken, identifier string, newPassword []byte) ([]byte, error) {
	ctx = withBearer(ctx, accessToken)
	reg, req, err := c.pake.StartRegistration(newPassword)
	if err != nil {
		return nil, err
	}
	rs, err := c.api.ReRegisterStart(ctx, &pb.ReRegisterStartRequest{RegistrationRequest: req})
	if err != nil {
		return nil, FromStatus(err)
	}
	record, exportKey, err := c.finishRegistration(reg, identifier, rs)
	if err != nil {
		return nil, err
	}
	if _, err := c.api.ReRegisterFinish(ctx, &pb.ReRegisterFinishRequest{
		SessionId:          rs.GetSessionId(),
		RegistrationRecord: record,
	}); err != nil {
		return nil, FromStatus(err)
	}
	return exportKey, nil
}

// DeleteAccount removes the bearer's account.
func (c *Client) DeleteAccount(ctx context.Context, accessToken string) error {
	_, err := c.api.DeleteAccount(withBearer(ctx, accessToken), &pb.DeleteAccountRequest{})
	return FromStatus(err)
}
