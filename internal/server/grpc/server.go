// Package grpcserver exposes the zkjournal.auth.v1.Auth gRPC handlers.
package grpcserver

import (
	"context"
	"errors"
	"net"

	"github.com/gofrs/uuid/v5"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	pb "github.com/and161185/zk-journal/gen/go/zkjournal/auth/v1"
	"github.com/and161185/zk-journal/internal/authctx"
	"github.com/and161185/zk-journal/internal/convert"
	"github.com/and161185/zk-journal/internal/errs"
	"github.com/and161185/zk-journal/internal/service"
)

// Server wires the auth service into gRPC handlers.
type Server struct {
	pb.UnimplementedAuthServer
	auth service.AuthService
}

var _ pb.AuthServer = (*Server)(nil)

// New constructs a gRPC server with the injected service.
func New(auth service.AuthService) *Server {
	return &Server{auth: auth}
}

// ProtectedMethods require a bearer access token.
var ProtectedMethods = []string{
	pb.Auth_ReRegisterStart_FullMethodName,
	pb.Auth_ReRegisterFinish_FullMethodName,
	pb.Auth_DeleteAccount_FullMethodName,
}

// toStatus maps a boundary error to a gRPC status. Messages are the public
// sentinel texts only.
func toStatus(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errs.ErrMalformedRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, errs.ErrSessionInvalid):
		return status.Error(codes.FailedPrecondition, errs.ErrSessionInvalid.Error())
	case errors.Is(err, errs.ErrAuthenticationFailed):
		return status.Error(codes.Unauthenticated, errs.ErrAuthenticationFailed.Error())
	case errors.Is(err, errs.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, errs.ErrUnauthorized.Error())
	case errors.Is(err, errs.ErrIdentityAlreadyRegistered):
		return status.Error(codes.AlreadyExists, errs.ErrIdentityAlreadyRegistered.Error())
	case errors.Is(err, errs.ErrRateLimited):
		return status.Error(codes.ResourceExhausted, errs.ErrRateLimited.Error())
	case errors.Is(err, errs.ErrUnavailable):
		return status.Error(codes.Unavailable, errs.ErrUnavailable.Error())
	default:
		return status.Error(codes.Internal, errs.ErrInternal.Error())
	}
}

func remoteIP(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return ""
	}
	addr := p.Addr.String()
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// --- Registration ---

// RegisterStart evaluates a registration request.
func (s *Server) RegisterStart(ctx context.Context, req *pb.RegisterStartRequest) (*pb.RegisterStartResponse, error) {
	identifier, blob, err := convert.FromProtoRegisterStart(req)
	if err != nil {
		return nil, toStatus(err)
	}
	res, err := s.auth.RegisterStart(ctx, identifier, blob)
	if err != nil {
		return nil, toStatus(err)
	}
	return convert.ToProtoRegisterStart(res), nil
}

// RegisterFinish stores the registration record.
func (s *Server) RegisterFinish(ctx context.Context, req *pb.RegisterFinishRequest) (*pb.SuccessResponse, error) {
	sid, record, err := convert.FromProtoRegisterFinish(req.GetSessionId(), req.GetRegistrationRecord())
	if err != nil {
		return nil, toStatus(err)
	}
	if err := s.auth.RegisterFinish(ctx, sid, record); err != nil {
		return nil, toStatus(err)
	}
	return &pb.SuccessResponse{Success: true}, nil
}

// --- Login ---

// LoginStart answers KE1 with KE2.
func (s *Server) LoginStart(ctx context.Context, req *pb.LoginStartRequest) (*pb.LoginStartResponse, error) {
	identifier, ke1, err := convert.FromProtoLoginStart(req)
	if err != nil {
		return nil, toStatus(err)
	}
	res, err := s.auth.LoginStart(ctx, identifier, ke1, remoteIP(ctx))
	if err != nil {
		return nil, toStatus(err)
	}
	return convert.ToProtoLoginStart(res), nil
}

// LoginFinish verifies KE3 and returns tokens.
func (s *Server) LoginFinish(ctx context.Context, req *pb.LoginFinishRequest) (*pb.LoginFinishResponse, error) {
	sid, ke3, err := convert.FromProtoLoginFinish(req)
	if err != nil {
		return nil, toStatus(err)
	}
	tok, err := s.auth.LoginFinish(ctx, sid, ke3, remoteIP(ctx))
	if err != nil {
		return nil, toStatus(err)
	}
	return convert.ToProtoTokens(tok), nil
}

// Refresh exchanges a refresh token.
func (s *Server) Refresh(ctx context.Context, req *pb.RefreshRequest) (*pb.RefreshResponse, error) {
	if req.GetRefreshToken() == "" {
		return nil, status.Error(codes.InvalidArgument, "malformed request: refresh_token is required")
	}
	tok, err := s.auth.Refresh(ctx, req.GetRefreshToken())
	if err != nil {
		return nil, toStatus(err)
	}
	return convert.ToProtoRefresh(tok), nil
}

// --- Authenticated ---

// ReRegisterStart begins a password change for the bearer.
func (s *Server) ReRegisterStart(ctx context.Context, req *pb.ReRegisterStartRequest) (*pb.RegisterStartResponse, error) {
	userID, ok := authctx.User(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, errs.ErrUnauthorized.Error())
	}
	blob, err := convert.Required("registration_request", req.GetRegistrationRequest())
	if err != nil {
		return nil, toStatus(err)
	}
	res, err := s.auth.ReRegisterStart(ctx, userID, blob)
	if err != nil {
		return nil, toStatus(err)
	}
	return convert.ToProtoRegisterStart(res), nil
}

// ReRegisterFinish replaces the bearer's envelope.
func (s *Server) ReRegisterFinish(ctx context.Context, req *pb.ReRegisterFinishRequest) (*pb.SuccessResponse, error) {
	userID, ok := authctx.User(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, errs.ErrUnauthorized.Error())
	}
	sid, record, err := convert.FromProtoRegisterFinish(req.GetSessionId(), req.GetRegistrationRecord())
	if err != nil {
		return nil, toStatus(err)
	}
	if err := s.auth.ReRegisterFinish(ctx, userID, sid, record); err != nil {
		return nil, toStatus(err)
	}
	return &pb.SuccessResponse{Success: true}, nil
}

// DeleteAccount removes the bearer's account.
func (s *Server) DeleteAccount(ctx context.Context, _ *pb.DeleteAccountRequest) (*pb.SuccessResponse, error) {
	userID, ok := authctx.User(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, errs.ErrUnauthorized.Error())
	}
	if err := s.auth.DeleteAccount(ctx, userID); err != nil {
		return nil, toStatus(err)
	}
	return &pb.SuccessResponse{Success: true}, nil
}

// userIDFromCtx: extract "authorization: Bearer <JWT>" and resolve it through the service.
func userIDFromCtx(ctx context.Context, auth service.AuthService) (uuid.UUID, error) {
	tok, err := bearerTokenFromMD(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	return auth.Authenticate(ctx, tok)
}

func bearerTokenFromMD(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", errors.New("no metadata")
	}
	for _, v := range md.Get("authorization") {
		if t, ok := authctx.BearerToken(v); ok {
			return t, nil
		}
	}
	return "", errors.New("no bearer token")
}
