package service

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/and161185/zk-journal/internal/errs"
)

// normalize is the only place where internal failures become boundary
// errors. Everything that is not explicitly public is logged here and
// reduced to errs.ErrInternal.
func (s *AuthServiceImpl) normalize(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errs.ErrMalformedRequest), errors.Is(err, errs.ErrRecordMalformed):
		s.log.Debug("malformed request", zap.String("op", op), zap.Error(err))
		return errs.ErrMalformedRequest
	case errs.IsSession(err):
		return errs.ErrSessionInvalid
	case errors.Is(err, errs.ErrAuthenticationFailed):
		return errs.ErrAuthenticationFailed
	case errors.Is(err, errs.ErrUnauthorized):
		return errs.ErrUnauthorized
	case errors.Is(err, errs.ErrIdentityAlreadyRegistered):
		return errs.ErrIdentityAlreadyRegistered
	case errors.Is(err, errs.ErrRateLimited):
		return errs.ErrRateLimited
	case isUnavailable(err):
		s.log.Warn("dependency unavailable", zap.String("op", op), zap.Error(err))
		return errs.ErrUnavailable
	default:
		s.log.Error("internal error", zap.String("op", op), zap.Error(err))
		return errs.ErrInternal
	}
}

// isUnavailable reports retryable infrastructure failures.
func isUnavailable(err error) bool {
	if errors.Is(err, errs.ErrUnavailable) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return true
	}
	if pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return true
	}
	var ce *pgconn.ConnectError
	return errors.As(err, &ce)
}

// outcome is the metrics label for a normalized error.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, errs.ErrMalformedRequest):
		return "malformed"
	case errors.Is(err, errs.ErrSessionInvalid):
		return "session_invalid"
	case errors.Is(err, errs.ErrAuthenticationFailed):
		return "auth_failed"
	case errors.Is(err, errs.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, errs.ErrIdentityAlreadyRegistered):
		return "already_registered"
	case errors.Is(err, errs.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, errs.ErrUnavailable):
		return "unavailable"
	}
	return "internal"
}
