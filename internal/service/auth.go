// Package service contains the OPAQUE protocol engine: two-phase registration
// and login, password change, account deletion and token refresh.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/and161185/zk-journal/internal/crypto"
	"github.com/and161185/zk-journal/internal/errs"
	"github.com/and161185/zk-journal/internal/limiter"
	"github.com/and161185/zk-journal/internal/metrics"
	"github.com/and161185/zk-journal/internal/model"
	"github.com/and161185/zk-journal/internal/pake"
	"github.com/and161185/zk-journal/internal/repository"
	"github.com/and161185/zk-journal/internal/session"
	"github.com/and161185/zk-journal/internal/token"
)

// Defaults
const (
	DefaultOpTimeout       = 5 * time.Second
	DefaultMinResponseTime = 300 * time.Millisecond
	MaxIdentifierLen       = 256
)

// Operation names used in logs and metrics.
const (
	opRegisterStart    = "register_start"
	opRegisterFinish   = "register_finish"
	opLoginStart       = "login_start"
	opLoginFinish      = "login_finish"
	opRefresh          = "refresh"
	opReRegisterStart  = "reregister_start"
	opReRegisterFinish = "reregister_finish"
	opDeleteAccount    = "delete_account"
	opAuthenticate     = "authenticate"
)

// StartResult is the server's answer to a protocol start.
type StartResult struct {
	Response  []byte
	SessionID string
}

// AuthService defines the authentication operations exposed to transports.
// All errors are boundary sentinels from internal/errs.
type AuthService interface {
	// RegisterStart evaluates a registration request for a new identifier.
	RegisterStart(ctx context.Context, identifier string, request []byte) (StartResult, error)
	// RegisterFinish stores the client's registration record.
	RegisterFinish(ctx context.Context, sessionID string, record []byte) error
	// LoginStart answers KE1. Unknown identifiers get an indistinguishable dummy answer.
	LoginStart(ctx context.Context, identifier string, ke1 []byte, clientIP string) (StartResult, error)
	// LoginFinish verifies KE3 and issues tokens.
	LoginFinish(ctx context.Context, sessionID string, ke3 []byte, clientIP string) (model.Tokens, error)
	// Refresh exchanges a refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (model.Tokens, error)
	// Authenticate resolves an access token to a user id.
	Authenticate(ctx context.Context, accessToken string) (uuid.UUID, error)
	// ReRegisterStart begins a password change for an authenticated user.
	ReRegisterStart(ctx context.Context, userID uuid.UUID, request []byte) (StartResult, error)
	// ReRegisterFinish replaces the user's envelope.
	ReRegisterFinish(ctx context.Context, userID uuid.UUID, sessionID string, record []byte) error
	// DeleteAccount removes the user.
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

// Options tunes the engine. Zero values fall back to the defaults.
type Options struct {
	SessionTTL      time.Duration
	OpTimeout       time.Duration
	MinResponseTime time.Duration
}

// Deps are the collaborators of the engine. Limiter and Metrics are optional.
type Deps struct {
	Users    repository.UserRepository
	Sessions session.Store
	PAKE     *pake.Server
	Tokens   *token.Issuer
	Limiter  limiter.Limiter
	Metrics  metrics.Recorder
	Log      *zap.Logger
}

// AuthServiceImpl implements AuthService.
type AuthServiceImpl struct {
	users    repository.UserRepository
	sessions session.Store
	pake     *pake.Server
	tokens   *token.Issuer
	lim      limiter.Limiter
	rec      metrics.Recorder
	log      *zap.Logger
	opts     Options
	locks    *keyedMutex
}

var _ AuthService = (*AuthServiceImpl)(nil)

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(d Deps, opts Options) *AuthServiceImpl {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = session.DefaultTTL
	}
	if opts.OpTimeout <= 0 {
		opts.OpTimeout = DefaultOpTimeout
	}
	if opts.MinResponseTime < 0 {
		opts.MinResponseTime = 0
	}
	if d.Metrics == nil {
		d.Metrics = metrics.Noop{}
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return &AuthServiceImpl{
		users:    d.Users,
		sessions: d.Sessions,
		pake:     d.PAKE,
		tokens:   d.Tokens,
		lim:      d.Limiter,
		rec:      d.Metrics,
		log:      d.Log,
		opts:     opts,
		locks:    newKeyedMutex(),
	}
}

// run applies the operation timeout, normalizes the error, pads the latency
// and records the outcome. Every exported operation goes through it.
func (s *AuthServiceImpl) run(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	start := time.Now()
	opCtx, cancel := context.WithTimeout(ctx, s.opts.OpTimeout)
	err := fn(opCtx)
	cancel()

	err = s.normalize(op, err)
	s.pad(ctx, start)
	s.rec.ProtocolOutcome(op, outcome(err), time.Since(start))
	return err
}

// pad sleeps until MinResponseTime has elapsed since start.
func (s *AuthServiceImpl) pad(ctx context.Context, start time.Time) {
	rest := s.opts.MinResponseTime - time.Since(start)
	if rest <= 0 {
		return
	}
	t := time.NewTimer(rest)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func validIdentifier(identifier string) error {
	if identifier == "" || len(identifier) > MaxIdentifierLen || !utf8.ValidString(identifier) {
		return fmt.Errorf("%w: identifier", errs.ErrMalformedRequest)
	}
	return nil
}

func validSessionID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: session_id", errs.ErrMalformedRequest)
	}
	if !crypto.ValidSessionID(id) {
		return errs.ErrSessionNotFound
	}
	return nil
}

// takePhase consumes a session and checks that it belongs to the expected flow.
func (s *AuthServiceImpl) takePhase(ctx context.Context, id string, want model.SessionPhase) (model.OpaqueSession, error) {
	if err := validSessionID(id); err != nil {
		return model.OpaqueSession{}, err
	}
	sess, err := s.sessions.Take(ctx, id)
	if err != nil {
		return model.OpaqueSession{}, err
	}
	if sess.Phase != want {
		return model.OpaqueSession{}, fmt.Errorf("%w: phase %s", errs.ErrSessionInvalid, sess.Phase)
	}
	return sess, nil
}

// RegisterStart implements AuthService.
func (s *AuthServiceImpl) RegisterStart(ctx context.Context, identifier string, request []byte) (StartResult, error) {
	var res StartResult
	err := s.run(ctx, opRegisterStart, func(ctx context.Context) error {
		if err := validIdentifier(identifier); err != nil {
			return err
		}
		if len(request) == 0 {
			return fmt.Errorf("%w: registration_request", errs.ErrMalformedRequest)
		}
		unlock, err := s.locks.Lock(ctx, identifier)
		if err != nil {
			return err
		}
		defer unlock()

		switch _, err := s.users.GetByIdentifier(ctx, identifier); {
		case err == nil:
			return errs.ErrIdentityAlreadyRegistered
		case !errors.Is(err, errs.ErrNotFound):
			return err
		}

		uid, err := uuid.NewV4()
		if err != nil {
			return err
		}
		resp, err := s.pake.RegistrationResponse(uid.Bytes(), request)
		if err != nil {
			return err
		}
		id, err := s.sessions.Put(ctx, model.OpaqueSession{
			Phase:      model.PhaseRegistration,
			Identifier: identifier,
			UserID:     uid,
		}, s.opts.SessionTTL)
		if err != nil {
			return err
		}
		res = StartResult{Response: resp, SessionID: id}
		return nil
	})
	if err != nil {
		return StartResult{}, err
	}
	return res, nil
}

// RegisterFinish implements AuthService.
func (s *AuthServiceImpl) RegisterFinish(ctx context.Context, sessionID string, record []byte) error {
	return s.run(ctx, opRegisterFinish, func(ctx context.Context) error {
		if len(record) == 0 {
			return fmt.Errorf("%w: registration_record", errs.ErrMalformedRequest)
		}
		sess, err := s.takePhase(ctx, sessionID, model.PhaseRegistration)
		if err != nil {
			return err
		}
		if err := s.pake.ValidateRecord(record); err != nil {
			return err
		}

		unlock, err := s.locks.Lock(ctx, sess.Identifier)
		if err != nil {
			return err
		}
		defer unlock()

		u, err := model.NewOpaqueUser(sess.UserID, sess.Identifier, record)
		if err != nil {
			return err
		}
		if err := s.users.Create(ctx, u); err != nil {
			if errors.Is(err, errs.ErrAlreadyExists) {
				return errs.ErrIdentityAlreadyRegistered
			}
			return err
		}
		s.log.Info("user registered", zap.String("user_id", u.ID.String()))
		return nil
	})
}

// LoginStart implements AuthService.
func (s *AuthServiceImpl) LoginStart(ctx context.Context, identifier string, ke1 []byte, clientIP string) (StartResult, error) {
	var res StartResult
	err := s.run(ctx, opLoginStart, func(ctx context.Context) error {
		if err := validIdentifier(identifier); err != nil {
			return err
		}
		if len(ke1) == 0 {
			return fmt.Errorf("%w: credential_request", errs.ErrMalformedRequest)
		}
		if s.lim != nil {
			ok, _, err := s.lim.Allow(ctx, identifier, limiter.HashIP(clientIP))
			if err != nil {
				return err
			}
			if !ok {
				return errs.ErrRateLimited
			}
			// KE2 alone tells a client whether its password was right, so
			// every start counts as a failure until a finish succeeds.
			if _, _, err := s.lim.Failure(ctx, identifier, limiter.HashIP(clientIP)); err != nil {
				return err
			}
		}

		unlock, err := s.locks.Lock(ctx, identifier)
		if err != nil {
			return err
		}
		defer unlock()

		var (
			userID uuid.UUID
			credID []byte
			record []byte
		)
		u, err := s.users.GetByIdentifier(ctx, identifier)
		switch {
		case err == nil:
			if env, ok := u.Envelope(); ok {
				userID, credID, record = u.ID, u.ID.Bytes(), env
			}
		case !errors.Is(err, errs.ErrNotFound):
			return err
		}
		// record == nil selects the dummy flow inside pake.

		ke2, state, err := s.pake.LoginResponse(identifier, credID, record, ke1)
		if err != nil {
			return err
		}
		id, err := s.sessions.Put(ctx, model.OpaqueSession{
			Phase:      model.PhaseLogin,
			Identifier: identifier,
			UserID:     userID,
			State:      state,
		}, s.opts.SessionTTL)
		if err != nil {
			return err
		}
		res = StartResult{Response: ke2, SessionID: id}
		return nil
	})
	if err != nil {
		return StartResult{}, err
	}
	return res, nil
}

// LoginFinish implements AuthService.
func (s *AuthServiceImpl) LoginFinish(ctx context.Context, sessionID string, ke3 []byte, clientIP string) (model.Tokens, error) {
	var out model.Tokens
	err := s.run(ctx, opLoginFinish, func(ctx context.Context) error {
		if len(ke3) == 0 {
			return fmt.Errorf("%w: credential_finalization", errs.ErrMalformedRequest)
		}
		sess, err := s.takePhase(ctx, sessionID, model.PhaseLogin)
		if err != nil {
			return err
		}

		unlock, err := s.locks.Lock(ctx, sess.Identifier)
		if err != nil {
			return err
		}
		defer unlock()

		// Verify even for dummy sessions so both paths do the same work.
		verr := s.pake.LoginFinish(sess.State, ke3)
		if verr == nil && sess.UserID == uuid.Nil {
			verr = errs.ErrAuthenticationFailed
		}
		if verr != nil {
			if errors.Is(verr, errs.ErrMalformedRequest) {
				return verr
			}
			if errors.Is(verr, errs.ErrInternalCrypto) {
				return verr
			}
			return errs.ErrAuthenticationFailed
		}
		// The account may have been deleted while the session was open.
		if _, err := s.users.GetByID(ctx, sess.UserID); err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return errs.ErrAuthenticationFailed
			}
			return err
		}

		if s.lim != nil {
			if err := s.lim.Success(ctx, sess.Identifier, limiter.HashIP(clientIP)); err != nil {
				s.log.Warn("limiter reset failed", zap.Error(err))
			}
		}
		tok, err := s.tokens.IssuePair(sess.UserID)
		if err != nil {
			return err
		}
		out = tok
		return nil
	})
	if err != nil {
		return model.Tokens{}, err
	}
	return out, nil
}

// Refresh implements AuthService.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (model.Tokens, error) {
	var out model.Tokens
	err := s.run(ctx, opRefresh, func(context.Context) error {
		if refreshToken == "" {
			return fmt.Errorf("%w: refresh_token", errs.ErrMalformedRequest)
		}
		access, exp, err := s.tokens.Refresh(refreshToken)
		if err != nil {
			return err
		}
		out = model.Tokens{AccessToken: access, ExpiresAt: exp}
		return nil
	})
	if err != nil {
		return model.Tokens{}, err
	}
	return out, nil
}

// Authenticate implements AuthService. It is not padded: it runs on every
// authenticated request and reveals nothing about credentials.
func (s *AuthServiceImpl) Authenticate(_ context.Context, accessToken string) (uuid.UUID, error) {
	id, err := s.tokens.ParseAccess(accessToken)
	if err != nil {
		return uuid.Nil, s.normalize(opAuthenticate, err)
	}
	return id, nil
}

// opaqueUser loads an authenticated user that logs in with OPAQUE.
func (s *AuthServiceImpl) opaqueUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if _, ok := u.Envelope(); !ok {
		return nil, fmt.Errorf("%w: account has no password", errs.ErrUnauthorized)
	}
	return u, nil
}

// ReRegisterStart implements AuthService.
func (s *AuthServiceImpl) ReRegisterStart(ctx context.Context, userID uuid.UUID, request []byte) (StartResult, error) {
	var res StartResult
	err := s.run(ctx, opReRegisterStart, func(ctx context.Context) error {
		if userID == uuid.Nil {
			return errs.ErrUnauthorized
		}
		if len(request) == 0 {
			return fmt.Errorf("%w: registration_request", errs.ErrMalformedRequest)
		}
		u, err := s.opaqueUser(ctx, userID)
		if err != nil {
			return err
		}
		// The credential id stays the user id so the OPRF key is unchanged.
		resp, err := s.pake.RegistrationResponse(u.ID.Bytes(), request)
		if err != nil {
			return err
		}
		id, err := s.sessions.Put(ctx, model.OpaqueSession{
			Phase:      model.PhaseReregistration,
			Identifier: u.Identifier,
			UserID:     u.ID,
		}, s.opts.SessionTTL)
		if err != nil {
			return err
		}
		res = StartResult{Response: resp, SessionID: id}
		return nil
	})
	if err != nil {
		return StartResult{}, err
	}
	return res, nil
}

// ReRegisterFinish implements AuthService.
func (s *AuthServiceImpl) ReRegisterFinish(ctx context.Context, userID uuid.UUID, sessionID string, record []byte) error {
	return s.run(ctx, opReRegisterFinish, func(ctx context.Context) error {
		if userID == uuid.Nil {
			return errs.ErrUnauthorized
		}
		if len(record) == 0 {
			return fmt.Errorf("%w: registration_record", errs.ErrMalformedRequest)
		}
		sess, err := s.takePhase(ctx, sessionID, model.PhaseReregistration)
		if err != nil {
			return err
		}
		if sess.UserID != userID {
			return fmt.Errorf("%w: session of another user", errs.ErrSessionInvalid)
		}
		if err := s.pake.ValidateRecord(record); err != nil {
			return err
		}

		unlock, err := s.locks.Lock(ctx, sess.Identifier)
		if err != nil {
			return err
		}
		defer unlock()

		if err := s.users.ReplaceEnvelope(ctx, userID, record); err != nil {
			if errors.Is(err, errs.ErrConflict) || errors.Is(err, errs.ErrNotFound) {
				return errs.ErrUnauthorized
			}
			return err
		}
		s.log.Info("envelope replaced", zap.String("user_id", userID.String()))
		return nil
	})
}

// DeleteAccount implements AuthService.
func (s *AuthServiceImpl) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	return s.run(ctx, opDeleteAccount, func(ctx context.Context) error {
		if userID == uuid.Nil {
			return errs.ErrUnauthorized
		}
		if err := s.users.Delete(ctx, userID); err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return errs.ErrUnauthorized
			}
			return err
		}
		s.log.Info("account deleted", zap.String("user_id", userID.String()))
		return nil
	})
}
