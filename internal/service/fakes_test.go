package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/and161185/zk-journal/internal/errs"
	"github.com/and161185/zk-journal/internal/limiter"
	"github.com/and161185/zk-journal/internal/model"
	"github.com/and161185/zk-journal/internal/pake"
	"github.com/and161185/zk-journal/internal/repository"
	"github.com/and161185/zk-journal/internal/session"
	"github.com/and161185/zk-journal/internal/token"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap/zaptest"
)

type fakeUsers struct {
	mu     sync.Mutex
	byName map[string]*model.User

	getErr    error
	createErr error
	creates   int
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if f.byName == nil {
		f.byName = map[string]*model.User{}
	}
	if _, exists := f.byName[u.Identifier]; exists {
		return errs.ErrAlreadyExists
	}
	cpy := *u
	f.byName[u.Identifier] = &cpy
	f.creates++
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byName {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUsers) GetByIdentifier(_ context.Context, identifier string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byName[identifier]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUsers) ReplaceEnvelope(_ context.Context, id uuid.UUID, record []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byName {
		if u.ID == id {
			if _, ok := u.Envelope(); !ok {
				return errs.ErrConflict
			}
			u.Auth = model.OpaqueEnvelope{Record: append([]byte(nil), record...)}
			return nil
		}
	}
	return errs.ErrNotFound
}

func (f *fakeUsers) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for name, u := range f.byName {
		if u.ID == id {
			delete(f.byName, name)
			return nil
		}
	}
	return errs.ErrNotFound
}

type fakeLimiter struct {
	mu       sync.Mutex
	allowOK  bool
	allowErr error

	allowCalls   int
	failureCalls int
	successCalls int
}

var _ limiter.Limiter = (*fakeLimiter)(nil)

func (l *fakeLimiter) Allow(context.Context, string, []byte) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.allowCalls++
	return l.allowOK, 0, l.allowErr
}

func (l *fakeLimiter) Success(context.Context, string, []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.successCalls++
	return nil
}

func (l *fakeLimiter) Failure(context.Context, string, []byte) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failureCalls++
	return false, 0, nil
}

func (l *fakeLimiter) counts() (allow, failure, success int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.allowCalls, l.failureCalls, l.successCalls
}

var (
	pakeOnce   sync.Once
	pakeServer *pake.Server
	pakeErr    error
)

// sharedPAKE builds the server keys once per test binary.
func sharedPAKE(t *testing.T) *pake.Server {
	t.Helper()
	pakeOnce.Do(func() {
		pakeServer, pakeErr = pake.NewServer(pake.GenerateKeys(pake.DefaultServerID))
	})
	if pakeErr != nil {
		t.Fatalf("pake.NewServer: %v", pakeErr)
	}
	return pakeServer
}

type env struct {
	svc    *AuthServiceImpl
	users  *fakeUsers
	lim    *fakeLimiter
	store  *session.MemoryStore
	client *pake.Client
}

func newEnv(t *testing.T, opts Options) *env {
	t.Helper()
	iss, err := token.NewIssuer([]byte("test-key"), time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	e := &env{
		users:  &fakeUsers{byName: map[string]*model.User{}},
		lim:    &fakeLimiter{allowOK: true},
		store:  session.NewMemoryStore(),
		client: pake.NewClient(pake.DefaultServerID),
	}
	if opts.MinResponseTime == 0 {
		opts.MinResponseTime = time.Millisecond
	}
	e.svc = NewAuthService(Deps{
		Users:    e.users,
		Sessions: e.store,
		PAKE:     sharedPAKE(t),
		Tokens:   iss,
		Limiter:  e.lim,
		Log:      zaptest.NewLogger(t),
	}, opts)
	return e
}

// register runs both registration round trips and returns the export key.
func (e *env) register(t *testing.T, identifier, password string) []byte {
	t.Helper()
	ctx := context.Background()
	reg, req, err := e.client.StartRegistration([]byte(password))
	if err != nil {
		t.Fatalf("StartRegistration: %v", err)
	}
	res, err := e.svc.RegisterStart(ctx, identifier, req)
	if err != nil {
		t.Fatalf("RegisterStart: %v", err)
	}
	record, exportKey, err := reg.Finish(identifier, res.Response)
	if err != nil {
		t.Fatalf("Registration.Finish: %v", err)
	}
	if err := e.svc.RegisterFinish(ctx, res.SessionID, record); err != nil {
		t.Fatalf("RegisterFinish: %v", err)
	}
	return exportKey
}

// login runs both login round trips. If the client cannot finish locally
// (wrong password, dummy record), fallbackKE3 is sent instead so the server
// side is exercised too.
func (e *env) login(identifier, password string, fallbackKE3 []byte) (model.Tokens, []byte, error) {
	ctx := context.Background()
	l, ke1, err := e.client.StartLogin([]byte(password))
	if err != nil {
		return model.Tokens{}, nil, err
	}
	res, err := e.svc.LoginStart(ctx, identifier, ke1, "10.0.0.1")
	if err != nil {
		return model.Tokens{}, nil, err
	}
	ke3, exportKey, cerr := l.Finish(identifier, res.Response)
	if cerr != nil {
		ke3 = fallbackKE3
	}
	tok, err := e.svc.LoginFinish(ctx, res.SessionID, ke3, "10.0.0.1")
	return tok, exportKey, err
}

// donorKE3 produces a well-formed KE3 that belongs to a different session.
func (e *env) donorKE3(t *testing.T) []byte {
	t.Helper()
	e.register(t, "donor", "donor-pass")
	l, ke1, _ := e.client.StartLogin([]byte("donor-pass"))
	res, err := e.svc.LoginStart(context.Background(), "donor", ke1, "")
	if err != nil {
		t.Fatalf("LoginStart donor: %v", err)
	}
	ke3, _, err := l.Finish("donor", res.Response)
	if err != nil {
		t.Fatalf("donor finish: %v", err)
	}
	return ke3
}
