package service

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/and161185/zk-journal/internal/crypto/clientcrypto"
	"github.com/and161185/zk-journal/internal/errs"
	"github.com/and161185/zk-journal/internal/model"
	"github.com/gofrs/uuid/v5"
)

func TestAuth_RegisterLogin_StableMasterKey(t *testing.T) {
	t.Parallel()
	e := newEnv(t, Options{})

	e.register(t, "alice", "correct-horse")

	tok1, ek1, err := e.login("alice", "correct-horse", nil)
	if err != nil {
		t.Fatalf("login 1: %v", err)
	}
	_, ek2, err := e.login("alice", "correct-horse", nil)
	if err != nil {
		t.Fatalf("login 2: %v", err)
	}

	m1, _ := clientcrypto.DeriveMasterKey(ek1)
	m2, _ := clientcrypto.DeriveMasterKey(ek2)
	if !bytes.Equal(m1, m2) {
		t.Fatalf("master key must be stable across logins")
	}

	// Content sealed after the first login opens after the second.
	sealed, err := clientcrypto.SealEntry(m1, []byte("dear diary"), nil)
	if err != nil {
		t.Fatalf("SealEntry: %v", err)
	}
	if pt, err := clientcrypto.OpenEntry(m2, sealed, nil); err != nil || string(pt) != "dear diary" {
		t.Fatalf("OpenEntry: %v", err)
	}

	uid, err := e.svc.Authenticate(context.Background(), tok1.AccessToken)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	u, _ := e.users.GetByIdentifier(context.Background(), "alice")
	if uid != u.ID {
		t.Fatalf("token subject %v, want %v", uid, u.ID)
	}
	if _, _, success := e.lim.counts(); success != 2 {
		t.Fatalf("limiter Success calls=%d, want 2", success)
	}
}

func TestAuth_WrongPasswordAndUnknownIdentifierLookAlike(t *testing.T) {
	t.Parallel()
	const (
		floor  = 60 * time.Millisecond
		rounds = 4
	)
	e := newEnv(t, Options{MinResponseTime: floor})
	donor := e.donorKE3(t)
	e.register(t, "alice", "correct-horse")
	_, failedBefore, _ := e.lim.counts()

	var wrongTotal, unknownTotal time.Duration
	for i := 0; i < rounds; i++ {
		start := time.Now()
		_, _, errWrong := e.login("alice", "battery-staple", donor)
		wrongDur := time.Since(start)

		start = time.Now()
		_, _, errUnknown := e.login("nobody", "battery-staple", donor)
		unknownDur := time.Since(start)

		if !errors.Is(errWrong, errs.ErrAuthenticationFailed) || !errors.Is(errUnknown, errs.ErrAuthenticationFailed) {
			t.Fatalf("wrong=%v unknown=%v, want ErrAuthenticationFailed for both", errWrong, errUnknown)
		}
		if errWrong.Error() != errUnknown.Error() {
			t.Fatalf("errors differ: %q vs %q", errWrong, errUnknown)
		}
		// Two padded operations per login.
		if wrongDur < 2*floor || unknownDur < 2*floor {
			t.Fatalf("latency below floor: wrong=%v unknown=%v", wrongDur, unknownDur)
		}
		wrongTotal += wrongDur
		unknownTotal += unknownDur
	}

	diff := (wrongTotal - unknownTotal) / rounds
	if diff < 0 {
		diff = -diff
	}
	if diff >= floor/2 {
		t.Fatalf("mean latency differs by %v (wrong=%v unknown=%v per login)", diff, wrongTotal/rounds, unknownTotal/rounds)
	}
	// Attempts are counted at start, one per login.
	if _, failures, _ := e.lim.counts(); failures-failedBefore != 2*rounds {
		t.Fatalf("limiter Failure calls=%d, want %d", failures-failedBefore, 2*rounds)
	}
}

func TestAuth_UnknownIdentifierStartSucceeds(t *testing.T) {
	t.Parallel()
	e := newEnv(t, Options{})

	_, ke1, _ := e.client.StartLogin([]byte("whatever"))
	res, err := e.svc.LoginStart(context.Background(), "ghost", ke1, "")
	if err != nil {
		t.Fatalf("LoginStart must not reveal unknown identifiers: %v", err)
	}
	if len(res.Response) == 0 || res.SessionID == "" {
		t.Fatalf("dummy flow must return a full response")
	}
}

func TestAuth_ExternalIdentityUsesDummyFlow(t *testing.T) {
	t.Parallel()
	e := newEnv(t, Options{})
	donor := e.donorKE3(t)
	u, _ := model.NewExternalUser(uuid.Must(uuid.NewV4()), "carol", model.ExternalIdentity{Provider: "google", Subject: "42"})
	_ = e.users.Create(context.Background(), u)

	if _, _, err := e.login("carol", "anything", donor); !errors.Is(err, errs.ErrAuthenticationFailed) {
		t.Fatalf("err=%v, want ErrAuthenticationFailed", err)
	}
}

func TestAuth_DoubleFinish(t *testing.T) {
	t.Parallel()
	e := newEnv(t, Options{})
	ctx := context.Background()
	e.register(t, "alice", "pw")

	l, ke1, _ := e.client.StartLogin([]byte("pw"))
	res, err := e.svc.LoginStart(ctx, "alice", ke1, "")
	if err != nil {
		t.Fatalf("LoginStart: %v", err)
	}
	ke3, _, err := l.Finish("alice", res.Response)
	if err != nil {
		t.Fatalf("client finish: %v", err)
	}

	if _, err := e.svc.LoginFinish(ctx, res.SessionID, ke3, ""); err != nil {
		t.Fatalf("first finish: %v", err)
	}
	if _, err := e.svc.LoginFinish(ctx, res.SessionID, ke3, ""); !errors.Is(err, errs.ErrSessionInvalid) {
		t.Fatalf("second finish: err=%v, want ErrSessionInvalid", err)
	}
}

func TestAuth_ConcurrentFinish(t *testing.T) {
	t.Parallel()
	e := newEnv(t, Options{})
	ctx := context.Background()
	e.register(t, "alice", "pw")

	l, ke1, _ := e.client.StartLogin([]byte("pw"))
	res, _ := e.svc.LoginStart(ctx, "alice", ke1, "")
	ke3, _, err := l.Finish("alice", res.Response)
	if err != nil {
		t.Fatalf("client finish: %v", err)
	}

	const n = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		ok      int
		invalid int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.svc.LoginFinish(ctx, res.SessionID, ke3, "")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, errs.ErrSessionInvalid):
				invalid++
			}
		}()
	}
	wg.Wait()
	if ok != 1 || invalid != n-1 {
		t.Fatalf("ok=%d invalid=%d", ok, invalid)
	}
}

func TestAuth_ExpiredSession(t *testing.T) {
	t.Parallel()
	e := newEnv(t, Options{SessionTTL: 10 * time.Millisecond})
	ctx := context.Background()

	reg, req, _ := e.client.StartRegistration([]byte("pw"))
	res, err := e.svc.RegisterStart(ctx, "alice", req)
	if err != nil {
		t.Fatalf("RegisterStart: %v", err)
	}
	record, _, _ := reg.Finish("alice", res.Response)

	time.Sleep(30 * time.Millisecond)
	if err := e.svc.RegisterFinish(ctx, res.SessionID, record); !errors.Is(err, errs.ErrSessionInvalid) {
		t.Fatalf("err=%v, want ErrSessionInvalid", err)
	}
	if _, err := e.users.GetByIdentifier(ctx, "alice"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expired registration must not create a user")
	}
}

func TestAuth_FinishWithoutStart(t *testing.T) {
	t.Parallel()
	e := newEnv(t, Options{})
	ctx := context.Background()

	if err := e.svc.RegisterFinish(ctx, "not-a-session", []byte("rec")); !errors.Is(err, errs.ErrSessionInvalid) {
		t.Fatalf("bad id: err=%v", err)
	}
	if _, err := e.svc.LoginFinish(ctx, "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", []byte("ke3"), ""); !errors.Is(err, errs.ErrSessionInvalid) {
		t.Fatalf("unknown id: err=%v", err)
	}
}

func TestAuth_WrongPhase(t *testing.T) {
	t.Parallel()
	e := newEnv(t, Options{})
	ctx := context.Background()

	_, req, _ := e.client.StartRegistration([]byte("pw"))
	res, err := e.svc.RegisterStart(ctx, "alice", req)
	if err != nil {
		t.Fatalf("RegisterStart: %v", err)
	}
	if _, err := e.svc.LoginFinish(ctx, res.SessionID, []byte("ke3"), ""); !errors.Is(err, errs.ErrSessionInvalid) {
		t.Fatalf("err=%v, want ErrSessionInvalid", err)
	}
}

func TestAuth_RegisterExisting(t *testing.T) {
	t.Parallel()
	e := newEnv(t, Options{})
	e.register(t, "alice", "pw")

	_, req, _ := e.client.StartRegistration([]byte("pw2"))
	if _, err := e.svc.RegisterStart(context.Background(), "alice", req); !errors.Is(err, errs.ErrIdentityAlreadyRegistered) {
		t.Fatalf("err=%v, want ErrIdentityAlreadyRegistered", err)
	}
}

func TestAuth_ConcurrentRegistrationRace(t *testing.T) {
	t.Parallel()
	e := newEnv(t, Options{})
	ctx := context.Background()

	type started struct {
		id     string
		record []byte
	}
	var flows []started
	for _, pw := range []string{"first", "second"} {
		reg, req, _ := e.client.StartRegistration([]byte(pw))
		res, err := e.svc.RegisterStart(ctx, "alice", req)
		if err != nil {
			t.Fatalf("RegisterStart: %v", err)
		}
		record, _, _ := reg.Finish("alice", res.Response)
		flows = append(flows, started{id: res.SessionID, record: record})
	}

	errCh := make(chan error, len(flows))
	var wg sync.WaitGroup
	for _, f := range flows {
		wg.Add(1)
		go func(f started) {
			defer wg.Done()
			errCh <- e.svc.RegisterFinish(ctx, f.id, f.record)
		}(f)
	}
	wg.Wait()
	close(errCh)

	var ok, dup int
	for err := range errCh {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, errs.ErrIdentityAlreadyRegistered):
			dup++
		default:
			t.Fatalf("unexpected error %v", err)
		}
	}
	if ok != 1 || dup != 1 || e.users.creates != 1 {
		t.Fatalf("ok=%d dup=%d creates=%d", ok, dup, e.users.creates)
	}
}

func TestAuth_Malformed(t *testing.T) {
	t.Parallel()
	e := newEnv(t, Options{})
	ctx := context.Background()

	if _, err := e.svc.RegisterStart(ctx, "", []byte("x")); !errors.Is(err, errs.ErrMalformedRequest) {
		t.Fatalf("empty identifier: %v", err)
	}
	if _, err := e.svc.RegisterStart(ctx, "alice", nil); !errors.Is(err, errs.ErrMalformedRequest) {
		t.Fatalf("empty request: %v", err)
	}
	if _, err := e.svc.RegisterStart(ctx, "alice", []byte{1, 2, 3}); !errors.Is(err, errs.ErrMalformedRequest) {
		t.Fatalf("garbage request: %v", err)
	}
	if _, err := e.svc.LoginStart(ctx, "alice", []byte{1}, ""); !errors.Is(err, errs.ErrMalformedRequest) {
		t.Fatalf("garbage ke1: %v", err)
	}

	_, req, _ := e.client.StartRegistration([]byte("pw"))
	res, _ := e.svc.RegisterStart(ctx, "alice", req)
	if err := e.svc.RegisterFinish(ctx, res.SessionID, []byte{9, 9}); !errors.Is(err, errs.ErrMalformedRequest) {
		t.Fatalf("garbage record: %v", err)
	}
}

func TestAuth_RateLimited(t *testing.T) {
	t.Parallel()
	e := newEnv(t, Options{})
	e.lim.allowOK = false

	_, ke1, _ := e.client.StartLogin([]byte("pw"))
	if _, err := e.svc.LoginStart(context.Background(), "alice", ke1, "1.2.3.4"); !errors.Is(err, errs.ErrRateLimited) {
		t.Fatalf("err=%v, want ErrRateLimited", err)
	}
}

func TestAuth_Normalize_InternalAndUnavailable(t *testing.T) {
	t.Parallel()
	e := newEnv(t, Options{})
	ctx := context.Background()
	_, req, _ := e.client.StartRegistration([]byte("pw"))

	e.users.getErr = errors.New("relation users does not exist")
	_, err := e.svc.RegisterStart(ctx, "alice", req)
	if !errors.Is(err, errs.ErrInternal) {
		t.Fatalf("err=%v, want ErrInternal", err)
	}
	if err.Error() != errs.ErrInternal.Error() {
		t.Fatalf("internal detail leaked: %q", err)
	}

	e.users.getErr = context.DeadlineExceeded
	if _, err := e.svc.RegisterStart(ctx, "alice", req); !errors.Is(err, errs.ErrUnavailable) {
		t.Fatalf("err=%v, want ErrUnavailable", err)
	}
}

func TestAuth_Refresh(t *testing.T) {
	t.Parallel()
	e := newEnv(t, Options{})
	ctx := context.Background()
	e.register(t, "alice", "pw")
	tok, _, err := e.login("alice", "pw", nil)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	fresh, err := e.svc.Refresh(ctx, tok.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if _, err := e.svc.Authenticate(ctx, fresh.AccessToken); err != nil {
		t.Fatalf("Authenticate refreshed: %v", err)
	}
	if _, err := e.svc.Refresh(ctx, tok.AccessToken); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("access as refresh: err=%v", err)
	}
	if _, err := e.svc.Authenticate(ctx, tok.RefreshToken); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("refresh as access: err=%v", err)
	}
}

func TestAuth_ReRegister_ChangesPassword(t *testing.T) {
	t.Parallel()
	e := newEnv(t, Options{})
	ctx := context.Background()
	donor := e.donorKE3(t)
	oldKey := e.register(t, "alice", "old-pass")
	tok, _, err := e.login("alice", "old-pass", nil)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	uid, _ := e.svc.Authenticate(ctx, tok.AccessToken)

	oldMaster, _ := clientcrypto.DeriveMasterKey(oldKey)
	sealed, _ := clientcrypto.SealEntry(oldMaster, []byte("entry"), nil)

	reg, req, _ := e.client.StartRegistration([]byte("new-pass"))
	res, err := e.svc.ReRegisterStart(ctx, uid, req)
	if err != nil {
		t.Fatalf("ReRegisterStart: %v", err)
	}
	record, newKey, err := reg.Finish("alice", res.Response)
	if err != nil {
		t.Fatalf("Registration.Finish: %v", err)
	}

	// Another user cannot finish it.
	if err := e.svc.ReRegisterFinish(ctx, uuid.Must(uuid.NewV4()), res.SessionID, record); !errors.Is(err, errs.ErrSessionInvalid) {
		t.Fatalf("foreign finish: err=%v", err)
	}

	reg2, req2, _ := e.client.StartRegistration([]byte("new-pass"))
	res, err = e.svc.ReRegisterStart(ctx, uid, req2)
	if err != nil {
		t.Fatalf("ReRegisterStart 2: %v", err)
	}
	record, newKey, _ = reg2.Finish("alice", res.Response)
	if err := e.svc.ReRegisterFinish(ctx, uid, res.SessionID, record); err != nil {
		t.Fatalf("ReRegisterFinish: %v", err)
	}

	if _, _, err := e.login("alice", "old-pass", donor); !errors.Is(err, errs.ErrAuthenticationFailed) {
		t.Fatalf("old password: err=%v", err)
	}
	_, ek, err := e.login("alice", "new-pass", nil)
	if err != nil {
		t.Fatalf("new password: %v", err)
	}
	if !bytes.Equal(ek, newKey) || bytes.Equal(ek, oldKey) {
		t.Fatalf("export key must follow the new registration")
	}

	newMaster, _ := clientcrypto.DeriveMasterKey(ek)
	moved, err := clientcrypto.Rewrap(oldMaster, newMaster, sealed)
	if err != nil {
		t.Fatalf("Rewrap: %v", err)
	}
	if pt, err := clientcrypto.OpenEntry(newMaster, moved, nil); err != nil || string(pt) != "entry" {
		t.Fatalf("open after rewrap: %v", err)
	}
}

func TestAuth_ReRegister_ExternalUserRejected(t *testing.T) {
	t.Parallel()
	e := newEnv(t, Options{})
	u, _ := model.NewExternalUser(uuid.Must(uuid.NewV4()), "carol", model.ExternalIdentity{Provider: "google", Subject: "1"})
	_ = e.users.Create(context.Background(), u)

	_, req, _ := e.client.StartRegistration([]byte("pw"))
	if _, err := e.svc.ReRegisterStart(context.Background(), u.ID, req); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("err=%v, want ErrUnauthorized", err)
	}
}

func TestAuth_DeleteAccount(t *testing.T) {
	t.Parallel()
	e := newEnv(t, Options{})
	ctx := context.Background()
	donor := e.donorKE3(t)
	e.register(t, "alice", "pw")
	tok, _, _ := e.login("alice", "pw", nil)
	uid, _ := e.svc.Authenticate(ctx, tok.AccessToken)

	if err := e.svc.DeleteAccount(ctx, uid); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if err := e.svc.DeleteAccount(ctx, uid); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("second delete: err=%v", err)
	}
	if _, _, err := e.login("alice", "pw", donor); !errors.Is(err, errs.ErrAuthenticationFailed) {
		t.Fatalf("login after delete: err=%v", err)
	}
	// The identifier is free again.
	e.register(t, "alice", "pw")
}

func TestAuth_LoginFinishAfterDelete(t *testing.T) {
	t.Parallel()
	e := newEnv(t, Options{})
	ctx := context.Background()
	e.register(t, "alice", "pw")
	u, _ := e.users.GetByIdentifier(ctx, "alice")

	l, ke1, _ := e.client.StartLogin([]byte("pw"))
	res, err := e.svc.LoginStart(ctx, "alice", ke1, "")
	if err != nil {
		t.Fatalf("LoginStart: %v", err)
	}
	ke3, _, err := l.Finish("alice", res.Response)
	if err != nil {
		t.Fatalf("client finish: %v", err)
	}
	if err := e.svc.DeleteAccount(ctx, u.ID); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if _, err := e.svc.LoginFinish(ctx, res.SessionID, ke3, ""); !errors.Is(err, errs.ErrAuthenticationFailed) {
		t.Fatalf("err=%v, want ErrAuthenticationFailed", err)
	}
}
