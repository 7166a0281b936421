package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/and161185/zk-journal/internal/api/httpapi"
	"github.com/and161185/zk-journal/internal/convert"
	"github.com/and161185/zk-journal/internal/limiter"
	"github.com/and161185/zk-journal/internal/metrics"
	"github.com/and161185/zk-journal/internal/pake"
	"github.com/and161185/zk-journal/internal/repository/memory"
	"github.com/and161185/zk-journal/internal/service"
	"github.com/and161185/zk-journal/internal/session"
	"github.com/and161185/zk-journal/internal/token"
)

var (
	keysOnce sync.Once
	keys     pake.Keys
)

func newAuth(t *testing.T) service.AuthService {
	t.Helper()
	keysOnce.Do(func() { keys = pake.GenerateKeys(pake.DefaultServerID) })
	ps, err := pake.NewServer(keys)
	require.NoError(t, err)
	iss, err := token.NewIssuer([]byte("secret"), time.Minute, time.Hour)
	require.NoError(t, err)
	return service.NewAuthService(service.Deps{
		Users:    memory.NewUserRepo(),
		Sessions: session.NewMemoryStore(),
		PAKE:     ps,
		Tokens:   iss,
		Limiter:  limiter.NewMemory(0, 0, 0),
		Log:      zaptest.NewLogger(t),
	}, service.Options{MinResponseTime: time.Millisecond})
}

func do(t *testing.T, h http.Handler, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeInto[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

func TestRouter_FullFlow(t *testing.T) {
	h := NewRouter(Deps{Auth: newAuth(t), Log: zaptest.NewLogger(t), Timeout: 5 * time.Second})
	pc := pake.NewClient(pake.DefaultServerID)

	reg, req, err := pc.StartRegistration([]byte("correct-horse"))
	require.NoError(t, err)
	rec := do(t, h, http.MethodPost, "/v1/auth/register/start", "", httpapi.RegisterStartRequest{
		Identifier: "alice", RegistrationRequest: convert.EncodeBlob(req),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rs := decodeInto[httpapi.RegisterStartResponse](t, rec)

	resp, err := convert.Blob("registration_response", rs.RegistrationResponse)
	require.NoError(t, err)
	record, regKey, err := reg.Finish("alice", resp)
	require.NoError(t, err)
	rec = do(t, h, http.MethodPost, "/v1/auth/register/finish", "", httpapi.RegisterFinishRequest{
		SessionID: rs.SessionID, RegistrationRecord: convert.EncodeBlob(record),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Replaying the finish hits a consumed session.
	rec = do(t, h, http.MethodPost, "/v1/auth/register/finish", "", httpapi.RegisterFinishRequest{
		SessionID: rs.SessionID, RegistrationRecord: convert.EncodeBlob(record),
	})
	assert.Equal(t, http.StatusGone, rec.Code)

	l, ke1, _ := pc.StartLogin([]byte("correct-horse"))
	rec = do(t, h, http.MethodPost, "/v1/auth/login/start", "", httpapi.LoginStartRequest{
		Identifier: "alice", CredentialRequest: convert.EncodeBlob(ke1),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ls := decodeInto[httpapi.LoginStartResponse](t, rec)
	ke2, _ := convert.Blob("credential_response", ls.CredentialResponse)
	ke3, loginKey, err := l.Finish("alice", ke2)
	require.NoError(t, err)
	assert.Equal(t, regKey, loginKey)

	rec = do(t, h, http.MethodPost, "/v1/auth/login/finish", "", httpapi.LoginFinishRequest{
		SessionID: ls.SessionID, CredentialFinalization: convert.EncodeBlob(ke3),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	tok := decodeInto[httpapi.LoginFinishResponse](t, rec)
	require.NotEmpty(t, tok.AccessToken)

	rec = do(t, h, http.MethodPost, "/v1/auth/refresh", "", httpapi.RefreshRequest{RefreshToken: tok.RefreshToken})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodDelete, "/v1/account", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = do(t, h, http.MethodDelete, "/v1/account", tok.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_BadBodies(t *testing.T) {
	h := NewRouter(Deps{Auth: newAuth(t)})

	tests := []struct {
		name string
		body string
	}{
		{"not json", "{"},
		{"unknown field", `{"identifier":"a","registration_request":"AQ==","extra":1}`},
		{"bad base64", `{"identifier":"a","registration_request":"%%%"}`},
		{"trailing data", `{"identifier":"a","registration_request":"AQ=="} {}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/auth/register/start", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestStatusFor(t *testing.T) {
	code, msg := statusFor(errors.New("dial tcp 10.0.0.5:5432: secret detail"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.NotContains(t, msg, "secret")
}

func TestRouter_RateLimit(t *testing.T) {
	reg := prometheus.NewRegistry()
	col := metrics.NewCollector(reg)
	lim := NewIPRateLimiter(0.001, 2, col)
	h := NewRouter(Deps{Auth: newAuth(t), Limiter: lim, Gatherer: reg})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := do(t, h, http.MethodPost, "/v1/auth/refresh", "", httpapi.RefreshRequest{RefreshToken: "x"})
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusUnauthorized, http.StatusTooManyRequests}, codes)

	// Health and metrics are not limited.
	rec := do(t, h, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, h, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "zkjournal_http_rate_limited_total 1")
}

func TestRouter_HealthzNotReady(t *testing.T) {
	h := NewRouter(Deps{Auth: newAuth(t), Ready: func(context.Context) error { return errors.New("db down") }})
	rec := do(t, h, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_RecoversPanics(t *testing.T) {
	h := Recover(zaptest.NewLogger(t))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestIPRateLimiter_Prune(t *testing.T) {
	now := time.Now()
	l := NewIPRateLimiter(1, 1, nil)
	l.now = func() time.Time { return now }
	l.get("1.1.1.1")
	l.get("2.2.2.2")
	now = now.Add(time.Minute)
	l.get("2.2.2.2")

	assert.Equal(t, 1, l.Prune(30*time.Second))
	assert.Equal(t, 1, l.Len())
}

func loginStartFrom(t *testing.T, h http.Handler, ke1 []byte, remote string, hdr http.Header) int {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(httpapi.LoginStartRequest{
		Identifier: "victim", CredentialRequest: convert.EncodeBlob(ke1),
	}))
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login/start", &buf)
	req.RemoteAddr = remote
	for k, vs := range hdr {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func spoofed(i int) http.Header {
	ip := fmt.Sprintf("10.0.%d.%d", i/250, i%250+1)
	return http.Header{
		"X-Real-Ip":        {ip},
		"X-Forwarded-For":  {ip},
		"True-Client-Ip":   {ip},
		"X-Client-Address": {ip},
	}
}

func TestRouter_ForwardingHeadersDoNotEvadeRateLimit(t *testing.T) {
	_, ke1, err := pake.NewClient(pake.DefaultServerID).StartLogin([]byte("guess"))
	require.NoError(t, err)
	h := NewRouter(Deps{Auth: newAuth(t), Limiter: NewIPRateLimiter(0.001, 2, nil)})

	got := map[int]int{}
	for i := 0; i < 12; i++ {
		got[loginStartFrom(t, h, ke1, "198.51.100.7:4000", spoofed(i))]++
	}
	assert.Equal(t, map[int]int{http.StatusOK: 2, http.StatusTooManyRequests: 10}, got)
}

func TestRouter_ForwardingHeadersDoNotEvadeLoginLockout(t *testing.T) {
	_, ke1, err := pake.NewClient(pake.DefaultServerID).StartLogin([]byte("guess"))
	require.NoError(t, err)
	// no per-IP bucket: only the (identifier, ip) lockout applies
	h := NewRouter(Deps{Auth: newAuth(t)})

	codes := make([]int, 0, limiter.DefaultMaxFails+1)
	for i := 0; i <= limiter.DefaultMaxFails; i++ {
		codes = append(codes, loginStartFrom(t, h, ke1, "198.51.100.7:4000", spoofed(i)))
	}
	for i := 0; i < limiter.DefaultMaxFails; i++ {
		assert.Equal(t, http.StatusOK, codes[i], "attempt %d", i)
	}
	assert.Equal(t, http.StatusTooManyRequests, codes[limiter.DefaultMaxFails])
}

func TestRouter_TrustedProxyForwardsClient(t *testing.T) {
	_, ke1, err := pake.NewClient(pake.DefaultServerID).StartLogin([]byte("guess"))
	require.NoError(t, err)
	_, proxy, err := net.ParseCIDR("192.0.2.0/24")
	require.NoError(t, err)
	h := NewRouter(Deps{
		Auth:           newAuth(t),
		Limiter:        NewIPRateLimiter(0.001, 1, nil),
		TrustedProxies: []net.IPNet{*proxy},
	})

	// Behind the proxy each client has its own bucket.
	for i := 0; i < 3; i++ {
		hdr := http.Header{"X-Forwarded-For": {fmt.Sprintf("203.0.113.%d, 192.0.2.9", i+1)}}
		assert.Equal(t, http.StatusOK, loginStartFrom(t, h, ke1, "192.0.2.1:4000", hdr), "client %d", i)
	}
	// The same client again is limited.
	hdr := http.Header{"X-Forwarded-For": {"203.0.113.1"}}
	assert.Equal(t, http.StatusTooManyRequests, loginStartFrom(t, h, ke1, "192.0.2.1:4000", hdr))

	// A direct peer outside the trusted set cannot borrow a forwarded address.
	hdr = http.Header{"X-Forwarded-For": {"203.0.113.50"}}
	assert.Equal(t, http.StatusOK, loginStartFrom(t, h, ke1, "198.51.100.7:4000", hdr))
	hdr = http.Header{"X-Forwarded-For": {"203.0.113.51"}}
	assert.Equal(t, http.StatusTooManyRequests, loginStartFrom(t, h, ke1, "198.51.100.7:4000", hdr))
}

func TestRealIP_ForwardedClient(t *testing.T) {
	_, proxy, err := net.ParseCIDR("10.0.0.0/8")
	require.NoError(t, err)
	proxies := []net.IPNet{*proxy}

	tests := []struct {
		name   string
		remote string
		xff    []string
		xrip   string
		want   string
	}{
		{"untrusted peer keeps socket address", "198.51.100.7:1", []string{"1.2.3.4"}, "5.6.7.8", "198.51.100.7"},
		{"rightmost untrusted hop", "10.0.0.1:1", []string{"6.6.6.6, 1.2.3.4, 10.0.0.2"}, "", "1.2.3.4"},
		{"multiple header lines", "10.0.0.1:1", []string{"6.6.6.6", "1.2.3.4"}, "", "1.2.3.4"},
		{"x-real-ip fallback", "10.0.0.1:1", nil, "5.6.7.8", "5.6.7.8"},
		{"only proxies in chain", "10.0.0.1:1", []string{"10.0.0.3"}, "", "10.0.0.1"},
		{"garbage hop stops the walk", "10.0.0.1:1", []string{"1.2.3.4, junk"}, "", "10.0.0.1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var seen string
			h := RealIP(proxies)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) { seen = clientIP(r) }))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remote
			for _, v := range tc.xff {
				req.Header.Add("X-Forwarded-For", v)
			}
			if tc.xrip != "" {
				req.Header.Set("X-Real-IP", tc.xrip)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tc.want, seen)
		})
	}
}
